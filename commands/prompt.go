package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// prompt asks the operator questions on the terminal.
type prompt struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

func newPrompt() *prompt {
	return &prompt{
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: isTerminal(os.Stdin),
	}
}

func (p *prompt) text(question string) (string, error) {
	if !p.interactive {
		return "", fmt.Errorf("'%s' requires an interactive terminal", question)
	}

	fmt.Fprintf(p.out, "%s ", question)

	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// confirm asks a yes/no question. Anything other than an explicit 'y' or 'yes' is a no.
func (p *prompt) confirm(question string) (bool, error) {
	answer, err := p.text(fmt.Sprintf("%s [y/N]", question))
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// choose lists the options and returns the ones picked by number, in the order entered
// e.g. "1,3 5". An empty answer picks nothing.
func (p *prompt) choose(question string, options []string) ([]string, error) {
	if !p.interactive {
		return nil, fmt.Errorf("'%s' requires an interactive terminal", question)
	}

	fmt.Fprintln(p.out, question)
	for i, option := range options {
		fmt.Fprintf(p.out, "  %2d  %s\n", i+1, strings.Join(strings.Fields(option), " "))
	}

	answer, err := p.text("Enter the numbers separated by commas:")
	if err != nil {
		return nil, err
	}

	chosen := []string{}
	for _, f := range strings.FieldsFunc(answer, func(r rune) bool { return r == ',' || unicode.IsSpace(r) }) {
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 || n > len(options) {
			return nil, fmt.Errorf("invalid selection '%s' - expected a number between 1 and %d", f, len(options))
		}

		chosen = append(chosen, options[n-1])
	}

	return chosen, nil
}
