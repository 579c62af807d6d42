package commands

import (
	"bufio"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/schoolops/student-sync/roster"
)

func TestPromptConfirm(t *testing.T) {
	tests := map[string]bool{
		"y\n":     true,
		"YES\n":   true,
		" yes \n": true,
		"n\n":     false,
		"\n":      false,
		"maybe\n": false,
		"y":       true,
	}

	for input, expected := range tests {
		var out strings.Builder
		p := prompt{
			in:          bufio.NewReader(strings.NewReader(input)),
			out:         &out,
			interactive: true,
		}

		ok, err := p.confirm("Are you sure?")
		if err != nil {
			t.Fatalf("Unexpected error for input %q (%v)", input, err)
		}

		if ok != expected {
			t.Errorf("Incorrect answer for input %q - expected:%v, got:%v", input, expected, ok)
		}

		if out.String() != "Are you sure? [y/N] " {
			t.Errorf("Incorrect prompt - got %q", out.String())
		}
	}
}

func TestPromptText(t *testing.T) {
	p := prompt{
		in:          bufio.NewReader(strings.NewReader("  Ms Smith \nnext\n")),
		out:         &strings.Builder{},
		interactive: true,
	}

	name, err := p.text("What is your name?")
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if name != "Ms Smith" {
		t.Errorf("Incorrect name - expected:%v, got:%v", "Ms Smith", name)
	}
}

func TestPromptWithoutTerminal(t *testing.T) {
	p := prompt{
		in:          bufio.NewReader(strings.NewReader("y\n")),
		out:         &strings.Builder{},
		interactive: false,
	}

	if _, err := p.confirm("Are you sure?"); err == nil {
		t.Errorf("Expected error prompting without a terminal")
	}
}

func TestPromptWithEmptyInput(t *testing.T) {
	p := prompt{
		in:          bufio.NewReader(strings.NewReader("")),
		out:         &strings.Builder{},
		interactive: true,
	}

	if _, err := p.text("What is your name?"); err == nil {
		t.Errorf("Expected error reading from empty input")
	}
}

func TestPromptChoose(t *testing.T) {
	var out strings.Builder
	p := prompt{
		in:          bufio.NewReader(strings.NewReader("3, 1\n")),
		out:         &out,
		interactive: true,
	}

	chosen, err := p.choose("Which cohorts?", []string{"Year 9      (Senior)", "Year 10     (Senior)", "Year 12 Med (Senior)"})
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	expected := []string{"Year 12 Med (Senior)", "Year 9      (Senior)"}
	if !reflect.DeepEqual(chosen, expected) {
		t.Errorf("Incorrect selection - expected:%q, got:%q", expected, chosen)
	}

	if !strings.Contains(out.String(), "   1  Year 9 (Senior)\n") {
		t.Errorf("Incorrect option list\n%s", out.String())
	}
}

func TestPromptChooseWithInvalidSelection(t *testing.T) {
	for _, input := range []string{"0\n", "4\n", "one\n"} {
		p := prompt{
			in:          bufio.NewReader(strings.NewReader(input)),
			out:         &strings.Builder{},
			interactive: true,
		}

		if _, err := p.choose("Which cohorts?", []string{"Year 9", "Year 10", "Year 11"}); err == nil {
			t.Errorf("Expected error for selection %q", input)
		}
	}
}

func TestSelectionPromptsForMissingCohorts(t *testing.T) {
	p := prompt{
		in:          bufio.NewReader(strings.NewReader("5,8\n")),
		out:         &strings.Builder{},
		interactive: true,
	}

	cmd := command{}
	cohorts, err := cmd.selection(&p)
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	if len(cohorts) != 2 || cohorts[0].Worksheet() != "Year 9 Room" || cohorts[1].Worksheet() != "Year 12 Med" {
		t.Errorf("Incorrect cohorts - got %v", cohorts)
	}
}

func TestSelectionWithoutTerminal(t *testing.T) {
	p := prompt{
		in:          bufio.NewReader(strings.NewReader("5\n")),
		out:         &strings.Builder{},
		interactive: false,
	}

	cmd := command{}
	if _, err := cmd.selection(&p); !errors.Is(err, roster.ErrNoCohortSelected) {
		t.Errorf("Expected %v, got %v", roster.ErrNoCohortSelected, err)
	}

	cmd = command{cohorts: "Year 9, Year 9"}
	if cohorts, err := cmd.selection(&p); err != nil || len(cohorts) != 1 {
		t.Errorf("Expected a single cohort, got %v (%v)", cohorts, err)
	}
}
