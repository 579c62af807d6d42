package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/schoolops/student-sync/roster"
)

var CohortsCmd = Cohorts{}

// Cohorts lists the cohorts that can be selected for a sync and the worksheet each one is read
// from.
type Cohorts struct {
}

func (cmd *Cohorts) Name() string {
	return "cohorts"
}

func (cmd *Cohorts) Description() string {
	return "Lists the cohorts that can be synchronised"
}

func (cmd *Cohorts) Usage() string {
	return ""
}

func (cmd *Cohorts) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s cohorts\n", APP)
	fmt.Println()
	fmt.Println("  Lists the cohorts that can be selected with --cohorts, along with the roster worksheet for each")
	fmt.Println("  cohort and the filter rules applied to its rows.")
	fmt.Println()
}

func (cmd *Cohorts) FlagSet() *flag.FlagSet {
	return flag.NewFlagSet("cohorts", flag.ExitOnError)
}

func (cmd *Cohorts) Execute(args ...any) error {
	return listCohorts(os.Stdout, roster.Choices)
}

func listCohorts(w io.Writer, labels []string) error {
	fmt.Fprintf(w, "%-22s %-14s %s\n", "COHORT", "WORKSHEET", "RULES")

	for _, label := range labels {
		cohort, err := roster.ParseCohort(label)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%-22s %-14s %s\n", strings.Join(strings.Fields(label), " "), cohort.Worksheet(), cohort.Tier())
	}

	return nil
}
