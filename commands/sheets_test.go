package commands

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/schoolops/student-sync/roster"
)

func TestSummaryValues(t *testing.T) {
	cohorts, err := roster.SelectCohorts([]string{"Year 9", "Year 12 Med"})
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	}

	run := roster.NewRun("Ms Smith", cohorts, true, nil)
	report := roster.Report{
		Purged:   12,
		Inserted: 3,
		Updated:  40,
		Skipped:  1,
		Failed:   []string{"x@x.com"},
	}

	s := summary{
		timestamp: time.Date(2026, time.October, 19, 9, 30, 0, 0, time.Local),
		run:       run,
		report:    &report,
	}

	expected := map[string]interface{}{
		"timestamp": "2026-10-19 09:30:00",
		"run":       run.ID.String(),
		"operator":  "Ms Smith",
		"cohorts":   "Year 9 Room, Year 12 Med",
		"purged":    int64(12),
		"inserted":  3,
		"updated":   40,
		"skipped":   1,
		"failed":    1,
		"result":    "ok",
	}

	if values := s.values(); !reflect.DeepEqual(values, expected) {
		t.Errorf("Incorrect summary\n   expected: %v\n   got:      %v", expected, values)
	}
}

func TestSummaryValuesWithError(t *testing.T) {
	cohorts, _ := roster.SelectCohorts([]string{"Year 9"})

	s := summary{
		timestamp: time.Now(),
		run:       roster.NewRun("Ms Smith", cohorts, false, nil),
		err:       errors.New("unable to reach database"),
	}

	values := s.values()

	if values["result"] != "unable to reach database" {
		t.Errorf("Incorrect result - expected:%v, got:%v", "unable to reach database", values["result"])
	}

	if _, ok := values["inserted"]; ok {
		t.Errorf("Unexpected 'inserted' value in summary without a report")
	}
}
