package roster

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Choices are the cohort labels offered to the operator, one per worksheet in the roster
// spreadsheet.
var Choices = []string{
	"Year 5      (Junior)",
	"Year 6      (Junior)",
	"Year 7      (Junior)",
	"Year 8      (Senior)",
	"Year 9      (Senior)",
	"Year 10     (Senior)",
	"Year 11     (Senior)",
	"Year 12 Med (Senior)",
	"Year 12 Com (Senior)",
	"Year 12 Hum (Senior)",
	"Year 12 NBS (Senior)",
	"Year 13 Med (Senior)",
	"Year 13 Com (Senior)",
	"Year 13 Hum (Senior)",
	"Year 13 NBS (Senior)",
}

// Year groups from 12 up are split into named tracks rather than rooms.
const trackYear = 12

var cohortLabel = regexp.MustCompile(`^(?i:year\s+)?([0-9]{1,2})(?:\s+([A-Za-z][A-Za-z0-9]*))?(?:\s*\([^)]*\))?$`)

type Cohort struct {
	Label string
	Year  int
	Room  string
	Track string
}

func ParseCohort(label string) (Cohort, error) {
	match := cohortLabel.FindStringSubmatch(strings.TrimSpace(label))
	if match == nil {
		return Cohort{}, &InvalidCohortLabelError{Label: label}
	}

	year, err := strconv.Atoi(match[1])
	if err != nil || year <= 0 {
		return Cohort{}, &InvalidCohortLabelError{Label: label}
	}

	track := match[2]

	switch {
	case year < trackYear && track != "" && !strings.EqualFold(track, "room"):
		return Cohort{}, &InvalidCohortLabelError{Label: label}

	case year >= trackYear && track == "":
		return Cohort{}, &InvalidCohortLabelError{Label: label}

	case year < trackYear:
		return Cohort{
			Label: label,
			Year:  year,
			Room:  fmt.Sprintf("%d Room", year),
		}, nil

	default:
		return Cohort{
			Label: label,
			Year:  year,
			Track: track,
		}, nil
	}
}

// SelectCohorts resolves the operator's selection. Labels that resolve to the same worksheet are
// only returned once.
func SelectCohorts(labels []string) ([]Cohort, error) {
	cohorts := []Cohort{}
	seen := map[string]bool{}

	for _, label := range labels {
		if strings.TrimSpace(label) == "" {
			continue
		}

		cohort, err := ParseCohort(label)
		if err != nil {
			return nil, err
		}

		if k := cohort.Worksheet(); !seen[k] {
			seen[k] = true
			cohorts = append(cohorts, cohort)
		}
	}

	if len(cohorts) == 0 {
		return nil, ErrNoCohortSelected
	}

	return cohorts, nil
}

// Worksheet returns the name of the roster worksheet for the cohort e.g. 'Year 9 Room' or
// 'Year 12 Med'.
func (c Cohort) Worksheet() string {
	if c.Year < trackYear {
		return fmt.Sprintf("Year %s", c.Room)
	}

	return fmt.Sprintf("Year %d %s", c.Year, c.Track)
}

func (c Cohort) Tier() Tier {
	return TierOf(c.Year)
}

func (c Cohort) String() string {
	return c.Worksheet()
}

// Years returns the distinct years of a cohort selection, in selection order.
func Years(cohorts []Cohort) []int {
	years := []int{}
	seen := map[int]bool{}

	for _, c := range cohorts {
		if !seen[c.Year] {
			seen[c.Year] = true
			years = append(years, c.Year)
		}
	}

	return years
}
