package roster

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoCohortSelected is returned when the operator did not pick any cohort.
var ErrNoCohortSelected = errors.New("no cohort selected")

type InvalidCohortLabelError struct {
	Label string
}

func (e *InvalidCohortLabelError) Error() string {
	return fmt.Sprintf("invalid cohort '%s' - expected something like 'Year 9' or 'Year 12 Med'", e.Label)
}

// MalformedNameError is returned by Map for a row whose Name does not have both a first and a
// last name. The row is skipped, the rest of the batch continues.
type MalformedNameError struct {
	Sheet string
	Row   int
	Name  string
}

func (e *MalformedNameError) Error() string {
	return fmt.Sprintf("%s row %d: malformed name '%s' (expected '<first> <last>')", e.Sheet, e.Row, e.Name)
}

type MalformedRecordError struct {
	Sheet  string
	Row    int
	Field  string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s row %d: invalid %s (%s)", e.Sheet, e.Row, e.Field, e.Reason)
}

// StoreWriteError wraps a failed insert, update or purge with the email (or year, for a purge)
// that was in flight.
type StoreWriteError struct {
	Op    string
	Email string
	Year  int
	Err   error
}

func (e *StoreWriteError) Error() string {
	if e.Email == "" {
		return fmt.Sprintf("%s year %d failed (%v)", e.Op, e.Year, e.Err)
	}

	return fmt.Sprintf("%s %s failed (%v)", e.Op, e.Email, e.Err)
}

func (e *StoreWriteError) Unwrap() error {
	return e.Err
}

// IncompleteSyncError is returned at the end of a continue-on-error run in which one or more
// writes failed.
type IncompleteSyncError struct {
	Failed []string
	Errors []error
}

func (e *IncompleteSyncError) Error() string {
	return fmt.Sprintf("%d record(s) failed to sync: %s", len(e.Failed), strings.Join(e.Failed, ", "))
}

func (e *IncompleteSyncError) Unwrap() []error {
	return e.Errors
}
