package roster

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Run holds everything a single sync needs: who is running it, what was selected and when.
type Run struct {
	ID       uuid.UUID
	Operator string
	Cohorts  []Cohort
	Purge    bool
	IssuedID string
	Now      func() time.Time
	Log      *zap.Logger
}

func NewRun(operator string, cohorts []Cohort, purge bool, log *zap.Logger) *Run {
	if log == nil {
		log = zap.NewNop()
	}

	id := uuid.New()

	return &Run{
		ID:       id,
		Operator: operator,
		Cohorts:  cohorts,
		Purge:    purge,
		Now:      time.Now,
		Log:      log.With(zap.String("run", id.String())),
	}
}

// Prepare filters the rows and maps the admissible ones. Rows that cannot be mapped are logged
// and skipped, and returned as the list of errors.
func (r *Run) Prepare(rows []Row) ([]UserRecord, []error) {
	filtered := Filter(rows)
	now := r.now()

	r.log().Info("filtered roster", zap.Int("read", len(rows)), zap.Int("admissible", filtered.Count))

	mapped := make([]UserRecord, 0, filtered.Count)
	skipped := []error{}

	for _, row := range filtered.Records {
		record, err := Map(row, r.Operator, now, r.IssuedID)
		if err != nil {
			r.log().Warn("skipping row", zap.String("sheet", row.Sheet), zap.Int("row", row.Index), zap.Error(err))
			skipped = append(skipped, err)
			continue
		}

		mapped = append(mapped, record)
	}

	return mapped, skipped
}

// Sync runs the whole pipeline against the reconciler's store.
func (r *Run) Sync(ctx context.Context, reconciler *Reconciler, rows []Row) (*Report, error) {
	mapped, skipped := r.Prepare(rows)

	report, err := reconciler.Reconcile(ctx, mapped, r.Cohorts, r.Purge)
	if report != nil {
		report.RunID = r.ID
		report.Skipped = len(skipped)
	}

	return report, err
}

func (r *Run) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}

	return r.Now()
}

func (r *Run) log() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}

	return r.Log
}
