package roster

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the user collection the roster is reconciled against. Implementations only need to
// make each individual call atomic.
type Store interface {
	Exists(ctx context.Context, email string) (bool, error)
	Insert(ctx context.Context, user NewUser) error
	Update(ctx context.Context, email string, profile Profile) error
	Purge(ctx context.Context, year int) (int64, error)
}

// Defaults are the values given to a newly created user in place of issued credentials.
type Defaults struct {
	PasswordHash string
	IssuedID     string
}

type Reconciler struct {
	Store           Store
	Defaults        Defaults
	ContinueOnError bool
	Log             *zap.Logger
}

type Report struct {
	RunID    uuid.UUID
	Purged   int64
	Inserted int
	Updated  int
	Skipped  int
	Failed   []string
}

// Reconcile upserts the mapped records by email, in order. With purge set, all the student
// documents for the selected years are deleted first.
//
// A failed write aborts the run unless ContinueOnError is set, in which case the failed emails
// are collected in the report and an *IncompleteSyncError is returned once every record has been
// attempted. Cancelling the context stops the run before the next record and returns ctx.Err().
func (r *Reconciler) Reconcile(ctx context.Context, mapped []UserRecord, cohorts []Cohort, purge bool) (*Report, error) {
	log := r.logger()
	report := Report{
		Failed: []string{},
	}

	if purge {
		for _, year := range Years(cohorts) {
			deleted, err := r.Store.Purge(ctx, year)
			if err != nil {
				return &report, &StoreWriteError{Op: "purge", Year: year, Err: err}
			}

			log.Info("purged student records", zap.Int("year", year), zap.Int64("deleted", deleted))
			report.Purged += deleted
		}
	}

	errs := []error{}
	for i, record := range mapped {
		// stop before the next record once the run is cancelled
		if err := ctx.Err(); err != nil {
			log.Warn("sync cancelled", zap.Int("remaining", len(mapped)-i))
			return &report, err
		}

		if err := r.upsert(ctx, record, &report); err != nil {
			if !r.ContinueOnError {
				return &report, err
			}

			log.Error("sync failed", zap.String("email", record.Email), zap.Error(err))
			report.Failed = append(report.Failed, record.Email)
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return &report, &IncompleteSyncError{
			Failed: report.Failed,
			Errors: errs,
		}
	}

	return &report, nil
}

func (r *Reconciler) upsert(ctx context.Context, record UserRecord, report *Report) error {
	email := record.Email

	exists, err := r.Store.Exists(ctx, email)
	if err != nil {
		return &StoreWriteError{Op: "lookup", Email: email, Year: record.Year, Err: err}
	}

	if exists {
		if err := r.Store.Update(ctx, email, record.Profile); err != nil {
			return &StoreWriteError{Op: "update", Email: email, Year: record.Year, Err: err}
		}

		report.Updated++
		r.logger().Debug("updated", zap.String("email", email))
		return nil
	}

	user := NewUser{
		UserRecord: record,
		Password:   r.Defaults.PasswordHash,
	}

	if user.IssuedID == "" {
		user.IssuedID = r.Defaults.IssuedID
	}

	if err := r.Store.Insert(ctx, user); err != nil {
		return &StoreWriteError{Op: "insert", Email: email, Year: record.Year, Err: err}
	}

	report.Inserted++
	r.logger().Debug("inserted", zap.String("email", email))

	return nil
}

func (r *Reconciler) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}

	return r.Log
}
