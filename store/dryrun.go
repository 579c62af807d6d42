package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/schoolops/student-sync/roster"
)

// DryRun passes lookups through to the underlying store but only logs writes. Users 'inserted'
// during the run are remembered so that a later row with the same email is reported as an
// update, as it would be for a real run. Purges are not simulated, so a dry run with --purge
// reports purged students that are in the roster as updates rather than inserts.
type DryRun struct {
	store    roster.Store
	log      *zap.Logger
	inserted map[string]bool
}

func NewDryRun(store roster.Store, log *zap.Logger) *DryRun {
	if log == nil {
		log = zap.NewNop()
	}

	return &DryRun{
		store:    store,
		log:      log,
		inserted: map[string]bool{},
	}
}

func (d *DryRun) Exists(ctx context.Context, email string) (bool, error) {
	if d.inserted[email] {
		return true, nil
	}

	return d.store.Exists(ctx, email)
}

func (d *DryRun) Insert(ctx context.Context, user roster.NewUser) error {
	d.log.Info("dryrun: insert", zap.String("email", user.Email), zap.Int("year", user.Year))
	d.inserted[user.Email] = true

	return nil
}

func (d *DryRun) Update(ctx context.Context, email string, profile roster.Profile) error {
	d.log.Info("dryrun: update", zap.String("email", email), zap.Int("year", profile.Year))

	return nil
}

func (d *DryRun) Purge(ctx context.Context, year int) (int64, error) {
	d.log.Info("dryrun: purge", zap.Int("year", year))

	return 0, nil
}
