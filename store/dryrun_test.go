package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolops/student-sync/roster"
)

type fixed struct {
	emails map[string]bool
	writes int
}

func (f *fixed) Exists(ctx context.Context, email string) (bool, error) {
	return f.emails[email], nil
}

func (f *fixed) Insert(ctx context.Context, user roster.NewUser) error {
	f.writes++
	return nil
}

func (f *fixed) Update(ctx context.Context, email string, profile roster.Profile) error {
	f.writes++
	return nil
}

func (f *fixed) Purge(ctx context.Context, year int) (int64, error) {
	f.writes++
	return 10, nil
}

func TestDryRun(t *testing.T) {
	underlying := fixed{emails: map[string]bool{"old@x.com": true}}
	dryrun := NewDryRun(&underlying, nil)

	r := roster.Reconciler{
		Store:    dryrun,
		Defaults: roster.Defaults{PasswordHash: "hash", IssuedID: "N00000"},
	}

	mapped := []roster.UserRecord{
		{Profile: roster.Profile{Email: "old@x.com", Year: 9}},
		{Profile: roster.Profile{Email: "new@x.com", Year: 9}},
		{Profile: roster.Profile{Email: "new@x.com", Year: 9}},
	}

	cohort, err := roster.ParseCohort("Year 9")
	require.NoError(t, err)

	report, err := r.Reconcile(context.Background(), mapped, []roster.Cohort{cohort}, true)
	require.NoError(t, err)

	assert.Equal(t, 0, underlying.writes)
	assert.Equal(t, int64(0), report.Purged)
	assert.Equal(t, 1, report.Inserted)
	assert.Equal(t, 2, report.Updated)
}
