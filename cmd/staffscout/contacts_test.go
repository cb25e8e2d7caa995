package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/staffscout"
	main "github.com/fwojciec/staffscout/cmd/staffscout"
	"github.com/fwojciec/staffscout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists contacts of the latest run", func(t *testing.T) {
		t.Parallel()

		var gotFilter staffscout.ContactFilter
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runs: &mock.RunService{
				FindRunsFn: func(_ context.Context, filter staffscout.RunFilter) ([]*staffscout.Run, error) {
					assert.Equal(t, 1, filter.Limit)
					return []*staffscout.Run{{ID: "run-2"}}, nil
				},
			},
			Contacts: &mock.ContactService{
				FindContactsFn: func(_ context.Context, filter staffscout.ContactFilter) ([]*staffscout.ScoredContact, error) {
					gotFilter = filter
					return []*staffscout.ScoredContact{{
						Contact:      staffscout.Contact{FullName: "Ada Lovelace", Email: "ada@kit.edu", AcademicTitle: "Dr."},
						Site:         staffscout.Site{Name: "KIT"},
						Score:        1,
						Field:        "Computing",
						Publications: []string{"https://doi.org/10.1/x"},
					}}, nil
				},
			},
		}

		err := (&main.ContactsCmd{Country: "Germany", MinScore: 0.5}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, gotFilter.RunID)
		assert.Equal(t, "run-2", *gotFilter.RunID)
		require.NotNil(t, gotFilter.Country)
		assert.Equal(t, "Germany", *gotFilter.Country)
		require.NotNil(t, gotFilter.MinScore)
		assert.InDelta(t, 0.5, *gotFilter.MinScore, 1e-9)
		assert.Contains(t, stdout.String(), "1.00")
		assert.Contains(t, stdout.String(), "Ada Lovelace")
		assert.Contains(t, stdout.String(), "https://doi.org/10.1/x")
	})

	t.Run("unknown run is reported", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Runs: &mock.RunService{
				FindRunByIDFn: func(context.Context, string) (*staffscout.Run, error) {
					return nil, staffscout.Errorf(staffscout.ENOTFOUND, "run not found")
				},
			},
		}

		err := (&main.ContactsCmd{RunID: "missing"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, staffscout.ENOTFOUND, staffscout.ErrorCode(err))
		assert.Contains(t, stderr.String(), "run not found")
	})

	t.Run("no runs yet", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runs: &mock.RunService{
				FindRunsFn: func(context.Context, staffscout.RunFilter) ([]*staffscout.Run, error) {
					return nil, nil
				},
			},
		}

		err := (&main.ContactsCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No runs found")
	})
}

func TestRunsCmd_Run(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	started := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: &bytes.Buffer{},
		Runs: &mock.RunService{
			FindRunsFn: func(_ context.Context, filter staffscout.RunFilter) ([]*staffscout.Run, error) {
				assert.Equal(t, 20, filter.Limit)
				return []*staffscout.Run{
					{ID: "run-2", StartedAt: started, Sites: 3},
					{ID: "run-1", StartedAt: started, FinishedAt: started.Add(time.Hour), Sites: 5, Contacts: 42},
				}, nil
			},
		},
	}

	err := (&main.RunsCmd{Limit: 20}).Run(deps)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "run-2")
	assert.Contains(t, stdout.String(), "running")
	assert.Contains(t, stdout.String(), "5 sites  42 contacts")
}
