package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/staffscout"
	"github.com/fwojciec/staffscout/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunService(t *testing.T) {
	t.Parallel()

	t.Run("creates and finds a run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(MustOpenDB(t))
		ctx := context.Background()

		run := &staffscout.Run{Sites: 3}
		require.NoError(t, svc.CreateRun(ctx, run))
		assert.NotEmpty(t, run.ID)
		assert.False(t, run.StartedAt.IsZero())

		got, err := svc.FindRunByID(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, got.Sites)
		assert.True(t, got.FinishedAt.IsZero())
	})

	t.Run("finishes a run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(MustOpenDB(t))
		ctx := context.Background()
		run := &staffscout.Run{Sites: 1}
		require.NoError(t, svc.CreateRun(ctx, run))

		require.NoError(t, svc.FinishRun(ctx, run.ID, 42))

		got, err := svc.FindRunByID(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, 42, got.Contacts)
		assert.False(t, got.FinishedAt.IsZero())
	})

	t.Run("reports unknown runs as not found", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(MustOpenDB(t))
		ctx := context.Background()

		_, err := svc.FindRunByID(ctx, "missing")
		assert.Equal(t, staffscout.ENOTFOUND, staffscout.ErrorCode(err))

		err = svc.FinishRun(ctx, "missing", 1)
		assert.Equal(t, staffscout.ENOTFOUND, staffscout.ErrorCode(err))
	})

	t.Run("lists runs newest first with pagination", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(MustOpenDB(t))
		ctx := context.Background()
		var ids []string
		for i := range 3 {
			run := &staffscout.Run{Sites: i}
			require.NoError(t, svc.CreateRun(ctx, run))
			ids = append(ids, run.ID)
		}

		runs, err := svc.FindRuns(ctx, staffscout.RunFilter{Limit: 2})
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, ids[2], runs[0].ID)
		assert.Equal(t, ids[1], runs[1].ID)

		runs, err = svc.FindRuns(ctx, staffscout.RunFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, ids[0], runs[0].ID)

		runs, err = svc.FindRuns(ctx, staffscout.RunFilter{Offset: 1})
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, ids[1], runs[0].ID)
	})
}
