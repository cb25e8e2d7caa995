package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/staffscout"
	"github.com/fwojciec/staffscout/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	delays := []time.Duration{time.Millisecond, time.Millisecond}

	t.Run("retries transient failures until success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(context.Context, string) (string, error) {
			calls++
			if calls < 3 {
				return "", staffscout.Errorf(staffscout.EUNAVAILABLE, "status 503")
			}
			return "<html></html>", nil
		}

		html, err := crawl.FetchWithRetryDelays(context.Background(), "https://www.kit.edu", fetch, nil, delays)

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after the last attempt", func(t *testing.T) {
		t.Parallel()

		calls := 0
		var logged []string
		fetch := func(context.Context, string) (string, error) {
			calls++
			return "", staffscout.Errorf(staffscout.EUNAVAILABLE, "timeout")
		}
		logf := func(format string, _ ...any) { logged = append(logged, format) }

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://www.kit.edu", fetch, logf, delays)

		assert.Equal(t, staffscout.EUNAVAILABLE, staffscout.ErrorCode(err))
		assert.Equal(t, 3, calls)
		assert.Len(t, logged, 2)
	})

	t.Run("does not retry permanent failures", func(t *testing.T) {
		t.Parallel()

		for _, code := range []string{staffscout.ENOTFOUND, staffscout.EUNSUPPORTED, staffscout.EINVALID} {
			calls := 0
			fetch := func(context.Context, string) (string, error) {
				calls++
				return "", staffscout.Errorf(code, "permanent")
			}

			_, err := crawl.FetchWithRetryDelays(context.Background(), "https://www.kit.edu", fetch, nil, delays)

			assert.Equal(t, code, staffscout.ErrorCode(err))
			assert.Equal(t, 1, calls, "code %s", code)
		}
	})

	t.Run("does not retry plain errors", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(context.Context, string) (string, error) {
			calls++
			return "", errors.New("boom")
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://www.kit.edu", fetch, nil, delays)

		assert.EqualError(t, err, "boom")
		assert.Equal(t, 1, calls)
	})

	t.Run("stops waiting when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(context.Context, string) (string, error) {
			cancel()
			return "", staffscout.Errorf(staffscout.EUNAVAILABLE, "timeout")
		}

		_, err := crawl.FetchWithRetryDelays(ctx, "https://www.kit.edu", fetch, nil, []time.Duration{time.Hour})

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDefaultRetryDelays_AllowThreeAttempts(t *testing.T) {
	t.Parallel()

	delays := crawl.DefaultRetryDelays()

	require.Len(t, delays, 2)
	assert.Less(t, delays[0], delays[1])
}
