package prometheus_test

import (
	"context"
	"testing"

	"github.com/fwojciec/staffscout"
	"github.com/fwojciec/staffscout/mock"
	scoutprom "github.com/fwojciec/staffscout/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentedFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("counts outcomes by error code", func(t *testing.T) {
		t.Parallel()

		m := scoutprom.NewMetrics(prometheus.NewRegistry())
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				if url == "https://www.kit.edu/missing" {
					return "", staffscout.Errorf(staffscout.ENOTFOUND, "HTTP 404")
				}
				return "<html></html>", nil
			},
		}
		f := scoutprom.NewInstrumentedFetcher(inner, m)

		_, err := f.Fetch(context.Background(), "https://www.kit.edu/staff")
		require.NoError(t, err)
		_, err = f.Fetch(context.Background(), "https://www.kit.edu/staff")
		require.NoError(t, err)
		_, err = f.Fetch(context.Background(), "https://www.kit.edu/missing")
		require.Error(t, err)

		assert.InDelta(t, 2, testutil.ToFloat64(m.FetchTotal.WithLabelValues(scoutprom.OutcomeOK)), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(m.FetchTotal.WithLabelValues(staffscout.ENOTFOUND)), 0)
		assert.Equal(t, 1, testutil.CollectAndCount(m.FetchDurationSeconds))
	})

	t.Run("labels canceled fetches", func(t *testing.T) {
		t.Parallel()

		m := scoutprom.NewMetrics(prometheus.NewRegistry())
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", ctx.Err()
			},
		}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := scoutprom.NewInstrumentedFetcher(inner, m).Fetch(ctx, "https://www.kit.edu")

		require.ErrorIs(t, err, context.Canceled)
		assert.InDelta(t, 1, testutil.ToFloat64(m.FetchTotal.WithLabelValues("canceled")), 0)
	})
}

func TestInstrumentedExtractor_ExtractContacts(t *testing.T) {
	t.Parallel()

	m := scoutprom.NewMetrics(prometheus.NewRegistry())
	inner := &mock.ContactExtractor{
		ExtractContactsFn: func(html, pageURL string) ([]*staffscout.Contact, error) {
			return []*staffscout.Contact{{Email: "a@kit.edu"}, {Email: "b@kit.edu"}}, nil
		},
	}
	e := scoutprom.NewInstrumentedExtractor(inner, m)

	contacts, err := e.ExtractContacts("", "https://www.kit.edu/staff")

	require.NoError(t, err)
	assert.Len(t, contacts, 2)
	assert.InDelta(t, 2, testutil.ToFloat64(m.ContactsExtractedTotal), 0)
}

func TestInstrumentedClassifier_Classify(t *testing.T) {
	t.Parallel()

	m := scoutprom.NewMetrics(prometheus.NewRegistry())
	inner := &mock.PageClassifier{
		ClassifyFn: func(url, title, text string) staffscout.PageClass {
			return staffscout.StaffPage
		},
	}
	c := scoutprom.NewInstrumentedClassifier(inner, m)

	assert.Equal(t, staffscout.StaffPage, c.Classify("https://www.kit.edu/staff", "", ""))
	assert.InDelta(t, 1, testutil.ToFloat64(m.PagesClassifiedTotal.WithLabelValues("staff")), 0)
}
