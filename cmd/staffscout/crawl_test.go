package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/staffscout"
	main "github.com/fwojciec/staffscout/cmd/staffscout"
	"github.com/fwojciec/staffscout/crawl"
	"github.com/fwojciec/staffscout/goquery"
	"github.com/fwojciec/staffscout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// crawlDeps wires a crawler that serves staffPage for every URL, and
// records the run bookkeeping.
type crawlDeps struct {
	*main.Dependencies

	created  *staffscout.Run
	finished int
	stored   []*staffscout.ScoredContact
}

func newCrawlDeps(t *testing.T) *crawlDeps {
	t.Helper()
	v := staffscout.DefaultVocabulary()
	d := &crawlDeps{finished: -1}
	d.Dependencies = &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
		Runs: &mock.RunService{
			CreateRunFn: func(_ context.Context, run *staffscout.Run) error {
				run.ID = "run-1"
				d.created = run
				return nil
			},
			FinishRunFn: func(_ context.Context, id string, contacts int) error {
				d.finished = contacts
				return nil
			},
		},
		Contacts: &mock.ContactService{
			CreateContactsFn: func(_ context.Context, runID string, contacts []*staffscout.ScoredContact) error {
				d.stored = append(d.stored, contacts...)
				return nil
			},
		},
		Crawler: &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(context.Context, string) (string, error) {
					return staffPage, nil
				},
			},
			Parser:      goquery.NewParser(),
			Classifier:  crawl.NewClassifier(v),
			Extractor:   goquery.NewExtractor(v),
			MaxDepth:    1,
			BatchPause:  time.Millisecond,
			RetryDelays: []time.Duration{},
		},
		Pipeline: &main.Pipeline{},
	}
	return d
}

func TestCrawlCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("crawls URLs and records the run", func(t *testing.T) {
		t.Parallel()

		d := newCrawlDeps(t)
		cmd := &main.CrawlCmd{URLs: []string{"https://www.kit.edu/staff/"}, Parallel: 1}

		err := cmd.Run(d.Dependencies)

		require.NoError(t, err)
		require.NotNil(t, d.created)
		assert.Equal(t, 1, d.created.Sites)
		assert.Equal(t, 1, d.finished)
		require.Len(t, d.stored, 1)
		assert.Equal(t, "john.smith@uni.edu", d.stored[0].Email)
		assert.Equal(t, "Kit", d.stored[0].Site.Name)
		assert.Contains(t, d.Stdout.(*bytes.Buffer).String(), "Kit: 1 contacts")
		assert.Contains(t, d.Stdout.(*bytes.Buffer).String(), "Saved 1 contacts (run run-1)")
	})

	t.Run("reads sites from a file and drops repeats", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "sites.csv")
		require.NoError(t, os.WriteFile(path, []byte(
			"Country,University,Website\nGermany,KIT,https://www.kit.edu/staff/\n"), 0o644))
		d := newCrawlDeps(t)
		cmd := &main.CrawlCmd{URLs: []string{"https://www.kit.edu/staff/"}, Sites: path}

		err := cmd.Run(d.Dependencies)

		require.NoError(t, err)
		assert.Equal(t, 1, d.created.Sites)
	})

	t.Run("no sites is invalid", func(t *testing.T) {
		t.Parallel()

		d := newCrawlDeps(t)

		err := (&main.CrawlCmd{}).Run(d.Dependencies)

		require.Error(t, err)
		assert.Equal(t, staffscout.EINVALID, staffscout.ErrorCode(err))
		assert.Nil(t, d.created)
	})

	t.Run("only invalid URLs reports the first problem", func(t *testing.T) {
		t.Parallel()

		d := newCrawlDeps(t)

		err := (&main.CrawlCmd{URLs: []string{"ftp://example.org"}}).Run(d.Dependencies)

		require.Error(t, err)
		assert.Contains(t, d.Stderr.(*bytes.Buffer).String(), "invalid site URL")
	})

	t.Run("interrupted crawl still saves partial results", func(t *testing.T) {
		t.Parallel()

		d := newCrawlDeps(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		d.Ctx = ctx
		d.Pipeline.Enricher = &mock.PublicationEnricher{
			EnrichFn: func(context.Context, string) ([]string, error) {
				t.Error("enricher must not run after interruption")
				return nil, nil
			},
		}

		err := (&main.CrawlCmd{URLs: []string{"https://www.kit.edu/staff/"}}).Run(d.Dependencies)

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, d.finished)
		assert.Contains(t, d.Stderr.(*bytes.Buffer).String(), "interrupted")
	})
}
