// Package prometheus instruments the crawl pipeline with Prometheus metrics.
package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/staffscout"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsNamespace prefixes every metric name.
const MetricsNamespace = "staffscout"

// OutcomeOK labels a fetch that returned a page.
const OutcomeOK = "ok"

// Metrics holds the Prometheus collectors for one process.
type Metrics struct {
	FetchTotal             *prometheus.CounterVec
	FetchDurationSeconds   prometheus.Histogram
	ContactsExtractedTotal prometheus.Counter
	PagesClassifiedTotal   *prometheus.CounterVec
}

// NewMetrics creates and registers the metrics on reg. A nil reg uses the
// default registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		FetchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "fetch_total",
			Help:      "Fetch attempts by outcome (ok or error code)",
		}, []string{"outcome"}),
		FetchDurationSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: MetricsNamespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of single fetch attempts",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
		ContactsExtractedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "contacts_extracted_total",
			Help:      "Contacts extracted from staff pages",
		}),
		PagesClassifiedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "pages_classified_total",
			Help:      "Fetched pages by class",
		}, []string{"class"}),
	}
}

// Ensure InstrumentedFetcher implements staffscout.Fetcher.
var _ staffscout.Fetcher = (*InstrumentedFetcher)(nil)

// InstrumentedFetcher counts and times fetches.
type InstrumentedFetcher struct {
	next    staffscout.Fetcher
	metrics *Metrics
}

// NewInstrumentedFetcher wraps next.
func NewInstrumentedFetcher(next staffscout.Fetcher, m *Metrics) *InstrumentedFetcher {
	return &InstrumentedFetcher{next: next, metrics: m}
}

// Fetch delegates to the wrapped fetcher and records the outcome.
func (f *InstrumentedFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.metrics.FetchDurationSeconds.Observe(time.Since(begin).Seconds())
		f.metrics.FetchTotal.WithLabelValues(outcome(ctx, err)).Inc()
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *InstrumentedFetcher) Close() error {
	return f.next.Close()
}

// outcome maps a fetch error to a bounded label value.
func outcome(ctx context.Context, err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case ctx.Err() != nil:
		return "canceled"
	default:
		return staffscout.ErrorCode(err)
	}
}

// Ensure InstrumentedExtractor implements staffscout.ContactExtractor.
var _ staffscout.ContactExtractor = (*InstrumentedExtractor)(nil)

// InstrumentedExtractor counts extracted contacts.
type InstrumentedExtractor struct {
	next    staffscout.ContactExtractor
	metrics *Metrics
}

// NewInstrumentedExtractor wraps next.
func NewInstrumentedExtractor(next staffscout.ContactExtractor, m *Metrics) *InstrumentedExtractor {
	return &InstrumentedExtractor{next: next, metrics: m}
}

// ExtractContacts delegates to the wrapped extractor.
func (e *InstrumentedExtractor) ExtractContacts(html, pageURL string) ([]*staffscout.Contact, error) {
	contacts, err := e.next.ExtractContacts(html, pageURL)
	e.metrics.ContactsExtractedTotal.Add(float64(len(contacts)))
	return contacts, err
}

// Ensure InstrumentedClassifier implements staffscout.PageClassifier.
var _ staffscout.PageClassifier = (*InstrumentedClassifier)(nil)

// InstrumentedClassifier counts pages per class.
type InstrumentedClassifier struct {
	next    staffscout.PageClassifier
	metrics *Metrics
}

// NewInstrumentedClassifier wraps next.
func NewInstrumentedClassifier(next staffscout.PageClassifier, m *Metrics) *InstrumentedClassifier {
	return &InstrumentedClassifier{next: next, metrics: m}
}

// Classify delegates to the wrapped classifier.
func (c *InstrumentedClassifier) Classify(url, title, text string) staffscout.PageClass {
	class := c.next.Classify(url, title, text)
	c.metrics.PagesClassifiedTotal.WithLabelValues(class.String()).Inc()
	return class
}
