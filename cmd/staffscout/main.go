package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/staffscout"
	"github.com/fwojciec/staffscout/crawl"
	"github.com/fwojciec/staffscout/crossref"
	"github.com/fwojciec/staffscout/fs"
	"github.com/fwojciec/staffscout/gemini"
	"github.com/fwojciec/staffscout/goquery"
	scouthttp "github.com/fwojciec/staffscout/http"
	"github.com/fwojciec/staffscout/keyword"
	scoutprom "github.com/fwojciec/staffscout/prometheus"
	"github.com/fwojciec/staffscout/rod"
	scoutslog "github.com/fwojciec/staffscout/slog"
	"github.com/fwojciec/staffscout/sqlite"
	"github.com/fwojciec/staffscout/yaml"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RunService     staffscout.RunService
	ContactService staffscout.ContactService

	// HTTPClient is shared by the sitemap suggester and the Crossref
	// enricher. Defaults to a client with a 20s timeout.
	HTTPClient *http.Client

	// closers run in reverse order on Close.
	closers []func() error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var errs []error
	for i := len(m.closers) - 1; i >= 0; i-- {
		errs = append(errs, m.closers[i]())
	}
	m.closers = nil
	if m.DB != nil {
		errs = append(errs, m.DB.Close())
	}
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("staffscout"),
		kong.Description("Crawl university websites for academic staff contacts."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'staffscout --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd = strings.Fields(kongCtx.Command())[0]

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set STAFFSCOUT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.RunService = sqlite.NewRunService(m.DB)
	m.ContactService = sqlite.NewContactService(m.DB)
	deps.Runs = m.RunService
	deps.Contacts = m.ContactService

	if m.HTTPClient == nil {
		m.HTTPClient = &http.Client{Timeout: 20 * time.Second}
	}

	vocabulary := staffscout.DefaultVocabulary()
	if cli.Vocab != "" {
		vocabulary, err = yaml.LoadVocabulary(cli.Vocab, vocabulary)
		if err != nil {
			return fmt.Errorf("failed to load vocabulary: %w", err)
		}
	}

	switch cmd {
	case "crawl":
		return m.runCrawl(ctx, kongCtx, cli, deps, vocabulary)
	case "extract":
		fetcher := scouthttp.NewFetcher(scouthttp.WithPoliteDelay(0))
		m.closers = append(m.closers, fetcher.Close)
		deps.Fetcher = scoutslog.NewLoggingFetcher(fetcher, deps.Logger)
		deps.Extractor = scoutslog.NewLoggingContactExtractor(goquery.NewExtractor(vocabulary), deps.Logger)
	}

	return kongCtx.Run(deps)
}

// runCrawl wires the crawler and the post-crawl pipeline, then runs the
// crawl command.
func (m *Main) runCrawl(ctx context.Context, kongCtx *kong.Context, cli *CLI, deps *Dependencies, v *staffscout.Vocabulary) error {
	c := &cli.Crawl

	var metrics *scoutprom.Metrics
	if c.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics = scoutprom.NewMetrics(reg)
		stop, err := serveMetrics(c.MetricsAddr, reg, deps.Logger)
		if err != nil {
			return fmt.Errorf("failed to serve metrics: %w", err)
		}
		m.closers = append(m.closers, stop)
	}

	var fetcher staffscout.Fetcher
	if c.Browser {
		f, err := rod.NewFetcher(rod.WithUserAgents(v.UserAgents))
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = f
	} else {
		fetcher = scouthttp.NewFetcher(scouthttp.WithUserAgents(v.UserAgents))
	}
	m.closers = append(m.closers, fetcher.Close)
	fetcher = scoutslog.NewLoggingFetcher(fetcher, deps.Logger)

	parser := goquery.NewParser()
	var extractor staffscout.ContactExtractor = scoutslog.NewLoggingContactExtractor(goquery.NewExtractor(v), deps.Logger)
	var classifier staffscout.PageClassifier = crawl.NewClassifier(v)
	if metrics != nil {
		fetcher = scoutprom.NewInstrumentedFetcher(fetcher, metrics)
		extractor = scoutprom.NewInstrumentedExtractor(extractor, metrics)
		classifier = scoutprom.NewInstrumentedClassifier(classifier, metrics)
	}

	var (
		filter    staffscout.RelevanceFilter
		suggester staffscout.LinkSuggester
		scorer    staffscout.ContactScorer
	)
	if c.AI {
		models, err := newGenerator(ctx, deps.Stderr)
		if err != nil {
			return err
		}
		counter, err := gemini.NewTokenCounter(gemini.DefaultModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}
		s := gemini.NewScorer(models, v)
		s.Counter = counter
		filter = gemini.NewRelevanceFilter(models, v)
		suggester = gemini.NewLinkSuggester(models, parser, v)
		scorer = s
	} else {
		if c.KeywordFilter {
			filter = keyword.NewRelevanceFilter(v)
		}
		suggester = scouthttp.NewSitemapSuggester(m.HTTPClient, v)
		scorer = keyword.NewScorer(v)
	}
	if filter != nil {
		filter = scoutslog.NewLoggingRelevanceFilter(filter, deps.Logger)
	}

	deps.Crawler = &crawl.Crawler{
		Fetcher:     fetcher,
		Parser:      parser,
		Classifier:  classifier,
		Extractor:   extractor,
		Policy:      crawl.NewPolicy(v),
		Filter:      filter,
		Suggester:   scoutslog.NewLoggingLinkSuggester(suggester, deps.Logger),
		RateLimiter: crawl.NewDomainLimiter(c.RPS),
		Logger:      deps.Logger,
		MaxDepth:    c.Depth,
		MaxPages:    c.MaxPages,
	}

	pipeline := &Pipeline{
		Scorer:   scoutslog.NewLoggingContactScorer(scorer, deps.Logger),
		MinScore: c.MinScore,
		Writers:  []staffscout.ContactWriter{fs.NewCSVWriter(c.Out)},
		Logger:   deps.Logger,
	}
	if !c.NoEnrich {
		enricher := crossref.NewEnricher(m.HTTPClient)
		enricher.Mailto = os.Getenv("STAFFSCOUT_MAILTO")
		pipeline.Enricher = scoutslog.NewLoggingPublicationEnricher(enricher, deps.Logger)
	}
	deps.Pipeline = pipeline

	return kongCtx.Run(deps)
}

// newGenerator connects to the Gemini API using GEMINI_API_KEY.
func newGenerator(ctx context.Context, stderr io.Writer) (gemini.Generator, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return client.Models, nil
}

// serveMetrics exposes reg on addr under /metrics until the returned stop
// function is called.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) (func() error, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "err", err)
		}
	}()
	logger.Info("serving metrics", "addr", ln.Addr().String())

	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}, nil
}

func defaultDBPath() string {
	if path := os.Getenv("STAFFSCOUT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "staffscout.db"
	}
	return filepath.Join(home, ".staffscout", "staffscout.db")
}
