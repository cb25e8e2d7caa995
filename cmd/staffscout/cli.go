package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/staffscout"
	"github.com/fwojciec/staffscout/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Runs      staffscout.RunService
	Contacts  staffscout.ContactService
	Crawler   *crawl.Crawler
	Pipeline  *Pipeline
	Fetcher   staffscout.Fetcher
	Extractor staffscout.ContactExtractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log debug output to stderr"`
	DB      string `help:"Database path (default: $STAFFSCOUT_DB or ~/.staffscout/staffscout.db)"`
	Vocab   string `help:"YAML file overriding keyword tables"`

	Crawl    CrawlCmd    `cmd:"" help:"Crawl sites and export scored contacts"`
	Extract  ExtractCmd  `cmd:"" help:"Print contacts extracted from one page"`
	Contacts ContactsCmd `cmd:"" help:"List stored contacts"`
	Runs     RunsCmd     `cmd:"" help:"List crawl runs"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URLs          []string `arg:"" optional:"" name:"url" help:"Site root URLs"`
	Sites         string   `short:"s" help:"CSV (Country,University,Website) or plain URL list"`
	Depth         int      `short:"d" default:"3" help:"Maximum link depth from the root page"`
	MaxPages      int      `short:"m" default:"200" help:"Maximum pages fetched per site"`
	Parallel      int      `short:"p" default:"5" help:"Sites crawled at once"`
	RPS           float64  `default:"2" help:"Requests per second per site (0 for no limit)"`
	Browser       bool     `help:"Render pages in headless Chrome"`
	AI            bool     `help:"Use Gemini for relevance, link suggestions and scoring (needs GEMINI_API_KEY)"`
	KeywordFilter bool     `help:"Skip staff pages without research keywords"`
	MinScore      float64  `default:"0" help:"Drop contacts scoring below this"`
	NoEnrich      bool     `help:"Skip Crossref publication lookup"`
	Out           string   `short:"o" default:"results" help:"Directory for per-country CSV files"`
	MetricsAddr   string   `help:"Serve Prometheus metrics on this address"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Source string `arg:"" help:"Page URL or local HTML file"`
	URL    string `help:"Page URL recorded for a local file"`
}

// ContactsCmd is the "contacts" subcommand.
type ContactsCmd struct {
	RunID    string  `name:"run" help:"Run ID (default: latest run)"`
	Country  string  `help:"Only contacts from this country"`
	MinScore float64 `default:"0" help:"Only contacts scoring at least this"`
	Limit    int     `default:"0" help:"Maximum contacts to list (0 for all)"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Limit int `default:"20" help:"Maximum runs to list"`
}
