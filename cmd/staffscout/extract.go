package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/fwojciec/staffscout"
	"github.com/fwojciec/staffscout/fs"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	html, pageURL, err := c.load(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffscout.ErrorMessage(err))
		return err
	}

	contacts, err := deps.Extractor.ExtractContacts(html, pageURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", staffscout.ErrorMessage(err))
		return err
	}

	if len(contacts) == 0 {
		fmt.Fprintln(deps.Stdout, "No contacts found.")
		return nil
	}

	tw := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	for _, ct := range contacts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ct.FullName, ct.Email, fs.TitleRole(ct.AcademicTitle, ct.Role), ct.FieldHint)
	}
	return tw.Flush()
}

// load returns the page HTML and the URL it is attributed to.
func (c *ExtractCmd) load(deps *Dependencies) (string, string, error) {
	if strings.HasPrefix(c.Source, "http://") || strings.HasPrefix(c.Source, "https://") {
		html, err := deps.Fetcher.Fetch(deps.Ctx, c.Source)
		return html, c.Source, err
	}

	data, err := os.ReadFile(c.Source)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", staffscout.Errorf(staffscout.ENOTFOUND, "file %q not found", c.Source)
		}
		return "", "", err
	}
	pageURL := c.URL
	if pageURL == "" {
		abs, err := filepath.Abs(c.Source)
		if err != nil {
			return "", "", err
		}
		pageURL = "file://" + filepath.ToSlash(abs)
	}
	return string(data), pageURL, nil
}
