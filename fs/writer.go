package fs

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/fwojciec/staffscout"
)

// CSVHeader lists the export columns in order.
var CSVHeader = []string{
	"Full_name", "Email", "Title_role", "AI_Field", "AI_Score", "AI_Reason",
	"University", "Country", "University_Website_URL", "Source_URL", "Publications",
}

// Ensure CSVWriter implements staffscout.ContactWriter at compile time.
var _ staffscout.ContactWriter = (*CSVWriter)(nil)

// CSVWriter writes one semicolon-separated file per country into a
// directory. Each file is written to a temporary name and renamed into
// place, so readers never see a partial export.
type CSVWriter struct {
	baseDir string
}

// NewCSVWriter creates a CSVWriter that writes to baseDir.
func NewCSVWriter(baseDir string) *CSVWriter {
	return &CSVWriter{baseDir: baseDir}
}

// WriteContacts replaces the country files for the countries present in
// contacts. Within a country the first contact per email wins.
func (w *CSVWriter) WriteContacts(ctx context.Context, contacts []*staffscout.ScoredContact) error {
	if err := os.MkdirAll(w.baseDir, 0o755); err != nil {
		return err
	}

	byCountry := make(map[string][]*staffscout.ScoredContact)
	for _, c := range contacts {
		country := c.Site.Country
		if country == "" {
			country = "Unknown"
		}
		byCountry[country] = append(byCountry[country], c)
	}

	countries := make([]string, 0, len(byCountry))
	for country := range byCountry {
		countries = append(countries, country)
	}
	sort.Strings(countries)

	for _, country := range countries {
		if err := ctx.Err(); err != nil {
			return err
		}
		path, err := CountryPath(w.baseDir, country)
		if err != nil {
			return err
		}
		if err := writeCSV(path, byCountry[country]); err != nil {
			return err
		}
	}
	return nil
}

// CountryPath returns the export path for country inside baseDir.
func CountryPath(baseDir, country string) (string, error) {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, strings.TrimSpace(country))
	if name == "" || name == "." || name == ".." {
		return "", staffscout.Errorf(staffscout.EINVALID, "invalid country name %q", country)
	}
	return filepath.Join(baseDir, name+".csv"), nil
}

// writeCSV writes rows to path via a temporary file.
func writeCSV(path string, contacts []*staffscout.ScoredContact) (err error) {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	cw := csv.NewWriter(f)
	cw.Comma = ';'
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	seen := make(map[string]bool)
	for _, c := range contacts {
		if c.Email != "" {
			key := strings.ToLower(c.Email)
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		if err := cw.Write(Record(c)); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Record renders one contact as a row matching CSVHeader.
func Record(c *staffscout.ScoredContact) []string {
	return []string{
		c.FullName,
		c.Email,
		TitleRole(c.AcademicTitle, c.Role),
		c.Field,
		strconv.FormatFloat(c.Score, 'f', 2, 64),
		c.Reason,
		c.Site.Name,
		c.Site.Country,
		c.Site.URL,
		c.SourceURL,
		strings.Join(c.Publications, ", "),
	}
}

// TitleRole joins an academic title and a role with a comma, omitting
// whichever is empty.
func TitleRole(title, role string) string {
	switch {
	case title == "":
		return role
	case role == "":
		return title
	}
	return title + ", " + role
}
