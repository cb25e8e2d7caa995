// Package fs reads site lists from and writes contact exports to the local
// filesystem.
package fs

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/staffscout"
)

// ReadSites loads the sites to crawl from path. See ParseSites for the
// accepted formats.
func ReadSites(path string) ([]staffscout.Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, staffscout.Errorf(staffscout.ENOTFOUND, "site list %q not found", path)
		}
		return nil, err
	}
	return ParseSites(bytes.NewReader(data))
}

// ParseSites reads a CSV with a header naming Country, University and
// Website columns (case-insensitive, only Website required), or a plain
// list with one URL per line. Bare hosts get an https:// scheme. Blank lines and lines starting with # are skipped.
// Rows without a website are dropped; rows with an invalid one are an
// EINVALID error.
func ParseSites(r io.Reader) ([]staffscout.Site, error) {
	br := bufio.NewReader(r)
	first, err := br.Peek(4096)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, err
	}
	if isPlainList(first) {
		return parseURLList(br)
	}
	return parseSiteCSV(br)
}

// isPlainList reports whether the first line of data is a URL.
func isPlainList(data []byte) bool {
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") ||
			(!strings.ContainsAny(line, ",;") && strings.Contains(line, "."))
	}
	return true
}

// withScheme prefixes https:// to a bare host such as www.kit.edu.
func withScheme(raw string) string {
	if raw == "" || strings.Contains(raw, "://") {
		return raw
	}
	return "https://" + raw
}

func parseURLList(r io.Reader) ([]staffscout.Site, error) {
	sites := []staffscout.Site{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		site := staffscout.SiteFromURL(withScheme(line))
		if err := site.Validate(); err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return sites, nil
}

func parseSiteCSV(r io.Reader) ([]staffscout.Site, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []staffscout.Site{}, nil
		}
		return nil, staffscout.Errorf(staffscout.EINVALID, "invalid site list: %v", err)
	}
	cols := make(map[string]int)
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	websiteCol, ok := cols["website"]
	if !ok {
		return nil, staffscout.Errorf(staffscout.EINVALID, "site list must have a Website column")
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	sites := []staffscout.Site{}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, staffscout.Errorf(staffscout.EINVALID, "invalid site list: %v", err)
		}
		if websiteCol >= len(record) || strings.TrimSpace(record[websiteCol]) == "" {
			continue
		}

		site := staffscout.SiteFromURL(withScheme(field(record, "website")))
		if name := field(record, "university"); name != "" {
			site.Name = name
		}
		if country := field(record, "country"); country != "" {
			site.Country = country
		}
		if err := site.Validate(); err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, nil
}
