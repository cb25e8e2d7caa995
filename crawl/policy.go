package crawl

import (
	"net"
	"net/url"
	"strings"

	"github.com/fwojciec/staffscout"
)

// RootDomain returns the last two labels of host, lowercased and without a
// port. IP addresses and single-label hosts are returned whole.
func RootDomain(host string) string {
	host = strings.ToLower(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimSuffix(host, ".")
	if net.ParseIP(strings.Trim(host, "[]")) != nil {
		return host
	}
	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return host
	}
	return strings.Join(labels[len(labels)-2:], ".")
}

// SameSite reports whether two URLs share a root domain, so that
// department subdomains belong to the university site.
func SameSite(root, candidate string) bool {
	r, err := url.Parse(root)
	if err != nil || r.Hostname() == "" {
		return false
	}
	c, err := url.Parse(candidate)
	if err != nil || c.Hostname() == "" {
		return false
	}
	return RootDomain(r.Hostname()) == RootDomain(c.Hostname())
}

// NormalizeURL resolves ref against base and rejects non-http(s) targets.
// The fragment is dropped and an empty path becomes "/".
func NormalizeURL(base *url.URL, ref string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return "", false
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return "", false
	}
	u.Fragment = ""
	u.RawFragment = ""
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), true
}

// Policy decides which discovered URLs the crawler may follow.
type Policy struct {
	Vocabulary *staffscout.Vocabulary
}

// NewPolicy creates a Policy over the given vocabulary.
func NewPolicy(v *staffscout.Vocabulary) *Policy {
	return &Policy{Vocabulary: v}
}

// Allowed reports whether rawURL is free of denylisted path patterns and
// does not point at a static asset.
func (p *Policy) Allowed(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, pattern := range p.Vocabulary.ExcludeURLPatterns {
		if strings.Contains(lower, strings.ToLower(pattern)) {
			return false
		}
	}
	path := lower
	if u, err := url.Parse(lower); err == nil {
		path = u.Path
	}
	for _, ext := range p.Vocabulary.ExcludeExtensions {
		if strings.HasSuffix(path, ext) {
			return false
		}
	}
	return true
}

// Bypass reports whether rawURL carries a staff keyword strong enough to
// skip the relevance filter.
func (p *Policy) Bypass(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, kw := range p.Vocabulary.StaffBypassKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// Priority ranks a link for the frontier: staff-looking links first, then
// department hubs, then everything else.
func (p *Policy) Priority(rawURL, anchorText string) int {
	lowerURL := pathWithSlash(rawURL)
	lowerText := strings.ToLower(anchorText)
	if containsAny(lowerURL, p.Vocabulary.StaffKeywords) || containsAny(lowerText, p.Vocabulary.StaffKeywords) {
		return staffscout.PriorityStaff
	}
	if containsAny(lowerURL, p.Vocabulary.DepartmentKeywords) || containsAny(lowerText, p.Vocabulary.DepartmentKeywords) {
		return staffscout.PriorityHub
	}
	return staffscout.PriorityOther
}

// pathWithSlash lowercases and unescapes rawURL without its query and
// ensures it ends with a slash, so that "/staff/" matches ".../staff".
func pathWithSlash(rawURL string) string {
	s := strings.ToLower(rawURL)
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	if dec, err := url.PathUnescape(s); err == nil {
		s = dec
	}
	if !strings.HasSuffix(s, "/") {
		s += "/"
	}
	return s
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(s, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
