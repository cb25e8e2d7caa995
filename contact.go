package staffscout

import "strings"

// Contact is a person record reconstructed from a staff page.
// Every field defaults to the empty string; consumers never see missing values.
type Contact struct {
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	AcademicTitle string `json:"academicTitle"`
	Role          string `json:"role"`
	FieldHint     string `json:"fieldHint"`
	PageText      string `json:"pageText"`
	SourceURL     string `json:"sourceUrl"`
}

// Validate returns an error if the contact has no identifying field.
func (c *Contact) Validate() error {
	if c.FullName == "" && c.Email == "" {
		return Errorf(EINVALID, "contact name or email required")
	}
	return nil
}

// Key returns the deduplication key: lowercased email and name.
func (c *Contact) Key() string {
	return strings.ToLower(c.Email) + "\x00" + strings.ToLower(c.FullName)
}

// metadata returns the descriptive text used to rank duplicate records.
func (c *Contact) metadata() string {
	var parts []string
	for _, p := range []string{c.AcademicTitle, c.Role, c.FieldHint} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// richerThan reports whether c carries more metadata than other.
func (c *Contact) richerThan(other *Contact) bool {
	if a, b := len(c.metadata()), len(other.metadata()); a != b {
		return a > b
	}
	return len(c.PageText) > len(other.PageText)
}

// DedupContacts collapses contacts sharing a Key, keeping the richer record.
// Contacts without a name or email are dropped. The order of first
// occurrence is preserved.
func DedupContacts(contacts []*Contact) []*Contact {
	index := make(map[string]int, len(contacts))
	out := make([]*Contact, 0, len(contacts))
	for _, c := range contacts {
		if c == nil || c.Validate() != nil {
			continue
		}
		key := c.Key()
		if i, ok := index[key]; ok {
			if c.richerThan(out[i]) {
				out[i] = c
			}
			continue
		}
		index[key] = len(out)
		out = append(out, c)
	}
	return out
}
