package sqlite

import (
	"context"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/staffscout"
)

// Compile-time interface verification.
var _ staffscout.ContactService = (*ContactService)(nil)

// ContactService implements staffscout.ContactService using SQLite.
type ContactService struct {
	db *DB
}

// NewContactService creates a new ContactService.
func NewContactService(db *DB) *ContactService {
	return &ContactService{db: db}
}

// contactHash identifies a contact within a run by its dedup key.
func contactHash(c *staffscout.Contact) string {
	return strconv.FormatUint(xxhash.Sum64String(c.Key()), 16)
}

// CreateContacts stores contacts under a run in one transaction. A contact
// already stored for the run under the same dedup key is kept.
func (s *ContactService) CreateContacts(ctx context.Context, runID string, contacts []*staffscout.ScoredContact) error {
	for _, c := range contacts {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs WHERE id = ?", runID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return staffscout.Errorf(staffscout.ENOTFOUND, "run not found")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO contacts (
			run_id, contact_hash, full_name, email, academic_title, role, field_hint,
			source_url, site_name, country, site_url, score, field, reason, publications
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range contacts {
		if _, err := stmt.ExecContext(ctx,
			runID, contactHash(&c.Contact), c.FullName, c.Email, c.AcademicTitle, c.Role, c.FieldHint,
			c.SourceURL, c.Site.Name, c.Site.Country, c.Site.URL, c.Score, c.Field, c.Reason,
			strings.Join(c.Publications, "\n"),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// FindContacts retrieves contacts matching the filter, best score first.
func (s *ContactService) FindContacts(ctx context.Context, filter staffscout.ContactFilter) ([]*staffscout.ScoredContact, error) {
	q := newSelect(`SELECT full_name, email, academic_title, role, field_hint, source_url,
		site_name, country, site_url, score, field, reason, publications
		FROM contacts`)
	if filter.RunID != nil {
		q.filter("run_id = ?", *filter.RunID)
	}
	if filter.Country != nil {
		q.filter("country = ?", *filter.Country)
	}
	if filter.MinScore != nil {
		q.filter("score >= ?", *filter.MinScore)
	}
	q.orderBy("score DESC, id ASC")
	q.page(filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, q.String(), q.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	contacts := []*staffscout.ScoredContact{}
	for rows.Next() {
		var c staffscout.ScoredContact
		var publications string
		if err := rows.Scan(&c.FullName, &c.Email, &c.AcademicTitle, &c.Role, &c.FieldHint, &c.SourceURL,
			&c.Site.Name, &c.Site.Country, &c.Site.URL, &c.Score, &c.Field, &c.Reason, &publications); err != nil {
			return nil, err
		}
		if publications != "" {
			c.Publications = strings.Split(publications, "\n")
		}
		contacts = append(contacts, &c)
	}
	return contacts, rows.Err()
}

// Compile-time interface verification.
var _ staffscout.ContactWriter = (*RunWriter)(nil)

// RunWriter stores written contacts under one run.
type RunWriter struct {
	contacts staffscout.ContactService
	runID    string
}

// NewRunWriter creates a ContactWriter bound to runID.
func NewRunWriter(contacts staffscout.ContactService, runID string) *RunWriter {
	return &RunWriter{contacts: contacts, runID: runID}
}

// WriteContacts stores contacts under the writer's run.
func (w *RunWriter) WriteContacts(ctx context.Context, contacts []*staffscout.ScoredContact) error {
	return w.contacts.CreateContacts(ctx, w.runID, contacts)
}
