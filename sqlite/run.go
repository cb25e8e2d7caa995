package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/staffscout"
	"github.com/google/uuid"
)

// stampLayout is how run timestamps are stored.
const stampLayout = time.RFC3339

// Compile-time interface verification.
var _ staffscout.RunService = (*RunService)(nil)

// RunService implements staffscout.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun creates a new run.
func (s *RunService) CreateRun(ctx context.Context, run *staffscout.Run) error {
	run.ID = uuid.New().String()
	run.StartedAt = time.Now().UTC()
	run.FinishedAt = time.Time{}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, sites, contacts, started_at)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.Sites, run.Contacts, run.StartedAt.Format(stampLayout))

	return err
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*staffscout.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, sites, contacts, started_at, finished_at
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, staffscout.Errorf(staffscout.ENOTFOUND, "run not found")
	}
	return run, err
}

// FindRuns retrieves runs, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter staffscout.RunFilter) ([]*staffscout.Run, error) {
	q := newSelect("SELECT id, sites, contacts, started_at, finished_at FROM runs")
	q.orderBy("started_at DESC, rowid DESC")
	q.page(filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, q.String(), q.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []*staffscout.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// FinishRun stamps the finish time and contact count of a run.
func (s *RunService) FinishRun(ctx context.Context, id string, contacts int) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE runs SET finished_at = ?, contacts = ? WHERE id = ?
	`, time.Now().UTC().Format(stampLayout), contacts, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return staffscout.Errorf(staffscout.ENOTFOUND, "run not found")
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*staffscout.Run, error) {
	var run staffscout.Run
	var startedAt, finishedAt string
	if err := row.Scan(&run.ID, &run.Sites, &run.Contacts, &startedAt, &finishedAt); err != nil {
		return nil, err
	}

	var err error
	if run.StartedAt, err = time.Parse(stampLayout, startedAt); err != nil {
		return nil, staffscout.Errorf(staffscout.EINTERNAL, "run %s: bad start time %q", run.ID, startedAt)
	}
	if finishedAt == "" {
		return &run, nil
	}
	if run.FinishedAt, err = time.Parse(stampLayout, finishedAt); err != nil {
		return nil, staffscout.Errorf(staffscout.EINTERNAL, "run %s: bad finish time %q", run.ID, finishedAt)
	}
	return &run, nil
}
