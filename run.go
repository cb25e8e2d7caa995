package staffscout

import (
	"context"
	"time"
)

// Run records one invocation of the crawl pipeline.
type Run struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Sites      int       `json:"sites"`
	Contacts   int       `json:"contacts"`
}

// RunService represents a service for managing pipeline runs.
type RunService interface {
	// CreateRun creates a new run and assigns its ID and start time.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// FinishRun stamps the finish time and contact count of a run.
	// Returns ENOTFOUND if the run does not exist.
	FinishRun(ctx context.Context, id string, contacts int) error
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ContactService represents a service for storing scored contacts.
type ContactService interface {
	// CreateContacts stores contacts under a run.
	// Returns ENOTFOUND if the run does not exist.
	CreateContacts(ctx context.Context, runID string, contacts []*ScoredContact) error

	// FindContacts retrieves contacts matching the filter.
	FindContacts(ctx context.Context, filter ContactFilter) ([]*ScoredContact, error)
}

// ContactFilter represents a filter for FindContacts.
type ContactFilter struct {
	RunID    *string  `json:"runId"`
	Country  *string  `json:"country"`
	MinScore *float64 `json:"minScore"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
