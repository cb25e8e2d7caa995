package mock

import (
	"context"

	"github.com/fwojciec/staffscout"
)

var _ staffscout.RunService = (*RunService)(nil)

// RunService is a mock implementation of staffscout.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *staffscout.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*staffscout.Run, error)
	FindRunsFn    func(ctx context.Context, filter staffscout.RunFilter) ([]*staffscout.Run, error)
	FinishRunFn   func(ctx context.Context, id string, contacts int) error
}

func (s *RunService) CreateRun(ctx context.Context, run *staffscout.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*staffscout.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter staffscout.RunFilter) ([]*staffscout.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) FinishRun(ctx context.Context, id string, contacts int) error {
	return s.FinishRunFn(ctx, id, contacts)
}

var _ staffscout.ContactService = (*ContactService)(nil)

// ContactService is a mock implementation of staffscout.ContactService.
type ContactService struct {
	CreateContactsFn func(ctx context.Context, runID string, contacts []*staffscout.ScoredContact) error
	FindContactsFn   func(ctx context.Context, filter staffscout.ContactFilter) ([]*staffscout.ScoredContact, error)
}

func (s *ContactService) CreateContacts(ctx context.Context, runID string, contacts []*staffscout.ScoredContact) error {
	return s.CreateContactsFn(ctx, runID, contacts)
}

func (s *ContactService) FindContacts(ctx context.Context, filter staffscout.ContactFilter) ([]*staffscout.ScoredContact, error) {
	return s.FindContactsFn(ctx, filter)
}
