package mock

import (
	"context"

	"github.com/fwojciec/staffscout"
)

var _ staffscout.ContactWriter = (*ContactWriter)(nil)

// ContactWriter is a mock implementation of staffscout.ContactWriter.
type ContactWriter struct {
	WriteContactsFn func(ctx context.Context, contacts []*staffscout.ScoredContact) error
}

func (w *ContactWriter) WriteContacts(ctx context.Context, contacts []*staffscout.ScoredContact) error {
	return w.WriteContactsFn(ctx, contacts)
}
