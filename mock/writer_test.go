package mock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/staffscout"
	"github.com/fwojciec/staffscout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactWriter_WriteContacts(t *testing.T) {
	t.Parallel()

	t.Run("delegates to WriteContactsFn", func(t *testing.T) {
		t.Parallel()

		var got []*staffscout.ScoredContact
		w := &mock.ContactWriter{
			WriteContactsFn: func(_ context.Context, contacts []*staffscout.ScoredContact) error {
				got = contacts
				return nil
			},
		}
		contacts := []*staffscout.ScoredContact{{Contact: staffscout.Contact{Email: "jane@uni.edu"}}}

		err := w.WriteContacts(context.Background(), contacts)

		require.NoError(t, err)
		assert.Equal(t, contacts, got)
	})

	t.Run("returns the error from WriteContactsFn", func(t *testing.T) {
		t.Parallel()

		want := errors.New("disk full")
		w := &mock.ContactWriter{
			WriteContactsFn: func(context.Context, []*staffscout.ScoredContact) error { return want },
		}

		assert.ErrorIs(t, w.WriteContacts(context.Background(), nil), want)
	})
}
