package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tymeless/legacychat/errors"
	"github.com/tymeless/legacychat/internal/mylog"
	"github.com/tymeless/legacychat/persona"
	providertest "github.com/tymeless/legacychat/provider/test"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	logger := mylog.NewLogger("error", "default")
	personas := persona.NewService(persona.NewStaticCatalog(martha), time.Second, logger)
	return NewManager(logger, newTestEngine(&providertest.ProviderMock{}), personas)
}

func TestManager(t *testing.T) {
	ctx := context.Background()
	manager := newTestManager(t)

	t.Run("open seeds the greeting and sample questions", func(t *testing.T) {
		session, err := manager.Open(ctx, martha.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, session.ID())

		history := session.History()
		require.Len(t, history, 1)
		assert.Equal(t, GreetingReply, history[0].Text)
		assert.Equal(t, martha.SampleQuestions, session.SuggestedQuestions())

		got, err := manager.Get(session.ID())
		require.NoError(t, err)
		assert.Same(t, session, got)
	})

	t.Run("open rejects unknown personas", func(t *testing.T) {
		_, err := manager.Open(ctx, "nobody")
		assert.ErrorIs(t, err, errors.ErrNotFound)
	})

	t.Run("get rejects unknown sessions", func(t *testing.T) {
		_, err := manager.Get("nope")
		assert.ErrorIs(t, err, errors.ErrSessionNotFound)
	})

	t.Run("close forgets the session", func(t *testing.T) {
		session, err := manager.Open(ctx, martha.ID)
		require.NoError(t, err)

		require.NoError(t, manager.Close(session.ID()))
		_, err = manager.Get(session.ID())
		assert.ErrorIs(t, err, errors.ErrSessionNotFound)

		_, err = session.Send(ctx, "hello?")
		assert.ErrorIs(t, err, errors.ErrSessionClosed)

		assert.ErrorIs(t, manager.Close(session.ID()), errors.ErrSessionNotFound)
	})
}
