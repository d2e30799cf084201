package engine

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/tymeless/legacychat/errors"
	"github.com/tymeless/legacychat/internal/mylog"
	"github.com/tymeless/legacychat/persona"
)

// Manager owns the live sessions of the process. Sessions are fully
// independent of each other; the only state they share is the engine's
// follow-up question cache.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	engine   *Engine
	personas *persona.Service
	logger   *mylog.Logger
}

func NewManager(logger *mylog.Logger, engine *Engine, personas *persona.Service) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		engine:   engine,
		personas: personas,
		logger:   logger,
	}
}

// Open creates a session for the given persona. The new session starts with
// the persona's greeting turn already in its history and the persona's sample
// questions as the initial suggestions.
func (m *Manager) Open(ctx context.Context, personaID string) (*Session, error) {
	p, err := m.personas.Get(ctx, personaID)
	if err != nil {
		return nil, err
	}

	session := newSession(uuid.NewString(), *p, m.engine, m.logger)

	m.mu.Lock()
	m.sessions[session.ID()] = session
	m.mu.Unlock()

	m.logger.Info("session opened",
		"sessionId", session.ID(),
		"personaId", p.ID,
	)
	return session, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, errors.Wrapf(errors.ErrSessionNotFound, "session %q", id)
	}
	return session, nil
}

// Close tears down one session and forgets it.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	session, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return errors.Wrapf(errors.ErrSessionNotFound, "session %q", id)
	}
	session.Close()

	m.logger.Info("session closed", "sessionId", id)
	return nil
}

// CloseAll tears down every live session, e.g. on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, session := range m.sessions {
		session.Close()
		delete(m.sessions, id)
	}
}
