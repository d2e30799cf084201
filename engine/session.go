package engine

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/tymeless/legacychat/entity"
	"github.com/tymeless/legacychat/errors"
	"github.com/tymeless/legacychat/internal/mylog"
	"github.com/tymeless/legacychat/internal/sliceutils"
	"github.com/tymeless/legacychat/provider"
)

// State is the lifecycle position of a session. A turn moves
// Idle -> Streaming -> QuestionsPending -> Idle on success, or
// Idle -> Streaming -> Idle when generation fails.
type State string

const (
	StateIdle             State = "idle"
	StateStreaming        State = "streaming"
	StateQuestionsPending State = "questions_pending"
)

const (
	// GreetingReply opens every new session as the persona's first turn.
	GreetingReply = "Hello, sweetheart. I'm here. What's on your mind today?"

	// ApologyReply substitutes the persona reply when generation fails.
	// Deliberately muted: the user should never see a technical error as
	// persona speech.
	ApologyReply = "I'm having a little trouble remembering right now. Could you try again?"
)

// previousQuestionsLimit bounds the rolling de-duplication history.
const previousQuestionsLimit = 20

type (
	// Session is one conversation with one persona. At most one turn is in
	// flight at a time; a second submission while one is active is rejected,
	// not queued. Sessions are independent of each other.
	Session struct {
		mu sync.Mutex

		id      string
		persona entity.Persona
		engine  *Engine
		logger  *mylog.Logger

		state             State
		closed            bool
		history           []entity.ConversationTurn
		previousQuestions []string
		suggested         []string
	}

	// Turn is the in-flight half of one exchange: the caller pulls reply
	// fragments with Next until exhaustion, then collects the follow-up
	// questions. A Turn is not safe for concurrent use.
	Turn struct {
		session  *Session
		stream   provider.Stream
		userText string

		reply   strings.Builder
		current string
		done    bool
		failed  bool
		err     error
	}
)

func newSession(id string, persona entity.Persona, engine *Engine, logger *mylog.Logger) *Session {
	s := &Session{
		id:      id,
		persona: persona,
		engine:  engine,
		logger:  logger,
		state:   StateIdle,
		history: []entity.ConversationTurn{{
			Role:      entity.RolePersona,
			Text:      GreetingReply,
			Timestamp: time.Now(),
		}},
	}
	s.suggested = slices.Clone(engine.sampleQuestions(persona))
	return s
}

func (e *Engine) sampleQuestions(persona entity.Persona) []string {
	questions := persona.SampleQuestions
	if len(questions) > maxFollowUpQuestions {
		questions = questions[:maxFollowUpQuestions]
	}
	return questions
}

func (s *Session) ID() string              { return s.id }
func (s *Session) Persona() entity.Persona { return s.persona }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// History returns a copy of the ordered turn sequence so far.
func (s *Session) History() []entity.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history)
}

// SuggestedQuestions returns the follow-up set attached by the most recent
// completed turn, or the persona's sample questions before any exchange.
func (s *Session) SuggestedQuestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.suggested)
}

// Send submits one user message and starts streaming the persona reply.
// It rejects empty or whitespace-only text and rejects submission while a
// previous turn is still in flight. When the generation call itself fails to
// start, the apology turn is recorded and the returned Turn is already
// finished; Send still returns it so the caller observes a uniform shape.
func (s *Session) Send(ctx context.Context, userText string) (*Turn, error) {
	userText = strings.TrimSpace(userText)
	if userText == "" {
		return nil, errors.ErrEmptyMessage
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, errors.ErrSessionClosed
	}
	if s.state != StateIdle {
		s.mu.Unlock()
		return nil, errors.Wrapf(errors.ErrSessionBusy, "session %s is %s", s.id, s.state)
	}
	s.state = StateStreaming
	s.mu.Unlock()

	stream, err := s.engine.StreamReply(ctx, s.persona, userText)
	if err != nil {
		s.logger.Error("failed to start reply stream",
			"sessionId", s.id, mylog.Err(err))
		s.finishFailed(userText)
		return &Turn{
			session:  s,
			userText: userText,
			done:     true,
			failed:   true,
			err:      errors.Wrap(errors.ErrGeneration, err.Error()),
		}, nil
	}

	return &Turn{
		session:  s,
		stream:   stream,
		userText: userText,
	}, nil
}

// Close tears the session down. An in-flight stream is abandoned by its Turn
// the next time it is pulled; no further turns are recorded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.state = StateIdle
}

func (s *Session) finishStreaming(userText, replyText string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	now := time.Now()
	s.history = append(s.history,
		entity.ConversationTurn{Role: entity.RoleUser, Text: userText, Timestamp: now},
		entity.ConversationTurn{Role: entity.RolePersona, Text: replyText, Timestamp: now},
	)
	s.state = StateQuestionsPending
}

func (s *Session) finishFailed(userText string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	now := time.Now()
	s.history = append(s.history,
		entity.ConversationTurn{Role: entity.RoleUser, Text: userText, Timestamp: now},
		entity.ConversationTurn{Role: entity.RolePersona, Text: ApologyReply, Timestamp: now},
	)
	s.state = StateIdle
}

func (s *Session) abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateStreaming || s.state == StateQuestionsPending {
		s.state = StateIdle
	}
}

func (s *Session) attachQuestions(questions []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.suggested = slices.Clone(questions)
	s.previousQuestions = sliceutils.Tail(
		append(s.previousQuestions, questions...), previousQuestionsLimit)
	s.state = StateIdle
}

func (s *Session) snapshotForFollowUp() (history []entity.ConversationTurn, previous []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history), slices.Clone(s.previousQuestions)
}

// Next pulls the next reply fragment, returning false once the stream is
// exhausted. On normal completion the user and persona turns are recorded and
// the session moves to QuestionsPending; on stream failure the partial reply
// is discarded, the apology turn is recorded and the session returns to Idle.
func (t *Turn) Next() bool {
	if t.done {
		return false
	}

	if t.stream.Next() {
		t.current = t.stream.Current()
		t.reply.WriteString(t.current)
		return true
	}

	t.done = true
	defer t.stream.Close()

	if err := t.stream.Err(); err != nil {
		t.failed = true
		t.err = errors.Wrap(errors.ErrGeneration, err.Error())
		t.session.logger.Error("reply stream failed",
			"sessionId", t.session.id, mylog.Err(err))
		t.session.finishFailed(t.userText)
		return false
	}

	t.session.finishStreaming(t.userText, t.reply.String())
	return false
}

// Current returns the fragment produced by the last successful Next call.
func (t *Turn) Current() string { return t.current }

// Err reports why the turn failed, or nil.
func (t *Turn) Err() error { return t.err }

// Failed reports whether the reply was substituted with the apology.
func (t *Turn) Failed() bool { return t.failed }

// Text returns the final recorded persona reply: the concatenation of all
// fragments in emission order, or the apology when the turn failed. Only
// meaningful after Next has returned false.
func (t *Turn) Text() string {
	if t.failed {
		return ApologyReply
	}
	return t.reply.String()
}

// Questions synthesizes the follow-up set for this turn and attaches it to
// the session, moving it back to Idle. It always completes: synthesis errors
// fall back to the generic list and an empty result falls back to the
// persona's sample questions. After a failed turn no synthesis is attempted
// and nil is returned.
func (t *Turn) Questions(ctx context.Context) []string {
	if !t.done || t.failed || t.err != nil {
		return nil
	}

	history, previous := t.session.snapshotForFollowUp()
	questions := t.session.engine.SynthesizeFollowUps(
		ctx, t.session.persona, t.reply.String(), history, previous)
	if len(questions) == 0 {
		questions = t.session.engine.sampleQuestions(t.session.persona)
	}

	t.session.attachQuestions(questions)
	return questions
}

// Close abandons the turn. If the stream is still open the partial reply is
// discarded without recording any turns; if the turn completed but its
// questions were never collected, the session is released back to Idle.
func (t *Turn) Close() error {
	if !t.done {
		t.done = true
		t.err = errors.ErrSessionClosed
		t.reply.Reset()
		err := t.stream.Close()
		t.session.abandon()
		return err
	}
	t.session.abandon()
	return nil
}
