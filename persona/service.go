package persona

import (
	"context"
	"log/slog"
	"time"

	"github.com/tymeless/legacychat/entity"
	"github.com/tymeless/legacychat/errors"
)

// Service resolves personas through a catalog with a bounded load timeout.
// Catalog failures are never surfaced to the end user: the built-in catalog
// is substituted whenever the configured one errors, returns nothing, or
// does not answer within the timeout.
type Service struct {
	catalog Catalog
	timeout time.Duration
	logger  *slog.Logger
}

func NewService(catalog Catalog, timeout time.Duration, logger *slog.Logger) *Service {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Service{
		catalog: catalog,
		timeout: timeout,
		logger:  logger,
	}
}

// Personas lists the available personas. Never fails.
func (s *Service) Personas(ctx context.Context) []entity.Persona {
	if s.catalog == nil {
		return BuiltinPersonas()
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type loadResult struct {
		personas []entity.Persona
		err      error
	}

	// The catalog may be backed by a remote service that never resolves;
	// the timeout forces the fallback regardless.
	ch := make(chan loadResult, 1)
	go func() {
		personas, err := s.catalog.Personas(ctx)
		ch <- loadResult{personas: personas, err: err}
	}()

	select {
	case <-ctx.Done():
		s.logger.Warn("persona catalog load timed out, serving built-in catalog")
		return BuiltinPersonas()
	case result := <-ch:
		if result.err != nil {
			s.logger.Warn("persona catalog load failed, serving built-in catalog",
				slog.Any("error", result.err))
			return BuiltinPersonas()
		}
		if len(result.personas) == 0 {
			return BuiltinPersonas()
		}
		return result.personas
	}
}

// Get resolves one persona by id.
func (s *Service) Get(ctx context.Context, id string) (*entity.Persona, error) {
	for _, p := range s.Personas(ctx) {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrNotFound, "persona %q", id)
}

// SampleQuestions returns the persona's seed questions, at most five.
func (s *Service) SampleQuestions(p *entity.Persona) []string {
	questions := p.SampleQuestions
	if len(questions) > 5 {
		questions = questions[:5]
	}
	return questions
}
