package memory

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	"github.com/tymeless/legacychat/config"
	"github.com/tymeless/legacychat/errors"
)

type (
	// Embedder turns free text into a fixed-length vector. Satisfied by
	// every provider adapter.
	Embedder interface {
		Embed(ctx context.Context, text string) ([]float32, error)
	}

	// Service wraps a store and an embedder behind the retrieval contract
	// the chat pipeline depends on.
	Service struct {
		store    Store
		embedder Embedder
		logger   *slog.Logger

		threshold float32
		limit     int
	}
)

func NewService(store Store, embedder Embedder, logger *slog.Logger, conf *config.MemoryConfig) *Service {
	return &Service{
		store:     store,
		embedder:  embedder,
		logger:    logger,
		threshold: conf.SimilarityThreshold,
		limit:     conf.RetrievalLimit,
	}
}

// FindRelevant returns the persona's memories most similar to queryText,
// ranked descending, filtered to the similarity threshold and truncated to
// limit (the configured default when limit <= 0).
//
// Retrieval is an enhancement, not a requirement: every failure mode
// (embedding error, store error, zero matches) yields an empty slice so the
// chat stays available when the retrieval subsystem is degraded.
func (s *Service) FindRelevant(ctx context.Context, personaID, queryText string, limit int) []RetrievedMemory {
	if limit <= 0 {
		limit = s.limit
	}

	queryEmbedding, err := s.embedder.Embed(ctx, queryText)
	if err != nil {
		s.logger.Warn("memory retrieval degraded: embedding failed", slog.Any("error", err))
		return []RetrievedMemory{}
	}

	results, err := s.store.Search(ctx, personaID, queryEmbedding, limit)
	if err != nil {
		s.logger.Warn("memory retrieval degraded: search failed", slog.Any("error", err))
		return []RetrievedMemory{}
	}

	relevant := lo.FilterMap(results, func(r SearchResult, _ int) (RetrievedMemory, bool) {
		if r.Score < s.threshold {
			return RetrievedMemory{}, false
		}
		return RetrievedMemory{
			Content: r.Memory.Content,
			Score:   r.Score,
		}, true
	})

	s.logger.Debug("memory retrieval",
		slog.String("personaId", personaID),
		slog.Int("candidates", len(results)),
		slog.Int("relevant", len(relevant)),
	)

	return relevant
}

// Ingest embeds content and persists it as a new memory for the persona.
// Ingestion happens out-of-band of conversations, so unlike FindRelevant it
// reports failures to the caller.
func (s *Service) Ingest(ctx context.Context, personaID, content string, metadata Metadata) (*Memory, error) {
	if personaID == "" {
		return nil, errors.New("persona id is empty")
	}
	if content == "" {
		return nil, errors.New("memory content is empty")
	}

	embedding, err := s.embedder.Embed(ctx, content)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to embed memory content")
	}

	memory := &Memory{
		PersonaID: personaID,
		Content:   content,
		Metadata:  metadata,
		Embedding: embedding,
	}
	if err := s.store.Store(ctx, memory); err != nil {
		return nil, err
	}

	s.logger.Info("memory ingested",
		slog.String("personaId", personaID),
		slog.String("memoryId", memory.ID),
	)
	return memory, nil
}

// List returns every memory stored for the persona.
func (s *Service) List(ctx context.Context, personaID string) ([]*Memory, error) {
	return s.store.List(ctx, personaID)
}

// Delete removes one memory by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
