package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/tymeless/legacychat/errors"
	"gonum.org/v1/gonum/mat"
)

type (
	// Store is the persistence contract for persona memories.
	Store interface {
		Store(ctx context.Context, memory *Memory) error
		Search(ctx context.Context, personaID string, queryEmbedding []float32, limit int) ([]SearchResult, error)
		List(ctx context.Context, personaID string) ([]*Memory, error)
		Delete(ctx context.Context, id string) error
		Close() error
	}

	// InMemoryStore is a simple in-memory implementation.
	InMemoryStore struct {
		mu       sync.RWMutex
		memories map[string]*Memory // key: memory ID
	}
)

var (
	_ Store = (*InMemoryStore)(nil)
)

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		memories: make(map[string]*Memory),
	}
}

func (s *InMemoryStore) Store(ctx context.Context, memory *Memory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if memory.PersonaID == "" {
		return errors.New("memory persona id is empty")
	}
	if memory.ID == "" {
		memory.ID = uuid.NewString()
	}

	stored := &Memory{
		ID:        memory.ID,
		PersonaID: memory.PersonaID,
		Content:   memory.Content,
		Metadata:  memory.Metadata,
		Embedding: make([]float32, len(memory.Embedding)),
	}
	copy(stored.Embedding, memory.Embedding)

	s.memories[memory.ID] = stored
	return nil
}

func (s *InMemoryStore) Search(ctx context.Context, personaID string, queryEmbedding []float32, limit int) ([]SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(queryEmbedding) == 0 {
		return []SearchResult{}, nil
	}

	// Collect the persona's memories with matching embedding dimensions.
	var candidates []*Memory
	for _, memory := range s.memories {
		if memory.PersonaID != personaID {
			continue
		}
		if len(memory.Embedding) != len(queryEmbedding) {
			continue
		}
		candidates = append(candidates, memory)
	}

	if len(candidates) == 0 {
		return []SearchResult{}, nil
	}

	embeddingDim := len(queryEmbedding)

	queryVec := make([]float64, embeddingDim)
	var queryNorm float64
	for i, v := range queryEmbedding {
		queryVec[i] = float64(v)
		queryNorm += float64(v) * float64(v)
	}

	// Candidate embeddings as an N x d matrix; one MulVec gives all the
	// dot products at once.
	data := make([]float64, len(candidates)*embeddingDim)
	norms := make([]float64, len(candidates))
	for i, memory := range candidates {
		for j, v := range memory.Embedding {
			data[i*embeddingDim+j] = float64(v)
			norms[i] += float64(v) * float64(v)
		}
	}

	queryVector := mat.NewVecDense(embeddingDim, queryVec)
	memoryMatrix := mat.NewDense(len(candidates), embeddingDim, data)

	var resultVec mat.VecDense
	resultVec.MulVec(memoryMatrix, queryVector)

	results := make([]SearchResult, 0, len(candidates))
	for i, memory := range candidates {
		score := cosineScore(resultVec.AtVec(i), queryNorm, norms[i])
		results = append(results, SearchResult{
			Memory: memory,
			Score:  score,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

func (s *InMemoryStore) List(ctx context.Context, personaID string) ([]*Memory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*Memory
	for _, memory := range s.memories {
		if memory.PersonaID == personaID {
			results = append(results, memory)
		}
	}
	return results, nil
}

func (s *InMemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.memories, id)
	return nil
}

func (s *InMemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memories = make(map[string]*Memory)
	return nil
}

func cosineScore(dot, normA, normB float64) float32 {
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
