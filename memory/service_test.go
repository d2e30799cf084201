package memory_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tymeless/legacychat/config"
	"github.com/tymeless/legacychat/internal/mylog"
	"github.com/tymeless/legacychat/memory"
	providertest "github.com/tymeless/legacychat/provider/test"
)

type failingStore struct {
	*memory.InMemoryStore
}

func (f *failingStore) Search(ctx context.Context, personaID string, queryEmbedding []float32, limit int) ([]memory.SearchResult, error) {
	return nil, errors.New("store unavailable")
}

func newTestService(store memory.Store, prov *providertest.ProviderMock) *memory.Service {
	return memory.NewService(store, prov, mylog.NewLogger("error", "default"), &config.MemoryConfig{
		SimilarityThreshold: 0.7,
		RetrievalLimit:      8,
	})
}

func TestService_FindRelevant(t *testing.T) {
	ctx := context.Background()

	t.Run("ranked results above the threshold", func(t *testing.T) {
		store := memory.NewInMemoryStore()
		require.NoError(t, store.Store(ctx, &memory.Memory{
			PersonaID: "martha",
			Content:   "I met James in 1947 at the county fair.",
			Embedding: []float32{1, 0, 0},
		}))
		require.NoError(t, store.Store(ctx, &memory.Memory{
			PersonaID: "martha",
			Content:   "My mother taught me to bake bread.",
			Embedding: []float32{0, 1, 0},
		}))

		prov := &providertest.ProviderMock{}
		prov.On("Embed", mock.Anything, "meeting grandpa").Return([]float32{1, 0, 0}, nil)

		service := newTestService(store, prov)
		relevant := service.FindRelevant(ctx, "martha", "meeting grandpa", 0)

		// The orthogonal memory scores 0 and falls below the threshold.
		require.Len(t, relevant, 1)
		assert.Equal(t, "I met James in 1947 at the county fair.", relevant[0].Content)
		assert.GreaterOrEqual(t, relevant[0].Score, float32(0.7))
	})

	t.Run("fails open on embedding error", func(t *testing.T) {
		prov := &providertest.ProviderMock{}
		prov.On("Embed", mock.Anything, mock.Anything).Return(nil, errors.New("remote call failed"))

		service := newTestService(memory.NewInMemoryStore(), prov)
		relevant := service.FindRelevant(ctx, "martha", "anything", 0)

		assert.NotNil(t, relevant)
		assert.Empty(t, relevant)
	})

	t.Run("fails open on store error", func(t *testing.T) {
		prov := &providertest.ProviderMock{}
		prov.On("Embed", mock.Anything, mock.Anything).Return([]float32{1, 0, 0}, nil)

		service := newTestService(&failingStore{memory.NewInMemoryStore()}, prov)
		relevant := service.FindRelevant(ctx, "martha", "anything", 0)

		assert.NotNil(t, relevant)
		assert.Empty(t, relevant)
	})
}

func TestService_Ingest(t *testing.T) {
	ctx := context.Background()

	t.Run("embeds and stores", func(t *testing.T) {
		store := memory.NewInMemoryStore()
		prov := &providertest.ProviderMock{}
		prov.On("Embed", mock.Anything, "Sunday dinners at the farm.").Return([]float32{0.5, 0.5, 0}, nil)

		service := newTestService(store, prov)
		m, err := service.Ingest(ctx, "martha", "Sunday dinners at the farm.", memory.Metadata{Category: "family"})
		require.NoError(t, err)
		assert.NotEmpty(t, m.ID)

		listed, err := store.List(ctx, "martha")
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, "family", listed[0].Metadata.Category)
	})

	t.Run("rejects empty content", func(t *testing.T) {
		service := newTestService(memory.NewInMemoryStore(), &providertest.ProviderMock{})
		_, err := service.Ingest(ctx, "martha", "", memory.Metadata{})
		assert.Error(t, err)
	})

	t.Run("surfaces embedding failure", func(t *testing.T) {
		prov := &providertest.ProviderMock{}
		prov.On("Embed", mock.Anything, mock.Anything).Return(nil, errors.New("remote call failed"))

		service := newTestService(memory.NewInMemoryStore(), prov)
		_, err := service.Ingest(ctx, "martha", "content", memory.Metadata{})
		assert.Error(t, err)
	})
}
