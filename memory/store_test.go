package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tymeless/legacychat/memory"
)

func TestInMemoryStore_StoreAndSearch(t *testing.T) {
	ctx := context.Background()
	store := memory.NewInMemoryStore()
	defer store.Close()

	memories := []*memory.Memory{
		{PersonaID: "martha", Content: "I met James in 1947 at the county fair.", Embedding: []float32{1, 0, 0}},
		{PersonaID: "martha", Content: "We married in the spring of 1949.", Embedding: []float32{0.9, 0.1, 0}},
		{PersonaID: "martha", Content: "My mother taught me to bake bread.", Embedding: []float32{0, 1, 0}},
		{PersonaID: "robert", Content: "I opened my shop in 1962.", Embedding: []float32{1, 0, 0}},
	}
	for _, m := range memories {
		require.NoError(t, store.Store(ctx, m))
		assert.NotEmpty(t, m.ID)
	}

	results, err := store.Search(ctx, "martha", []float32{1, 0, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Ranked descending by cosine similarity, scoped to the persona.
	assert.Equal(t, "I met James in 1947 at the county fair.", results[0].Memory.Content)
	assert.InDelta(t, 1.0, results[0].Score, 1e-6)
	assert.Equal(t, "We married in the spring of 1949.", results[1].Memory.Content)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestInMemoryStore_SearchUnknownPersona(t *testing.T) {
	ctx := context.Background()
	store := memory.NewInMemoryStore()
	defer store.Close()

	results, err := store.Search(ctx, "nobody", []float32{1, 0, 0}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestInMemoryStore_RejectsMissingPersonaID(t *testing.T) {
	ctx := context.Background()
	store := memory.NewInMemoryStore()
	defer store.Close()

	err := store.Store(ctx, &memory.Memory{Content: "orphan"})
	assert.Error(t, err)
}

func TestInMemoryStore_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	store := memory.NewInMemoryStore()
	defer store.Close()

	m := &memory.Memory{PersonaID: "martha", Content: "Sunday dinners", Embedding: []float32{1}}
	require.NoError(t, store.Store(ctx, m))

	listed, err := store.List(ctx, "martha")
	require.NoError(t, err)
	require.Len(t, listed, 1)

	require.NoError(t, store.Delete(ctx, m.ID))
	listed, err = store.List(ctx, "martha")
	require.NoError(t, err)
	assert.Empty(t, listed)
}
