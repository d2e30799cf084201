package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tymeless/legacychat/entity"
	"github.com/tymeless/legacychat/memory"
)

func TestAssembleContext(t *testing.T) {
	persona := entity.Persona{
		Name:        "Martha Lewis",
		Personality: "I am a gentle, wise grandmother born in 1940.",
	}

	t.Run("no memories yields bare personality", func(t *testing.T) {
		block := AssembleContext(persona, nil)
		assert.Equal(t, persona.Personality, block)
	})

	t.Run("memories are appended beneath the personality in rank order", func(t *testing.T) {
		block := AssembleContext(persona, []memory.RetrievedMemory{
			{Content: "I met James in 1947 at the county fair.", Score: 0.95},
			{Content: "We married in the spring of 1949.", Score: 0.88},
		})

		assert.Contains(t, block, persona.Personality)
		assert.Contains(t, block, "Relevant memories:")
		first := strings.Index(block, "I met James in 1947")
		second := strings.Index(block, "We married in the spring")
		assert.Greater(t, first, strings.Index(block, persona.Personality))
		assert.Greater(t, second, first)
	})

	t.Run("empty personality yields the memory-only block", func(t *testing.T) {
		block := AssembleContext(entity.Persona{Name: "Unknown"}, []memory.RetrievedMemory{
			{Content: "A summer on the lake.", Score: 0.9},
		})

		assert.NotEmpty(t, block)
		assert.True(t, strings.HasPrefix(block, "Relevant memories:"))
		assert.Contains(t, block, "A summer on the lake.")
	})

	t.Run("whitespace-only personality is treated as empty", func(t *testing.T) {
		block := AssembleContext(entity.Persona{Personality: "   \n\t"}, nil)
		assert.Empty(t, block)
	})

	t.Run("memory concatenation is bounded", func(t *testing.T) {
		long := strings.Repeat("x", 2000)
		block := AssembleContext(persona, []memory.RetrievedMemory{
			{Content: long, Score: 0.99},
			{Content: long, Score: 0.98},
			{Content: long, Score: 0.97},
		})

		// The first memory is always kept; later ones stop once the
		// ceiling would be crossed.
		assert.Equal(t, 1, strings.Count(block, long))
	})
}
