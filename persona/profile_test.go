package persona_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tymeless/legacychat/persona"
	providertest "github.com/tymeless/legacychat/provider/test"
)

func TestGenerateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the generated profile", func(t *testing.T) {
		prov := &providertest.ProviderMock{}
		prov.On("Generate", mock.Anything, mock.Anything, mock.Anything).
			Return("A warm grandmother who told stories by the fire.", nil)

		profile := persona.GenerateProfile(ctx, prov, newTestLogger(),
			"Martha", "grandmother", "She loved the county fair.")
		assert.Equal(t, "A warm grandmother who told stories by the fire.", profile)

		prompt := prov.Calls[0].Arguments.String(2)
		assert.Contains(t, prompt, "my grandmother, named Martha")
		assert.Contains(t, prompt, "She loved the county fair.")
	})

	t.Run("falls back on generation error", func(t *testing.T) {
		prov := &providertest.ProviderMock{}
		prov.On("Generate", mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("model unavailable"))

		profile := persona.GenerateProfile(ctx, prov, newTestLogger(), "Martha", "grandmother", "notes")
		assert.Equal(t, "A gentle soul who loves their family.", profile)
	})

	t.Run("falls back on empty generation", func(t *testing.T) {
		prov := &providertest.ProviderMock{}
		prov.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("  \n", nil)

		profile := persona.GenerateProfile(ctx, prov, newTestLogger(), "Martha", "grandmother", "notes")
		assert.Equal(t, "A loving family member who cherishes memories.", profile)
	})
}
