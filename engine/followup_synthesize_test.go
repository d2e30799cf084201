package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/tymeless/legacychat/entity"
	"github.com/tymeless/legacychat/errors"
	"github.com/tymeless/legacychat/internal/mylog"
	providertest "github.com/tymeless/legacychat/provider/test"
)

func newTestEngine(prov *providertest.ProviderMock) *Engine {
	return NewEngine(mylog.NewLogger("error", "default"), prov, nil, NewQuestionCache())
}

func TestSynthesizeFollowUps_CachesBySamePrefix(t *testing.T) {
	ctx := context.Background()
	persona := entity.Persona{Name: "Martha Lewis"}

	prov := &providertest.ProviderMock{}
	prov.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return("What did James wear to the fair that evening?\n"+
			"How long did the two of you dance that night?\n"+
			"Who else from town was at the fair with you?", nil).
		Once()

	engine := newTestEngine(prov)

	first := engine.SynthesizeFollowUps(ctx, persona, "I met your grandfather in 1947.", nil, nil)
	second := engine.SynthesizeFollowUps(ctx, persona, "I met your grandfather in 1947.", nil, nil)

	assert.Equal(t, first, second)
	prov.AssertNumberOfCalls(t, "Generate", 1)
}

func TestSynthesizeFollowUps_SkipsCacheWithPreviousQuestions(t *testing.T) {
	ctx := context.Background()
	persona := entity.Persona{Name: "Martha Lewis"}

	prov := &providertest.ProviderMock{}
	prov.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return("What did James wear to the fair that evening?\n"+
			"How long did the two of you dance that night?\n"+
			"Who else from town was at the fair with you?", nil)

	engine := newTestEngine(prov)

	engine.SynthesizeFollowUps(ctx, persona, "I met your grandfather in 1947.", nil, nil)
	engine.SynthesizeFollowUps(ctx, persona, "I met your grandfather in 1947.", nil,
		[]string{"What was the harvest like that year?"})

	prov.AssertNumberOfCalls(t, "Generate", 2)
}

func TestSynthesizeFollowUps_TopsUpFromFallback(t *testing.T) {
	ctx := context.Background()
	persona := entity.Persona{Name: "Martha Lewis"}

	prov := &providertest.ProviderMock{}
	prov.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return("What did James wear to the fair that evening?\nnot a question", nil)

	engine := newTestEngine(prov)

	questions := engine.SynthesizeFollowUps(ctx, persona, "I met your grandfather in 1947.", nil, nil)
	assert.Len(t, questions, 5)
	assert.Equal(t, "What did James wear to the fair that evening?", questions[0])
	assert.Contains(t, questions, "What happened next?")

	// Results padded from the fallback are not cached.
	_, ok := engine.questionCache.Get(CacheKey("I met your grandfather in 1947."))
	assert.False(t, ok)
}

func TestSynthesizeFollowUps_FallsBackOnError(t *testing.T) {
	ctx := context.Background()
	persona := entity.Persona{Name: "Martha Lewis"}

	prov := &providertest.ProviderMock{}
	prov.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("model unavailable"))

	engine := newTestEngine(prov)

	questions := engine.SynthesizeFollowUps(ctx, persona, "I met your grandfather in 1947.", nil,
		[]string{"How did that make you feel?"})

	assert.Len(t, questions, 4)
	assert.NotContains(t, questions, "How did that make you feel?")
	for _, q := range questions {
		assert.Regexp(t, `\?$`, q)
	}
}
