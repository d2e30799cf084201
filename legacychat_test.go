package legacychat_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	legacychat "github.com/tymeless/legacychat"
	legacyerrors "github.com/tymeless/legacychat/errors"
	"github.com/tymeless/legacychat/internal/mylog"
	providertest "github.com/tymeless/legacychat/provider/test"
)

func TestApp_Conversation(t *testing.T) {
	ctx := context.Background()

	queryVec := []float32{1, 0, 0}
	prov := &providertest.ProviderMock{}
	prov.On("Embed", mock.Anything, mock.Anything).Return(queryVec, nil)
	prov.On("GenerateStream", mock.Anything, mock.Anything, "Tell me about meeting Grandpa").
		Return(&providertest.SliceStream{
			Fragments: []string{"I met ", "your grandfather ", "in 1947."},
		}, nil)
	prov.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return("What did the county fair look like in 1947?\n"+
			"How did your grandfather introduce himself that day?\n"+
			"What music was playing when you first danced together?", nil)

	app, err := legacychat.New(ctx,
		legacychat.WithLogger(mylog.NewLogger("error", "default")),
		legacychat.WithProvider(prov),
	)
	require.NoError(t, err)
	defer app.Close()

	personas := app.Personas(ctx)
	require.NotEmpty(t, personas)
	martha := personas[0]

	_, err = app.IngestMemory(ctx, martha.ID, "I met James in 1947 at the county fair.",
		legacychat.MemoryMetadata{Category: "love", Period: "1940s"})
	require.NoError(t, err)

	session, err := app.OpenSession(ctx, martha.ID)
	require.NoError(t, err)

	turn, err := session.Send(ctx, "Tell me about meeting Grandpa")
	require.NoError(t, err)
	for turn.Next() {
	}
	require.NoError(t, turn.Err())
	assert.Equal(t, "I met your grandfather in 1947.", turn.Text())

	questions := turn.Questions(ctx)
	assert.Len(t, questions, 3)

	require.NoError(t, app.CloseSession(session.ID()))
	_, err = app.GetSession(session.ID())
	assert.Error(t, err)
}

func TestNew_UnknownProviderRejected(t *testing.T) {
	t.Setenv("AI_PROVIDER", "watson")

	_, err := legacychat.New(context.Background(),
		legacychat.WithLogger(mylog.NewLogger("error", "default")),
	)
	assert.ErrorIs(t, err, legacyerrors.ErrInvalidConfig)
	assert.ErrorContains(t, err, "watson")
}
