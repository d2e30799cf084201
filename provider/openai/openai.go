package openai

import (
	"context"

	goopenai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/tymeless/legacychat/errors"
	"github.com/tymeless/legacychat/provider"
)

const (
	DefaultChatModel      = goopenai.ChatModelGPT4oMini
	DefaultEmbeddingModel = goopenai.EmbeddingModelTextEmbedding3Small

	defaultTemperature = 0.7
)

type Provider struct {
	client         *goopenai.Client
	chatModel      string
	embeddingModel string
}

var _ provider.Provider = (*Provider)(nil)

func New(apiKey string, opts ...Option) *Provider {
	p := &Provider{
		client:         goopenai.NewClient(option.WithAPIKey(apiKey)),
		chatModel:      DefaultChatModel,
		embeddingModel: DefaultEmbeddingModel,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type Option func(*Provider)

func WithChatModel(model string) Option {
	return func(p *Provider) { p.chatModel = model }
}

func WithEmbeddingModel(model string) Option {
	return func(p *Provider) { p.embeddingModel = model }
}

func (p *Provider) Name() string { return "openai" }

func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := p.client.Embeddings.New(ctx, goopenai.EmbeddingNewParams{
		Model: goopenai.F(p.embeddingModel),
		Input: goopenai.F[goopenai.EmbeddingNewParamsInputUnion](
			goopenai.EmbeddingNewParamsInputArrayOfStrings{text},
		),
		EncodingFormat: goopenai.F(goopenai.EmbeddingNewParamsEncodingFormatFloat),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create embedding")
	}
	if len(res.Data) == 0 || len(res.Data[0].Embedding) == 0 {
		return nil, errors.Wrapf(errors.ErrEmbedding, "empty embedding response")
	}

	embedding := make([]float32, len(res.Data[0].Embedding))
	for i, v := range res.Data[0].Embedding {
		embedding[i] = float32(v)
	}
	return embedding, nil
}

func (p *Provider) Generate(ctx context.Context, system, user string) (string, error) {
	res, err := p.client.Chat.Completions.New(ctx, p.chatParams(system, user))
	if err != nil {
		return "", errors.Wrapf(err, "failed to generate completion")
	}
	if len(res.Choices) == 0 {
		return "", errors.Wrapf(errors.ErrGeneration, "no choices in completion response")
	}
	return res.Choices[0].Message.Content, nil
}

func (p *Provider) GenerateStream(ctx context.Context, system, user string) (provider.Stream, error) {
	stream := p.client.Chat.Completions.NewStreaming(ctx, p.chatParams(system, user))
	return &chatStream{stream: stream}, nil
}

func (p *Provider) chatParams(system, user string) goopenai.ChatCompletionNewParams {
	messages := []goopenai.ChatCompletionMessageParamUnion{
		goopenai.UserMessage(user),
	}
	if system != "" {
		messages = append([]goopenai.ChatCompletionMessageParamUnion{
			goopenai.SystemMessage(system),
		}, messages...)
	}
	return goopenai.ChatCompletionNewParams{
		Model:       goopenai.F(p.chatModel),
		Messages:    goopenai.F(messages),
		Temperature: goopenai.Float(defaultTemperature),
	}
}
