package anthropic

import (
	"context"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/tymeless/legacychat/errors"
	"github.com/tymeless/legacychat/provider"
	"github.com/tymeless/legacychat/provider/nomic"
)

const (
	DefaultChatModel = "claude-3-5-haiku-latest"

	defaultMaxTokens      = 1024
	defaultRequestTimeout = 180 * time.Second
)

// Provider drives the Anthropic Messages API. Anthropic offers no embedding
// endpoint, so Embed delegates to the Nomic text embedder.
type Provider struct {
	client    anthropic.Client
	embedder  *nomic.Embedder
	chatModel string
}

var _ provider.Provider = (*Provider)(nil)

func New(apiKey string, embedder *nomic.Embedder, opts ...Option) *Provider {
	p := &Provider{
		client: anthropic.NewClient(
			option.WithAPIKey(apiKey),
			option.WithRequestTimeout(defaultRequestTimeout),
		),
		embedder:  embedder,
		chatModel: DefaultChatModel,
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

func (p *Provider) Name() string { return "anthropic" }

func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	if p.embedder == nil {
		return nil, errors.Wrapf(errors.ErrEmbedding, "no embedder configured")
	}
	embeddings, err := p.embedder.EmbedTexts(ctx, nomic.TaskTypeQuery, text)
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

func (p *Provider) Generate(ctx context.Context, system, user string) (string, error) {
	message, err := p.client.Messages.New(ctx, p.messageParams(system, user))
	if err != nil {
		return "", errors.Wrapf(err, "failed to generate message")
	}

	var text string
	for _, block := range message.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return text, nil
}

func (p *Provider) GenerateStream(ctx context.Context, system, user string) (provider.Stream, error) {
	stream := p.client.Messages.NewStreaming(ctx, p.messageParams(system, user))
	return &messageStream{stream: stream}, nil
}

func (p *Provider) messageParams(system, user string) anthropic.MessageNewParams {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.chatModel),
		MaxTokens: defaultMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	return params
}
