package legacychat

import (
	"context"

	"github.com/tymeless/legacychat/config"
	"github.com/tymeless/legacychat/engine"
	"github.com/tymeless/legacychat/entity"
	"github.com/tymeless/legacychat/errors"
	"github.com/tymeless/legacychat/internal/mylog"
	"github.com/tymeless/legacychat/memory"
	"github.com/tymeless/legacychat/persona"
	"github.com/tymeless/legacychat/provider"
	"github.com/tymeless/legacychat/provider/anthropic"
	"github.com/tymeless/legacychat/provider/nomic"
	"github.com/tymeless/legacychat/provider/openai"
)

type (
	Persona          = entity.Persona
	ConversationTurn = entity.ConversationTurn
	Session          = engine.Session
	Turn             = engine.Turn
	Memory           = memory.Memory
	MemoryMetadata   = memory.Metadata

	// App wires the whole conversation pipeline: provider, memory store,
	// persona catalog, engine and session manager.
	App struct {
		logger   *mylog.Logger
		provider provider.Provider
		store    memory.Store

		memory   *memory.Service
		personas *persona.Service
		engine   *engine.Engine
		sessions *engine.Manager

		openAIAPIKey    string
		anthropicAPIKey string
		nomicAPIKey     string
		catalogDir      string
		testing         bool
	}

	Option func(*App)
)

// openAIEmbedDim is the dimension of text-embedding-3-small vectors.
const openAIEmbedDim = 1536

func WithLogger(logger *mylog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

func WithOpenAIAPIKey(apiKey string) Option {
	return func(a *App) { a.openAIAPIKey = apiKey }
}

func WithAnthropicAPIKey(apiKey string) Option {
	return func(a *App) { a.anthropicAPIKey = apiKey }
}

func WithNomicAPIKey(apiKey string) Option {
	return func(a *App) { a.nomicAPIKey = apiKey }
}

// WithProvider injects a fully constructed provider, bypassing the
// configuration-driven selection. Mostly useful in tests.
func WithProvider(p provider.Provider) Option {
	return func(a *App) { a.provider = p }
}

// WithMemoryStore injects a memory store, bypassing the configured one.
func WithMemoryStore(store memory.Store) Option {
	return func(a *App) { a.store = store }
}

func WithCatalogDir(dir string) Option {
	return func(a *App) { a.catalogDir = dir }
}

// WithTesting switches configuration loading to the .env.test environment.
func WithTesting() Option {
	return func(a *App) { a.testing = true }
}

// New builds the application from environment-driven configuration plus any
// overriding options.
func New(ctx context.Context, opts ...Option) (*App, error) {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		logConf, err := config.NewLogConfig(a.testing)
		if err != nil {
			return nil, err
		}
		a.logger = mylog.NewLogger(logConf.LogLevel, logConf.LogHandler)
	}

	embedDim := openAIEmbedDim
	if a.provider == nil {
		aiConf, err := config.NewAIConfig(a.testing)
		if err != nil {
			return nil, err
		}
		if a.provider, embedDim, err = a.buildProvider(aiConf); err != nil {
			return nil, err
		}
	}

	memConf, err := config.NewMemoryConfig(a.testing)
	if err != nil {
		return nil, err
	}
	if a.store == nil {
		if memConf.SqliteEnabled {
			store, err := memory.NewSqliteStore(memConf.SqlitePath, embedDim)
			if err != nil {
				return nil, err
			}
			a.store = store
		} else {
			a.store = memory.NewInMemoryStore()
		}
	}
	a.memory = memory.NewService(a.store, a.provider, a.logger, memConf)

	catConf, err := config.NewCatalogConfig(a.testing)
	if err != nil {
		return nil, err
	}
	if a.catalogDir != "" {
		catConf.Dir = a.catalogDir
	}
	var catalog persona.Catalog
	if catConf.Dir != "" {
		catalog = persona.NewFileCatalog(catConf.Dir)
	}
	a.personas = persona.NewService(catalog, catConf.LoadTimeout, a.logger)

	a.engine = engine.NewEngine(a.logger, a.provider, a.memory, engine.NewQuestionCache())
	a.sessions = engine.NewManager(a.logger, a.engine, a.personas)

	a.logger.Info("legacychat initialized", "provider", a.provider.Name())
	return a, nil
}

func (a *App) buildProvider(conf *config.AIConfig) (provider.Provider, int, error) {
	switch conf.Provider {
	case "", "openai":
		apiKey := a.openAIAPIKey
		if apiKey == "" {
			openAIConf, err := config.NewOpenAIConfig(a.testing)
			if err != nil {
				return nil, 0, err
			}
			apiKey = openAIConf.APIKey
		}
		var opts []openai.Option
		if conf.ChatModel != "" {
			opts = append(opts, openai.WithChatModel(conf.ChatModel))
		}
		if conf.EmbeddingModel != "" {
			opts = append(opts, openai.WithEmbeddingModel(conf.EmbeddingModel))
		}
		return openai.New(apiKey, opts...), openAIEmbedDim, nil
	case "anthropic":
		apiKey := a.anthropicAPIKey
		if apiKey == "" {
			anthropicConf, err := config.NewAnthropicConfig(a.testing)
			if err != nil {
				return nil, 0, err
			}
			apiKey = anthropicConf.APIKey
		}
		nomicAPIKey := a.nomicAPIKey
		if nomicAPIKey == "" {
			nomicConf, err := config.NewNomicConfig(a.testing)
			if err != nil {
				return nil, 0, err
			}
			nomicAPIKey = nomicConf.APIKey
		}
		var opts []anthropic.Option
		if conf.ChatModel != "" {
			opts = append(opts, anthropic.WithChatModel(conf.ChatModel))
		}
		embedder := nomic.NewEmbedder(nomicAPIKey)
		return anthropic.New(apiKey, embedder, opts...), nomic.EmbedSize, nil
	default:
		return nil, 0, errors.Wrapf(errors.ErrInvalidConfig, "unknown AI provider %q", conf.Provider)
	}
}

// Personas lists the available personas. Never fails; the built-in catalog
// backs every failure mode.
func (a *App) Personas(ctx context.Context) []Persona {
	return a.personas.Personas(ctx)
}

// OpenSession starts a conversation with the given persona.
func (a *App) OpenSession(ctx context.Context, personaID string) (*Session, error) {
	return a.sessions.Open(ctx, personaID)
}

func (a *App) GetSession(id string) (*Session, error) {
	return a.sessions.Get(id)
}

func (a *App) CloseSession(id string) error {
	return a.sessions.Close(id)
}

// IngestMemory embeds and stores one memory snippet for a persona.
func (a *App) IngestMemory(ctx context.Context, personaID, content string, metadata MemoryMetadata) (*Memory, error) {
	return a.memory.Ingest(ctx, personaID, content, metadata)
}

// ListMemories returns every stored memory of a persona.
func (a *App) ListMemories(ctx context.Context, personaID string) ([]*Memory, error) {
	return a.memory.List(ctx, personaID)
}

// GenerateProfile drafts a personality description from free-text memories,
// for the persona creation flow. Never fails; falls back to a fixed profile.
func (a *App) GenerateProfile(ctx context.Context, name, relation, memories string) string {
	return persona.GenerateProfile(ctx, a.provider, a.logger, name, relation, memories)
}

// Close tears down every live session and the memory store.
func (a *App) Close() error {
	a.sessions.CloseAll()
	return a.store.Close()
}
