package config

type (
	// AIConfig selects the provider backend and the models the pipeline uses.
	AIConfig struct {
		// Provider is one of "openai" or "anthropic".
		Provider string `env:"AI_PROVIDER"`

		ChatModel      string `env:"AI_CHAT_MODEL"`
		EmbeddingModel string `env:"AI_EMBEDDING_MODEL"`
	}
	OpenAIConfig struct {
		APIKey string `env:"OPENAI_API_KEY"`
	}
	AnthropicConfig struct {
		APIKey string `env:"ANTHROPIC_API_KEY"`
	}
	NomicConfig struct {
		APIKey string `env:"NOMIC_API_KEY"`
	}
)

func NewAIConfig(testing bool) (*AIConfig, error) {
	conf := &AIConfig{
		Provider: "openai",
	}
	return conf, resolveConfig(conf, testing)
}

func NewOpenAIConfig(testing bool) (*OpenAIConfig, error) {
	conf := &OpenAIConfig{}
	return conf, resolveConfig(conf, testing)
}

func NewAnthropicConfig(testing bool) (*AnthropicConfig, error) {
	conf := &AnthropicConfig{}
	return conf, resolveConfig(conf, testing)
}

func NewNomicConfig(testing bool) (*NomicConfig, error) {
	conf := &NomicConfig{}
	return conf, resolveConfig(conf, testing)
}
