package config

type MemoryConfig struct {
	// SqliteEnabled controls whether memories are persisted through the
	// SQLite store. When false an in-memory store is used.
	SqliteEnabled bool `env:"MEMORY_SQLITE_ENABLED"`

	// SqlitePath is the file path for the SQLite database.
	SqlitePath string `env:"MEMORY_SQLITE_PATH"`

	// SimilarityThreshold is the minimum cosine similarity a memory must
	// reach to be considered relevant. Default 0.7; the value is a tuning
	// knob, not a protocol constant.
	SimilarityThreshold float32 `env:"MEMORY_SIMILARITY_THRESHOLD"`

	// RetrievalLimit caps how many memories feed one context assembly.
	RetrievalLimit int `env:"MEMORY_RETRIEVAL_LIMIT"`
}

func NewMemoryConfig(testing bool) (*MemoryConfig, error) {
	conf := &MemoryConfig{
		SqliteEnabled:       false,
		SqlitePath:          ":memory:",
		SimilarityThreshold: 0.7,
		RetrievalLimit:      8,
	}
	return conf, resolveConfig(conf, testing)
}
