package config

import "time"

type CatalogConfig struct {
	// Dir points at a directory of persona YAML files. Empty means the
	// built-in catalog only.
	Dir string `env:"CATALOG_DIR"`

	// LoadTimeout bounds how long a catalog load may take before the
	// built-in fallback catalog is served instead.
	LoadTimeout time.Duration `env:"CATALOG_LOAD_TIMEOUT"`
}

func NewCatalogConfig(testing bool) (*CatalogConfig, error) {
	conf := &CatalogConfig{
		LoadTimeout: 5 * time.Second,
	}
	return conf, resolveConfig(conf, testing)
}
