package config

import (
	"os"

	goconfig "github.com/golobby/config/v3"
	"github.com/golobby/config/v3/pkg/feeder"
	"github.com/tymeless/legacychat/errors"
)

func resolveConfig[T any](conf *T, testing bool) error {
	if conf == nil {
		return errors.New("config is nil")
	}

	reader := goconfig.New()
	for _, path := range dotEnvPaths(testing) {
		reader = reader.AddFeeder(feeder.DotEnv{Path: path})
	}

	if err := reader.
		AddFeeder(feeder.Env{}).
		AddStruct(conf).
		Feed(); err != nil {
		return errors.Wrapf(err, "failed to resolve config")
	}

	return nil
}

// dotEnvPaths returns the dotenv files to feed, keeping only those that
// exist. Environment variables still override file values.
func dotEnvPaths(testing bool) []string {
	paths := []string{".env"}
	if testing {
		testFile := ".env.test"
		if v := os.Getenv("ENV_TEST_FILE"); v != "" {
			testFile = v
		}
		paths = append(paths, testFile)
	}

	var existing []string
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			existing = append(existing, path)
		}
	}
	return existing
}
