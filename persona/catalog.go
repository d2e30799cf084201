package persona

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/tymeless/legacychat/entity"
	"github.com/tymeless/legacychat/errors"
)

type (
	// Catalog is read-only access to the personas available for
	// conversation.
	Catalog interface {
		Personas(ctx context.Context) ([]entity.Persona, error)
	}

	// FileCatalog loads persona definitions from a directory of YAML
	// files, one persona per file.
	FileCatalog struct {
		dir string
	}

	// StaticCatalog serves a fixed persona list.
	StaticCatalog struct {
		personas []entity.Persona
	}
)

var (
	_ Catalog = (*FileCatalog)(nil)
	_ Catalog = (*StaticCatalog)(nil)
)

func NewFileCatalog(dir string) *FileCatalog {
	return &FileCatalog{dir: dir}
}

func (c *FileCatalog) Personas(ctx context.Context) ([]entity.Persona, error) {
	var personas []entity.Persona

	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || (!strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml")) {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "failed to read persona file: %s", path)
		}

		var p entity.Persona
		if err := yaml.Unmarshal(raw, &p); err != nil {
			return errors.Wrapf(err, "failed to unmarshal persona file: %s", path)
		}
		if p.ID == "" {
			p.ID = strings.TrimSuffix(strings.TrimSuffix(d.Name(), ".yaml"), ".yml")
		}
		personas = append(personas, p)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCatalogUnavailable, "failed to load persona catalog from %s: %v", c.dir, err)
	}

	return personas, nil
}

func NewStaticCatalog(personas ...entity.Persona) *StaticCatalog {
	return &StaticCatalog{personas: personas}
}

func (c *StaticCatalog) Personas(ctx context.Context) ([]entity.Persona, error) {
	return c.personas, nil
}
