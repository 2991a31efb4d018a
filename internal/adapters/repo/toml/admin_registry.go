package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gamezonia/gzone/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	adminsPathKey  = "admins.path"
	adminsFileName = "admins.toml"
)

type AdminRegistry struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.AdminRegistry = (*AdminRegistry)(nil)

func NewAdminRegistry(cfg *viper.Viper) (*AdminRegistry, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	path := cfg.GetString(adminsPathKey)
	if path == "" {
		path = filepath.Join(homeDir, configDirName, adminsFileName)
	}

	path, err = normalizeTablePath(path)
	if err != nil {
		return nil, err
	}

	return &AdminRegistry{path: path, mu: lockForPath(path)}, nil
}

func (r *AdminRegistry) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	return file.Actors, nil
}

func (r *AdminRegistry) ReplaceAll(ctx context.Context, actors []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file := adminsFileSchema{Version: currentSchemaVersion, Actors: actors}

	return writeTOMLFile(r.path, file)
}

func (r *AdminRegistry) readSchema() (adminsFileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return adminsFileSchema{}, nil
		}
		return adminsFileSchema{}, unavailable("read admins table", err)
	}

	var file adminsFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return adminsFileSchema{}, unavailable("decode admins table", err)
	}
	if err := file.validateVersion(); err != nil {
		return adminsFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}
