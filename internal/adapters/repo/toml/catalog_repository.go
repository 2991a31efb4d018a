package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gamezonia/gzone/internal/domain"
	"github.com/gamezonia/gzone/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	consolesPathKey  = "consoles.path"
	consolesFileName = "consoles.toml"
)

type CatalogRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.CatalogRepository = (*CatalogRepository)(nil)

func NewCatalogRepository(cfg *viper.Viper) (*CatalogRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	path := cfg.GetString(consolesPathKey)
	if path == "" {
		path = filepath.Join(homeDir, configDirName, consolesFileName)
	}

	path, err = normalizeTablePath(path)
	if err != nil {
		return nil, err
	}

	return &CatalogRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *CatalogRepository) List(ctx context.Context) ([]domain.Console, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	consoles := make([]domain.Console, 0, len(file.Consoles))
	for _, entry := range file.Consoles {
		consoles = append(consoles, domain.Console{
			ID:     domain.ConsoleID(entry.ID),
			Name:   entry.Name,
			Status: domain.ConsoleStatus(entry.Status),
		})
	}

	return consoles, nil
}

// SetStatus matches by id or display name, the same lookup the legacy
// catalog allowed.
func (r *CatalogRepository) SetStatus(ctx context.Context, id domain.ConsoleID, status domain.ConsoleStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	found := false
	for i := range file.Consoles {
		if file.Consoles[i].ID == string(id) || file.Consoles[i].Name == string(id) {
			file.Consoles[i].Status = string(status)
			found = true
		}
	}
	if !found {
		return fmt.Errorf("set status of %s: %w", id, domain.ErrConsoleNotFound)
	}

	file.Version = currentSchemaVersion

	return writeTOMLFile(r.path, file)
}

func (r *CatalogRepository) readSchema() (consolesFileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return consolesFileSchema{}, nil
		}
		return consolesFileSchema{}, unavailable("read consoles table", err)
	}

	var file consolesFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return consolesFileSchema{}, unavailable("decode consoles table", err)
	}
	if err := file.validateVersion(); err != nil {
		return consolesFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}
