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
	settingsPathKey  = "settings.path"
	settingsFileName = "settings.toml"
)

type SettingsRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.SettingsRepository = (*SettingsRepository)(nil)

func NewSettingsRepository(cfg *viper.Viper) (*SettingsRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	path := cfg.GetString(settingsPathKey)
	if path == "" {
		path = filepath.Join(homeDir, configDirName, settingsFileName)
	}

	path, err = normalizeTablePath(path)
	if err != nil {
		return nil, err
	}

	return &SettingsRepository{path: path, mu: lockForPath(path)}, nil
}

// UnitPrices reads the snapshot consumed by one cost computation. A missing
// file means prices of zero, the same default the legacy settings applied.
func (r *SettingsRepository) UnitPrices(ctx context.Context) (domain.UnitPrices, error) {
	if err := ctx.Err(); err != nil {
		return domain.UnitPrices{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.UnitPrices{}, err
	}

	return domain.UnitPrices{
		ColdDrink: parseMoney(file.Prices.ColdDrink),
		Water:     parseMoney(file.Prices.Water),
		Snack:     parseMoney(file.Prices.Snack),
	}, nil
}

func (r *SettingsRepository) Save(ctx context.Context, prices domain.UnitPrices) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file := settingsFileSchema{
		Version: currentSchemaVersion,
		Prices: pricesSchema{
			ColdDrink: formatMoney(prices.ColdDrink),
			Water:     formatMoney(prices.Water),
			Snack:     formatMoney(prices.Snack),
		},
	}

	return writeTOMLFile(r.path, file)
}

func (r *SettingsRepository) readSchema() (settingsFileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settingsFileSchema{}, nil
		}
		return settingsFileSchema{}, unavailable("read settings table", err)
	}

	var file settingsFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return settingsFileSchema{}, unavailable("decode settings table", err)
	}
	if err := file.validateVersion(); err != nil {
		return settingsFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}
