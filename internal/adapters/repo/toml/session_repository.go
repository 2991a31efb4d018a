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
	sessionsPathKey  = "sessions.path"
	sessionsFileName = "sessions.toml"
)

type SessionRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(cfg *viper.Viper) (*SessionRepository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, configDirName, sessionsFileName)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDirName))
	cfg.SetDefault(sessionsPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	path := cfg.GetString(sessionsPathKey)
	if path == "" {
		return nil, errors.New("sessions path is empty")
	}
	path, err = normalizeTablePath(path)
	if err != nil {
		return nil, err
	}

	return &SessionRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *SessionRepository) LoadAll(ctx context.Context) ([]domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	sessions := make([]domain.Session, 0, len(file.Sessions))
	for _, entry := range file.Sessions {
		sessions = append(sessions, fromSessionSchema(entry))
	}

	return sessions, nil
}

func (r *SessionRepository) ReplaceAll(ctx context.Context, sessions []domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file := sessionsFileSchema{Version: currentSchemaVersion}
	file.Sessions = make([]sessionSchema, 0, len(sessions))
	for _, session := range sessions {
		file.Sessions = append(file.Sessions, toSessionSchema(session))
	}

	return writeTOMLFile(r.path, file)
}

func (r *SessionRepository) readSchema() (sessionsFileSchema, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return sessionsFileSchema{}, nil
		}
		return sessionsFileSchema{}, unavailable("read sessions table", err)
	}

	var file sessionsFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return sessionsFileSchema{}, unavailable("decode sessions table", err)
	}
	if err := file.validateVersion(); err != nil {
		return sessionsFileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func toSessionSchema(session domain.Session) sessionSchema {
	return sessionSchema{
		ID:              string(session.ID),
		Console:         string(session.Console),
		PlayerName:      session.PlayerName,
		StartTime:       formatTime(session.StartTime),
		EndTime:         formatTime(session.EndTime),
		DurationMinutes: session.DurationMinutes,
		ControllerCount: session.ControllerCount,
		ColdDrinks:      session.AddOns.ColdDrinks,
		Water:           session.AddOns.Water,
		Snacks:          session.AddOns.Snacks,
		BaseCost:        formatMoney(session.BaseCost),
		TotalAmount:     formatMoney(session.TotalAmount),
	}
}

func fromSessionSchema(entry sessionSchema) domain.Session {
	return domain.Session{
		ID:              domain.SessionID(entry.ID),
		Console:         domain.ConsoleID(entry.Console),
		PlayerName:      entry.PlayerName,
		StartTime:       parseTime(entry.StartTime),
		EndTime:         parseTime(entry.EndTime),
		DurationMinutes: entry.DurationMinutes,
		ControllerCount: entry.ControllerCount,
		AddOns: domain.AddOnCounts{
			ColdDrinks: entry.ColdDrinks,
			Water:      entry.Water,
			Snacks:     entry.Snacks,
		},
		BaseCost:    parseMoney(entry.BaseCost),
		TotalAmount: parseMoney(entry.TotalAmount),
	}
}
