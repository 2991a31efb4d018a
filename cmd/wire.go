package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	authadapter "github.com/gamezonia/gzone/internal/adapters/auth"
	sessionsrender "github.com/gamezonia/gzone/internal/adapters/render/sessions"
	tomlrepo "github.com/gamezonia/gzone/internal/adapters/repo/toml"
	"github.com/gamezonia/gzone/internal/application"
	"github.com/gamezonia/gzone/internal/domain"
	"github.com/gamezonia/gzone/internal/ports"
	"github.com/spf13/viper"
)

type app struct {
	sessions       *application.SessionService
	reports        *application.ReportService
	guard          *application.AdminGuard
	catalog        ports.CatalogRepository
	settings       ports.SettingsRepository
	identify       func(token string) (domain.Identity, error)
	activeRenderer func([]application.ActiveSession, sessionsrender.RenderOptions) (string, error)
	activeWatcher  func(ctx context.Context, output io.Writer, fetch sessionsrender.Fetch) error
	now            func() time.Time
}

func wireApp() (*app, error) {
	cfg := viper.New()

	sessionRepo, err := tomlrepo.NewSessionRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire session repository: %w", err)
	}

	catalogRepo, err := tomlrepo.NewCatalogRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire console catalog: %w", err)
	}

	settingsRepo, err := tomlrepo.NewSettingsRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire settings repository: %w", err)
	}

	adminRegistry, err := tomlrepo.NewAdminRegistry(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire admin registry: %w", err)
	}

	tokenSecret := cfg.GetString("auth.token_secret")
	if tokenSecret == "" {
		tokenSecret = os.Getenv("GZONE_TOKEN_SECRET")
	}

	guard := application.NewAdminGuard(adminRegistry)
	clock := ports.SystemClock{}

	return &app{
		sessions:       application.NewSessionService(sessionRepo, settingsRepo, guard, clock),
		reports:        application.NewReportService(sessionRepo, clock),
		guard:          guard,
		catalog:        catalogRepo,
		settings:       settingsRepo,
		identify:       authadapter.NewTokenParser(tokenSecret).Identify,
		activeRenderer: sessionsrender.Render,
		activeWatcher:  sessionsrender.Watch,
		now:            time.Now,
	}, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
