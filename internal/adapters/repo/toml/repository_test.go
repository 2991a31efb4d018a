package toml

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gamezonia/gzone/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionRepository(t *testing.T) (*SessionRepository, string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "sessions.toml")
	cfg := viper.New()
	cfg.Set("sessions.path", path)

	repo, err := NewSessionRepository(cfg)
	require.NoError(t, err)

	return repo, path
}

func newTestCatalogRepository(t *testing.T) (*CatalogRepository, string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "consoles.toml")
	cfg := viper.New()
	cfg.Set("consoles.path", path)

	repo, err := NewCatalogRepository(cfg)
	require.NoError(t, err)

	return repo, path
}

func TestSessionTableRoundTrip(t *testing.T) {
	repo, _ := newTestSessionRepository(t)

	start := time.Date(2026, 3, 1, 18, 0, 0, 0, time.Local)
	session := domain.Session{
		ID:              "1700000000001",
		Console:         "PS5-1",
		PlayerName:      "Omar",
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		DurationMinutes: 60,
		ControllerCount: 1,
		AddOns:          domain.AddOnCounts{ColdDrinks: 2, Snacks: 1},
		BaseCost:        decimal.RequireFromString("60"),
		TotalAmount:     decimal.RequireFromString("77.50"),
	}

	require.NoError(t, repo.ReplaceAll(context.Background(), []domain.Session{session}))

	loaded, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	assert.Equal(t, session.ID, loaded[0].ID)
	assert.Equal(t, session.Console, loaded[0].Console)
	assert.Equal(t, session.PlayerName, loaded[0].PlayerName)
	assert.True(t, loaded[0].StartTime.Equal(start))
	assert.True(t, loaded[0].EndTime.Equal(start.Add(time.Hour)))
	assert.Equal(t, session.AddOns, loaded[0].AddOns)
	assert.Equal(t, "60.00", loaded[0].BaseCost.StringFixed(2))
	assert.Equal(t, "77.50", loaded[0].TotalAmount.StringFixed(2))
}

func TestSessionLoadAllMissingFileReturnsEmptyTable(t *testing.T) {
	repo, _ := newTestSessionRepository(t)

	loaded, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSessionLoadAllMalformedTableIsStoreUnavailable(t *testing.T) {
	repo, path := newTestSessionRepository(t)
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0o600))

	_, err := repo.LoadAll(context.Background())
	require.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestSessionLoadAllRejectsNewerSchemaVersion(t *testing.T) {
	repo, path := newTestSessionRepository(t)
	require.NoError(t, os.WriteFile(path, []byte("version = 2\n"), 0o600))

	_, err := repo.LoadAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported sessions schema version 2")
}

func TestSessionLoadAllToleratesMalformedMoneyAndTime(t *testing.T) {
	repo, path := newTestSessionRepository(t)

	table := `version = 1

[[sessions]]
id = "1"
console = "PS5-1"
player_name = "Omar"
start_time = "not a time"
end_time = ""
duration_minutes = 60
total_amount = "not money"
`
	require.NoError(t, os.WriteFile(path, []byte(table), 0o600))

	loaded, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.True(t, loaded[0].StartTime.IsZero())
	assert.True(t, loaded[0].EndTime.IsZero())
	assert.True(t, loaded[0].TotalAmount.IsZero())
}

func TestReplaceAllLeavesNoTempFilesAndRestrictsMode(t *testing.T) {
	repo, path := newTestSessionRepository(t)

	require.NoError(t, repo.ReplaceAll(context.Background(), []domain.Session{{ID: "1", Console: "PS5-1"}}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(tableFileMode), info.Mode().Perm())

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".table-*"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestReplaceAllOverwritesWholeTable(t *testing.T) {
	repo, _ := newTestSessionRepository(t)

	require.NoError(t, repo.ReplaceAll(context.Background(), []domain.Session{
		{ID: "1", Console: "PS5-1"},
		{ID: "2", Console: "PS5-2"},
	}))
	require.NoError(t, repo.ReplaceAll(context.Background(), []domain.Session{
		{ID: "3", Console: "XBOX-1"},
	}))

	loaded, err := repo.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, domain.SessionID("3"), loaded[0].ID)
}

func TestCatalogListMissingFileReturnsEmptyCatalog(t *testing.T) {
	repo, _ := newTestCatalogRepository(t)

	consoles, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, consoles)
}

func TestCatalogSetStatusMatchesByIDOrName(t *testing.T) {
	repo, path := newTestCatalogRepository(t)

	catalog := `version = 1

[[consoles]]
id = "PS5-1"
name = "Living Room PS5"
status = "free"

[[consoles]]
id = "XBOX-2"
name = "Corner Xbox"
status = "free"
`
	require.NoError(t, os.WriteFile(path, []byte(catalog), 0o600))

	require.NoError(t, repo.SetStatus(context.Background(), "PS5-1", domain.ConsoleInUse))
	require.NoError(t, repo.SetStatus(context.Background(), "Corner Xbox", domain.ConsoleInUse))

	consoles, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, consoles, 2)
	assert.Equal(t, domain.ConsoleInUse, consoles[0].Status)
	assert.Equal(t, domain.ConsoleInUse, consoles[1].Status)
}

func TestCatalogSetStatusUnknownConsoleFails(t *testing.T) {
	repo, path := newTestCatalogRepository(t)
	require.NoError(t, os.WriteFile(path, []byte("version = 1\n"), 0o600))

	err := repo.SetStatus(context.Background(), "missing", domain.ConsoleFree)
	require.ErrorIs(t, err, domain.ErrConsoleNotFound)
}

func TestSettingsRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := viper.New()
	cfg.Set("settings.path", filepath.Join(t.TempDir(), "settings.toml"))

	repo, err := NewSettingsRepository(cfg)
	require.NoError(t, err)

	saved := domain.UnitPrices{
		ColdDrink: decimal.RequireFromString("5"),
		Water:     decimal.RequireFromString("2.5"),
		Snack:     decimal.RequireFromString("7"),
	}
	require.NoError(t, repo.Save(context.Background(), saved))

	loaded, err := repo.UnitPrices(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "5.00", loaded.ColdDrink.StringFixed(2))
	assert.Equal(t, "2.50", loaded.Water.StringFixed(2))
	assert.Equal(t, "7.00", loaded.Snack.StringFixed(2))
}

func TestSettingsMissingFileDefaultsToZeroPrices(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := viper.New()
	cfg.Set("settings.path", filepath.Join(t.TempDir(), "settings.toml"))

	repo, err := NewSettingsRepository(cfg)
	require.NoError(t, err)

	prices, err := repo.UnitPrices(context.Background())
	require.NoError(t, err)
	assert.True(t, prices.ColdDrink.IsZero())
	assert.True(t, prices.Water.IsZero())
	assert.True(t, prices.Snack.IsZero())
}

func TestAdminRegistryRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := viper.New()
	cfg.Set("admins.path", filepath.Join(t.TempDir(), "admins.toml"))

	registry, err := NewAdminRegistry(cfg)
	require.NoError(t, err)

	actors, err := registry.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, actors)

	require.NoError(t, registry.ReplaceAll(context.Background(), []string{"admin-1", "admin-2"}))

	actors, err = registry.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"admin-1", "admin-2"}, actors)

	require.NoError(t, registry.ReplaceAll(context.Background(), nil))

	actors, err = registry.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, actors)
}
