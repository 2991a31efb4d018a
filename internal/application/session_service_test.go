package application

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tomlrepo "github.com/gamezonia/gzone/internal/adapters/repo/toml"
	"github.com/gamezonia/gzone/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type testEnv struct {
	sessions *tomlrepo.SessionRepository
	settings *tomlrepo.SettingsRepository
	guard    *AdminGuard
	clock    *fakeClock
	service  *SessionService
}

func newTestEnv(t *testing.T, now time.Time) *testEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	cfg := viper.New()
	cfg.Set("sessions.path", filepath.Join(dir, "sessions.toml"))
	cfg.Set("settings.path", filepath.Join(dir, "settings.toml"))
	cfg.Set("admins.path", filepath.Join(dir, "admins.toml"))

	sessions, err := tomlrepo.NewSessionRepository(cfg)
	require.NoError(t, err)
	settings, err := tomlrepo.NewSettingsRepository(cfg)
	require.NoError(t, err)
	admins, err := tomlrepo.NewAdminRegistry(cfg)
	require.NoError(t, err)

	require.NoError(t, settings.Save(context.Background(), domain.UnitPrices{
		ColdDrink: decimal.RequireFromString("5"),
		Water:     decimal.RequireFromString("2.5"),
		Snack:     decimal.RequireFromString("7"),
	}))

	guard := NewAdminGuard(admins)
	clock := &fakeClock{now: now}

	return &testEnv{
		sessions: sessions,
		settings: settings,
		guard:    guard,
		clock:    clock,
		service:  NewSessionService(sessions, settings, guard, clock),
	}
}

func daytime(t *testing.T) time.Time {
	t.Helper()
	return time.Date(2026, 3, 2, 10, 0, 0, 0, time.Local)
}

func TestStartCreatesAndPersistsSession(t *testing.T) {
	env := newTestEnv(t, daytime(t))

	session, err := env.service.Start(context.Background(), StartSessionCommand{
		Console:         "PS5-1",
		PlayerName:      "Omar",
		DurationMinutes: 60,
		AddOns:          domain.AddOnCounts{ColdDrinks: 1},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, domain.ConsoleID("PS5-1"), session.Console)
	assert.Equal(t, env.clock.now, session.StartTime)
	assert.Equal(t, env.clock.now.Add(time.Hour), session.EndTime)
	assert.Equal(t, "30.00", session.BaseCost.StringFixed(2))
	assert.Equal(t, "35.00", session.TotalAmount.StringFixed(2))

	all, err := env.sessions.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, session.ID, all[0].ID)
}

func TestStartRejectsBusyConsole(t *testing.T) {
	env := newTestEnv(t, daytime(t))

	_, err := env.service.Start(context.Background(), StartSessionCommand{
		Console: "PS5-1", PlayerName: "Omar", DurationMinutes: 60,
	})
	require.NoError(t, err)

	_, err = env.service.Start(context.Background(), StartSessionCommand{
		Console: "PS5-1", PlayerName: "Lina", DurationMinutes: 30,
	})
	require.ErrorIs(t, err, domain.ErrConsoleBusy)
}

func TestStartAllowsConsoleAgainAfterExpiry(t *testing.T) {
	env := newTestEnv(t, daytime(t))

	_, err := env.service.Start(context.Background(), StartSessionCommand{
		Console: "PS5-1", PlayerName: "Omar", DurationMinutes: 30,
	})
	require.NoError(t, err)

	env.clock.Advance(31 * time.Minute)

	_, err = env.service.Start(context.Background(), StartSessionCommand{
		Console: "PS5-1", PlayerName: "Lina", DurationMinutes: 30,
	})
	require.NoError(t, err)

	all, err := env.sessions.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStartValidatesInput(t *testing.T) {
	env := newTestEnv(t, daytime(t))

	_, err := env.service.Start(context.Background(), StartSessionCommand{
		Console: "PS5-1", PlayerName: "  ", DurationMinutes: 60,
	})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = env.service.Start(context.Background(), StartSessionCommand{
		Console: "PS5-1", PlayerName: "Omar", DurationMinutes: 0,
	})
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestStartPrivilegedActorsHitConcurrencyCap(t *testing.T) {
	env := newTestEnv(t, daytime(t))

	starts := []struct {
		console domain.ConsoleID
		actor   string
	}{
		{"PS5-1", "admin-1"},
		{"PS5-2", "admin-2"},
	}
	for _, start := range starts {
		_, err := env.service.Start(context.Background(), StartSessionCommand{
			Console:         start.console,
			PlayerName:      "Admin",
			DurationMinutes: 60,
			Actor:           domain.Identity{ActorID: start.actor, Privileged: true},
		})
		require.NoError(t, err)
	}

	_, err := env.service.Start(context.Background(), StartSessionCommand{
		Console:         "PS5-3",
		PlayerName:      "Admin",
		DurationMinutes: 60,
		Actor:           domain.Identity{ActorID: "admin-3", Privileged: true},
	})
	require.ErrorIs(t, err, domain.ErrAdminLimitReached)

	status, err := env.guard.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, status.FreeSlots())
}

func TestStartAnonymousActorSkipsGuard(t *testing.T) {
	env := newTestEnv(t, daytime(t))

	_, err := env.service.Start(context.Background(), StartSessionCommand{
		Console: "PS5-1", PlayerName: "Omar", DurationMinutes: 60,
	})
	require.NoError(t, err)

	status, err := env.guard.Status(context.Background())
	require.NoError(t, err)
	assert.Empty(t, status.Actors)
}

func TestExtendRecomputesDurationAndCost(t *testing.T) {
	env := newTestEnv(t, daytime(t))

	started, err := env.service.Start(context.Background(), StartSessionCommand{
		Console: "PS5-1", PlayerName: "Omar", DurationMinutes: 60,
	})
	require.NoError(t, err)

	extended, err := env.service.Extend(context.Background(), ExtendSessionCommand{
		Console: "PS5-1", ExtraMinutes: 30,
	})
	require.NoError(t, err)

	assert.Equal(t, started.ID, extended.ID)
	assert.Equal(t, 90, extended.DurationMinutes)
	assert.Equal(t, started.StartTime.Add(90*time.Minute), extended.EndTime)
	assert.Equal(t, "45.00", extended.BaseCost.StringFixed(2))
}

func TestExtendWithoutActiveSessionFails(t *testing.T) {
	env := newTestEnv(t, daytime(t))

	_, err := env.service.Extend(context.Background(), ExtendSessionCommand{
		Console: "PS5-1", ExtraMinutes: 30,
	})
	require.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestSetAddOnsReplacesWholeSet(t *testing.T) {
	env := newTestEnv(t, daytime(t))

	_, err := env.service.Start(context.Background(), StartSessionCommand{
		Console:         "PS5-1",
		PlayerName:      "Omar",
		DurationMinutes: 60,
		AddOns:          domain.AddOnCounts{ColdDrinks: 2},
	})
	require.NoError(t, err)

	session, err := env.service.SetAddOns(context.Background(), SetAddOnsCommand{
		Console: "PS5-1",
		AddOns:  domain.AddOnCounts{Water: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.AddOnCounts{Water: 1}, session.AddOns)
	assert.Equal(t, "30.00", session.BaseCost.StringFixed(2))
	assert.Equal(t, "32.50", session.TotalAmount.StringFixed(2))
}

func TestSetAddOnsWithControllersRepricesBase(t *testing.T) {
	env := newTestEnv(t, daytime(t))

	_, err := env.service.Start(context.Background(), StartSessionCommand{
		Console: "PS5-1", PlayerName: "Omar", DurationMinutes: 60,
	})
	require.NoError(t, err)

	controllers := 1
	session, err := env.service.SetAddOns(context.Background(), SetAddOnsCommand{
		Console:         "PS5-1",
		AddOns:          domain.AddOnCounts{},
		ControllerCount: &controllers,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, session.ControllerCount)
	assert.Equal(t, 60, session.DurationMinutes)
	assert.Equal(t, "60.00", session.BaseCost.StringFixed(2))
	assert.Equal(t, "60.00", session.TotalAmount.StringFixed(2))
}

func TestStopBillsElapsedMinutes(t *testing.T) {
	env := newTestEnv(t, daytime(t))

	started, err := env.service.Start(context.Background(), StartSessionCommand{
		Console: "PS5-1", PlayerName: "Omar", DurationMinutes: 60,
	})
	require.NoError(t, err)

	env.clock.Advance(25 * time.Minute)

	stopped, err := env.service.Stop(context.Background(), "PS5-1")
	require.NoError(t, err)

	assert.Equal(t, started.ID, stopped.ID)
	assert.Equal(t, 25, stopped.DurationMinutes)
	assert.Equal(t, env.clock.now, stopped.EndTime)
	assert.Equal(t, "12.50", stopped.TotalAmount.StringFixed(2))
}

func TestStopWithoutActiveSessionFails(t *testing.T) {
	env := newTestEnv(t, daytime(t))

	_, err := env.service.Stop(context.Background(), "PS5-1")
	require.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestDeleteRemovesSessionByID(t *testing.T) {
	env := newTestEnv(t, daytime(t))

	started, err := env.service.Start(context.Background(), StartSessionCommand{
		Console: "PS5-1", PlayerName: "Omar", DurationMinutes: 60,
	})
	require.NoError(t, err)

	require.NoError(t, env.service.Delete(context.Background(), started.ID))

	all, err := env.sessions.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDeleteUnknownIDLeavesTableUntouched(t *testing.T) {
	env := newTestEnv(t, daytime(t))

	_, err := env.service.Start(context.Background(), StartSessionCommand{
		Console: "PS5-1", PlayerName: "Omar", DurationMinutes: 60,
	})
	require.NoError(t, err)

	err = env.service.Delete(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrSessionNotFound)

	all, err := env.sessions.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStartAssignsDistinctIDsUnderFrozenClock(t *testing.T) {
	env := newTestEnv(t, daytime(t))

	first, err := env.service.Start(context.Background(), StartSessionCommand{
		Console: "PS5-1", PlayerName: "Omar", DurationMinutes: 60,
	})
	require.NoError(t, err)

	second, err := env.service.Start(context.Background(), StartSessionCommand{
		Console: "PS5-2", PlayerName: "Lina", DurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}
