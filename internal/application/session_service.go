package application

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gamezonia/gzone/internal/domain"
	"github.com/gamezonia/gzone/internal/ports"
)

// SessionService is the session lifecycle engine. Every mutation is a
// load-all / mutate-in-memory / replace-all cycle over the session table;
// mu is the single global write-serialization point, so no two table
// rewrites can interleave.
type SessionService struct {
	sessions ports.SessionRepository
	settings ports.SettingsRepository
	guard    *AdminGuard
	clock    ports.Clock

	mu sync.Mutex
}

func NewSessionService(sessions ports.SessionRepository, settings ports.SettingsRepository, guard *AdminGuard, clock ports.Clock) *SessionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &SessionService{
		sessions: sessions,
		settings: settings,
		guard:    guard,
		clock:    clock,
	}
}

func (s *SessionService) Start(ctx context.Context, cmd StartSessionCommand) (domain.Session, error) {
	if err := cmd.Validate(); err != nil {
		return domain.Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prices, err := s.settings.UnitPrices(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load unit prices: %w", err)
	}

	all, err := s.sessions.LoadAll(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load sessions: %w", err)
	}

	now := s.clock.Now().Truncate(time.Second)
	if activeIndex(all, cmd.Console, now) >= 0 {
		return domain.Session{}, fmt.Errorf("start on %s: %w", cmd.Console, domain.ErrConsoleBusy)
	}

	if cmd.Actor.Privileged {
		if err := s.guard.TryAcquire(ctx, cmd.Actor.ActorID); err != nil {
			return domain.Session{}, err
		}
	}

	base, total := domain.Cost(now, cmd.DurationMinutes, cmd.ControllerCount, cmd.AddOns, prices)

	session := domain.Session{
		ID:              nextSessionID(all, now),
		Console:         cmd.Console,
		PlayerName:      strings.TrimSpace(cmd.PlayerName),
		StartTime:       now,
		EndTime:         now.Add(time.Duration(cmd.DurationMinutes) * time.Minute),
		DurationMinutes: cmd.DurationMinutes,
		ControllerCount: cmd.ControllerCount,
		AddOns:          cmd.AddOns.Clamped(),
		BaseCost:        base,
		TotalAmount:     total,
	}

	if err := s.sessions.ReplaceAll(ctx, append(all, session)); err != nil {
		return domain.Session{}, fmt.Errorf("persist started session: %w", err)
	}

	return session, nil
}

func (s *SessionService) Extend(ctx context.Context, cmd ExtendSessionCommand) (domain.Session, error) {
	if err := cmd.Validate(); err != nil {
		return domain.Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prices, err := s.settings.UnitPrices(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load unit prices: %w", err)
	}

	all, err := s.sessions.LoadAll(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load sessions: %w", err)
	}

	now := s.clock.Now().Truncate(time.Second)
	idx := activeIndex(all, cmd.Console, now)
	if idx < 0 {
		return domain.Session{}, fmt.Errorf("extend on %s: %w", cmd.Console, domain.ErrNoActiveSession)
	}

	session := all[idx]
	session.DurationMinutes += cmd.ExtraMinutes
	session.EndTime = session.StartTime.Add(time.Duration(session.DurationMinutes) * time.Minute)
	session.BaseCost, session.TotalAmount = domain.Cost(now, session.DurationMinutes, session.ControllerCount, session.AddOns, prices)
	all[idx] = session

	if err := s.sessions.ReplaceAll(ctx, all); err != nil {
		return domain.Session{}, fmt.Errorf("persist extended session: %w", err)
	}

	return session, nil
}

func (s *SessionService) SetAddOns(ctx context.Context, cmd SetAddOnsCommand) (domain.Session, error) {
	if err := cmd.Validate(); err != nil {
		return domain.Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prices, err := s.settings.UnitPrices(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load unit prices: %w", err)
	}

	all, err := s.sessions.LoadAll(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load sessions: %w", err)
	}

	now := s.clock.Now().Truncate(time.Second)
	idx := activeIndex(all, cmd.Console, now)
	if idx < 0 {
		return domain.Session{}, fmt.Errorf("add-ons on %s: %w", cmd.Console, domain.ErrNoActiveSession)
	}

	session := all[idx]
	session.AddOns = cmd.AddOns.Clamped()
	if cmd.ControllerCount != nil {
		controllers := *cmd.ControllerCount
		if controllers < 0 {
			controllers = 0
		}
		session.ControllerCount = controllers
		// Controller change reprices the base against the unchanged duration.
		session.BaseCost = domain.BaseCost(now, session.DurationMinutes, session.ControllerCount)
	}
	session.TotalAmount = session.BaseCost.Add(domain.AddOnCost(session.AddOns, prices))
	all[idx] = session

	if err := s.sessions.ReplaceAll(ctx, all); err != nil {
		return domain.Session{}, fmt.Errorf("persist session add-ons: %w", err)
	}

	return session, nil
}

func (s *SessionService) Stop(ctx context.Context, console domain.ConsoleID) (domain.Session, error) {
	if strings.TrimSpace(string(console)) == "" {
		return domain.Session{}, fmt.Errorf("%w: console is required", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prices, err := s.settings.UnitPrices(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load unit prices: %w", err)
	}

	all, err := s.sessions.LoadAll(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("load sessions: %w", err)
	}

	now := s.clock.Now().Truncate(time.Second)
	idx := activeIndex(all, console, now)
	if idx < 0 {
		return domain.Session{}, fmt.Errorf("stop on %s: %w", console, domain.ErrNoActiveSession)
	}

	session := all[idx]
	// Bill the wall-clock time actually played, not the planned duration.
	elapsed := int(now.Sub(session.StartTime).Minutes())
	session.DurationMinutes = elapsed
	session.EndTime = now
	session.BaseCost, session.TotalAmount = domain.Cost(now, elapsed, session.ControllerCount, session.AddOns, prices)
	all[idx] = session

	if err := s.sessions.ReplaceAll(ctx, all); err != nil {
		return domain.Session{}, fmt.Errorf("persist stopped session: %w", err)
	}

	return session, nil
}

func (s *SessionService) Delete(ctx context.Context, id domain.SessionID) error {
	if strings.TrimSpace(string(id)) == "" {
		return fmt.Errorf("%w: session id is required", domain.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.sessions.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load sessions: %w", err)
	}

	kept := make([]domain.Session, 0, len(all))
	for _, session := range all {
		if session.ID != id {
			kept = append(kept, session)
		}
	}
	if len(kept) == len(all) {
		return fmt.Errorf("delete %s: %w", id, domain.ErrSessionNotFound)
	}

	if err := s.sessions.ReplaceAll(ctx, kept); err != nil {
		return fmt.Errorf("persist session delete: %w", err)
	}

	return nil
}

func activeIndex(sessions []domain.Session, console domain.ConsoleID, now time.Time) int {
	for i, session := range sessions {
		if session.Console == console && session.ActiveAt(now) {
			return i
		}
	}

	return -1
}

// nextSessionID mirrors the historical millisecond-epoch IDs and bumps past
// collisions within the table.
func nextSessionID(sessions []domain.Session, now time.Time) domain.SessionID {
	candidate := now.UnixMilli()
	for hasSessionID(sessions, domain.SessionID(strconv.FormatInt(candidate, 10))) {
		candidate++
	}

	return domain.SessionID(strconv.FormatInt(candidate, 10))
}

func hasSessionID(sessions []domain.Session, id domain.SessionID) bool {
	for _, session := range sessions {
		if session.ID == id {
			return true
		}
	}

	return false
}
