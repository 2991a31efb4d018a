package application

import (
	"context"
	"fmt"

	"github.com/gamezonia/gzone/internal/domain"
	"github.com/gamezonia/gzone/internal/ports"
)

// AdminConcurrencyCap is the maximum number of privileged actors that may
// hold an open session start at once.
const AdminConcurrencyCap = 2

// AdminGuard enforces the privileged-start cap over a persisted actor list.
// Best effort only: entries outlive the process and the list is not a strict
// lock.
type AdminGuard struct {
	registry ports.AdminRegistry
}

func NewAdminGuard(registry ports.AdminRegistry) *AdminGuard {
	return &AdminGuard{registry: registry}
}

func (g *AdminGuard) TryAcquire(ctx context.Context, actorID string) error {
	actors, err := g.registry.List(ctx)
	if err != nil {
		return fmt.Errorf("list active admins: %w", err)
	}

	if len(actors) >= AdminConcurrencyCap {
		return fmt.Errorf("start by %q: %w", actorID, domain.ErrAdminLimitReached)
	}

	if err := g.registry.ReplaceAll(ctx, append(actors, actorID)); err != nil {
		return fmt.Errorf("record active admin: %w", err)
	}

	return nil
}

type GuardStatus struct {
	Actors []string
	Cap    int
}

func (s GuardStatus) FreeSlots() int {
	free := s.Cap - len(s.Actors)
	if free < 0 {
		return 0
	}
	return free
}

func (g *AdminGuard) Status(ctx context.Context) (GuardStatus, error) {
	actors, err := g.registry.List(ctx)
	if err != nil {
		return GuardStatus{}, fmt.Errorf("list active admins: %w", err)
	}

	return GuardStatus{Actors: actors, Cap: AdminConcurrencyCap}, nil
}

// Reset clears every held slot, the explicit stand-in for the original
// release-at-restart behavior.
func (g *AdminGuard) Reset(ctx context.Context) error {
	if err := g.registry.ReplaceAll(ctx, nil); err != nil {
		return fmt.Errorf("clear active admins: %w", err)
	}

	return nil
}
