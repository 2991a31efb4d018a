package application

import (
	"fmt"
	"strings"

	"github.com/gamezonia/gzone/internal/domain"
)

type StartSessionCommand struct {
	Console         domain.ConsoleID
	PlayerName      string
	DurationMinutes int
	ControllerCount int
	AddOns          domain.AddOnCounts
	Actor           domain.Identity
}

func (c StartSessionCommand) Validate() error {
	if strings.TrimSpace(string(c.Console)) == "" {
		return fmt.Errorf("%w: console is required", domain.ErrValidation)
	}
	if strings.TrimSpace(c.PlayerName) == "" {
		return fmt.Errorf("%w: player name is required", domain.ErrValidation)
	}
	if c.DurationMinutes <= 0 {
		return fmt.Errorf("%w: duration must be positive", domain.ErrValidation)
	}

	return nil
}

type ExtendSessionCommand struct {
	Console      domain.ConsoleID
	ExtraMinutes int
}

func (c ExtendSessionCommand) Validate() error {
	if strings.TrimSpace(string(c.Console)) == "" {
		return fmt.Errorf("%w: console is required", domain.ErrValidation)
	}
	if c.ExtraMinutes <= 0 {
		return fmt.Errorf("%w: extra minutes must be positive", domain.ErrValidation)
	}

	return nil
}

type SetAddOnsCommand struct {
	Console domain.ConsoleID
	AddOns  domain.AddOnCounts
	// ControllerCount, when set, overwrites the session's controller count
	// and forces a base-cost recompute against the unchanged duration.
	ControllerCount *int
}

func (c SetAddOnsCommand) Validate() error {
	if strings.TrimSpace(string(c.Console)) == "" {
		return fmt.Errorf("%w: console is required", domain.ErrValidation)
	}

	return nil
}
