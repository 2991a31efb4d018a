package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type SessionID string
type ConsoleID string

// TimeLayout is the wire format for session timestamps: local venue time,
// second precision.
const TimeLayout = "2006-01-02 15:04:05"

type Session struct {
	ID              SessionID
	Console         ConsoleID
	PlayerName      string
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	ControllerCount int
	AddOns          AddOnCounts
	BaseCost        decimal.Decimal
	TotalAmount     decimal.Decimal
}

func (s Session) PlayerCount() int {
	return s.ControllerCount + 1
}

// ActiveAt reports whether the session still has rental time left at now.
// The session table is the only authority for console exclusivity; the
// catalog status flag is advisory.
func (s Session) ActiveAt(now time.Time) bool {
	return s.EndTime.After(now)
}

func (s Session) RemainingAt(now time.Time) time.Duration {
	remaining := s.EndTime.Sub(now)
	if remaining < 0 {
		return 0
	}

	return remaining
}
