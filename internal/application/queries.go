package application

import (
	"time"

	"github.com/gamezonia/gzone/internal/domain"
	"github.com/shopspring/decimal"
)

// HistoryFilter narrows the session history projection. Date and Month are
// matched as prefixes of the session start time ("2006-01-02" and
// "2006-01"); Console is a substring match.
type HistoryFilter struct {
	Date    string
	Month   string
	Console string
}

type DailyReport struct {
	Date                 string
	TotalEarnings        decimal.Decimal
	TotalSessions        int
	ColdDrinks           int
	Water                int
	Snacks               int
	TotalPlaytimeMinutes int
	Sessions             []domain.Session
}

type MonthlyReport struct {
	Month         string
	TotalEarnings decimal.Decimal
	TotalSessions int
	ColdDrinks    int
	Water         int
	Snacks        int
	Sessions      []domain.Session
}

// ActiveSession is the countdown projection for one in-progress rental.
// Expiry stays a derived property; callers poll and invoke Stop themselves.
type ActiveSession struct {
	Console         domain.ConsoleID
	SessionID       domain.SessionID
	PlayerName      string
	StartTime       time.Time
	DurationMinutes int
	Remaining       time.Duration
	AddOns          domain.AddOnCounts
	TotalAmount     decimal.Decimal
	ControllerCount int
}
