package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gamezonia/gzone/internal/domain"
	"github.com/gamezonia/gzone/internal/ports"
	"github.com/shopspring/decimal"
)

// ReportService holds the read-side projections over the session table.
// Pure reads: repeated calls against an unchanged table return identical
// results.
type ReportService struct {
	sessions ports.SessionRepository
	clock    ports.Clock
}

func NewReportService(sessions ports.SessionRepository, clock ports.Clock) *ReportService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &ReportService{sessions: sessions, clock: clock}
}

func (r *ReportService) History(ctx context.Context, filter HistoryFilter) ([]domain.Session, error) {
	all, err := r.sessions.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	matched := make([]domain.Session, 0, len(all))
	for _, session := range all {
		started := session.StartTime.Format(domain.TimeLayout)
		if filter.Date != "" && !strings.HasPrefix(started, filter.Date) {
			continue
		}
		if filter.Month != "" && !strings.HasPrefix(started, filter.Month) {
			continue
		}
		if filter.Console != "" && !strings.Contains(string(session.Console), filter.Console) {
			continue
		}
		matched = append(matched, session)
	}

	return matched, nil
}

func (r *ReportService) Daily(ctx context.Context, date string) (DailyReport, error) {
	sessions, err := r.History(ctx, HistoryFilter{Date: date})
	if err != nil {
		return DailyReport{}, err
	}

	report := DailyReport{Date: date, TotalEarnings: decimal.Zero, Sessions: sessions}
	for _, session := range sessions {
		report.TotalEarnings = report.TotalEarnings.Add(session.TotalAmount)
		report.TotalSessions++
		report.ColdDrinks += session.AddOns.ColdDrinks
		report.Water += session.AddOns.Water
		report.Snacks += session.AddOns.Snacks
		report.TotalPlaytimeMinutes += session.DurationMinutes
	}

	return report, nil
}

func (r *ReportService) Monthly(ctx context.Context, month string) (MonthlyReport, error) {
	sessions, err := r.History(ctx, HistoryFilter{Month: month})
	if err != nil {
		return MonthlyReport{}, err
	}

	report := MonthlyReport{Month: month, TotalEarnings: decimal.Zero, Sessions: sessions}
	for _, session := range sessions {
		report.TotalEarnings = report.TotalEarnings.Add(session.TotalAmount)
		report.TotalSessions++
		report.ColdDrinks += session.AddOns.ColdDrinks
		report.Water += session.AddOns.Water
		report.Snacks += session.AddOns.Snacks
	}

	return report, nil
}

func (r *ReportService) Active(ctx context.Context) ([]ActiveSession, error) {
	all, err := r.sessions.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	now := r.clock.Now()
	active := make([]ActiveSession, 0, len(all))
	for _, session := range all {
		if !session.ActiveAt(now) {
			continue
		}

		active = append(active, ActiveSession{
			Console:         session.Console,
			SessionID:       session.ID,
			PlayerName:      session.PlayerName,
			StartTime:       session.StartTime,
			DurationMinutes: session.DurationMinutes,
			Remaining:       session.RemainingAt(now).Round(time.Second),
			AddOns:          session.AddOns,
			TotalAmount:     session.TotalAmount,
			ControllerCount: session.ControllerCount,
		})
	}

	return active, nil
}
