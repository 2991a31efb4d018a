package sessions

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/gamezonia/gzone/internal/application"
)

type RenderOptions struct {
	Now time.Time
}

func renderView(active []application.ActiveSession, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Active Sessions"),
		s.header.Render(fmt.Sprintf("consoles in use: %d", len(active))),
	}
	if !opts.Now.IsZero() {
		lines = append(lines, s.header.Render(fmt.Sprintf("as of %s", opts.Now.Format("15:04:05"))))
	}

	if len(active) == 0 {
		lines = append(lines, s.empty.Render("No active sessions."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, session := range active {
		lines = append(lines, s.section.Render(renderSession(session, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderSession(session application.ActiveSession, s styles) string {
	header := s.console.Render(fmt.Sprintf("%s — %s", session.Console, session.PlayerName))

	total := time.Duration(session.DurationMinutes) * time.Minute
	bar := renderCountdownBar(session.Remaining, total, 24, s)

	remaining := s.detail.Render(fmt.Sprintf("%s left", formatRemaining(session.Remaining)))
	if session.Remaining <= 0 {
		remaining = s.warning.Render("time up")
	}

	meta := s.amount.Render(fmt.Sprintf("players: %d  add-ons: %d  total: %s",
		session.ControllerCount+1,
		session.AddOns.Units(),
		session.TotalAmount.StringFixed(2),
	))

	countdown := lipgloss.JoinHorizontal(lipgloss.Top, bar, " ", remaining)

	return lipgloss.JoinVertical(lipgloss.Left, header, countdown, meta)
}

func renderCountdownBar(remaining, total time.Duration, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	fraction := 0.0
	if total > 0 {
		fraction = remaining.Seconds() / total.Seconds()
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	filled := int(math.Round(float64(width) * fraction))
	if filled > width {
		filled = width
	}
	empty := width - filled

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", empty)),
		s.barBracket.Render("]"),
	)
}

func formatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}

	remaining = remaining.Round(time.Second)
	minutes := int(remaining.Minutes())
	seconds := int(remaining.Seconds()) % 60

	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
