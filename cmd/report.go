package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/gamezonia/gzone/internal/application"
	"github.com/gamezonia/gzone/internal/domain"
	"github.com/spf13/cobra"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

func newReportCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Session history and earnings reports",
	}

	cmd.AddCommand(
		newReportHistoryCmd(app),
		newReportDailyCmd(app),
		newReportMonthlyCmd(app),
	)

	return cmd
}

func newReportHistoryCmd(app *app) *cobra.Command {
	var (
		date    string
		month   string
		console string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past sessions, optionally filtered",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessions, err := app.reports.History(cmd.Context(), application.HistoryFilter{
				Date:    date,
				Month:   month,
				Console: console,
			})
			if err != nil {
				return err
			}

			if asJSON {
				return encodeJSON(cmd, sessions)
			}

			for _, session := range sessions {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%dmin\t%s\n",
					session.ID, session.Console, session.PlayerName,
					session.StartTime.Format(domain.TimeLayout),
					session.DurationMinutes,
					session.TotalAmount.StringFixed(2))
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sessions: %d\n", len(sessions))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Filter by day (YYYY-MM-DD)")
	cmd.Flags().StringVar(&month, "month", "", "Filter by month (YYYY-MM)")
	cmd.Flags().StringVar(&console, "console", "", "Filter by console")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func newReportDailyCmd(app *app) *cobra.Command {
	var (
		date   string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Earnings and add-on totals for one day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if date == "" {
				date = app.now().Format(dateLayout)
			}

			report, err := app.reports.Daily(cmd.Context(), date)
			if err != nil {
				return err
			}

			if asJSON {
				return encodeJSON(cmd, report)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "date: %s\n", report.Date)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sessions: %d\n", report.TotalSessions)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "earnings: %s\n", report.TotalEarnings.StringFixed(2))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "playtime: %d minutes\n", report.TotalPlaytimeMinutes)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "add-ons: %d cold drinks, %d water, %d snacks\n",
				report.ColdDrinks, report.Water, report.Snacks)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to report (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func newReportMonthlyCmd(app *app) *cobra.Command {
	var (
		month  string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Earnings and add-on totals for one month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if month == "" {
				month = app.now().Format(monthLayout)
			}

			report, err := app.reports.Monthly(cmd.Context(), month)
			if err != nil {
				return err
			}

			if asJSON {
				return encodeJSON(cmd, report)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "month: %s\n", report.Month)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "sessions: %d\n", report.TotalSessions)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "earnings: %s\n", report.TotalEarnings.StringFixed(2))
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "add-ons: %d cold drinks, %d water, %d snacks\n",
				report.ColdDrinks, report.Water, report.Snacks)
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to report (YYYY-MM, default current)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")

	return cmd
}

func encodeJSON(cmd *cobra.Command, value any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
