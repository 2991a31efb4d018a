package cmd

import (
	"context"
	"fmt"

	sessionsrender "github.com/gamezonia/gzone/internal/adapters/render/sessions"
	"github.com/gamezonia/gzone/internal/application"
	"github.com/spf13/cobra"
)

func newActiveCmd(app *app) *cobra.Command {
	var (
		asJSON bool
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "active",
		Short: "Show in-progress sessions with remaining time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if watch {
				fetch := func(ctx context.Context) ([]application.ActiveSession, error) {
					return app.reports.Active(ctx)
				}
				return app.activeWatcher(cmd.Context(), cmd.OutOrStdout(), fetch)
			}

			active, err := app.reports.Active(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return encodeJSON(cmd, active)
			}

			rendered, err := app.activeRenderer(active, sessionsrender.RenderOptions{Now: app.now()})
			if err != nil {
				return fmt.Errorf("render active sessions: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	cmd.Flags().BoolVar(&watch, "watch", false, "Refresh the countdown every second")

	return cmd
}
