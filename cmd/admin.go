package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAdminCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Inspect and reset the privileged-start slots",
	}

	cmd.AddCommand(
		newAdminStatusCmd(app),
		newAdminResetCmd(app),
	)

	return cmd
}

func newAdminStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show held privileged-start slots",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := app.guard.Status(cmd.Context())
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "slots: %d/%d\n", len(status.Actors), status.Cap)
			if len(status.Actors) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "actors: none")
				return nil
			}

			actors := make([]string, 0, len(status.Actors))
			for _, actor := range status.Actors {
				actors = append(actors, sanitizeForTerminal(actor))
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "actors: %s\n", strings.Join(actors, ", "))
			return nil
		},
	}
}

func newAdminResetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Release all privileged-start slots",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.guard.Reset(cmd.Context()); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "All slots released")
			return nil
		},
	}
}
