package cmd

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gamezonia/gzone/internal/domain"
	"github.com/spf13/cobra"
)

func newConsoleCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Manage the console catalog",
	}

	cmd.AddCommand(
		newConsoleListCmd(app),
		newConsoleSetStatusCmd(app),
	)

	return cmd
}

func newConsoleListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List consoles and their status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			consoles, err := app.catalog.List(cmd.Context())
			if err != nil {
				return err
			}

			for _, console := range consoles {
				name := console.Name
				if name == "" {
					name = string(console.ID)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n",
					console.ID, sanitizeForTerminal(name), console.Status)
			}
			return nil
		},
	}
}

func newConsoleSetStatusCmd(app *app) *cobra.Command {
	var (
		console string
		status  string
	)

	cmd := &cobra.Command{
		Use:   "set-status",
		Short: "Set a console's availability flag",
		RunE: func(cmd *cobra.Command, _ []string) error {
			target := domain.ConsoleStatus(status)
			if !target.Valid() {
				return fmt.Errorf("%w: status must be %q or %q", domain.ErrValidation, domain.ConsoleFree, domain.ConsoleInUse)
			}

			if err := app.catalog.SetStatus(cmd.Context(), domain.ConsoleID(console), target); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Console %s is now %s\n", console, target)
			return nil
		},
	}

	cmd.Flags().StringVar(&console, "console", "", "Console ID or name")
	cmd.Flags().StringVar(&status, "status", "", "New status (free or in_use)")
	_ = cmd.MarkFlagRequired("console")
	_ = cmd.MarkFlagRequired("status")

	return cmd
}

func sanitizeForTerminal(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)
}
