package cmd

import (
	"fmt"

	"github.com/gamezonia/gzone/internal/application"
	"github.com/gamezonia/gzone/internal/domain"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage rental sessions",
	}

	cmd.AddCommand(
		newSessionStartCmd(app),
		newSessionExtendCmd(app),
		newSessionAddOnsCmd(app),
		newSessionStopCmd(app),
		newSessionDeleteCmd(app),
	)

	return cmd
}

func newSessionStartCmd(app *app) *cobra.Command {
	var (
		console     string
		player      string
		duration    int
		controllers int
		coldDrinks  int
		water       int
		snacks      int
		token       string
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a timed session on a console",
		RunE: func(cmd *cobra.Command, _ []string) error {
			actor, err := app.identify(token)
			if err != nil {
				return err
			}

			session, err := app.sessions.Start(cmd.Context(), application.StartSessionCommand{
				Console:         domain.ConsoleID(console),
				PlayerName:      player,
				DurationMinutes: duration,
				ControllerCount: controllers,
				AddOns: domain.AddOnCounts{
					ColdDrinks: coldDrinks,
					Water:      water,
					Snacks:     snacks,
				},
				Actor: actor,
			})
			if err != nil {
				return err
			}

			markConsole(cmd, app, session.Console, domain.ConsoleInUse)

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Started session %s on %s for %s\n", session.ID, session.Console, session.PlayerName)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ends at %s, total %s\n", session.EndTime.Format(domain.TimeLayout), session.TotalAmount.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&console, "console", "", "Console ID")
	cmd.Flags().StringVar(&player, "player", "", "Player name")
	cmd.Flags().IntVar(&duration, "duration", 60, "Session duration in minutes")
	cmd.Flags().IntVar(&controllers, "controllers", 0, "Extra controllers beyond the first player")
	cmd.Flags().IntVar(&coldDrinks, "cold-drinks", 0, "Cold drinks sold with the session")
	cmd.Flags().IntVar(&water, "water", 0, "Water bottles sold with the session")
	cmd.Flags().IntVar(&snacks, "snacks", 0, "Snacks sold with the session")
	cmd.Flags().StringVar(&token, "token", envOrDefault("GZONE_TOKEN", ""), "Actor token")
	_ = cmd.MarkFlagRequired("console")
	_ = cmd.MarkFlagRequired("player")

	return cmd
}

func newSessionExtendCmd(app *app) *cobra.Command {
	var (
		console string
		minutes int
	)

	cmd := &cobra.Command{
		Use:   "extend",
		Short: "Add playtime to the active session on a console",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.sessions.Extend(cmd.Context(), application.ExtendSessionCommand{
				Console:      domain.ConsoleID(console),
				ExtraMinutes: minutes,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Extended session on %s to %d minutes\n", session.Console, session.DurationMinutes)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ends at %s, total %s\n", session.EndTime.Format(domain.TimeLayout), session.TotalAmount.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&console, "console", "", "Console ID")
	cmd.Flags().IntVar(&minutes, "minutes", 30, "Extra minutes to add")
	_ = cmd.MarkFlagRequired("console")

	return cmd
}

func newSessionAddOnsCmd(app *app) *cobra.Command {
	var (
		console     string
		coldDrinks  int
		water       int
		snacks      int
		controllers int
	)

	cmd := &cobra.Command{
		Use:   "addons",
		Short: "Replace the add-ons on the active session of a console",
		RunE: func(cmd *cobra.Command, _ []string) error {
			setCmd := application.SetAddOnsCommand{
				Console: domain.ConsoleID(console),
				AddOns: domain.AddOnCounts{
					ColdDrinks: coldDrinks,
					Water:      water,
					Snacks:     snacks,
				},
			}
			if cmd.Flags().Changed("controllers") {
				setCmd.ControllerCount = &controllers
			}

			session, err := app.sessions.SetAddOns(cmd.Context(), setCmd)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated add-ons on %s: %d cold drinks, %d water, %d snacks\n",
				session.Console, session.AddOns.ColdDrinks, session.AddOns.Water, session.AddOns.Snacks)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "total %s\n", session.TotalAmount.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&console, "console", "", "Console ID")
	cmd.Flags().IntVar(&coldDrinks, "cold-drinks", 0, "Cold drinks on the session")
	cmd.Flags().IntVar(&water, "water", 0, "Water bottles on the session")
	cmd.Flags().IntVar(&snacks, "snacks", 0, "Snacks on the session")
	cmd.Flags().IntVar(&controllers, "controllers", 0, "Extra controllers beyond the first player")
	_ = cmd.MarkFlagRequired("console")

	return cmd
}

func newSessionStopCmd(app *app) *cobra.Command {
	var console string

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the active session and bill the time played",
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.sessions.Stop(cmd.Context(), domain.ConsoleID(console))
			if err != nil {
				return err
			}

			markConsole(cmd, app, session.Console, domain.ConsoleFree)

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stopped session on %s after %d minutes\n", session.Console, session.DurationMinutes)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "total %s\n", session.TotalAmount.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&console, "console", "", "Console ID")
	_ = cmd.MarkFlagRequired("console")

	return cmd
}

func newSessionDeleteCmd(app *app) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a session record by ID",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.sessions.Delete(cmd.Context(), domain.SessionID(id)); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Session ID")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

// markConsole keeps the catalog status flag roughly in step with session
// starts and stops. Display state only, so failures are downgraded to a
// warning.
func markConsole(cmd *cobra.Command, app *app, console domain.ConsoleID, status domain.ConsoleStatus) {
	if err := app.catalog.SetStatus(cmd.Context(), console, status); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "warning: mark console %s as %s: %v\n", console, status, err)
	}
}
