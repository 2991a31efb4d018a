package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gzone",
		Short:         "Console rental desk: timed sessions, add-ons, and billing",
		Long:          "gzone runs the rental desk of a console gaming lounge: start and stop timed sessions, extend playtime, sell add-ons, and pull daily or monthly earnings reports from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newSessionCmd(app),
		newActiveCmd(app),
		newReportCmd(app),
		newConsoleCmd(app),
		newSettingsCmd(app),
		newAdminCmd(app),
	)

	return rootCmd
}
