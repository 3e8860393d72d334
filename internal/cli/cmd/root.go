// Package cmd provides Cobra CLI commands for jobdeck.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jobdeck/jobdeck/internal/cli"
)

var (
	app     *cli.App
	rootCmd = &cobra.Command{
		Use:   "jobdeck",
		Short: "Keyboard-first job search dashboard tooling",
		Long: `Jobdeck - tooling for the keyboard-first job search dashboard.

Every dashboard feature is reachable through keyboard shortcuts: modifier
combinations for instant actions and g-prefixed sequences for navigation.
This CLI inspects the shortcut catalogue and manages your customizations -
rebinding keys, toggling shortcuts, and moving customizations between
machines via export/import.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "schema":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}
