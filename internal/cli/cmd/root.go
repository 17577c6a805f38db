// Package cmd provides the Cobra commands for veil.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veilbrowser/veil/internal/cli"
)

var (
	app     *cli.App
	version = "dev"

	rootCmd = &cobra.Command{
		Use:   "veil",
		Short: "A privacy browser shell with an embedded Aleo wallet",
		Long: `Veil - the control surface of the veil privacy browser.

Veil talks to the running browser host over its local bridge: tabs,
bookmarks, history, notes, and the embedded Aleo wallet are all driven
from here. Notes are stored locally and mirrored to the ledger only on
explicit sync.

Use 'veil browse' for the interactive surface, or the subcommands for
direct access to one panel.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion", "version", "schema":
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

// SetVersion sets the version string shown by 'veil version'.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the veil version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println("veil", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
