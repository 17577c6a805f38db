package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/veilbrowser/veil/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and edit configuration",
}

var configPrintCmd = &cobra.Command{
	Use:   "print",
	Short: "Print the effective configuration",
	RunE:  runConfigPrint,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value and persist it.

Keys use dotted paths, e.g. 'general.homepage' or 'wallet.network'.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the configuration",
	RunE:  runConfigSchema,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configPrintCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configSchemaCmd)
}

func runConfigPrint(_ *cobra.Command, _ []string) error {
	enc := yaml.NewEncoder(os.Stdout)
	defer enc.Close()
	return enc.Encode(app.Config.Get())
}

func runConfigSet(_ *cobra.Command, args []string) error {
	if err := app.Config.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("set %s: %w", args[0], err)
	}
	fmt.Println("saved")
	return nil
}

func runConfigSchema(_ *cobra.Command, _ []string) error {
	b, err := config.Schema()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(b)
	return err
}
