package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonderfulspam/setup-smith/pkg/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage SetupSmith configuration",
	Long:  `Manage SetupSmith configuration files, including initialization and validation.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Generate a default configuration file",
	Long: `Generate a default SetupSmith configuration file. If no file is specified,
creates ` + config.DefaultFile + ` in the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a configuration file",
	Long:  `Validate a SetupSmith configuration file for correctness.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigValidate,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

const exampleConfig = `# SetupSmith Configuration File

version: 1

# Root of the game's setup folder, laid out as <car>/<track>/<setup>.json.
# SETUP_SMITH_DIR overrides this.
# setups_dir: ~/Documents/Assetto Corsa Competizione/Setups

# Glob patterns of diff paths to leave out of comparisons
ignore:
  # - "basicSetup.electronics.*"
  # - "basicSetup.strategy.*"
  # - "trackBaseName"

# Convert raw file values to in-game units where the formula is known
conversions: true

output:
  format: table  # Options: table, json, yaml

log:
  level: warn  # Options: debug, info, warn, error

batch:
  workers: 4
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	outputFile := config.DefaultFile
	if len(args) > 0 {
		outputFile = args[0]
	}

	if _, err := os.Stat(outputFile); err == nil {
		return fmt.Errorf("configuration file %s already exists", outputFile)
	}

	if err := os.WriteFile(outputFile, []byte(exampleConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Configuration file created: %s\n", outputFile)
	fmt.Fprintf(out, "\nYou can now:\n")
	fmt.Fprintf(out, "1. Edit the file to set your setups directory and ignore patterns\n")
	fmt.Fprintf(out, "2. Use it with: setup-smith compare --config=%s <left> <right>\n", outputFile)
	fmt.Fprintf(out, "3. Validate it with: setup-smith config validate %s\n", outputFile)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	configPath := configFile
	if len(args) > 0 {
		configPath = args[0]
	}

	c, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Configuration is valid!\n\n")
	fmt.Fprintf(out, "Summary:\n")
	fmt.Fprintf(out, "  Version: %d\n", c.Version)
	fmt.Fprintf(out, "  Setups Directory: %s\n", c.SetupsDir)
	fmt.Fprintf(out, "  Conversions: %t\n", c.ConversionsEnabled())
	fmt.Fprintf(out, "  Output Format: %s\n", c.Output.Format)
	fmt.Fprintf(out, "  Batch Workers: %d\n", c.Batch.Workers)
	if len(c.Ignore) > 0 {
		fmt.Fprintf(out, "  Ignore Patterns: %d\n", len(c.Ignore))
	}
	return nil
}
