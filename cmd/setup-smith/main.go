package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonderfulspam/setup-smith/pkg/config"
	"github.com/wonderfulspam/setup-smith/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:   "setup-smith",
	Short: "Compare Assetto Corsa Competizione car setups",
	Long: `SetupSmith compares saved ACC car setups field by field and shows the
differences in the units of the in-game setup screen where the conversion
for the car is known.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

var (
	configFile string
	logLevel   string
	logJSON    bool

	cfg    *config.Config
	logger *slog.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultFile, "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write log records as JSON")
}

// loadConfig runs before every subcommand. A missing default config file is
// fine; a missing explicit one is not.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(configFile)
	} else {
		cfg, err = config.LoadOrDefault(configFile)
	}
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	if logJSON {
		logger = logging.NewJSON(level, cmd.ErrOrStderr())
	} else {
		logger = logging.New(level, cmd.ErrOrStderr())
	}
	logger.Debug("loaded config", "file", configFile, "setups_dir", cfg.SetupsDir)
	return nil
}

// outputFormat picks the --format flag when set, else the config file's.
func outputFormat(flag string) string {
	if flag != "" {
		return flag
	}
	return cfg.Output.Format
}

// writeOutput prints to stdout, or to path when one is given.
func writeOutput(cmd *cobra.Command, path, output string) error {
	if path == "" {
		fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	}
	if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Results written to %s\n", path)
	return nil
}

// exitCode reports err on w and returns the process status. Differences
// found with --exit-code give status 1 without a message, like diff(1).
func exitCode(err error, w io.Writer) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errDifferences):
		return 1
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
		return 1
	}
}

func main() {
	os.Exit(exitCode(rootCmd.Execute(), os.Stderr))
}
