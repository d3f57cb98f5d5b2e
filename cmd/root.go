// =============================================================================
// LIS Ticket Tracker - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// is the base command that all other commands (scan, totals, history,
// report, reset, cleanup, version) are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (listrack)
//   ├── scanCmd    (listrack scan)
//   ├── totalsCmd  (listrack totals)
//   ├── historyCmd (listrack history [update|delete])
//   ├── reportCmd  (listrack report)
//   ├── resetCmd   (listrack reset)
//   ├── cleanupCmd (listrack cleanup)
//   └── versionCmd (listrack version)
//
// CONFIGURATION:
//   The root command owns the global flags (--config, --verbose) and the
//   shared setup helper that loads the YAML configuration and builds the
//   zerolog logger every command uses.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"listrack/internal/config"
)

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "listrack",
	Short: "LIS Ticket Tracker - Track door production tickets scanned from .LIS batch logs",
	Long: `LIS Ticket Tracker scans manufactured-door production tickets out of the
.LIS batch log files dropped by the press controller, classifies each
ticket into a fixed production category taxonomy, and maintains running
category totals plus a full ticket history persisted to disk.

Example Usage:
  listrack scan 010126ABC1234567   # Scan a batch and record its tickets
  listrack totals                  # Show running category totals
  listrack history                 # List previously scanned tickets
  listrack report                  # Export totals and history to XLSX
  listrack cleanup                 # Purge .LIS files past the retention window`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// setup loads the configuration and builds the application logger.
// Every command goes through here so flags and config behave uniformly.
func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load config: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if verbose {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log := zerolog.New(writer).Level(level).With().Timestamp().Logger()

	return cfg, log, nil
}
