// =============================================================================
// LIS Ticket Tracker - Cleanup Command
// =============================================================================
//
// This file defines the 'cleanup' command, the manually triggered
// retention sweep. It deletes .LIS files in the data directory whose
// MMDDYY name prefix is older than the retention window; files whose
// prefix does not parse as a date are skipped and retained.
//
// COMMAND USAGE:
//   listrack cleanup [flags]
//
// FLAGS:
//   --days    : Retention window in days (default: from config, 13)
//   --dry-run : Report what would be deleted without deleting
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"listrack/pkg/utils"
)

// cleanupDays overrides the configured retention window when positive.
var cleanupDays int

// cleanupDryRun reports candidates without deleting.
var cleanupDryRun bool

// cleanupCmd represents the 'cleanup' command.
var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Purge .LIS files older than the retention window",

	RunE: func(cmd *cobra.Command, args []string) error {
		return runCleanup()
	},
}

func init() {
	rootCmd.AddCommand(cleanupCmd)

	cleanupCmd.Flags().IntVar(
		&cleanupDays,
		"days",
		0,
		"Retention window in days (0 uses the configured value)",
	)

	cleanupCmd.Flags().BoolVar(
		&cleanupDryRun,
		"dry-run",
		false,
		"Report what would be deleted without deleting",
	)
}

func runCleanup() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	days := cleanupDays
	if days <= 0 {
		days = cfg.RetentionDays
	}

	result, err := utils.CleanupLISFiles(cfg.DataDir, days, cleanupDryRun, log)
	if err != nil {
		return err
	}

	verb := "Removed"
	if cleanupDryRun {
		verb = "Would remove"
	}
	fmt.Printf("%s %d file(s) older than %d day(s)", verb, result.Removed, days)
	if result.Skipped > 0 {
		fmt.Printf("; skipped %d file(s) with unparseable date prefixes", result.Skipped)
	}
	fmt.Println()
	return nil
}
