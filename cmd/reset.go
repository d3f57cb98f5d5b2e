// =============================================================================
// LIS Ticket Tracker - Reset Command
// =============================================================================
//
// This file defines the 'reset' command, which zeroes every category
// total, clears the ticket history and overall count, and persists the
// empty state. The --confirm flag is required; this is not recoverable.
//
// COMMAND USAGE:
//   listrack reset --confirm
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"listrack/internal/ledger"
)

// resetConfirm must be set for the reset to run.
var resetConfirm bool

// resetCmd represents the 'reset' command.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Zero all category totals and clear the ticket history",

	RunE: func(cmd *cobra.Command, args []string) error {
		return runReset()
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().BoolVar(
		&resetConfirm,
		"confirm",
		false,
		"Confirm the reset; without this flag nothing happens",
	)
}

func runReset() error {
	if !resetConfirm {
		fmt.Println("Reset clears all totals and ticket history. Re-run with --confirm to proceed.")
		return nil
	}

	cfg, log, err := setup()
	if err != nil {
		return err
	}

	led, err := ledger.New(cfg.StoreFile, log)
	if err != nil {
		return err
	}

	if err := led.Reset(); err != nil {
		return err
	}

	fmt.Println("Ledger reset: all totals zeroed, history cleared.")
	return nil
}
