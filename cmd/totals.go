// =============================================================================
// LIS Ticket Tracker - Totals Command
// =============================================================================
//
// This file defines the 'totals' command, which displays the running
// category totals and the overall door count.
//
// COMMAND USAGE:
//   listrack totals [flags]
//
// FLAGS:
//   --all : Include categories with a zero count
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"listrack/internal/ledger"
	"listrack/internal/taxonomy"
)

// totalsShowAll includes zero-count categories in the output.
var totalsShowAll bool

// totalsCmd represents the 'totals' command.
var totalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Display running category totals",
	Long: `Display the running door count for each production category, plus the
overall total. Categories with a zero count are hidden unless --all is
given.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runTotals()
	},
}

func init() {
	rootCmd.AddCommand(totalsCmd)

	totalsCmd.Flags().BoolVar(
		&totalsShowAll,
		"all",
		false,
		"Include categories with a zero count",
	)
}

func runTotals() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	led, err := ledger.New(cfg.StoreFile, log)
	if err != nil {
		return err
	}

	totals := led.GetAll()

	fmt.Println("Category totals:")
	shown := 0
	for _, key := range taxonomy.Keys() {
		count := totals[key]
		if count == 0 && !totalsShowAll {
			continue
		}
		fmt.Printf("  %-9s %d\n", key, count)
		shown++
	}
	if shown == 0 {
		fmt.Println("  (no doors recorded)")
	}

	fmt.Printf("\nTotal doors: %d\n", led.GetTotal())
	return nil
}
