// =============================================================================
// LIS Ticket Tracker - Scan Command
// =============================================================================
//
// This file defines the 'scan' command, the main ingestion path. It takes
// a batch identifier, finds the matching .LIS log file, extracts every
// record belonging to the batch, and records the resulting tickets in the
// ledger.
//
// COMMAND USAGE:
//   listrack scan <batchID> [flags]
//
// FLAGS:
//   --dry-run : Match and categorize without touching the ledger
//
// PIPELINE:
//   1. Load configuration
//   2. Derive the press-group tokens and log filename from the batch id
//   3. Scan the log file for matching records
//   4. For each match: validate, categorize, and record in the ledger
//   5. Print a per-ticket line and a summary
//
// A missing log file or a file with no matching records is an ordinary
// outcome, reported as a message rather than a failure.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"listrack/internal/ledger"
	"listrack/internal/lisfile"
	"listrack/internal/taxonomy"
)

// scanDryRun matches and categorizes without recording anything.
var scanDryRun bool

// scanCmd represents the 'scan' command.
var scanCmd = &cobra.Command{
	Use:   "scan <batchID>",
	Short: "Scan a batch's .LIS log file and record its tickets",
	Long: `The scan command derives the press-group tokens and log filename from the
batch identifier, scans the log file for records belonging to the batch,
classifies each record into its production category, and records the
resulting tickets in the ledger.

A batch may contain several door records; every matching record becomes
one ticket. Malformed log lines are skipped without aborting the scan.`,
	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(args[0])
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolVar(
		&scanDryRun,
		"dry-run",
		false,
		"Match and categorize without recording tickets",
	)
}

// runScan executes the scan pipeline for one batch identifier.
func runScan(batchID string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	scanner := lisfile.NewScanner(cfg.DataDir, cfg.LogSchema, log)
	tickets, err := scanner.Scan(batchID)
	if err != nil {
		// The two ordinary empty outcomes are messages, not failures.
		if errors.Is(err, lisfile.ErrFileNotFound) || errors.Is(err, lisfile.ErrNoMatch) {
			fmt.Println(err.Error())
			return nil
		}
		return err
	}

	fmt.Printf("Found %d matching record(s) for batch %s\n", len(tickets), batchID)

	if scanDryRun {
		for _, ticket := range tickets {
			key, ok := taxonomy.Categorize(ticket.FrameCode, ticket.DoorSize, ticket.Quantity)
			if !ok {
				key = "uncategorized"
			}
			fmt.Printf("  %-6s qty %-3d %s %s\n", key, ticket.Quantity, ticket.FrameCode, ticket.DoorSize)
		}
		fmt.Println("Dry run: nothing recorded.")
		return nil
	}

	led, err := ledger.New(cfg.StoreFile, log)
	if err != nil {
		return err
	}

	recorded, rejected := 0, 0
	for _, ticket := range tickets {
		if err := led.AddTicket(ticket); err != nil {
			var missing *ledger.MissingFieldError
			if errors.As(err, &missing) {
				rejected++
				fmt.Printf("  rejected seq %s: %v\n", ticket.SequenceNumber, err)
				continue
			}
			return err
		}

		key, ok := taxonomy.Categorize(ticket.FrameCode, ticket.DoorSize, ticket.Quantity)
		if !ok {
			key = "uncategorized"
		}
		recorded++
		fmt.Printf("  %-6s qty %-3d seq %s\n", key, ticket.Quantity, ticket.SequenceNumber)
	}

	fmt.Printf("\nRecorded %d ticket(s)", recorded)
	if rejected > 0 {
		fmt.Printf(", rejected %d", rejected)
	}
	fmt.Printf(". Total doors: %d\n", led.GetTotal())
	return nil
}
