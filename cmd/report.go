// =============================================================================
// LIS Ticket Tracker - Report Command
// =============================================================================
//
// This file defines the 'report' command, which exports the current
// category totals and ticket history to an XLSX workbook.
//
// COMMAND USAGE:
//   listrack report [flags]
//
// FLAGS:
//   --out : Output file path (default: door_report_<timestamp>.xlsx)
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"listrack/internal/ledger"
	"listrack/internal/report"
)

// reportOut is the output path for the workbook.
var reportOut string

// reportCmd represents the 'report' command.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Export totals and ticket history to an XLSX workbook",
	Long: `Export the current ledger state to an XLSX workbook with two sheets:
Totals (every category count plus the overall door count) and History
(every scanned ticket in scan order).`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport()
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(
		&reportOut,
		"out",
		"",
		"Output file path (default: door_report_<timestamp>.xlsx)",
	)
}

func runReport() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	led, err := ledger.New(cfg.StoreFile, log)
	if err != nil {
		return err
	}

	out := reportOut
	if out == "" {
		out = report.DefaultName()
	}

	if err := report.Write(out, led.GetAll(), led.GetTotal(), led.GetHistory()); err != nil {
		return err
	}

	fmt.Printf("Report written to %s\n", out)
	return nil
}
