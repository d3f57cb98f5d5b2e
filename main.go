// =============================================================================
// LIS Ticket Tracker - Main Entry Point
// =============================================================================
//
// This is the main entry point for the LIS Ticket Tracker CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   listrack scan <batchID>  - Scan a batch out of the .LIS data directory
//   listrack totals          - Display running category totals
//   listrack history         - List, edit, or delete scanned tickets
//   listrack report          - Export totals and history to an XLSX workbook
//   listrack cleanup         - Purge stale .LIS files past the retention window
//   listrack version         - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"listrack/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
