// =============================================================================
// LIS Ticket Tracker - XLSX Report Writer
// =============================================================================
//
// This module exports the ledger state to an XLSX workbook for the shift
// supervisor: a Totals sheet with every category count plus the overall
// door count, and a History sheet listing every scanned ticket in scan
// order.
//
// =============================================================================

package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"listrack/internal/taxonomy"
	"listrack/internal/types"
)

const (
	totalsSheet  = "Totals"
	historySheet = "History"

	scanTimeFormat = "2006-01-02 15:04:05"
)

// historyHeader mirrors the columns of the original scanned-ticket table,
// extended with the derived category.
var historyHeader = []string{
	"Batch ID", "Seq#", "Order#", "Item#", "Frame Code",
	"Door Size", "Qty", "Customer", "Scan Time", "Category",
}

// Write builds an XLSX workbook from the given ledger snapshot and saves
// it to path.
func Write(path string, totals map[string]int, totalDoors int, history []types.Ticket) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeTotalsSheet(f, totals, totalDoors); err != nil {
		return err
	}
	if err := writeHistorySheet(f, history); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save report %s: %w", path, err)
	}
	return nil
}

// writeTotalsSheet writes one row per taxonomy key in taxonomy order,
// followed by the overall door count.
func writeTotalsSheet(f *excelize.File, totals map[string]int, totalDoors int) error {
	if err := f.SetSheetName("Sheet1", totalsSheet); err != nil {
		return fmt.Errorf("failed to create totals sheet: %w", err)
	}

	if err := setRow(f, totalsSheet, 1, []interface{}{"Category", "Count"}); err != nil {
		return err
	}

	row := 2
	for _, key := range taxonomy.Keys() {
		if err := setRow(f, totalsSheet, row, []interface{}{key, totals[key]}); err != nil {
			return err
		}
		row++
	}

	return setRow(f, totalsSheet, row+1, []interface{}{"Total Doors", totalDoors})
}

// writeHistorySheet writes the ticket history in scan order.
func writeHistorySheet(f *excelize.File, history []types.Ticket) error {
	if _, err := f.NewSheet(historySheet); err != nil {
		return fmt.Errorf("failed to create history sheet: %w", err)
	}

	header := make([]interface{}, len(historyHeader))
	for i, h := range historyHeader {
		header[i] = h
	}
	if err := setRow(f, historySheet, 1, header); err != nil {
		return err
	}

	for i, ticket := range history {
		category, ok := taxonomy.Categorize(ticket.FrameCode, ticket.DoorSize, ticket.Quantity)
		if !ok {
			category = "uncategorized"
		}
		values := []interface{}{
			ticket.BatchID,
			ticket.SequenceNumber,
			ticket.OrderNumber,
			ticket.ItemNumber,
			ticket.FrameCode,
			ticket.DoorSize,
			ticket.Quantity,
			ticket.Customer,
			ticket.ScanTime.Format(scanTimeFormat),
			category,
		}
		if err := setRow(f, historySheet, i+2, values); err != nil {
			return err
		}
	}
	return nil
}

// setRow writes a row of values starting at column A.
func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to address row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d on %s: %w", row, sheet, err)
	}
	return nil
}

// DefaultName returns a timestamped report file name.
func DefaultName() string {
	return fmt.Sprintf("door_report_%s.xlsx", time.Now().Format("20060102_150405"))
}
