// =============================================================================
// LIS Ticket Tracker - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - lisfile
//   - ledger
//   - report
//
// =============================================================================

package types

import "time"

// =============================================================================
// TICKET TYPE
// =============================================================================

// Ticket is the canonical unit of business state: one door record accepted
// from a matched .LIS line. Tickets are created by the scanner, mutated in
// place when an operator edits the quantity, and destroyed on deletion.
//
// ID is a synthetic identifier assigned at ingestion and is the identity
// used for all update/delete lookups. The batch/sequence pair printed on
// the physical ticket is kept for operator-facing lookup only, since
// duplicate field tuples can occur across rescans.
type Ticket struct {
	// ID is the synthetic ticket identifier (UUID), assigned at ingestion.
	ID string `json:"id"`

	// BatchID is the full batch identifier the ticket was scanned under.
	BatchID string `json:"batch_id"`

	// FrameCode is the first whitespace-delimited token of the door/frame
	// descriptor field. Its leading characters drive categorization.
	FrameCode string `json:"frame_code" validate:"required"`

	// DoorSize is the raw door size field, e.g. "030.000 X 080.000".
	DoorSize string `json:"door_size" validate:"required"`

	// Quantity is the number of doors on the ticket. Always >= 1.
	Quantity int `json:"quantity" validate:"required,min=1"`

	ProductType    string `json:"product_type"`
	Operator       string `json:"operator"`
	Material       string `json:"material"`
	Customer       string `json:"customer"`
	OrderNumber    string `json:"order_number"`
	ItemNumber     string `json:"item_number"`
	SequenceNumber string `json:"sequence_number"`

	// ScanTime is when the ticket was accepted into the ledger.
	ScanTime time.Time `json:"scan_time"`

	// OriginalLine is the raw log line the ticket was extracted from.
	// Kept for auditing and diagnostics.
	OriginalLine string `json:"original_line"`
}

// =============================================================================
// LOG RECORD TYPE
// =============================================================================

// LogRecord is one parsed line of a .LIS log file: the quote-stripped
// fields plus the raw line they came from.
type LogRecord struct {
	// Fields are the comma-separated fields with surrounding quotes removed.
	Fields []string

	// Line is the raw line as read from the file.
	Line string

	// LineNumber is the 1-indexed line number, for diagnostics.
	LineNumber int
}
