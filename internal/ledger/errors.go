// =============================================================================
// LIS Ticket Tracker - Ledger Errors
// =============================================================================

package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrTicketNotFound is returned when an update or delete names a
	// ticket id that is not in the history. The operation is a no-op.
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrInvalidCategoryKey indicates a totals mutation with a key outside
	// the fixed taxonomy. This is a programmer or schema-drift error and
	// is never swallowed.
	ErrInvalidCategoryKey = errors.New("invalid category key")
)

// MissingFieldError is returned when a ticket offered to the ledger lacks
// one of the required fields (quantity, frame code, door size). The
// ticket is rejected with no state change.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("ticket missing required field: %s", e.Field)
}
