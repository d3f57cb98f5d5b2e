// =============================================================================
// LIS Ticket Tracker - Ledger
// =============================================================================
//
// The ledger owns the running category totals, the ordered ticket history
// (insertion order = scan order), and the overall door count. It is the
// sole writer of its JSON backing store: state is loaded on construction
// and persisted after every mutating operation.
//
// DELTA RECONCILIATION:
//   Category totals are reconciled by reversal and re-application, never
//   by diffing. An update decrements the old category by the old quantity
//   using a fresh categorization of the ticket as it was stored, then
//   increments the new category by the new quantity: this stays correct
//   even when the edit changes the frame code or door size.
//
// CONCURRENCY:
//   Single operator, single process. There is no locking and no
//   concurrent-access contract; a second process writing the same store
//   file is undefined behavior.
//
// =============================================================================

package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"listrack/internal/taxonomy"
	"listrack/internal/types"
)

// =============================================================================
// LEDGER TYPE
// =============================================================================

// Ledger holds category totals and ticket history backed by a JSON store.
type Ledger struct {
	storeFile string
	totals    map[string]int
	total     int
	tickets   []types.Ticket
	validate  *validator.Validate
	log       zerolog.Logger
}

// New creates a Ledger backed by the given store file.
//
// All 36 taxonomy keys are pre-populated to zero before loading, so a
// category lookup can never miss and GetAll never omits a known category.
// A missing store file leaves these defaults untouched (first run).
func New(storeFile string, log zerolog.Logger) (*Ledger, error) {
	l := &Ledger{
		storeFile: storeFile,
		totals:    make(map[string]int),
		validate:  validator.New(),
		log:       log.With().Str("component", "ledger").Logger(),
	}
	for _, key := range taxonomy.Keys() {
		l.totals[key] = 0
	}

	if err := l.Load(); err != nil {
		return nil, err
	}
	return l, nil
}

// =============================================================================
// MUTATING OPERATIONS
// =============================================================================

// AddTicket validates and records a ticket: the matching category total is
// incremented by the ticket quantity, the ticket is appended to history,
// the overall door count grows, and the store is persisted.
//
// Tickets whose frame code matches no category rule still land in history
// and still count toward the overall total.
func (l *Ledger) AddTicket(ticket types.Ticket) error {
	if err := l.validateTicket(ticket); err != nil {
		l.log.Warn().Err(err).Str("batch", ticket.BatchID).Msg("ticket rejected")
		return err
	}

	if ticket.ID == "" {
		ticket.ID = uuid.New().String()
	}
	if ticket.ScanTime.IsZero() {
		ticket.ScanTime = time.Now()
	}

	key, categorized := taxonomy.Categorize(ticket.FrameCode, ticket.DoorSize, ticket.Quantity)
	if categorized {
		if err := l.applyDelta(key, ticket.Quantity); err != nil {
			return err
		}
	} else {
		l.log.Info().Str("frame_code", ticket.FrameCode).Msg("ticket matched no category rule")
	}

	l.total += ticket.Quantity
	l.tickets = append(l.tickets, ticket)

	return l.Save()
}

// UpdateTicket replaces the stored ticket with the given id. The old
// category total is decremented by the old quantity, the new total
// incremented by the new quantity, and the overall count shifted by the
// quantity delta. The ticket's identity and scan time are preserved.
//
// An unknown id is a no-op reported as ErrTicketNotFound.
func (l *Ledger) UpdateTicket(id string, updated types.Ticket) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrTicketNotFound, id)
	}

	if err := l.validateTicket(updated); err != nil {
		l.log.Warn().Err(err).Str("id", id).Msg("update rejected")
		return err
	}

	old := l.tickets[idx]
	updated.ID = old.ID
	if updated.ScanTime.IsZero() {
		updated.ScanTime = old.ScanTime
	}

	// Reverse the old classification, then apply the new one. Two
	// independent categorize calls: the edit may have changed the frame
	// code or door size, not just the quantity.
	if key, ok := taxonomy.Categorize(old.FrameCode, old.DoorSize, old.Quantity); ok {
		if err := l.applyDelta(key, -old.Quantity); err != nil {
			return err
		}
	}
	if key, ok := taxonomy.Categorize(updated.FrameCode, updated.DoorSize, updated.Quantity); ok {
		if err := l.applyDelta(key, updated.Quantity); err != nil {
			return err
		}
	}

	l.total += updated.Quantity - old.Quantity
	l.tickets[idx] = updated

	return l.Save()
}

// UpdateQuantity is the common operator edit: change only the quantity of
// an existing ticket.
func (l *Ledger) UpdateQuantity(id string, quantity int) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrTicketNotFound, id)
	}
	updated := l.tickets[idx]
	updated.Quantity = quantity
	return l.UpdateTicket(id, updated)
}

// DeleteTicket removes the ticket with the given id from history,
// decrements its category total by its quantity, and shrinks the overall
// count. An unknown id is a no-op reported as ErrTicketNotFound.
func (l *Ledger) DeleteTicket(id string) error {
	idx := l.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrTicketNotFound, id)
	}

	old := l.tickets[idx]
	if key, ok := taxonomy.Categorize(old.FrameCode, old.DoorSize, old.Quantity); ok {
		if err := l.applyDelta(key, -old.Quantity); err != nil {
			return err
		}
	}

	l.total -= old.Quantity
	l.tickets = append(l.tickets[:idx], l.tickets[idx+1:]...)

	return l.Save()
}

// Reset zeroes all category totals, clears the ticket history and overall
// count, and persists.
func (l *Ledger) Reset() error {
	for key := range l.totals {
		l.totals[key] = 0
	}
	l.total = 0
	l.tickets = nil
	return l.Save()
}

// =============================================================================
// READ OPERATIONS
// =============================================================================
//
// All views return independent copies; callers cannot observe or cause
// mutation through them.

// GetAll returns a snapshot of the category totals.
func (l *Ledger) GetAll() map[string]int {
	totals := make(map[string]int, len(l.totals))
	for key, value := range l.totals {
		totals[key] = value
	}
	return totals
}

// GetTotal returns the overall door count.
func (l *Ledger) GetTotal() int {
	return l.total
}

// GetHistory returns a snapshot of the ticket history in scan order.
func (l *Ledger) GetHistory() []types.Ticket {
	history := make([]types.Ticket, len(l.tickets))
	copy(history, l.tickets)
	return history
}

// FindBySequence looks a ticket up by the batch id and sequence number
// printed on the physical ticket. This is an operator convenience; the
// synthetic id remains the authoritative identity.
func (l *Ledger) FindBySequence(batchID, sequenceNumber string) (types.Ticket, bool) {
	for _, ticket := range l.tickets {
		if ticket.BatchID == batchID && ticket.SequenceNumber == sequenceNumber {
			return ticket, true
		}
	}
	return types.Ticket{}, false
}

// =============================================================================
// INTERNAL HELPERS
// =============================================================================

// applyDelta adjusts one category total. Keys outside the fixed taxonomy
// indicate a programmer or schema-drift error and fail the operation.
func (l *Ledger) applyDelta(key string, delta int) error {
	if !taxonomy.IsValidKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidCategoryKey, key)
	}
	l.totals[key] += delta
	return nil
}

// validateTicket enforces the ledger boundary: quantity, frame code and
// door size must be present before a ticket can affect any state.
func (l *Ledger) validateTicket(ticket types.Ticket) error {
	err := l.validate.Struct(ticket)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &MissingFieldError{Field: strings.ToLower(verrs[0].Field())}
	}
	return fmt.Errorf("ticket validation failed: %w", err)
}

// indexOf returns the history index of the ticket with the given id, or -1.
func (l *Ledger) indexOf(id string) int {
	for i, ticket := range l.tickets {
		if ticket.ID == id {
			return i
		}
	}
	return -1
}
