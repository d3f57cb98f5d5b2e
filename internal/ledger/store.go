// =============================================================================
// LIS Ticket Tracker - Ledger Persistence
// =============================================================================
//
// Whole-state JSON persistence for the ledger. Every save overwrites the
// full store through a temp-file-plus-rename, so a crash mid-write can
// never leave a truncated store behind. save(load()) is a content no-op.
//
// =============================================================================

package ledger

import (
	"encoding/json"
	"fmt"
	"os"

	"listrack/internal/types"
	"listrack/pkg/utils"
)

// storeDocument is the on-disk layout of the ticket store.
type storeDocument struct {
	// CategoryTotals is the fixed 36-key totals mapping.
	CategoryTotals map[string]int `json:"category_totals"`

	// TotalDoors is the overall door count, including uncategorized tickets.
	TotalDoors int `json:"total_doors"`

	// Tickets is the full ticket history in scan order.
	Tickets []types.Ticket `json:"tickets"`
}

// Load reads the backing store into memory, replacing the current state.
//
// A missing store file is not an error: the pre-populated zero totals and
// empty history stand, which is the first-run bootstrap path. Keys in the
// file that are no longer part of the taxonomy are dropped with a warning
// rather than corrupting the fixed key set.
func (l *Ledger) Load() error {
	data, err := os.ReadFile(l.storeFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read store file %s: %w", l.storeFile, err)
	}

	var doc storeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse store file %s: %w", l.storeFile, err)
	}

	for key, value := range doc.CategoryTotals {
		if _, known := l.totals[key]; !known {
			l.log.Warn().Str("key", key).Msg("dropping unknown category key from store")
			continue
		}
		l.totals[key] = value
	}
	l.total = doc.TotalDoors
	l.tickets = doc.Tickets

	return nil
}

// Save writes the full ledger state to the backing store atomically.
// Failures propagate to the caller; silent data loss is unacceptable.
func (l *Ledger) Save() error {
	doc := storeDocument{
		CategoryTotals: l.totals,
		TotalDoors:     l.total,
		Tickets:        l.tickets,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	if err := utils.AtomicWriteFile(l.storeFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write store file %s: %w", l.storeFile, err)
	}
	return nil
}
