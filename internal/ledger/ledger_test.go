package ledger

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"listrack/internal/types"
)

func newTestLedger(t *testing.T) (*Ledger, string) {
	t.Helper()
	store := filepath.Join(t.TempDir(), "tickets.json")
	l, err := New(store, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to create ledger: %v", err)
	}
	return l, store
}

func moldedTicket(quantity int) types.Ticket {
	return types.Ticket{
		BatchID:        "ABC1234567",
		FrameCode:      "MXX",
		DoorSize:       "032.000 X 080.000",
		Quantity:       quantity,
		ProductType:    "INT DOOR",
		Operator:       "OP7",
		Material:       "PRIMED",
		Customer:       "ACME LUMBER",
		OrderNumber:    "ORD-9",
		ItemNumber:     "ITEM-2",
		SequenceNumber: "0001",
		ScanTime:       time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC),
		OriginalLine:   `"REC01","1234","567",...`,
	}
}

func TestNewPrePopulatesAllCategories(t *testing.T) {
	l, _ := newTestLedger(t)

	totals := l.GetAll()
	if len(totals) != 36 {
		t.Fatalf("expected 36 categories, got %d", len(totals))
	}
	for key, value := range totals {
		if value != 0 {
			t.Errorf("category %q initialized to %d, want 0", key, value)
		}
	}
	if l.GetTotal() != 0 {
		t.Errorf("initial total: got %d, want 0", l.GetTotal())
	}
	if len(l.GetHistory()) != 0 {
		t.Errorf("initial history not empty")
	}
}

func TestAddTicket(t *testing.T) {
	l, _ := newTestLedger(t)

	if err := l.AddTicket(moldedTicket(3)); err != nil {
		t.Fatalf("AddTicket: %v", err)
	}

	if got := l.GetAll()["MC05"]; got != 3 {
		t.Errorf("MC05 total: got %d, want 3", got)
	}
	if l.GetTotal() != 3 {
		t.Errorf("total doors: got %d, want 3", l.GetTotal())
	}

	history := l.GetHistory()
	if len(history) != 1 {
		t.Fatalf("history length: got %d, want 1", len(history))
	}
	if history[0].Quantity != 3 {
		t.Errorf("history quantity: got %d, want 3", history[0].Quantity)
	}
	if history[0].ID == "" {
		t.Error("expected a synthetic id to be assigned")
	}
}

func TestAddTicketRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.Ticket)
	}{
		{"zero quantity", func(tk *types.Ticket) { tk.Quantity = 0 }},
		{"negative quantity", func(tk *types.Ticket) { tk.Quantity = -2 }},
		{"no frame code", func(tk *types.Ticket) { tk.FrameCode = "" }},
		{"no door size", func(tk *types.Ticket) { tk.DoorSize = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newTestLedger(t)

			ticket := moldedTicket(3)
			tt.mutate(&ticket)

			err := l.AddTicket(ticket)
			var missing *MissingFieldError
			if !errors.As(err, &missing) {
				t.Fatalf("expected MissingFieldError, got %v", err)
			}

			// No partial state change.
			if l.GetTotal() != 0 || len(l.GetHistory()) != 0 {
				t.Error("rejected ticket mutated ledger state")
			}
			for key, value := range l.GetAll() {
				if value != 0 {
					t.Errorf("rejected ticket changed category %q to %d", key, value)
				}
			}
		})
	}
}

func TestAddUncategorizedTicket(t *testing.T) {
	l, _ := newTestLedger(t)

	ticket := moldedTicket(4)
	ticket.FrameCode = "ZZZ"

	if err := l.AddTicket(ticket); err != nil {
		t.Fatalf("AddTicket: %v", err)
	}

	// History and overall total grow; no category total does.
	if l.GetTotal() != 4 {
		t.Errorf("total doors: got %d, want 4", l.GetTotal())
	}
	if len(l.GetHistory()) != 1 {
		t.Errorf("history length: got %d, want 1", len(l.GetHistory()))
	}
	for key, value := range l.GetAll() {
		if value != 0 {
			t.Errorf("uncategorized ticket changed category %q to %d", key, value)
		}
	}
}

func TestAddDeleteRoundTrip(t *testing.T) {
	l, _ := newTestLedger(t)

	before := l.GetAll()
	beforeTotal := l.GetTotal()

	ticket := moldedTicket(5)
	if err := l.AddTicket(ticket); err != nil {
		t.Fatalf("AddTicket: %v", err)
	}
	id := l.GetHistory()[0].ID

	if err := l.DeleteTicket(id); err != nil {
		t.Fatalf("DeleteTicket: %v", err)
	}

	if !reflect.DeepEqual(l.GetAll(), before) {
		t.Error("category totals not restored after add+delete")
	}
	if l.GetTotal() != beforeTotal {
		t.Errorf("total doors: got %d, want %d", l.GetTotal(), beforeTotal)
	}
	if len(l.GetHistory()) != 0 {
		t.Error("ticket still present in history after delete")
	}
}

func TestUpdateQuantityMovesBuckets(t *testing.T) {
	l, _ := newTestLedger(t)

	if err := l.AddTicket(moldedTicket(3)); err != nil {
		t.Fatalf("AddTicket: %v", err)
	}
	id := l.GetHistory()[0].ID

	// 3 -> 7 moves the ticket from MC05 to MC10 and shifts the total by +4.
	if err := l.UpdateQuantity(id, 7); err != nil {
		t.Fatalf("UpdateQuantity: %v", err)
	}

	totals := l.GetAll()
	if totals["MC05"] != 0 {
		t.Errorf("MC05: got %d, want 0", totals["MC05"])
	}
	if totals["MC10"] != 7 {
		t.Errorf("MC10: got %d, want 7", totals["MC10"])
	}
	if l.GetTotal() != 7 {
		t.Errorf("total doors: got %d, want 7", l.GetTotal())
	}
	if got := l.GetHistory()[0].Quantity; got != 7 {
		t.Errorf("history quantity: got %d, want 7", got)
	}
}

func TestUpdateTicketReclassifies(t *testing.T) {
	l, _ := newTestLedger(t)

	if err := l.AddTicket(moldedTicket(3)); err != nil {
		t.Fatalf("AddTicket: %v", err)
	}
	old := l.GetHistory()[0]

	// The edit changes the frame code, so the reversal must use the old
	// classification and the re-application the new one.
	updated := old
	updated.FrameCode = "HXX"

	if err := l.UpdateTicket(old.ID, updated); err != nil {
		t.Fatalf("UpdateTicket: %v", err)
	}

	totals := l.GetAll()
	if totals["MC05"] != 0 {
		t.Errorf("MC05: got %d, want 0", totals["MC05"])
	}
	if totals["HC05"] != 3 {
		t.Errorf("HC05: got %d, want 3", totals["HC05"])
	}
	if l.GetTotal() != 3 {
		t.Errorf("total doors: got %d, want 3", l.GetTotal())
	}
	if got := l.GetHistory()[0].ID; got != old.ID {
		t.Errorf("update changed the ticket id: %q -> %q", old.ID, got)
	}
}

func TestUpdateAndDeleteUnknownID(t *testing.T) {
	l, _ := newTestLedger(t)

	if err := l.AddTicket(moldedTicket(3)); err != nil {
		t.Fatalf("AddTicket: %v", err)
	}
	snapshot := l.GetAll()

	if err := l.UpdateQuantity("no-such-id", 7); !errors.Is(err, ErrTicketNotFound) {
		t.Errorf("UpdateQuantity: expected ErrTicketNotFound, got %v", err)
	}
	if err := l.DeleteTicket("no-such-id"); !errors.Is(err, ErrTicketNotFound) {
		t.Errorf("DeleteTicket: expected ErrTicketNotFound, got %v", err)
	}

	if !reflect.DeepEqual(l.GetAll(), snapshot) || len(l.GetHistory()) != 1 {
		t.Error("not-found operation mutated ledger state")
	}
}

func TestUpdateRejectsMissingFields(t *testing.T) {
	l, _ := newTestLedger(t)

	if err := l.AddTicket(moldedTicket(3)); err != nil {
		t.Fatalf("AddTicket: %v", err)
	}
	id := l.GetHistory()[0].ID
	snapshot := l.GetAll()

	if err := l.UpdateQuantity(id, 0); err == nil {
		t.Fatal("expected an error for zero quantity")
	}

	if !reflect.DeepEqual(l.GetAll(), snapshot) {
		t.Error("rejected update mutated category totals")
	}
	if got := l.GetHistory()[0].Quantity; got != 3 {
		t.Errorf("rejected update changed history quantity to %d", got)
	}
}

func TestReloadIsIdempotent(t *testing.T) {
	l, store := newTestLedger(t)

	tickets := []types.Ticket{moldedTicket(1), moldedTicket(8)}
	oversize := moldedTicket(3)
	oversize.DoorSize = "030.000 X 096.000"
	tickets = append(tickets, oversize)

	for _, ticket := range tickets {
		if err := l.AddTicket(ticket); err != nil {
			t.Fatalf("AddTicket: %v", err)
		}
	}

	reloaded, err := New(store, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to reload ledger: %v", err)
	}

	if !reflect.DeepEqual(reloaded.GetAll(), l.GetAll()) {
		t.Error("category totals changed across reload")
	}
	if reloaded.GetTotal() != l.GetTotal() {
		t.Errorf("total doors changed across reload: %d -> %d", l.GetTotal(), reloaded.GetTotal())
	}
	if !reflect.DeepEqual(reloaded.GetHistory(), l.GetHistory()) {
		t.Error("ticket history changed across reload")
	}
}

func TestFindBySequence(t *testing.T) {
	l, _ := newTestLedger(t)

	if err := l.AddTicket(moldedTicket(3)); err != nil {
		t.Fatalf("AddTicket: %v", err)
	}

	found, ok := l.FindBySequence("ABC1234567", "0001")
	if !ok {
		t.Fatal("expected to find ticket by batch and sequence")
	}
	if found.Quantity != 3 {
		t.Errorf("found quantity: got %d, want 3", found.Quantity)
	}

	if _, ok := l.FindBySequence("ABC1234567", "9999"); ok {
		t.Error("found a ticket for an unknown sequence")
	}
}

func TestReset(t *testing.T) {
	l, store := newTestLedger(t)

	if err := l.AddTicket(moldedTicket(9)); err != nil {
		t.Fatalf("AddTicket: %v", err)
	}
	if err := l.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	for key, value := range l.GetAll() {
		if value != 0 {
			t.Errorf("category %q not zeroed: %d", key, value)
		}
	}
	if l.GetTotal() != 0 || len(l.GetHistory()) != 0 {
		t.Error("reset did not clear total and history")
	}

	// Reset persists: a reload sees the cleared state.
	reloaded, err := New(store, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to reload ledger: %v", err)
	}
	if reloaded.GetTotal() != 0 || len(reloaded.GetHistory()) != 0 {
		t.Error("reset state not persisted")
	}
}

func TestSnapshotsAreIndependent(t *testing.T) {
	l, _ := newTestLedger(t)

	if err := l.AddTicket(moldedTicket(3)); err != nil {
		t.Fatalf("AddTicket: %v", err)
	}

	totals := l.GetAll()
	totals["MC05"] = 999
	if l.GetAll()["MC05"] != 3 {
		t.Error("mutating a totals snapshot leaked into the ledger")
	}

	history := l.GetHistory()
	history[0].Quantity = 999
	if l.GetHistory()[0].Quantity != 3 {
		t.Error("mutating a history snapshot leaked into the ledger")
	}
}

func TestApplyDeltaRejectsUnknownKey(t *testing.T) {
	l, _ := newTestLedger(t)

	if err := l.applyDelta("BOGUS", 1); !errors.Is(err, ErrInvalidCategoryKey) {
		t.Fatalf("expected ErrInvalidCategoryKey, got %v", err)
	}
}
