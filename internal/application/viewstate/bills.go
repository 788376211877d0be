package viewstate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	billstore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/bill"
	"github.com/Bhaskar125/gym-management-system/internal/domain/bill"
)

// BillsView is a fetch-once container for bills, optionally scoped to a
// single member. Mutations splice the local slice optimistically after the
// gateway write succeeds: new bills go to the front (newest first, matching
// the month-descending read order), updates merge in place, deletes filter
// out. A failed splice is never rolled back; the next Refresh reconciles.
type BillsView struct {
	mu     sync.Mutex
	phase  Phase
	errmsg string
	bills  []bill.Bill

	store    billstore.Store
	memberID string // empty means all members
	log      *slog.Logger
	now      func() time.Time
}

// NewBillsView creates an idle container over the given gateway. A
// non-empty memberID scopes all reads to that member's bills.
func NewBillsView(store billstore.Store, memberID string, log *slog.Logger) *BillsView {
	if log == nil {
		log = slog.Default()
	}
	return &BillsView{store: store, memberID: memberID, log: log, now: time.Now}
}

// Start runs the initial fetch.
// POST: Container is Ready with the fetched bills, or Failed
func (v *BillsView) Start(ctx context.Context) {
	v.mu.Lock()
	if v.phase != PhaseIdle {
		v.mu.Unlock()
		return
	}
	v.phase = PhaseLoading
	v.mu.Unlock()
	v.fetch(ctx)
}

// Refresh re-runs the fetch. This is the only path from Ready back to
// Loading.
func (v *BillsView) Refresh(ctx context.Context) {
	v.mu.Lock()
	v.phase = PhaseLoading
	v.mu.Unlock()
	v.fetch(ctx)
}

func (v *BillsView) fetch(ctx context.Context) {
	var (
		bills []bill.Bill
		err   error
	)
	if v.memberID != "" {
		bills, err = v.store.GetByMemberID(ctx, v.memberID)
	} else {
		bills, err = v.store.GetAll(ctx)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.phase = PhaseFailed
		v.errmsg = "failed to fetch bills"
		v.log.Error("view_event", "view", "bills", "event", "read_failed", "error", err)
		return
	}
	v.bills = bills
	v.phase = PhaseReady
	v.errmsg = ""
}

// Phase returns the current lifecycle phase.
func (v *BillsView) Phase() Phase {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.phase
}

// Err returns the last read error message, empty when healthy.
func (v *BillsView) Err() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errmsg
}

// Bills returns a copy of the current slice.
func (v *BillsView) Bills() []bill.Bill {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]bill.Bill, len(v.bills))
	copy(out, v.bills)
	return out
}

// Add creates a bill and prepends it locally.
// POST: On success the new bill is first in the local slice
func (v *BillsView) Add(ctx context.Context, b bill.Bill) (string, error) {
	id, err := v.store.Create(ctx, b)
	if err != nil {
		return "", fmt.Errorf("failed to add bill: %w", err)
	}
	b.ID = id
	v.mu.Lock()
	v.bills = append([]bill.Bill{b}, v.bills...)
	v.mu.Unlock()
	return id, nil
}

// Update applies a partial update through the gateway and merges the same
// fields into the local copy.
func (v *BillsView) Update(ctx context.Context, id string, patch billstore.Patch) error {
	if err := v.store.Update(ctx, id, patch); err != nil {
		return fmt.Errorf("failed to update bill: %w", err)
	}
	v.mu.Lock()
	for i := range v.bills {
		if v.bills[i].ID == id {
			mergeBillPatch(&v.bills[i], patch)
			break
		}
	}
	v.mu.Unlock()
	return nil
}

// Remove deletes a bill and filters it out locally.
func (v *BillsView) Remove(ctx context.Context, id string) error {
	if err := v.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}
	v.mu.Lock()
	kept := v.bills[:0]
	for _, b := range v.bills {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	v.bills = kept
	v.mu.Unlock()
	return nil
}

// Pay marks a bill as paid: status, payment date (today) and receipt URL
// change together in one gateway write, then merge into the local copy.
// PRE: The bill is present in the local slice and Pending
// POST: Local and stored copies are Paid with paymentDate and receiptUrl set
func (v *BillsView) Pay(ctx context.Context, id string) error {
	v.mu.Lock()
	var current *bill.Bill
	for i := range v.bills {
		if v.bills[i].ID == id {
			current = &v.bills[i]
			break
		}
	}
	if current == nil {
		v.mu.Unlock()
		return fmt.Errorf("failed to pay bill: bill %s not loaded", id)
	}
	if current.IsPaid() {
		v.mu.Unlock()
		return bill.ErrAlreadyPaid
	}
	v.mu.Unlock()

	status := bill.StatusPaid
	paymentDate := v.now().Format("2006-01-02")
	receiptURL := fmt.Sprintf("/receipts/%s.pdf", id)
	patch := billstore.Patch{
		Status:      &status,
		PaymentDate: &paymentDate,
		ReceiptURL:  &receiptURL,
	}
	if err := v.store.Update(ctx, id, patch); err != nil {
		return fmt.Errorf("failed to pay bill: %w", err)
	}

	v.mu.Lock()
	for i := range v.bills {
		if v.bills[i].ID == id {
			mergeBillPatch(&v.bills[i], patch)
			break
		}
	}
	v.mu.Unlock()
	return nil
}

func mergeBillPatch(b *bill.Bill, patch billstore.Patch) {
	if patch.MemberID != nil {
		b.MemberID = *patch.MemberID
	}
	if patch.Amount != nil {
		b.Amount = *patch.Amount
	}
	if patch.Month != nil {
		b.Month = *patch.Month
	}
	if patch.PaymentDate != nil {
		b.PaymentDate = *patch.PaymentDate
	}
	if patch.Status != nil {
		b.Status = *patch.Status
	}
	if patch.ReceiptURL != nil {
		b.ReceiptURL = *patch.ReceiptURL
	}
}
