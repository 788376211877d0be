package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	billstore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/bill"
	"github.com/Bhaskar125/gym-management-system/internal/domain/bill"
)

// ErrBillNotFound is returned when the bill id does not exist.
var ErrBillNotFound = errors.New("bill not found")

// BillStoreForPay defines the store interface needed by PayBill.
type BillStoreForPay interface {
	GetByID(ctx context.Context, id string) (bill.Bill, bool, error)
	Update(ctx context.Context, id string, patch billstore.Patch) error
}

// PayBillInput carries input for the payment orchestrator.
type PayBillInput struct {
	BillID string

	// MemberID, when set, restricts payment to the member's own bills.
	MemberID string
}

// PayBillDeps holds dependencies for PayBill.
type PayBillDeps struct {
	BillStore BillStoreForPay

	// Now is a test hook; nil means time.Now.
	Now func() time.Time
}

// ExecutePayBill transitions a bill from Pending to Paid. Status, payment
// date and receipt URL are written in a single store update.
// PRE: Bill exists and is Pending
// POST: Bill is Paid with paymentDate=today and receiptUrl=/receipts/<id>.pdf
func ExecutePayBill(ctx context.Context, input PayBillInput, deps PayBillDeps) error {
	if input.BillID == "" {
		return errors.New("bill ID is required")
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	b, found, err := deps.BillStore.GetByID(ctx, input.BillID)
	if err != nil {
		return err
	}
	if !found {
		return ErrBillNotFound
	}
	if input.MemberID != "" && b.MemberID != input.MemberID {
		return ErrBillNotFound
	}

	receiptURL := fmt.Sprintf("/receipts/%s.pdf", input.BillID)
	if err := b.Pay(now().Format("2006-01-02"), receiptURL); err != nil {
		return err
	}

	patch := billstore.Patch{
		Status:      &b.Status,
		PaymentDate: &b.PaymentDate,
		ReceiptURL:  &b.ReceiptURL,
	}
	if err := deps.BillStore.Update(ctx, input.BillID, patch); err != nil {
		return err
	}

	slog.Info("bill_event", "event", "bill_paid", "bill_id", input.BillID, "member_id", b.MemberID, "amount", b.Amount)
	return nil
}
