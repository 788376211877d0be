package bill

import (
	"errors"
	"strings"
	"time"

	"github.com/Bhaskar125/gym-management-system/internal/domain/validation"
)

// Bill statuses. Pending → Paid is the only allowed transition; Paid is
// terminal for a given bill.
const (
	StatusPaid    = "Paid"
	StatusPending = "Pending"
)

// ValidStatuses contains all valid bill statuses.
var ValidStatuses = []string{StatusPaid, StatusPending}

// Domain errors
var (
	ErrAlreadyPaid = errors.New("bill is already paid")
)

// Bill is a monthly bill for a member, stored in the bills collection.
// ReceiptURL is only present once the bill is Paid.
type Bill struct {
	ID          string  `json:"-"`
	MemberID    string  `json:"memberId"`
	Amount      float64 `json:"amount"`
	Month       string  `json:"month"` // YYYY-MM
	PaymentDate string  `json:"paymentDate"`
	Status      string  `json:"status"`
	ReceiptURL  string  `json:"receiptUrl,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Validate checks if the Bill has valid data.
// PRE: Bill struct is initialized
// POST: Returns a *validation.Error naming the offending field, nil otherwise
func (b *Bill) Validate() error {
	if strings.TrimSpace(b.MemberID) == "" {
		return validation.Errf("memberId", "bill member id cannot be empty")
	}
	if b.Amount < 0 {
		return validation.Errf("amount", "bill amount cannot be negative")
	}
	if _, err := time.Parse("2006-01", b.Month); err != nil {
		return validation.Errf("month", "bill month must be YYYY-MM")
	}
	if b.Status != StatusPaid && b.Status != StatusPending {
		return validation.Errf("status", "status must be 'Paid' or 'Pending'")
	}
	if b.Status == StatusPending && b.ReceiptURL != "" {
		return validation.Errf("receiptUrl", "receipt url is only set once a bill is paid")
	}
	return nil
}

// IsPaid returns true if the bill has been paid.
// INVARIANT: Bill fields are not mutated
func (b *Bill) IsPaid() bool {
	return b.Status == StatusPaid
}

// Pay transitions the bill from Pending to Paid, setting the payment date
// and receipt URL together with the status.
// PRE: Bill is Pending
// POST: Status=Paid, PaymentDate and ReceiptURL are set
func (b *Bill) Pay(paymentDate, receiptURL string) error {
	if b.Status == StatusPaid {
		return ErrAlreadyPaid
	}
	b.Status = StatusPaid
	b.PaymentDate = paymentDate
	b.ReceiptURL = receiptURL
	return nil
}
