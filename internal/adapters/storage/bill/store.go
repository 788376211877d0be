package bill

import (
	"context"

	domain "github.com/Bhaskar125/gym-management-system/internal/domain/bill"
)

// Store is the bills collection gateway. List results come back ordered by
// month, newest first.
type Store interface {
	Create(ctx context.Context, b domain.Bill) (string, error)
	GetAll(ctx context.Context) ([]domain.Bill, error)
	GetByID(ctx context.Context, id string) (domain.Bill, bool, error)
	GetByMemberID(ctx context.Context, memberID string) ([]domain.Bill, error)
	GetPending(ctx context.Context) ([]domain.Bill, error)
	Update(ctx context.Context, id string, patch Patch) error
	Delete(ctx context.Context, id string) error
}

// Patch carries a partial update: only non-nil fields are written.
type Patch struct {
	MemberID    *string
	Amount      *float64
	Month       *string
	PaymentDate *string
	Status      *string
	ReceiptURL  *string
}
