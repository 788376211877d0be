package account

import (
	"context"

	domain "github.com/Bhaskar125/gym-management-system/internal/domain/account"
)

// Store is the accounts collection gateway.
type Store interface {
	Create(ctx context.Context, a domain.Account) (string, error)
	GetByEmail(ctx context.Context, email string) (domain.Account, bool, error)
	GetByID(ctx context.Context, id string) (domain.Account, bool, error)
}
