package pack

import (
	"context"

	domain "github.com/Bhaskar125/gym-management-system/internal/domain/pack"
)

// Store is the packages collection gateway.
type Store interface {
	Create(ctx context.Context, p domain.Package) (string, error)
	GetAll(ctx context.Context) ([]domain.Package, error)
	GetByID(ctx context.Context, id string) (domain.Package, bool, error)
	Update(ctx context.Context, id string, patch Patch) error
	Delete(ctx context.Context, id string) error
}

// Patch carries a partial update: only non-nil fields are written.
type Patch struct {
	Name     *string
	Price    *float64
	Duration *string
}
