package member

import (
	"context"

	domain "github.com/Bhaskar125/gym-management-system/internal/domain/member"
)

// Store is the members collection gateway.
type Store interface {
	Create(ctx context.Context, m domain.Member) (string, error)
	GetAll(ctx context.Context) ([]domain.Member, error)
	GetByID(ctx context.Context, id string) (domain.Member, bool, error)
	Update(ctx context.Context, id string, patch Patch) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, term string) ([]domain.Member, error)
	Subscribe(ctx context.Context) (<-chan []domain.Member, func(), error)
}

// Patch carries a partial update: only non-nil fields are written.
// Setting PackageID, DietPlanID, or DietNotes to the empty string removes
// the field from the stored document.
type Patch struct {
	Name       *string
	Email      *string
	Phone      *string
	Password   *string
	PackageID  *string
	DietPlanID *string
	DietNotes  *string
	JoinDate   *string
	Active     *bool
}
