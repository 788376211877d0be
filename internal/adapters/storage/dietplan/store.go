package dietplan

import (
	"context"

	domain "github.com/Bhaskar125/gym-management-system/internal/domain/dietplan"
)

// Store is the dietPlans collection gateway. Filtered reads and
// subscription snapshots come back ordered by name ascending.
type Store interface {
	Create(ctx context.Context, d domain.DietPlan) (string, error)
	GetAll(ctx context.Context) ([]domain.DietPlan, error)
	GetActive(ctx context.Context) ([]domain.DietPlan, error)
	GetByType(ctx context.Context, planType string) ([]domain.DietPlan, error)
	GetByID(ctx context.Context, id string) (domain.DietPlan, bool, error)
	Update(ctx context.Context, id string, patch Patch) error
	Delete(ctx context.Context, id string) error
	Subscribe(ctx context.Context) (<-chan []domain.DietPlan, func(), error)
}

// Patch carries a partial update: only non-nil fields are written.
type Patch struct {
	Name                *string
	Type                *string
	Description         *string
	CalorieTarget       *float64
	ProteinTarget       *float64
	CarbTarget          *float64
	FatTarget           *float64
	DietaryRestrictions *[]string
	MealPlan            *[]domain.Meal
	Active              *bool
}
