package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	memberstore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/member"
	"github.com/Bhaskar125/gym-management-system/internal/domain/dietplan"
	"github.com/Bhaskar125/gym-management-system/internal/domain/member"
)

// Assignment errors.
var (
	ErrMemberNotFound   = errors.New("member not found")
	ErrDietPlanNotFound = errors.New("diet plan not found")
	ErrDietPlanInactive = errors.New("diet plan is not active")
)

// MemberStoreForAssign defines the member store interface needed by AssignDietPlan.
type MemberStoreForAssign interface {
	GetByID(ctx context.Context, id string) (member.Member, bool, error)
	Update(ctx context.Context, id string, patch memberstore.Patch) error
}

// DietPlanStoreForAssign defines the plan store interface needed by AssignDietPlan.
type DietPlanStoreForAssign interface {
	GetByID(ctx context.Context, id string) (dietplan.DietPlan, bool, error)
}

// AssignDietPlanInput carries input for the assignment orchestrator.
type AssignDietPlanInput struct {
	MemberID   string
	DietPlanID string
	DietNotes  string
}

// AssignDietPlanDeps holds dependencies for AssignDietPlan.
type AssignDietPlanDeps struct {
	MemberStore   MemberStoreForAssign
	DietPlanStore DietPlanStoreForAssign
}

// ExecuteAssignDietPlan links an active diet plan to a member. An empty
// DietPlanID clears the member's assignment instead.
// PRE: Member exists; plan exists and is active when DietPlanID is set
// POST: Member's dietPlanId and dietNotes reflect the input
func ExecuteAssignDietPlan(ctx context.Context, input AssignDietPlanInput, deps AssignDietPlanDeps) error {
	if input.MemberID == "" {
		return errors.New("member ID is required")
	}

	_, found, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return err
	}
	if !found {
		return ErrMemberNotFound
	}

	if input.DietPlanID != "" {
		plan, found, err := deps.DietPlanStore.GetByID(ctx, input.DietPlanID)
		if err != nil {
			return err
		}
		if !found {
			return ErrDietPlanNotFound
		}
		if !plan.Active {
			return ErrDietPlanInactive
		}
	}

	patch := memberstore.Patch{
		DietPlanID: &input.DietPlanID,
		DietNotes:  &input.DietNotes,
	}
	if err := deps.MemberStore.Update(ctx, input.MemberID, patch); err != nil {
		return err
	}

	slog.Info("member_event", "event", "diet_plan_assigned", "member_id", input.MemberID, "diet_plan_id", input.DietPlanID)
	return nil
}
