package dietplan_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage"
	dietplanStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/dietplan"
	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage/docstore"
	dietplanDomain "github.com/Bhaskar125/gym-management-system/internal/domain/dietplan"
)

func newTestStore(t *testing.T) *dietplanStore.DocStore {
	t.Helper()
	sqldb, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqldb.SetMaxOpenConns(1)
	t.Cleanup(func() { sqldb.Close() })
	if err := storage.InitDB(sqldb); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return dietplanStore.NewDocStore(docstore.New(sqldb))
}

func plan(name, planType string, active bool) dietplanDomain.DietPlan {
	return dietplanDomain.DietPlan{
		Name:          name,
		Type:          planType,
		CalorieTarget: 2000,
		Active:        active,
	}
}

// TestGetActiveOrdersByName verifies the active filter plus name-ascending
// ordering pushed to the store.
func TestGetActiveOrdersByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, p := range []dietplanDomain.DietPlan{
		plan("Shred", dietplanDomain.TypeWeightLoss, true),
		plan("Bulk", dietplanDomain.TypeMuscleGain, true),
		plan("Old Plan", dietplanDomain.TypeMaintenance, false),
	} {
		if _, err := s.Create(ctx, p); err != nil {
			t.Fatalf("create %s: %v", p.Name, err)
		}
	}

	active, err := s.GetActive(ctx)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("active plans = %d, want 2", len(active))
	}
	if active[0].Name != "Bulk" || active[1].Name != "Shred" {
		t.Fatalf("order = %s, %s; want Bulk, Shred", active[0].Name, active[1].Name)
	}
}

// TestGetByTypeFiltersInactive verifies type queries only return active
// plans.
func TestGetByTypeFiltersInactive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Create(ctx, plan("Bulk", dietplanDomain.TypeMuscleGain, true)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Create(ctx, plan("Retired Bulk", dietplanDomain.TypeMuscleGain, false)); err != nil {
		t.Fatalf("create: %v", err)
	}

	plans, err := s.GetByType(ctx, dietplanDomain.TypeMuscleGain)
	if err != nil {
		t.Fatalf("get by type: %v", err)
	}
	if len(plans) != 1 || plans[0].Name != "Bulk" {
		t.Fatalf("plans = %+v, want only the active Bulk", plans)
	}
}

// TestMealPlanRoundTrip verifies nested meals and foods survive storage.
func TestMealPlanRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p := plan("Bulk", dietplanDomain.TypeMuscleGain, true)
	p.MealPlan = []dietplanDomain.Meal{
		{
			ID:       "meal-1",
			MealType: dietplanDomain.MealBreakfast,
			Foods: []dietplanDomain.Food{
				{Name: "Oats", Quantity: "100g", Calories: 380, Protein: 13, Carbs: 67, Fat: 7},
				{Name: "Eggs", Quantity: "3", Calories: 210, Protein: 18, Carbs: 1, Fat: 15},
			},
			TotalCalories: 590,
			Notes:         "before training",
		},
	}

	id, err := s.Create(ctx, p)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, found, err := s.GetByID(ctx, id)
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if len(got.MealPlan) != 1 || len(got.MealPlan[0].Foods) != 2 {
		t.Fatalf("meal plan = %+v, want 1 meal with 2 foods", got.MealPlan)
	}
	if got.MealPlan[0].Foods[1].Protein != 18 {
		t.Fatalf("food macros lost: %+v", got.MealPlan[0].Foods[1])
	}
}

// TestSubscribeSnapshotsSortedByName verifies live snapshots arrive in
// name order and reflect subsequent writes.
func TestSubscribeSnapshotsSortedByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.Create(ctx, plan("Shred", dietplanDomain.TypeWeightLoss, true)); err != nil {
		t.Fatalf("create: %v", err)
	}

	ch, cancel, err := s.Subscribe(ctx)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer cancel()

	initial := recv(t, ch)
	if len(initial) != 1 {
		t.Fatalf("initial snapshot = %d plans, want 1", len(initial))
	}

	if _, err := s.Create(ctx, plan("Bulk", dietplanDomain.TypeMuscleGain, true)); err != nil {
		t.Fatalf("create: %v", err)
	}

	next := recv(t, ch)
	if len(next) != 2 {
		t.Fatalf("snapshot = %d plans, want 2", len(next))
	}
	if next[0].Name != "Bulk" || next[1].Name != "Shred" {
		t.Fatalf("snapshot order = %s, %s; want Bulk, Shred", next[0].Name, next[1].Name)
	}
}

func recv(t *testing.T, ch <-chan []dietplanDomain.DietPlan) []dietplanDomain.DietPlan {
	t.Helper()
	select {
	case plans, ok := <-ch:
		if !ok {
			t.Fatal("subscription channel closed")
		}
		return plans
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
	}
	return nil
}
