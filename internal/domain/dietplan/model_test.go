package dietplan_test

import (
	"testing"

	"github.com/Bhaskar125/gym-management-system/internal/domain/dietplan"
	"github.com/Bhaskar125/gym-management-system/internal/domain/validation"
)

func validPlan() dietplan.DietPlan {
	return dietplan.DietPlan{
		Name:          "Lean Bulk",
		Type:          dietplan.TypeMuscleGain,
		Description:   "High-protein plan",
		CalorieTarget: 2800,
		ProteinTarget: 180,
		CarbTarget:    300,
		FatTarget:     80,
		MealPlan: []dietplan.Meal{
			{
				ID:       "meal-1",
				MealType: dietplan.MealBreakfast,
				Foods: []dietplan.Food{
					{Name: "Oats", Quantity: "100g", Calories: 380, Protein: 13, Carbs: 67, Fat: 7},
				},
				TotalCalories: 380,
			},
		},
		CreatedDate: "2024-01-01",
		Active:      true,
	}
}

// TestDietPlanValidation tests validation of DietPlan including nested
// meals and foods.
func TestDietPlanValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*dietplan.DietPlan)
		wantField string
	}{
		{name: "valid plan", mutate: func(*dietplan.DietPlan) {}},
		{
			name:      "empty name",
			mutate:    func(d *dietplan.DietPlan) { d.Name = " " },
			wantField: "name",
		},
		{
			name:      "bad type",
			mutate:    func(d *dietplan.DietPlan) { d.Type = "Crash Diet" },
			wantField: "type",
		},
		{
			name:      "negative calorie target",
			mutate:    func(d *dietplan.DietPlan) { d.CalorieTarget = -100 },
			wantField: "calorieTarget",
		},
		{
			name:      "negative protein target",
			mutate:    func(d *dietplan.DietPlan) { d.ProteinTarget = -1 },
			wantField: "proteinTarget",
		},
		{
			name:      "bad meal type",
			mutate:    func(d *dietplan.DietPlan) { d.MealPlan[0].MealType = "Brunch" },
			wantField: "mealType",
		},
		{
			name:      "food without name",
			mutate:    func(d *dietplan.DietPlan) { d.MealPlan[0].Foods[0].Name = "" },
			wantField: "foods",
		},
		{
			name:      "negative food macro",
			mutate:    func(d *dietplan.DietPlan) { d.MealPlan[0].Foods[0].Protein = -5 },
			wantField: "foods",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := validPlan()
			tt.mutate(&plan)
			err := plan.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() error = nil, want error")
			}
			if validation.FieldOf(err) != tt.wantField {
				t.Fatalf("Validate() field = %q, want %q", validation.FieldOf(err), tt.wantField)
			}
		})
	}
}
