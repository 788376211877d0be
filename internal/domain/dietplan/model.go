package dietplan

import (
	"strings"
	"time"

	"github.com/Bhaskar125/gym-management-system/internal/domain/validation"
)

// Diet plan types
const (
	TypeWeightLoss  = "Weight Loss"
	TypeMuscleGain  = "Muscle Gain"
	TypeMaintenance = "Maintenance"
	TypeAthletic    = "Athletic"
)

// Meal types
const (
	MealBreakfast = "Breakfast"
	MealLunch     = "Lunch"
	MealDinner    = "Dinner"
	MealSnack     = "Snack"
)

// ValidTypes contains all valid diet plan types.
var ValidTypes = []string{TypeWeightLoss, TypeMuscleGain, TypeMaintenance, TypeAthletic}

// ValidMealTypes contains all valid meal types.
var ValidMealTypes = []string{MealBreakfast, MealLunch, MealDinner, MealSnack}

// Food is a single food item within a meal, with its macro breakdown.
type Food struct {
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Meal groups foods under a meal slot (breakfast, lunch, dinner, snack).
type Meal struct {
	ID            string  `json:"id"`
	MealType      string  `json:"mealType"`
	Foods         []Food  `json:"foods"`
	TotalCalories float64 `json:"totalCalories"`
	Notes         string  `json:"notes,omitempty"`
}

// DietPlan is a nutrition plan stored in the dietPlans collection and
// referenced by Member.DietPlanID.
type DietPlan struct {
	ID                  string   `json:"-"`
	Name                string   `json:"name"`
	Type                string   `json:"type"`
	Description         string   `json:"description"`
	CalorieTarget       float64  `json:"calorieTarget"`
	ProteinTarget       float64  `json:"proteinTarget"`
	CarbTarget          float64  `json:"carbTarget"`
	FatTarget           float64  `json:"fatTarget"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
	MealPlan            []Meal   `json:"mealPlan"`
	CreatedDate         string   `json:"createdDate"` // YYYY-MM-DD
	Active              bool     `json:"active"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Validate checks if the DietPlan has valid data, including every meal and
// food in the meal plan.
// PRE: DietPlan struct is initialized
// POST: Returns a *validation.Error naming the offending field, nil otherwise
func (d *DietPlan) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return validation.Errf("name", "diet plan name cannot be empty")
	}
	if !isValidType(d.Type) {
		return validation.Errf("type", "diet plan type must be one of: %s", strings.Join(ValidTypes, ", "))
	}
	if d.CalorieTarget < 0 {
		return validation.Errf("calorieTarget", "calorie target cannot be negative")
	}
	if d.ProteinTarget < 0 {
		return validation.Errf("proteinTarget", "protein target cannot be negative")
	}
	if d.CarbTarget < 0 {
		return validation.Errf("carbTarget", "carb target cannot be negative")
	}
	if d.FatTarget < 0 {
		return validation.Errf("fatTarget", "fat target cannot be negative")
	}
	for _, meal := range d.MealPlan {
		if err := meal.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a single meal and its foods.
// POST: Returns a *validation.Error naming the offending field, nil otherwise
func (m *Meal) Validate() error {
	if !isValidMealType(m.MealType) {
		return validation.Errf("mealType", "meal type must be one of: %s", strings.Join(ValidMealTypes, ", "))
	}
	if m.TotalCalories < 0 {
		return validation.Errf("totalCalories", "meal total calories cannot be negative")
	}
	for _, f := range m.Foods {
		if strings.TrimSpace(f.Name) == "" {
			return validation.Errf("foods", "food name cannot be empty")
		}
		if f.Calories < 0 || f.Protein < 0 || f.Carbs < 0 || f.Fat < 0 {
			return validation.Errf("foods", "food macros cannot be negative")
		}
	}
	return nil
}

func isValidType(t string) bool {
	for _, v := range ValidTypes {
		if t == v {
			return true
		}
	}
	return false
}

func isValidMealType(t string) bool {
	for _, v := range ValidMealTypes {
		if t == v {
			return true
		}
	}
	return false
}
