package dietplan

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage"
	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage/docstore"
	domain "github.com/Bhaskar125/gym-management-system/internal/domain/dietplan"
	"github.com/Bhaskar125/gym-management-system/internal/domain/validation"
)

// DocStore implements Store against the dietPlans collection.
type DocStore struct {
	db *docstore.DB
}

// NewDocStore creates a new diet plans gateway.
func NewDocStore(db *docstore.DB) *DocStore {
	return &DocStore{db: db}
}

// Create validates and stores a new diet plan, including every meal and
// food in the meal plan.
// POST: Returns the server-assigned id
func (s *DocStore) Create(ctx context.Context, d domain.DietPlan) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	data, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	doc, err := s.db.Insert(ctx, storage.CollectionDietPlans, data)
	if err != nil {
		return "", err
	}
	return doc.ID, nil
}

// GetAll returns every diet plan in insertion order.
func (s *DocStore) GetAll(ctx context.Context) ([]domain.DietPlan, error) {
	return s.list(ctx, docstore.ListOptions{})
}

// GetActive returns active plans ordered by name.
func (s *DocStore) GetActive(ctx context.Context) ([]domain.DietPlan, error) {
	return s.list(ctx, docstore.ListOptions{
		Filters: []docstore.Filter{{Field: "active", Value: true}},
		OrderBy: "name",
	})
}

// GetByType returns active plans of the given type, ordered by name.
func (s *DocStore) GetByType(ctx context.Context, planType string) ([]domain.DietPlan, error) {
	return s.list(ctx, docstore.ListOptions{
		Filters: []docstore.Filter{
			{Field: "type", Value: planType},
			{Field: "active", Value: true},
		},
		OrderBy: "name",
	})
}

func (s *DocStore) list(ctx context.Context, opts docstore.ListOptions) ([]domain.DietPlan, error) {
	docs, err := s.db.List(ctx, storage.CollectionDietPlans, opts)
	if err != nil {
		return nil, err
	}
	return decodeAll(docs)
}

// GetByID retrieves a diet plan by id.
// POST: Returns (zero, false, nil) when the id does not exist
func (s *DocStore) GetByID(ctx context.Context, id string) (domain.DietPlan, bool, error) {
	doc, found, err := s.db.Get(ctx, storage.CollectionDietPlans, id)
	if err != nil || !found {
		return domain.DietPlan{}, false, err
	}
	d, err := decode(doc)
	if err != nil {
		return domain.DietPlan{}, false, err
	}
	return d, true, nil
}

// Update merges the patch into an existing diet plan.
func (s *DocStore) Update(ctx context.Context, id string, patch Patch) error {
	fields, err := patch.fields()
	if err != nil {
		return err
	}
	_, err = s.db.Patch(ctx, storage.CollectionDietPlans, id, fields)
	return err
}

// Delete removes a diet plan. Deleting a nonexistent id is not an error.
func (s *DocStore) Delete(ctx context.Context, id string) error {
	return s.db.Delete(ctx, storage.CollectionDietPlans, id)
}

// Subscribe registers a standing listener on the dietPlans collection.
// Snapshots arrive ordered by name ascending, matching the live list view.
// The returned func stops delivery and is safe to call more than once.
func (s *DocStore) Subscribe(ctx context.Context) (<-chan []domain.DietPlan, func(), error) {
	raw, cancel, err := s.db.Watch(ctx, storage.CollectionDietPlans)
	if err != nil {
		return nil, nil, err
	}
	out := make(chan []domain.DietPlan, 1)
	go func() {
		defer close(out)
		for docs := range raw {
			plans, err := decodeAll(docs)
			if err != nil {
				continue
			}
			sort.Slice(plans, func(i, j int) bool { return plans[i].Name < plans[j].Name })
			select {
			case out <- plans:
			default:
				select {
				case <-out:
				default:
				}
				out <- plans
			}
		}
	}()
	return out, cancel, nil
}

func decode(doc docstore.Document) (domain.DietPlan, error) {
	var d domain.DietPlan
	if err := doc.Unmarshal(&d); err != nil {
		return domain.DietPlan{}, err
	}
	d.ID = doc.ID
	d.CreatedAt = doc.CreatedAt
	d.UpdatedAt = doc.UpdatedAt
	return d, nil
}

func decodeAll(docs []docstore.Document) ([]domain.DietPlan, error) {
	plans := make([]domain.DietPlan, 0, len(docs))
	for _, doc := range docs {
		d, err := decode(doc)
		if err != nil {
			return nil, err
		}
		plans = append(plans, d)
	}
	return plans, nil
}

func (p Patch) fields() (map[string]any, error) {
	fields := make(map[string]any)
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return nil, validation.Errf("name", "diet plan name cannot be empty")
		}
		fields["name"] = *p.Name
	}
	if p.Type != nil {
		valid := false
		for _, t := range domain.ValidTypes {
			if *p.Type == t {
				valid = true
			}
		}
		if !valid {
			return nil, validation.Errf("type", "diet plan type must be one of: %s", strings.Join(domain.ValidTypes, ", "))
		}
		fields["type"] = *p.Type
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	for field, v := range map[string]*float64{
		"calorieTarget": p.CalorieTarget,
		"proteinTarget": p.ProteinTarget,
		"carbTarget":    p.CarbTarget,
		"fatTarget":     p.FatTarget,
	} {
		if v == nil {
			continue
		}
		if *v < 0 {
			return nil, validation.Errf(field, "%s cannot be negative", field)
		}
		fields[field] = *v
	}
	if p.DietaryRestrictions != nil {
		fields["dietaryRestrictions"] = *p.DietaryRestrictions
	}
	if p.MealPlan != nil {
		for _, meal := range *p.MealPlan {
			if err := meal.Validate(); err != nil {
				return nil, err
			}
		}
		fields["mealPlan"] = *p.MealPlan
	}
	if p.Active != nil {
		fields["active"] = *p.Active
	}
	return fields, nil
}
