package viewstate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	dietplanstore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/dietplan"
	"github.com/Bhaskar125/gym-management-system/internal/domain/dietplan"
)

// DietPlansView is a subscription-backed container for the diet plan list.
// Snapshots arrive ordered by name; mutations write through the gateway.
type DietPlansView struct {
	mu     sync.Mutex
	phase  Phase
	errmsg string
	plans  []dietplan.DietPlan
	cancel func()

	store dietplanstore.Store
	log   *slog.Logger
}

// NewDietPlansView creates an idle container over the given gateway.
func NewDietPlansView(store dietplanstore.Store, log *slog.Logger) *DietPlansView {
	if log == nil {
		log = slog.Default()
	}
	return &DietPlansView{store: store, log: log}
}

// Start opens the subscription and consumes snapshots until ctx ends or
// Stop is called.
// PRE: Called at most once per container
// POST: Container is Loading; transitions to Ready on the first snapshot
func (v *DietPlansView) Start(ctx context.Context) error {
	v.mu.Lock()
	if v.phase != PhaseIdle {
		v.mu.Unlock()
		return fmt.Errorf("diet plans view already started")
	}
	v.phase = PhaseLoading
	v.mu.Unlock()

	ch, cancel, err := v.store.Subscribe(ctx)
	if err != nil {
		v.mu.Lock()
		v.phase = PhaseFailed
		v.errmsg = "failed to fetch diet plans"
		v.mu.Unlock()
		v.log.Error("view_event", "view", "dietPlans", "event", "read_failed", "error", err)
		return nil
	}

	v.mu.Lock()
	v.cancel = cancel
	v.mu.Unlock()

	go func() {
		for snapshot := range ch {
			v.mu.Lock()
			v.plans = snapshot
			v.phase = PhaseReady
			v.errmsg = ""
			v.mu.Unlock()
		}
	}()
	return nil
}

// Stop tears down the subscription. Safe to call twice.
func (v *DietPlansView) Stop() {
	v.mu.Lock()
	cancel := v.cancel
	v.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Phase returns the current lifecycle phase.
func (v *DietPlansView) Phase() Phase {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.phase
}

// Err returns the last read error message, empty when healthy.
func (v *DietPlansView) Err() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errmsg
}

// Plans returns a copy of the current snapshot, ordered by name.
func (v *DietPlansView) Plans() []dietplan.DietPlan {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]dietplan.DietPlan, len(v.plans))
	copy(out, v.plans)
	return out
}

// Add creates a plan through the gateway; the subscription reconciles.
func (v *DietPlansView) Add(ctx context.Context, d dietplan.DietPlan) (string, error) {
	id, err := v.store.Create(ctx, d)
	if err != nil {
		return "", fmt.Errorf("failed to add diet plan: %w", err)
	}
	return id, nil
}

// Update applies a partial update through the gateway.
func (v *DietPlansView) Update(ctx context.Context, id string, patch dietplanstore.Patch) error {
	if err := v.store.Update(ctx, id, patch); err != nil {
		return fmt.Errorf("failed to update diet plan: %w", err)
	}
	return nil
}

// Remove deletes a plan through the gateway.
func (v *DietPlansView) Remove(ctx context.Context, id string) error {
	if err := v.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete diet plan: %w", err)
	}
	return nil
}
