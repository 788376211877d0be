package viewstate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	packstore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/pack"
	"github.com/Bhaskar125/gym-management-system/internal/domain/pack"
)

// PackagesView is a fetch-once container for membership packages. New
// packages append to the end of the local slice.
type PackagesView struct {
	mu       sync.Mutex
	phase    Phase
	errmsg   string
	packages []pack.Package

	store packstore.Store
	log   *slog.Logger
}

// NewPackagesView creates an idle container over the given gateway.
func NewPackagesView(store packstore.Store, log *slog.Logger) *PackagesView {
	if log == nil {
		log = slog.Default()
	}
	return &PackagesView{store: store, log: log}
}

// Start runs the initial fetch.
func (v *PackagesView) Start(ctx context.Context) {
	v.mu.Lock()
	if v.phase != PhaseIdle {
		v.mu.Unlock()
		return
	}
	v.phase = PhaseLoading
	v.mu.Unlock()
	v.fetch(ctx)
}

// Refresh re-runs the fetch.
func (v *PackagesView) Refresh(ctx context.Context) {
	v.mu.Lock()
	v.phase = PhaseLoading
	v.mu.Unlock()
	v.fetch(ctx)
}

func (v *PackagesView) fetch(ctx context.Context) {
	packages, err := v.store.GetAll(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.phase = PhaseFailed
		v.errmsg = "failed to fetch packages"
		v.log.Error("view_event", "view", "packages", "event", "read_failed", "error", err)
		return
	}
	v.packages = packages
	v.phase = PhaseReady
	v.errmsg = ""
}

// Phase returns the current lifecycle phase.
func (v *PackagesView) Phase() Phase {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.phase
}

// Err returns the last read error message, empty when healthy.
func (v *PackagesView) Err() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errmsg
}

// Packages returns a copy of the current slice.
func (v *PackagesView) Packages() []pack.Package {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]pack.Package, len(v.packages))
	copy(out, v.packages)
	return out
}

// Add creates a package and appends it locally.
// POST: On success the new package is last in the local slice
func (v *PackagesView) Add(ctx context.Context, p pack.Package) (string, error) {
	id, err := v.store.Create(ctx, p)
	if err != nil {
		return "", fmt.Errorf("failed to add package: %w", err)
	}
	p.ID = id
	v.mu.Lock()
	v.packages = append(v.packages, p)
	v.mu.Unlock()
	return id, nil
}

// Update applies a partial update through the gateway and merges the same
// fields into the local copy.
func (v *PackagesView) Update(ctx context.Context, id string, patch packstore.Patch) error {
	if err := v.store.Update(ctx, id, patch); err != nil {
		return fmt.Errorf("failed to update package: %w", err)
	}
	v.mu.Lock()
	for i := range v.packages {
		if v.packages[i].ID == id {
			if patch.Name != nil {
				v.packages[i].Name = *patch.Name
			}
			if patch.Price != nil {
				v.packages[i].Price = *patch.Price
			}
			if patch.Duration != nil {
				v.packages[i].Duration = *patch.Duration
			}
			break
		}
	}
	v.mu.Unlock()
	return nil
}

// Remove deletes a package and filters it out locally.
func (v *PackagesView) Remove(ctx context.Context, id string) error {
	if err := v.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}
	v.mu.Lock()
	kept := v.packages[:0]
	for _, p := range v.packages {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	v.packages = kept
	v.mu.Unlock()
	return nil
}
