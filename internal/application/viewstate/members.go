package viewstate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	memberstore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/member"
	"github.com/Bhaskar125/gym-management-system/internal/domain/member"
)

// MembersView is a subscription-backed container for the members list.
// Mutations write through the gateway and rely on the next snapshot to
// reconcile the local slice, so the view never drifts from storage.
type MembersView struct {
	mu      sync.Mutex
	phase   Phase
	errmsg  string
	members []member.Member
	cancel  func()

	store memberstore.Store
	log   *slog.Logger
}

// NewMembersView creates an idle container over the given gateway.
// POST: Returns a container in PhaseIdle; Start must be called before reads
func NewMembersView(store memberstore.Store, log *slog.Logger) *MembersView {
	if log == nil {
		log = slog.Default()
	}
	return &MembersView{store: store, log: log}
}

// Start opens the subscription and consumes snapshots until ctx ends or
// Stop is called. The first snapshot moves the container to PhaseReady.
// PRE: Called at most once per container
// POST: Container is Loading; transitions to Ready on the first snapshot
func (v *MembersView) Start(ctx context.Context) error {
	v.mu.Lock()
	if v.phase != PhaseIdle {
		v.mu.Unlock()
		return fmt.Errorf("members view already started")
	}
	v.phase = PhaseLoading
	v.mu.Unlock()

	ch, cancel, err := v.store.Subscribe(ctx)
	if err != nil {
		v.fail("failed to fetch members", err)
		return nil
	}

	v.mu.Lock()
	v.cancel = cancel
	v.mu.Unlock()

	go func() {
		for snapshot := range ch {
			v.mu.Lock()
			v.members = snapshot
			v.phase = PhaseReady
			v.errmsg = ""
			v.mu.Unlock()
		}
	}()
	return nil
}

// Stop tears down the subscription. Safe to call twice.
func (v *MembersView) Stop() {
	v.mu.Lock()
	cancel := v.cancel
	v.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Phase returns the current lifecycle phase.
func (v *MembersView) Phase() Phase {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.phase
}

// Err returns the last read error message, empty when healthy.
func (v *MembersView) Err() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errmsg
}

// Members returns a copy of the current snapshot.
// POST: Returned slice is safe for the caller to retain
func (v *MembersView) Members() []member.Member {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]member.Member, len(v.members))
	copy(out, v.members)
	return out
}

// Add creates a member through the gateway. The subscription delivers the
// updated list, so no local splice happens here.
// POST: Returns the new id, or the gateway error unchanged
func (v *MembersView) Add(ctx context.Context, m member.Member) (string, error) {
	id, err := v.store.Create(ctx, m)
	if err != nil {
		return "", fmt.Errorf("failed to add member: %w", err)
	}
	return id, nil
}

// Update applies a partial update through the gateway.
func (v *MembersView) Update(ctx context.Context, id string, patch memberstore.Patch) error {
	if err := v.store.Update(ctx, id, patch); err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	return nil
}

// Remove deletes a member through the gateway.
func (v *MembersView) Remove(ctx context.Context, id string) error {
	if err := v.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}

func (v *MembersView) fail(msg string, err error) {
	v.mu.Lock()
	v.phase = PhaseFailed
	v.errmsg = msg
	v.mu.Unlock()
	v.log.Error("view_event", "view", "members", "event", "read_failed", "error", err)
}
