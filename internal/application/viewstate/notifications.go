package viewstate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	notificationstore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/notification"
	"github.com/Bhaskar125/gym-management-system/internal/domain/notification"
)

// NotificationsView is a fetch-once container for notifications, newest
// first. Records are write-once: the only mutations are send and delete.
type NotificationsView struct {
	mu            sync.Mutex
	phase         Phase
	errmsg        string
	notifications []notification.Notification

	store notificationstore.Store
	log   *slog.Logger
}

// NewNotificationsView creates an idle container over the given gateway.
func NewNotificationsView(store notificationstore.Store, log *slog.Logger) *NotificationsView {
	if log == nil {
		log = slog.Default()
	}
	return &NotificationsView{store: store, log: log}
}

// Start runs the initial fetch.
func (v *NotificationsView) Start(ctx context.Context) {
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
func (v *NotificationsView) Refresh(ctx context.Context) {
	v.mu.Lock()
	v.phase = PhaseLoading
	v.mu.Unlock()
	v.fetch(ctx)
}

func (v *NotificationsView) fetch(ctx context.Context) {
	notifications, err := v.store.GetAll(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.phase = PhaseFailed
		v.errmsg = "failed to fetch notifications"
		v.log.Error("view_event", "view", "notifications", "event", "read_failed", "error", err)
		return
	}
	v.notifications = notifications
	v.phase = PhaseReady
	v.errmsg = ""
}

// Phase returns the current lifecycle phase.
func (v *NotificationsView) Phase() Phase {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.phase
}

// Err returns the last read error message, empty when healthy.
func (v *NotificationsView) Err() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errmsg
}

// Notifications returns a copy of the current slice, newest first.
func (v *NotificationsView) Notifications() []notification.Notification {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]notification.Notification, len(v.notifications))
	copy(out, v.notifications)
	return out
}

// Send creates a notification and prepends it locally.
// POST: On success the new notification is first in the local slice
func (v *NotificationsView) Send(ctx context.Context, n notification.Notification) (string, error) {
	id, err := v.store.Create(ctx, n)
	if err != nil {
		return "", fmt.Errorf("failed to send notification: %w", err)
	}
	n.ID = id
	v.mu.Lock()
	v.notifications = append([]notification.Notification{n}, v.notifications...)
	v.mu.Unlock()
	return id, nil
}

// Remove deletes a notification and filters it out locally.
func (v *NotificationsView) Remove(ctx context.Context, id string) error {
	if err := v.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}
	v.mu.Lock()
	kept := v.notifications[:0]
	for _, n := range v.notifications {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	v.notifications = kept
	v.mu.Unlock()
	return nil
}
