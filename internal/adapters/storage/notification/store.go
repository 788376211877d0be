package notification

import (
	"context"

	domain "github.com/Bhaskar125/gym-management-system/internal/domain/notification"
)

// Store is the notifications collection gateway. Notifications are
// write-once: there is deliberately no update operation.
type Store interface {
	Create(ctx context.Context, n domain.Notification) (string, error)
	GetAll(ctx context.Context) ([]domain.Notification, error)
	GetByID(ctx context.Context, id string) (domain.Notification, bool, error)
	Delete(ctx context.Context, id string) error
}
