package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage"
	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage/docstore"
	domain "github.com/Bhaskar125/gym-management-system/internal/domain/notification"
)

// DocStore implements Store against the notifications collection.
type DocStore struct {
	db *docstore.DB

	// now stamps new notifications; a test hook.
	now func() time.Time
}

// NewDocStore creates a new notifications gateway.
func NewDocStore(db *docstore.DB) *DocStore {
	return &DocStore{db: db, now: time.Now}
}

// Create validates and stores a new notification, stamping its timestamp
// at creation time. Notifications are never updated afterward.
// POST: Returns the server-assigned id
func (s *DocStore) Create(ctx context.Context, n domain.Notification) (string, error) {
	if err := n.Validate(); err != nil {
		return "", err
	}
	if n.Timestamp == "" {
		n.Timestamp = s.now().UTC().Format(time.RFC3339)
	}
	data, err := json.Marshal(n)
	if err != nil {
		return "", err
	}
	doc, err := s.db.Insert(ctx, storage.CollectionNotifications, data)
	if err != nil {
		return "", err
	}
	return doc.ID, nil
}

// GetAll returns every notification, newest first.
func (s *DocStore) GetAll(ctx context.Context) ([]domain.Notification, error) {
	docs, err := s.db.List(ctx, storage.CollectionNotifications, docstore.ListOptions{
		OrderBy:    "timestamp",
		Descending: true,
	})
	if err != nil {
		return nil, err
	}
	notifications := make([]domain.Notification, 0, len(docs))
	for _, doc := range docs {
		n, err := decode(doc)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

// GetByID retrieves a notification by id.
// POST: Returns (zero, false, nil) when the id does not exist
func (s *DocStore) GetByID(ctx context.Context, id string) (domain.Notification, bool, error) {
	doc, found, err := s.db.Get(ctx, storage.CollectionNotifications, id)
	if err != nil || !found {
		return domain.Notification{}, false, err
	}
	n, err := decode(doc)
	if err != nil {
		return domain.Notification{}, false, err
	}
	return n, true, nil
}

// Delete removes a notification. Deleting a nonexistent id is not an error.
func (s *DocStore) Delete(ctx context.Context, id string) error {
	return s.db.Delete(ctx, storage.CollectionNotifications, id)
}

func decode(doc docstore.Document) (domain.Notification, error) {
	var n domain.Notification
	if err := doc.Unmarshal(&n); err != nil {
		return domain.Notification{}, err
	}
	n.ID = doc.ID
	n.CreatedAt = doc.CreatedAt
	n.UpdatedAt = doc.UpdatedAt
	return n, nil
}
