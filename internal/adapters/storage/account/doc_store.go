package account

import (
	"context"
	"encoding/json"

	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage"
	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage/docstore"
	domain "github.com/Bhaskar125/gym-management-system/internal/domain/account"
)

// DocStore implements Store against the accounts collection.
type DocStore struct {
	db *docstore.DB
}

// NewDocStore creates a new accounts gateway.
func NewDocStore(db *docstore.DB) *DocStore {
	return &DocStore{db: db}
}

// Create validates and stores a new account.
// PRE: a.PasswordHash is already a bcrypt hash
// POST: Returns the server-assigned id
func (s *DocStore) Create(ctx context.Context, a domain.Account) (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}
	data, err := json.Marshal(a)
	if err != nil {
		return "", err
	}
	doc, err := s.db.Insert(ctx, storage.CollectionAccounts, data)
	if err != nil {
		return "", err
	}
	return doc.ID, nil
}

// GetByEmail retrieves an account by its unique email.
// POST: Returns (zero, false, nil) when no account has the email
func (s *DocStore) GetByEmail(ctx context.Context, email string) (domain.Account, bool, error) {
	docs, err := s.db.List(ctx, storage.CollectionAccounts, docstore.ListOptions{
		Filters: []docstore.Filter{{Field: "email", Value: email}},
	})
	if err != nil {
		return domain.Account{}, false, err
	}
	if len(docs) == 0 {
		return domain.Account{}, false, nil
	}
	a, err := decode(docs[0])
	if err != nil {
		return domain.Account{}, false, err
	}
	return a, true, nil
}

// GetByID retrieves an account by id.
// POST: Returns (zero, false, nil) when the id does not exist
func (s *DocStore) GetByID(ctx context.Context, id string) (domain.Account, bool, error) {
	doc, found, err := s.db.Get(ctx, storage.CollectionAccounts, id)
	if err != nil || !found {
		return domain.Account{}, false, err
	}
	a, err := decode(doc)
	if err != nil {
		return domain.Account{}, false, err
	}
	return a, true, nil
}

func decode(doc docstore.Document) (domain.Account, error) {
	var a domain.Account
	if err := doc.Unmarshal(&a); err != nil {
		return domain.Account{}, err
	}
	a.ID = doc.ID
	a.CreatedAt = doc.CreatedAt
	a.UpdatedAt = doc.UpdatedAt
	return a, nil
}
