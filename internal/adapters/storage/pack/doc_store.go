package pack

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage"
	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage/docstore"
	domain "github.com/Bhaskar125/gym-management-system/internal/domain/pack"
	"github.com/Bhaskar125/gym-management-system/internal/domain/validation"
)

// DocStore implements Store against the packages collection.
type DocStore struct {
	db *docstore.DB
}

// NewDocStore creates a new packages gateway.
func NewDocStore(db *docstore.DB) *DocStore {
	return &DocStore{db: db}
}

// Create validates and stores a new package.
// POST: Returns the server-assigned id
func (s *DocStore) Create(ctx context.Context, p domain.Package) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	doc, err := s.db.Insert(ctx, storage.CollectionPackages, data)
	if err != nil {
		return "", err
	}
	return doc.ID, nil
}

// GetAll returns every package in insertion order.
func (s *DocStore) GetAll(ctx context.Context) ([]domain.Package, error) {
	docs, err := s.db.List(ctx, storage.CollectionPackages, docstore.ListOptions{})
	if err != nil {
		return nil, err
	}
	packages := make([]domain.Package, 0, len(docs))
	for _, doc := range docs {
		p, err := decode(doc)
		if err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, nil
}

// GetByID retrieves a package by id.
// POST: Returns (zero, false, nil) when the id does not exist
func (s *DocStore) GetByID(ctx context.Context, id string) (domain.Package, bool, error) {
	doc, found, err := s.db.Get(ctx, storage.CollectionPackages, id)
	if err != nil || !found {
		return domain.Package{}, false, err
	}
	p, err := decode(doc)
	if err != nil {
		return domain.Package{}, false, err
	}
	return p, true, nil
}

// Update merges the patch into an existing package.
func (s *DocStore) Update(ctx context.Context, id string, patch Patch) error {
	fields, err := patch.fields()
	if err != nil {
		return err
	}
	_, err = s.db.Patch(ctx, storage.CollectionPackages, id, fields)
	return err
}

// Delete removes a package. Deleting a nonexistent id is not an error.
func (s *DocStore) Delete(ctx context.Context, id string) error {
	return s.db.Delete(ctx, storage.CollectionPackages, id)
}

func decode(doc docstore.Document) (domain.Package, error) {
	var p domain.Package
	if err := doc.Unmarshal(&p); err != nil {
		return domain.Package{}, err
	}
	p.ID = doc.ID
	p.CreatedAt = doc.CreatedAt
	p.UpdatedAt = doc.UpdatedAt
	return p, nil
}

func (p Patch) fields() (map[string]any, error) {
	fields := make(map[string]any)
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return nil, validation.Errf("name", "package name cannot be empty")
		}
		fields["name"] = *p.Name
	}
	if p.Price != nil {
		if *p.Price < 0 {
			return nil, validation.Errf("price", "package price cannot be negative")
		}
		fields["price"] = *p.Price
	}
	if p.Duration != nil {
		if strings.TrimSpace(*p.Duration) == "" {
			return nil, validation.Errf("duration", "package duration cannot be empty")
		}
		fields["duration"] = *p.Duration
	}
	return fields, nil
}
