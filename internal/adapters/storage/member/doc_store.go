package member

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage"
	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage/docstore"
	domain "github.com/Bhaskar125/gym-management-system/internal/domain/member"
	"github.com/Bhaskar125/gym-management-system/internal/domain/validation"
)

// DocStore implements Store against the members collection.
type DocStore struct {
	db *docstore.DB
}

// NewDocStore creates a new members gateway.
func NewDocStore(db *docstore.DB) *DocStore {
	return &DocStore{db: db}
}

// Create validates and stores a new member.
// PRE: m has no ID; validation runs before any storage call
// POST: Returns the server-assigned id
func (s *DocStore) Create(ctx context.Context, m domain.Member) (string, error) {
	if err := m.Validate(); err != nil {
		return "", err
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	doc, err := s.db.Insert(ctx, storage.CollectionMembers, data)
	if err != nil {
		return "", err
	}
	return doc.ID, nil
}

// GetAll returns every member in insertion order.
func (s *DocStore) GetAll(ctx context.Context) ([]domain.Member, error) {
	docs, err := s.db.List(ctx, storage.CollectionMembers, docstore.ListOptions{})
	if err != nil {
		return nil, err
	}
	return decodeAll(docs)
}

// GetByID retrieves a member by id.
// POST: Returns (zero, false, nil) when the id does not exist
func (s *DocStore) GetByID(ctx context.Context, id string) (domain.Member, bool, error) {
	doc, found, err := s.db.Get(ctx, storage.CollectionMembers, id)
	if err != nil || !found {
		return domain.Member{}, false, err
	}
	m, err := decode(doc)
	if err != nil {
		return domain.Member{}, false, err
	}
	return m, true, nil
}

// Update merges the patch into an existing member.
// POST: Only patched fields change; updatedAt is refreshed
func (s *DocStore) Update(ctx context.Context, id string, patch Patch) error {
	fields, err := patch.fields()
	if err != nil {
		return err
	}
	_, err = s.db.Patch(ctx, storage.CollectionMembers, id, fields)
	return err
}

// Delete removes a member. Deleting a nonexistent id is not an error.
func (s *DocStore) Delete(ctx context.Context, id string) error {
	return s.db.Delete(ctx, storage.CollectionMembers, id)
}

// Search filters the full collection client-side against name, email,
// phone, and id, the way the public search view queries members.
func (s *DocStore) Search(ctx context.Context, term string) ([]domain.Member, error) {
	members, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	var results []domain.Member
	for _, m := range members {
		if m.Matches(term) {
			results = append(results, m)
		}
	}
	return results, nil
}

// Subscribe registers a standing listener on the members collection. The
// channel fires once immediately with current state, then after every
// write, in commit order. The returned func stops delivery and is safe to
// call more than once.
func (s *DocStore) Subscribe(ctx context.Context) (<-chan []domain.Member, func(), error) {
	raw, cancel, err := s.db.Watch(ctx, storage.CollectionMembers)
	if err != nil {
		return nil, nil, err
	}
	out := make(chan []domain.Member, 1)
	go func() {
		defer close(out)
		for docs := range raw {
			members, err := decodeAll(docs)
			if err != nil {
				continue
			}
			// Coalesce: replace a pending snapshot rather than block the hub.
			select {
			case out <- members:
			default:
				select {
				case <-out:
				default:
				}
				out <- members
			}
		}
	}()
	return out, cancel, nil
}

func decode(doc docstore.Document) (domain.Member, error) {
	var m domain.Member
	if err := doc.Unmarshal(&m); err != nil {
		return domain.Member{}, err
	}
	m.ID = doc.ID
	m.CreatedAt = doc.CreatedAt
	m.UpdatedAt = doc.UpdatedAt
	return m, nil
}

func decodeAll(docs []docstore.Document) ([]domain.Member, error) {
	members := make([]domain.Member, 0, len(docs))
	for _, doc := range docs {
		m, err := decode(doc)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

// fields converts the patch to a document merge, validating each patched
// field before any storage call. Clearing an optional reference removes
// the key entirely.
func (p Patch) fields() (map[string]any, error) {
	fields := make(map[string]any)
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return nil, validation.Errf("name", "member name cannot be empty")
		}
		fields["name"] = *p.Name
	}
	if p.Email != nil {
		if !strings.Contains(*p.Email, "@") {
			return nil, validation.Errf("email", "member email must be valid")
		}
		fields["email"] = *p.Email
	}
	if p.Phone != nil {
		if strings.TrimSpace(*p.Phone) == "" {
			return nil, validation.Errf("phone", "member phone cannot be empty")
		}
		fields["phone"] = *p.Phone
	}
	if p.Password != nil {
		if *p.Password == "" {
			return nil, validation.Errf("password", "member password cannot be empty")
		}
		fields["password"] = *p.Password
	}
	if p.JoinDate != nil {
		if _, err := time.Parse("2006-01-02", *p.JoinDate); err != nil {
			return nil, validation.Errf("joinDate", "join date must be YYYY-MM-DD")
		}
		fields["joinDate"] = *p.JoinDate
	}
	if p.PackageID != nil {
		fields["packageId"] = optionalRef(*p.PackageID)
	}
	if p.DietPlanID != nil {
		fields["dietPlanId"] = optionalRef(*p.DietPlanID)
	}
	if p.DietNotes != nil {
		fields["dietNotes"] = optionalRef(*p.DietNotes)
	}
	if p.Active != nil {
		fields["active"] = *p.Active
	}
	return fields, nil
}

func optionalRef(v string) any {
	if v == "" {
		return nil
	}
	return v
}
