package bill

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage"
	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage/docstore"
	domain "github.com/Bhaskar125/gym-management-system/internal/domain/bill"
	"github.com/Bhaskar125/gym-management-system/internal/domain/validation"
)

// DocStore implements Store against the bills collection.
type DocStore struct {
	db *docstore.DB
}

// NewDocStore creates a new bills gateway.
func NewDocStore(db *docstore.DB) *DocStore {
	return &DocStore{db: db}
}

// Create validates and stores a new bill.
// POST: Returns the server-assigned id
func (s *DocStore) Create(ctx context.Context, b domain.Bill) (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}
	data, err := json.Marshal(b)
	if err != nil {
		return "", err
	}
	doc, err := s.db.Insert(ctx, storage.CollectionBills, data)
	if err != nil {
		return "", err
	}
	return doc.ID, nil
}

// GetAll returns every bill, ordered by month descending.
func (s *DocStore) GetAll(ctx context.Context) ([]domain.Bill, error) {
	return s.list(ctx, nil)
}

// GetByMemberID returns a member's bills, ordered by month descending.
func (s *DocStore) GetByMemberID(ctx context.Context, memberID string) ([]domain.Bill, error) {
	return s.list(ctx, []docstore.Filter{{Field: "memberId", Value: memberID}})
}

// GetPending returns all pending bills, ordered by month descending.
func (s *DocStore) GetPending(ctx context.Context) ([]domain.Bill, error) {
	return s.list(ctx, []docstore.Filter{{Field: "status", Value: domain.StatusPending}})
}

func (s *DocStore) list(ctx context.Context, filters []docstore.Filter) ([]domain.Bill, error) {
	docs, err := s.db.List(ctx, storage.CollectionBills, docstore.ListOptions{
		Filters:    filters,
		OrderBy:    "month",
		Descending: true,
	})
	if err != nil {
		return nil, err
	}
	bills := make([]domain.Bill, 0, len(docs))
	for _, doc := range docs {
		b, err := decode(doc)
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, nil
}

// GetByID retrieves a bill by id.
// POST: Returns (zero, false, nil) when the id does not exist
func (s *DocStore) GetByID(ctx context.Context, id string) (domain.Bill, bool, error) {
	doc, found, err := s.db.Get(ctx, storage.CollectionBills, id)
	if err != nil || !found {
		return domain.Bill{}, false, err
	}
	b, err := decode(doc)
	if err != nil {
		return domain.Bill{}, false, err
	}
	return b, true, nil
}

// Update merges the patch into an existing bill. A payment transition
// patches status, paymentDate, and receiptUrl in one call so they change
// atomically.
func (s *DocStore) Update(ctx context.Context, id string, patch Patch) error {
	fields, err := patch.fields()
	if err != nil {
		return err
	}
	_, err = s.db.Patch(ctx, storage.CollectionBills, id, fields)
	return err
}

// Delete removes a bill. Deleting a nonexistent id is not an error.
func (s *DocStore) Delete(ctx context.Context, id string) error {
	return s.db.Delete(ctx, storage.CollectionBills, id)
}

func decode(doc docstore.Document) (domain.Bill, error) {
	var b domain.Bill
	if err := doc.Unmarshal(&b); err != nil {
		return domain.Bill{}, err
	}
	b.ID = doc.ID
	b.CreatedAt = doc.CreatedAt
	b.UpdatedAt = doc.UpdatedAt
	return b, nil
}

func (p Patch) fields() (map[string]any, error) {
	fields := make(map[string]any)
	if p.MemberID != nil {
		if strings.TrimSpace(*p.MemberID) == "" {
			return nil, validation.Errf("memberId", "bill member id cannot be empty")
		}
		fields["memberId"] = *p.MemberID
	}
	if p.Amount != nil {
		if *p.Amount < 0 {
			return nil, validation.Errf("amount", "bill amount cannot be negative")
		}
		fields["amount"] = *p.Amount
	}
	if p.Month != nil {
		if _, err := time.Parse("2006-01", *p.Month); err != nil {
			return nil, validation.Errf("month", "bill month must be YYYY-MM")
		}
		fields["month"] = *p.Month
	}
	if p.PaymentDate != nil {
		fields["paymentDate"] = *p.PaymentDate
	}
	if p.Status != nil {
		if *p.Status != domain.StatusPaid && *p.Status != domain.StatusPending {
			return nil, validation.Errf("status", "status must be 'Paid' or 'Pending'")
		}
		fields["status"] = *p.Status
	}
	if p.ReceiptURL != nil {
		fields["receiptUrl"] = *p.ReceiptURL
	}
	return fields, nil
}
