package bill_test

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage"
	billStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/bill"
	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage/docstore"
	billDomain "github.com/Bhaskar125/gym-management-system/internal/domain/bill"
)

func newTestStore(t *testing.T) *billStore.DocStore {
	t.Helper()
	sqldb, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqldb.SetMaxOpenConns(1)
	t.Cleanup(func() { sqldb.Close() })
	if err := storage.InitDB(sqldb); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return billStore.NewDocStore(docstore.New(sqldb))
}

func mustCreate(t *testing.T, s *billStore.DocStore, b billDomain.Bill) string {
	t.Helper()
	id, err := s.Create(context.Background(), b)
	if err != nil {
		t.Fatalf("create bill: %v", err)
	}
	return id
}

// TestGetAllOrdersByMonthDescending verifies bills come back newest month
// first.
func TestGetAllOrdersByMonthDescending(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreate(t, s, billDomain.Bill{MemberID: "m1", Amount: 50, Month: "2024-01", Status: billDomain.StatusPaid, PaymentDate: "2024-01-15", ReceiptURL: "/receipts/a.pdf"})
	mustCreate(t, s, billDomain.Bill{MemberID: "m1", Amount: 50, Month: "2024-03", Status: billDomain.StatusPending})
	mustCreate(t, s, billDomain.Bill{MemberID: "m2", Amount: 100, Month: "2024-02", Status: billDomain.StatusPending})

	all, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("bills = %d, want 3", len(all))
	}
	months := []string{all[0].Month, all[1].Month, all[2].Month}
	want := []string{"2024-03", "2024-02", "2024-01"}
	for i := range want {
		if months[i] != want[i] {
			t.Fatalf("months = %v, want %v", months, want)
		}
	}
}

// TestGetByMemberIDAndPending verifies the pushed-down equality filters.
func TestGetByMemberIDAndPending(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreate(t, s, billDomain.Bill{MemberID: "m1", Amount: 50, Month: "2024-01", Status: billDomain.StatusPaid, PaymentDate: "2024-01-15", ReceiptURL: "/receipts/a.pdf"})
	mustCreate(t, s, billDomain.Bill{MemberID: "m1", Amount: 100, Month: "2024-02", Status: billDomain.StatusPending})
	mustCreate(t, s, billDomain.Bill{MemberID: "m2", Amount: 75, Month: "2024-02", Status: billDomain.StatusPending})

	mine, err := s.GetByMemberID(ctx, "m1")
	if err != nil {
		t.Fatalf("get by member: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("m1 bills = %d, want 2", len(mine))
	}

	pending, err := s.GetPending(ctx)
	if err != nil {
		t.Fatalf("get pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("pending bills = %d, want 2", len(pending))
	}
	for _, b := range pending {
		if b.Status != billDomain.StatusPending {
			t.Fatalf("pending filter returned status %q", b.Status)
		}
	}
}

// TestPaymentPatchIsAtomic verifies status, paymentDate, and receiptUrl
// change together in one update while other fields stay put.
func TestPaymentPatchIsAtomic(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id := mustCreate(t, s, billDomain.Bill{MemberID: "m1", Amount: 50, Month: "2024-03", Status: billDomain.StatusPending})

	paid := billDomain.StatusPaid
	date := "2024-03-20"
	receipt := "/receipts/" + id + ".pdf"
	err := s.Update(ctx, id, billStore.Patch{Status: &paid, PaymentDate: &date, ReceiptURL: &receipt})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	b, found, err := s.GetByID(ctx, id)
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if b.Status != billDomain.StatusPaid || b.PaymentDate != date || b.ReceiptURL != receipt {
		t.Fatalf("after payment: %+v", b)
	}
	if b.Amount != 50 || b.Month != "2024-03" || b.MemberID != "m1" {
		t.Fatalf("untouched fields changed: %+v", b)
	}
}

// TestUpdateRejectsBadPatch verifies patch validation runs before storage.
func TestUpdateRejectsBadPatch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id := mustCreate(t, s, billDomain.Bill{MemberID: "m1", Amount: 50, Month: "2024-03", Status: billDomain.StatusPending})

	negative := -10.0
	if err := s.Update(ctx, id, billStore.Patch{Amount: &negative}); err == nil {
		t.Fatal("negative amount patch accepted")
	}
	bad := "Overdue"
	if err := s.Update(ctx, id, billStore.Patch{Status: &bad}); err == nil {
		t.Fatal("bad status patch accepted")
	}

	b, _, _ := s.GetByID(ctx, id)
	if b.Amount != 50 || b.Status != billDomain.StatusPending {
		t.Fatalf("rejected patches reached storage: %+v", b)
	}
}
