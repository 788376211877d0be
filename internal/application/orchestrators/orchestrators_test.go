package orchestrators_test

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Bhaskar125/gym-management-system/internal/adapters/email"
	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage"
	accountStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/account"
	billStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/bill"
	dietplanStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/dietplan"
	"github.com/Bhaskar125/gym-management-system/internal/adapters/storage/docstore"
	memberStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/member"
	notificationStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/notification"
	packStore "github.com/Bhaskar125/gym-management-system/internal/adapters/storage/pack"
	"github.com/Bhaskar125/gym-management-system/internal/application/orchestrators"
	accountDomain "github.com/Bhaskar125/gym-management-system/internal/domain/account"
	billDomain "github.com/Bhaskar125/gym-management-system/internal/domain/bill"
	dietplanDomain "github.com/Bhaskar125/gym-management-system/internal/domain/dietplan"
	memberDomain "github.com/Bhaskar125/gym-management-system/internal/domain/member"
	notificationDomain "github.com/Bhaskar125/gym-management-system/internal/domain/notification"
)

func newTestDB(t *testing.T) *docstore.DB {
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
	return docstore.New(sqldb)
}

func TestExecuteLogin(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	accounts := accountStore.NewDocStore(db)

	hash, err := accountDomain.HashPassword("secret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if _, err := accounts.Create(ctx, accountDomain.Account{
		Name:         "Admin",
		Email:        "admin@demo.com",
		PasswordHash: hash,
		Role:         accountDomain.RoleAdmin,
	}); err != nil {
		t.Fatalf("create account: %v", err)
	}

	deps := orchestrators.LoginDeps{AccountStore: accounts}

	identity, err := orchestrators.ExecuteLogin(ctx, orchestrators.LoginInput{
		Email: "Admin@Demo.com", Password: "secret",
	}, deps)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if identity.Role != accountDomain.RoleAdmin || identity.Name != "Admin" {
		t.Fatalf("identity = %+v", identity)
	}

	if _, err := orchestrators.ExecuteLogin(ctx, orchestrators.LoginInput{
		Email: "admin@demo.com", Password: "wrong",
	}, deps); !errors.Is(err, orchestrators.ErrInvalidCredentials) {
		t.Fatalf("wrong password error = %v", err)
	}

	if _, err := orchestrators.ExecuteLogin(ctx, orchestrators.LoginInput{
		Email: "nobody@demo.com", Password: "secret",
	}, deps); !errors.Is(err, orchestrators.ErrInvalidCredentials) {
		t.Fatalf("unknown email error = %v", err)
	}
}

func TestExecuteRegisterMember(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	members := memberStore.NewDocStore(db)

	fixed := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	id, err := orchestrators.ExecuteRegisterMember(ctx, orchestrators.RegisterMemberInput{
		Name: "John Doe", Email: "john@x.com", Phone: "555", Password: "pw",
	}, orchestrators.RegisterMemberDeps{
		MemberStore: members,
		Now:         func() time.Time { return fixed },
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	m, found, err := members.GetByID(ctx, id)
	if err != nil || !found {
		t.Fatalf("get member: found=%v err=%v", found, err)
	}
	if m.JoinDate != "2026-03-10" {
		t.Fatalf("joinDate = %q, want 2026-03-10", m.JoinDate)
	}
	if !m.Active {
		t.Fatal("new member should be active")
	}
}

func TestExecutePayBill(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	bills := billStore.NewDocStore(db)

	id, err := bills.Create(ctx, billDomain.Bill{
		MemberID: "m1", Amount: 50, Month: "2026-01", Status: billDomain.StatusPending,
	})
	if err != nil {
		t.Fatalf("create bill: %v", err)
	}

	fixed := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	deps := orchestrators.PayBillDeps{
		BillStore: bills,
		Now:       func() time.Time { return fixed },
	}

	if err := orchestrators.ExecutePayBill(ctx, orchestrators.PayBillInput{BillID: id}, deps); err != nil {
		t.Fatalf("pay: %v", err)
	}

	paid, _, err := bills.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get bill: %v", err)
	}
	if paid.Status != billDomain.StatusPaid {
		t.Fatalf("status = %q, want Paid", paid.Status)
	}
	if paid.PaymentDate != "2026-02-01" {
		t.Fatalf("paymentDate = %q, want 2026-02-01", paid.PaymentDate)
	}
	if paid.ReceiptURL != "/receipts/"+id+".pdf" {
		t.Fatalf("receiptUrl = %q", paid.ReceiptURL)
	}

	// A paid bill stays paid.
	if err := orchestrators.ExecutePayBill(ctx, orchestrators.PayBillInput{BillID: id}, deps); !errors.Is(err, billDomain.ErrAlreadyPaid) {
		t.Fatalf("second pay error = %v, want ErrAlreadyPaid", err)
	}

	if err := orchestrators.ExecutePayBill(ctx, orchestrators.PayBillInput{BillID: "missing"}, deps); !errors.Is(err, orchestrators.ErrBillNotFound) {
		t.Fatalf("missing bill error = %v", err)
	}
}

func TestExecutePayBillScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	bills := billStore.NewDocStore(db)

	id, err := bills.Create(ctx, billDomain.Bill{
		MemberID: "m1", Amount: 50, Month: "2026-01", Status: billDomain.StatusPending,
	})
	if err != nil {
		t.Fatalf("create bill: %v", err)
	}

	deps := orchestrators.PayBillDeps{BillStore: bills}
	err = orchestrators.ExecutePayBill(ctx, orchestrators.PayBillInput{BillID: id, MemberID: "m2"}, deps)
	if !errors.Is(err, orchestrators.ErrBillNotFound) {
		t.Fatalf("foreign bill error = %v, want ErrBillNotFound", err)
	}
}

func TestExecuteAssignDietPlan(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	members := memberStore.NewDocStore(db)
	plans := dietplanStore.NewDocStore(db)

	memberID, err := members.Create(ctx, memberDomain.Member{
		Name: "John", Email: "john@x.com", Phone: "555", Password: "pw",
	})
	if err != nil {
		t.Fatalf("create member: %v", err)
	}

	activeID, err := plans.Create(ctx, dietplanDomain.DietPlan{
		Name: "Cut", Type: dietplanDomain.TypeWeightLoss, CreatedDate: "2026-01-01", Active: true,
	})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}
	inactiveID, err := plans.Create(ctx, dietplanDomain.DietPlan{
		Name: "Old", Type: dietplanDomain.TypeMaintenance, CreatedDate: "2025-01-01", Active: false,
	})
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}

	deps := orchestrators.AssignDietPlanDeps{MemberStore: members, DietPlanStore: plans}

	if err := orchestrators.ExecuteAssignDietPlan(ctx, orchestrators.AssignDietPlanInput{
		MemberID: memberID, DietPlanID: activeID, DietNotes: "high protein",
	}, deps); err != nil {
		t.Fatalf("assign: %v", err)
	}
	m, _, err := members.GetByID(ctx, memberID)
	if err != nil {
		t.Fatalf("get member: %v", err)
	}
	if m.DietPlanID != activeID || m.DietNotes != "high protein" {
		t.Fatalf("member = %+v", m)
	}

	if err := orchestrators.ExecuteAssignDietPlan(ctx, orchestrators.AssignDietPlanInput{
		MemberID: memberID, DietPlanID: inactiveID,
	}, deps); !errors.Is(err, orchestrators.ErrDietPlanInactive) {
		t.Fatalf("inactive plan error = %v", err)
	}

	// Clearing the assignment removes the reference.
	if err := orchestrators.ExecuteAssignDietPlan(ctx, orchestrators.AssignDietPlanInput{
		MemberID: memberID,
	}, deps); err != nil {
		t.Fatalf("clear: %v", err)
	}
	m, _, err = members.GetByID(ctx, memberID)
	if err != nil {
		t.Fatalf("get member: %v", err)
	}
	if m.DietPlanID != "" || m.DietNotes != "" {
		t.Fatalf("member after clear = %+v", m)
	}
}

type captureSender struct {
	reqs []email.SendRequest
}

func (c *captureSender) Send(_ context.Context, req email.SendRequest) (email.SendResult, error) {
	c.reqs = append(c.reqs, req)
	return email.SendResult{MessageID: "test"}, nil
}

func (c *captureSender) SendBatch(_ context.Context, reqs []email.SendRequest) ([]email.SendResult, error) {
	c.reqs = append(c.reqs, reqs...)
	return make([]email.SendResult, len(reqs)), nil
}

func TestExecuteSendNotification(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	members := memberStore.NewDocStore(db)
	notifications := notificationStore.NewDocStore(db)

	for _, m := range []memberDomain.Member{
		{Name: "John", Email: "john@x.com", Phone: "555", Password: "pw", Active: true},
		{Name: "Mike", Email: "mike@x.com", Phone: "556", Password: "pw", Active: false},
	} {
		if _, err := members.Create(ctx, m); err != nil {
			t.Fatalf("create member: %v", err)
		}
	}

	sender := &captureSender{}
	id, err := orchestrators.ExecuteSendNotification(ctx, orchestrators.SendNotificationInput{
		Message: "Gym closes **early** today",
		Target:  notificationDomain.Target{All: true},
	}, orchestrators.SendNotificationDeps{
		NotificationStore: notifications,
		MemberStore:       members,
		Sender:            sender,
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	stored, found, err := notifications.GetByID(ctx, id)
	if err != nil || !found {
		t.Fatalf("get notification: found=%v err=%v", found, err)
	}
	if !stored.Target.All {
		t.Fatalf("target = %+v", stored.Target)
	}

	// Only the active member gets email, with the markdown rendered.
	if len(sender.reqs) != 1 {
		t.Fatalf("emails sent = %d, want 1", len(sender.reqs))
	}
	if got := sender.reqs[0].To[0]; got != "john@x.com" {
		t.Fatalf("recipient = %q", got)
	}
	if !strings.Contains(sender.reqs[0].HTML, "<strong>early</strong>") {
		t.Fatalf("html = %q", sender.reqs[0].HTML)
	}
}

func TestExecuteSendNotificationRejectsEmptyTarget(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	_, err := orchestrators.ExecuteSendNotification(ctx, orchestrators.SendNotificationInput{
		Message: "hello",
	}, orchestrators.SendNotificationDeps{
		NotificationStore: notificationStore.NewDocStore(db),
		MemberStore:       memberStore.NewDocStore(db),
	})
	if err == nil {
		t.Fatal("empty target should fail validation")
	}
}

func TestExecuteSeed(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	stores := orchestrators.SeedStores{
		Packages:      packStore.NewDocStore(db),
		Members:       memberStore.NewDocStore(db),
		Bills:         billStore.NewDocStore(db),
		Notifications: notificationStore.NewDocStore(db),
		Accounts:      accountStore.NewDocStore(db),
	}

	if err := orchestrators.ExecuteSeed(ctx, stores); err != nil {
		t.Fatalf("seed: %v", err)
	}

	packages, err := packStore.NewDocStore(db).GetAll(ctx)
	if err != nil {
		t.Fatalf("get packages: %v", err)
	}
	if len(packages) != 3 {
		t.Fatalf("packages = %d, want 3", len(packages))
	}

	members, err := memberStore.NewDocStore(db).GetAll(ctx)
	if err != nil {
		t.Fatalf("get members: %v", err)
	}
	if len(members) != 3 {
		t.Fatalf("members = %d, want 3", len(members))
	}
	for _, m := range members {
		if m.PackageID == "" {
			t.Fatalf("member %s has no package", m.Name)
		}
	}

	bills, err := billStore.NewDocStore(db).GetAll(ctx)
	if err != nil {
		t.Fatalf("get bills: %v", err)
	}
	if len(bills) != 9 {
		t.Fatalf("bills = %d, want 9", len(bills))
	}

	// Demo accounts log in with the documented credentials.
	accounts := accountStore.NewDocStore(db)
	if _, err := orchestrators.ExecuteLogin(ctx, orchestrators.LoginInput{
		Email: orchestrators.DemoAdminEmail, Password: orchestrators.DemoAdminPassword,
	}, orchestrators.LoginDeps{AccountStore: accounts}); err != nil {
		t.Fatalf("admin login: %v", err)
	}
	identity, err := orchestrators.ExecuteLogin(ctx, orchestrators.LoginInput{
		Email: orchestrators.DemoMemberEmail, Password: orchestrators.DemoMemberPassword,
	}, orchestrators.LoginDeps{AccountStore: accounts})
	if err != nil {
		t.Fatalf("member login: %v", err)
	}
	if identity.MemberID == "" {
		t.Fatal("member account should link to a member record")
	}

	// Seeding again is a no-op.
	if err := orchestrators.ExecuteSeed(ctx, stores); !errors.Is(err, orchestrators.ErrAlreadySeeded) {
		t.Fatalf("second seed error = %v, want ErrAlreadySeeded", err)
	}
}

func TestExecuteDoctor(t *testing.T) {
	db := newTestDB(t)
	report := orchestrators.ExecuteDoctor(context.Background(), orchestrators.DoctorDeps{DB: db})
	if !report.Read.OK {
		t.Fatalf("read probe failed: %+v", report.Read)
	}
	if !report.Write.OK {
		t.Fatalf("write probe failed: %+v", report.Write)
	}
	if report.Documents != 0 {
		t.Fatalf("documents = %d, want 0", report.Documents)
	}
}
