package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Bhaskar125/gym-management-system/internal/domain/account"
	"github.com/Bhaskar125/gym-management-system/internal/domain/bill"
	"github.com/Bhaskar125/gym-management-system/internal/domain/member"
	"github.com/Bhaskar125/gym-management-system/internal/domain/notification"
	"github.com/Bhaskar125/gym-management-system/internal/domain/pack"
)

// ErrAlreadySeeded is returned when seed data is already present.
var ErrAlreadySeeded = errors.New("database already seeded")

// Demo login credentials created by Seed.
const (
	DemoAdminEmail     = "admin@demo.com"
	DemoAdminPassword  = "admin"
	DemoMemberEmail    = "member@demo.com"
	DemoMemberPassword = "member"
)

// SeedStores holds every gateway the seeder writes through.
type SeedStores struct {
	Packages interface {
		GetAll(ctx context.Context) ([]pack.Package, error)
		Create(ctx context.Context, p pack.Package) (string, error)
	}
	Members interface {
		Create(ctx context.Context, m member.Member) (string, error)
	}
	Bills interface {
		Create(ctx context.Context, b bill.Bill) (string, error)
	}
	Notifications interface {
		Create(ctx context.Context, n notification.Notification) (string, error)
	}
	Accounts interface {
		Create(ctx context.Context, a account.Account) (string, error)
	}
}

type seedMember struct {
	name     string
	email    string
	phone    string
	pkg      string // package name, resolved to the created id
	joinDate string
	active   bool
	amount   float64 // monthly bill amount
}

// ExecuteSeed populates demo packages, members, bills, notifications and
// login accounts. It is idempotent: when any package already exists the
// whole seed is skipped.
// POST: Returns ErrAlreadySeeded when data was present, nil after seeding
func ExecuteSeed(ctx context.Context, stores SeedStores) error {
	existing, err := stores.Packages.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return ErrAlreadySeeded
	}

	packageIDs := map[string]string{}
	for _, p := range []pack.Package{
		{Name: "Basic Plan", Price: 50, Duration: "1 month"},
		{Name: "Premium Plan", Price: 100, Duration: "1 month"},
		{Name: "Annual Plan", Price: 500, Duration: "12 months"},
	} {
		id, err := stores.Packages.Create(ctx, p)
		if err != nil {
			return err
		}
		packageIDs[p.Name] = id
	}

	seedMembers := []seedMember{
		{name: "John Doe", email: "john@example.com", phone: "+1234567890", pkg: "Premium Plan", joinDate: "2024-01-15", active: true, amount: 100},
		{name: "Jane Smith", email: "jane@example.com", phone: "+1234567891", pkg: "Basic Plan", joinDate: "2024-02-01", active: true, amount: 50},
		{name: "Mike Johnson", email: "mike@example.com", phone: "+1234567892", pkg: "Annual Plan", joinDate: "2024-01-20", active: false, amount: 500},
	}

	var firstMemberID string
	for i, sm := range seedMembers {
		memberID, err := stores.Members.Create(ctx, member.Member{
			Name:      sm.name,
			Email:     sm.email,
			Phone:     sm.phone,
			Password:  DemoMemberPassword,
			PackageID: packageIDs[sm.pkg],
			JoinDate:  sm.joinDate,
			Active:    sm.active,
		})
		if err != nil {
			return err
		}
		if i == 0 {
			firstMemberID = memberID
		}

		// Two paid months and one pending, per member.
		bills := []bill.Bill{
			{MemberID: memberID, Amount: sm.amount, Month: "2024-01", PaymentDate: "2024-01-15", Status: bill.StatusPaid, ReceiptURL: fmt.Sprintf("/receipts/%s-2024-01.pdf", memberID)},
			{MemberID: memberID, Amount: sm.amount, Month: "2024-02", PaymentDate: "2024-02-15", Status: bill.StatusPaid, ReceiptURL: fmt.Sprintf("/receipts/%s-2024-02.pdf", memberID)},
			{MemberID: memberID, Amount: sm.amount, Month: "2024-03", Status: bill.StatusPending},
		}
		for _, b := range bills {
			if _, err := stores.Bills.Create(ctx, b); err != nil {
				return err
			}
		}
	}

	for _, msg := range []string{
		"Welcome to GymPro! Please complete your profile.",
		"Monthly payment reminder - due in 3 days.",
	} {
		if _, err := stores.Notifications.Create(ctx, notification.Notification{
			Message: msg,
			Target:  notification.Target{All: true},
		}); err != nil {
			return err
		}
	}

	if err := seedAccount(ctx, stores, "Demo Admin", DemoAdminEmail, DemoAdminPassword, account.RoleAdmin, ""); err != nil {
		return err
	}
	if err := seedAccount(ctx, stores, "John Doe", DemoMemberEmail, DemoMemberPassword, account.RoleMember, firstMemberID); err != nil {
		return err
	}

	slog.Info("seed_event", "event", "database_seeded", "members", len(seedMembers))
	return nil
}

func seedAccount(ctx context.Context, stores SeedStores, name, email, password, role, memberID string) error {
	hash, err := account.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = stores.Accounts.Create(ctx, account.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		MemberID:     memberID,
	})
	return err
}
