package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/Bhaskar125/gym-management-system/internal/domain/member"
)

// MemberStoreForRegister defines the store interface needed by RegisterMember.
type MemberStoreForRegister interface {
	Create(ctx context.Context, m member.Member) (string, error)
}

// RegisterMemberInput carries input for the registration orchestrator.
type RegisterMemberInput struct {
	Name      string
	Email     string
	Phone     string
	Password  string
	PackageID string
}

// RegisterMemberDeps holds dependencies for RegisterMember.
type RegisterMemberDeps struct {
	MemberStore MemberStoreForRegister

	// Now is a test hook; nil means time.Now.
	Now func() time.Time
}

// ExecuteRegisterMember creates a new active member joining today.
// PRE: Input fields satisfy member validation
// POST: Member stored with joinDate=today and active=true; returns the id
func ExecuteRegisterMember(ctx context.Context, input RegisterMemberInput, deps RegisterMemberDeps) (string, error) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	m := member.Member{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Password:  input.Password,
		PackageID: input.PackageID,
		JoinDate:  now().Format("2006-01-02"),
		Active:    true,
	}

	id, err := deps.MemberStore.Create(ctx, m)
	if err != nil {
		return "", err
	}

	slog.Info("member_event", "event", "member_registered", "member_id", id)
	return id, nil
}
