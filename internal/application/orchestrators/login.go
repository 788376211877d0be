package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Bhaskar125/gym-management-system/internal/domain/account"
)

// ErrInvalidCredentials covers both unknown email and wrong password so the
// response does not leak which one failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AccountStoreForLogin defines the store interface needed by Login.
type AccountStoreForLogin interface {
	GetByEmail(ctx context.Context, email string) (account.Account, bool, error)
}

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	AccountStore AccountStoreForLogin
}

// Identity is the authenticated caller handed to the session layer.
type Identity struct {
	AccountID string
	Name      string
	Role      string
	MemberID  string // set for member-role accounts
}

// ExecuteLogin checks credentials against the account store.
// PRE: Email and Password are non-empty
// POST: Returns the account's identity, or ErrInvalidCredentials
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (Identity, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || input.Password == "" {
		return Identity{}, ErrInvalidCredentials
	}

	acct, found, err := deps.AccountStore.GetByEmail(ctx, email)
	if err != nil {
		return Identity{}, err
	}
	if !found {
		return Identity{}, ErrInvalidCredentials
	}
	if err := acct.CheckPassword(input.Password); err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", email)
		return Identity{}, ErrInvalidCredentials
	}

	slog.Info("auth_event", "event", "login_succeeded", "account_id", acct.ID, "role", acct.Role)
	return Identity{
		AccountID: acct.ID,
		Name:      acct.Name,
		Role:      acct.Role,
		MemberID:  acct.MemberID,
	}, nil
}
