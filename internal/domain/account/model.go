package account

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Bhaskar125/gym-management-system/internal/domain/validation"
)

// Role constants. "user" is the unauthenticated public-search role.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
	RoleUser   = "user"
)

// ValidRoles contains all valid role values.
var ValidRoles = []string{RoleAdmin, RoleMember, RoleUser}

// Domain errors
var (
	ErrWrongPassword = errors.New("incorrect password")
)

// Account is a login identity stored in the accounts collection. The
// member role links to a Member record through MemberID.
type Account struct {
	ID           string `json:"-"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	Role         string `json:"role"`
	MemberID     string `json:"memberId,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Validate checks if the Account has valid data.
// POST: Returns a *validation.Error naming the offending field, nil otherwise
func (a *Account) Validate() error {
	if !strings.Contains(a.Email, "@") {
		return validation.Errf("email", "account email must be valid")
	}
	if a.PasswordHash == "" {
		return validation.Errf("passwordHash", "account password hash cannot be empty")
	}
	if a.Role != RoleAdmin && a.Role != RoleMember && a.Role != RoleUser {
		return validation.Errf("role", "role must be one of: %s", strings.Join(ValidRoles, ", "))
	}
	return nil
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against the stored hash.
// PRE: PasswordHash is a bcrypt hash
// POST: Returns ErrWrongPassword on mismatch
func (a *Account) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return ErrWrongPassword
	}
	return nil
}
