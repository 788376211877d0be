package member

import (
	"strings"
	"time"

	"github.com/Bhaskar125/gym-management-system/internal/domain/validation"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Member is a gym member record stored in the members collection.
// PackageID and DietPlanID are optional references resolved at read time;
// when unset they are empty and omitted from the stored document entirely.
type Member struct {
	ID         string `json:"-"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Password   string `json:"password"`
	PackageID  string `json:"packageId,omitempty"`
	DietPlanID string `json:"dietPlanId,omitempty"`
	DietNotes  string `json:"dietNotes,omitempty"`
	JoinDate   string `json:"joinDate"` // YYYY-MM-DD
	Active     bool   `json:"active"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Validate checks if the Member has valid data.
// PRE: Member struct is initialized
// POST: Returns a *validation.Error naming the offending field, nil otherwise
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return validation.Errf("name", "member name cannot be empty")
	}
	if len(m.Name) > MaxNameLength {
		return validation.Errf("name", "member name cannot exceed %d characters", MaxNameLength)
	}
	if !strings.Contains(m.Email, "@") {
		return validation.Errf("email", "member email must be valid")
	}
	if strings.TrimSpace(m.Phone) == "" {
		return validation.Errf("phone", "member phone cannot be empty")
	}
	if m.Password == "" {
		return validation.Errf("password", "member password cannot be empty")
	}
	if m.JoinDate != "" {
		if _, err := time.Parse("2006-01-02", m.JoinDate); err != nil {
			return validation.Errf("joinDate", "join date must be YYYY-MM-DD")
		}
	}
	return nil
}

// Matches reports whether the member matches a search term against name,
// email, phone, or id. Name and email match case-insensitively.
// INVARIANT: Member fields are not mutated
func (m *Member) Matches(term string) bool {
	lower := strings.ToLower(term)
	return strings.Contains(strings.ToLower(m.Name), lower) ||
		strings.Contains(strings.ToLower(m.Email), lower) ||
		strings.Contains(m.Phone, term) ||
		strings.Contains(m.ID, term)
}
