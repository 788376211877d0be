package notification

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/Bhaskar125/gym-management-system/internal/domain/validation"
)

// TargetAll is the stored value for a broadcast to every member.
const TargetAll = "All"

// Target is either a broadcast to all members or an explicit list of
// member ids. It is stored as the string "All" or as a JSON array,
// preserving the collection's document shape.
type Target struct {
	All       bool
	MemberIDs []string
}

// MarshalJSON writes "All" for broadcast targets and an id array otherwise.
func (t Target) MarshalJSON() ([]byte, error) {
	if t.All {
		return json.Marshal(TargetAll)
	}
	return json.Marshal(t.MemberIDs)
}

// UnmarshalJSON accepts either the string "All" or an array of member ids.
func (t *Target) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != TargetAll {
			return validation.Errf("target", "target string must be %q", TargetAll)
		}
		t.All = true
		t.MemberIDs = nil
		return nil
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return validation.Errf("target", "target must be %q or a list of member ids", TargetAll)
	}
	t.All = false
	t.MemberIDs = ids
	return nil
}

// Includes reports whether the target addresses the given member.
// INVARIANT: Target fields are not mutated
func (t Target) Includes(memberID string) bool {
	if t.All {
		return true
	}
	for _, id := range t.MemberIDs {
		if id == memberID {
			return true
		}
	}
	return false
}

// Notification is a write-once announcement stored in the notifications
// collection. Notifications are never updated after creation.
type Notification struct {
	ID        string `json:"-"`
	Message   string `json:"message"`
	Target    Target `json:"target"`
	Timestamp string `json:"timestamp"` // RFC 3339

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Validate checks if the Notification has valid data.
// PRE: Notification struct is initialized
// POST: Returns a *validation.Error naming the offending field, nil otherwise
func (n *Notification) Validate() error {
	if strings.TrimSpace(n.Message) == "" {
		return validation.Errf("message", "notification message cannot be empty")
	}
	if !n.Target.All && len(n.Target.MemberIDs) == 0 {
		return validation.Errf("target", "notification target must be %q or a non-empty list of member ids", TargetAll)
	}
	return nil
}
