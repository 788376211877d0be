package member_test

import (
	"testing"

	"github.com/Bhaskar125/gym-management-system/internal/domain/member"
	"github.com/Bhaskar125/gym-management-system/internal/domain/validation"
)

// TestMemberValidation tests validation of Member.
func TestMemberValidation(t *testing.T) {
	tests := []struct {
		name      string
		member    member.Member
		wantErr   bool
		wantField string
	}{
		{
			name: "valid member",
			member: member.Member{
				Name:     "John Doe",
				Email:    "john@example.com",
				Phone:    "+1234567890",
				Password: "pw",
				JoinDate: "2024-01-15",
				Active:   true,
			},
			wantErr: false,
		},
		{
			name: "valid member without optional references",
			member: member.Member{
				Name:     "Jane Smith",
				Email:    "jane@example.com",
				Phone:    "555",
				Password: "pw",
			},
			wantErr: false,
		},
		{
			name: "empty name",
			member: member.Member{
				Email:    "john@example.com",
				Phone:    "555",
				Password: "pw",
			},
			wantErr:   true,
			wantField: "name",
		},
		{
			name: "invalid email",
			member: member.Member{
				Name:     "John",
				Email:    "not-an-email",
				Phone:    "555",
				Password: "pw",
			},
			wantErr:   true,
			wantField: "email",
		},
		{
			name: "empty phone",
			member: member.Member{
				Name:     "John",
				Email:    "john@example.com",
				Password: "pw",
			},
			wantErr:   true,
			wantField: "phone",
		},
		{
			name: "bad join date",
			member: member.Member{
				Name:     "John",
				Email:    "john@example.com",
				Phone:    "555",
				Password: "pw",
				JoinDate: "15/01/2024",
			},
			wantErr:   true,
			wantField: "joinDate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.member.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && validation.FieldOf(err) != tt.wantField {
				t.Fatalf("Validate() field = %q, want %q", validation.FieldOf(err), tt.wantField)
			}
		})
	}
}

// TestMemberMatches verifies search matching across name, email, phone, and id.
func TestMemberMatches(t *testing.T) {
	m := member.Member{
		ID:    "abc123",
		Name:  "John Doe",
		Email: "john@example.com",
		Phone: "+1234567890",
	}

	for _, term := range []string{"john", "DOE", "example.com", "+1234", "abc123"} {
		if !m.Matches(term) {
			t.Fatalf("Matches(%q) = false, want true", term)
		}
	}
	if m.Matches("nothing-here") {
		t.Fatal("Matches(nothing-here) = true, want false")
	}
}
