package projections

import (
	"context"
	"strings"
	"testing"

	memberDomain "github.com/Bhaskar125/gym-management-system/internal/domain/member"
	packDomain "github.com/Bhaskar125/gym-management-system/internal/domain/pack"
)

type mockSearchMemberStore struct {
	members []memberDomain.Member
}

// Search filters the seeded members by term.
// POST: Returns members matching term on any searchable field
func (m *mockSearchMemberStore) Search(_ context.Context, term string) ([]memberDomain.Member, error) {
	var out []memberDomain.Member
	for _, mem := range m.members {
		if mem.Matches(term) {
			out = append(out, mem)
		}
	}
	return out, nil
}

type mockSearchPackageStore struct {
	packages map[string]packDomain.Package
}

// GetByID looks up a seeded package.
// POST: Returns the package and true when present, false otherwise
func (m *mockSearchPackageStore) GetByID(_ context.Context, id string) (packDomain.Package, bool, error) {
	p, ok := m.packages[id]
	return p, ok, nil
}

// TestQuerySearchMembers verifies package names resolve at read time and
// dangling references degrade to an empty name.
func TestQuerySearchMembers(t *testing.T) {
	deps := SearchMembersDeps{
		MemberStore: &mockSearchMemberStore{members: []memberDomain.Member{
			{ID: "m1", Name: "John Doe", Email: "john@example.com", Phone: "+1234567890", PackageID: "p1", Active: true},
			{ID: "m2", Name: "Jane Smith", Email: "jane@example.com", Phone: "+1234567891", PackageID: "gone", Active: true},
			{ID: "m3", Name: "Mike Johnson", Email: "mike@example.com", Phone: "+1234567892", Active: false},
		}},
		PackageStore: &mockSearchPackageStore{packages: map[string]packDomain.Package{
			"p1": {ID: "p1", Name: "Premium", Price: 100},
		}},
	}

	results, err := QuerySearchMembers(context.Background(), SearchMembersQuery{Term: "example.com"}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	byID := map[string]MemberSearchResult{}
	for _, r := range results {
		byID[r.ID] = r
	}
	if got := byID["m1"].PackageName; got != "Premium" {
		t.Fatalf("m1 packageName = %q, want %q", got, "Premium")
	}
	if got := byID["m2"].PackageName; got != "" {
		t.Fatalf("dangling reference resolved to %q, want empty", got)
	}
	if got := byID["m3"].PackageName; got != "" {
		t.Fatalf("member without package resolved to %q, want empty", got)
	}
}

// TestQuerySearchMembers_NilPackageStore verifies search works without a
// package store wired in.
func TestQuerySearchMembers_NilPackageStore(t *testing.T) {
	deps := SearchMembersDeps{
		MemberStore: &mockSearchMemberStore{members: []memberDomain.Member{
			{ID: "m1", Name: "John Doe", Email: "john@example.com", PackageID: "p1"},
		}},
	}

	results, err := QuerySearchMembers(context.Background(), SearchMembersQuery{Term: "john"}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if !strings.EqualFold(results[0].Name, "John Doe") {
		t.Fatalf("name = %q", results[0].Name)
	}
	if results[0].PackageName != "" {
		t.Fatalf("packageName = %q, want empty", results[0].PackageName)
	}
}
