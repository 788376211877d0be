package projections

import (
	"context"

	"github.com/Bhaskar125/gym-management-system/internal/domain/member"
	"github.com/Bhaskar125/gym-management-system/internal/domain/pack"
)

// SearchMemberStore defines the member store interface needed by the search projection.
type SearchMemberStore interface {
	Search(ctx context.Context, term string) ([]member.Member, error)
}

// SearchPackageStore defines the package store interface needed by the search projection.
type SearchPackageStore interface {
	GetByID(ctx context.Context, id string) (pack.Package, bool, error)
}

// SearchMembersQuery carries input for the public member search.
type SearchMembersQuery struct {
	Term string
}

// SearchMembersDeps holds dependencies for the search projection.
type SearchMembersDeps struct {
	MemberStore  SearchMemberStore
	PackageStore SearchPackageStore // optional: nil skips package resolution
}

// MemberSearchResult is one public search hit with its package resolved.
// A dangling package reference resolves to an empty name, not an error.
type MemberSearchResult struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	JoinDate    string `json:"joinDate"`
	Active      bool   `json:"active"`
	PackageID   string `json:"packageId,omitempty"`
	PackageName string `json:"packageName,omitempty"`
}

// QuerySearchMembers runs the public search and resolves each member's
// package reference at read time.
func QuerySearchMembers(ctx context.Context, query SearchMembersQuery, deps SearchMembersDeps) ([]MemberSearchResult, error) {
	members, err := deps.MemberStore.Search(ctx, query.Term)
	if err != nil {
		return nil, err
	}

	results := make([]MemberSearchResult, 0, len(members))
	for _, m := range members {
		result := MemberSearchResult{
			ID:        m.ID,
			Name:      m.Name,
			Email:     m.Email,
			Phone:     m.Phone,
			JoinDate:  m.JoinDate,
			Active:    m.Active,
			PackageID: m.PackageID,
		}
		if m.PackageID != "" && deps.PackageStore != nil {
			if p, found, err := deps.PackageStore.GetByID(ctx, m.PackageID); err == nil && found {
				result.PackageName = p.Name
			}
		}
		results = append(results, result)
	}
	return results, nil
}
