package projections

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Bhaskar125/gym-management-system/internal/domain/bill"
	"github.com/Bhaskar125/gym-management-system/internal/domain/member"
	"github.com/Bhaskar125/gym-management-system/internal/domain/pack"
)

// StatsMemberStore defines the member store interface needed by the stats projection.
type StatsMemberStore interface {
	GetAll(ctx context.Context) ([]member.Member, error)
}

// StatsBillStore defines the bill store interface needed by the stats projection.
type StatsBillStore interface {
	GetAll(ctx context.Context) ([]bill.Bill, error)
}

// StatsPackageStore defines the package store interface needed by the stats projection.
type StatsPackageStore interface {
	GetAll(ctx context.Context) ([]pack.Package, error)
}

// GetDashboardStatsDeps holds dependencies for the stats projection.
type GetDashboardStatsDeps struct {
	MemberStore  StatsMemberStore
	BillStore    StatsBillStore
	PackageStore StatsPackageStore
}

// DashboardStats carries the dashboard-wide counters. They are always
// derived by full scan, never stored, so they cannot drift — but they are
// only as fresh as the last call.
type DashboardStats struct {
	TotalMembers    int     `json:"totalMembers"`
	ActiveMembers   int     `json:"activeMembers"`
	InactiveMembers int     `json:"inactiveMembers"`
	PendingBills    int     `json:"pendingBills"`
	TotalRevenue    float64 `json:"totalRevenue"`
	TotalPackages   int     `json:"totalPackages"`
}

// QueryGetDashboardStats fetches members, bills, and packages concurrently
// and reduces them client-side. Cost is O(|members| + |bills|); collection
// sizes are administrative-scale, so no caching is attempted.
func QueryGetDashboardStats(ctx context.Context, deps GetDashboardStatsDeps) (DashboardStats, error) {
	var (
		members  []member.Member
		bills    []bill.Bill
		packages []pack.Package
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		members, err = deps.MemberStore.GetAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		bills, err = deps.BillStore.GetAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		packages, err = deps.PackageStore.GetAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{
		TotalMembers:  len(members),
		TotalPackages: len(packages),
	}
	for _, m := range members {
		if m.Active {
			stats.ActiveMembers++
		}
	}
	stats.InactiveMembers = stats.TotalMembers - stats.ActiveMembers

	for _, b := range bills {
		switch b.Status {
		case bill.StatusPending:
			stats.PendingBills++
		case bill.StatusPaid:
			stats.TotalRevenue += b.Amount
		}
	}
	return stats, nil
}
