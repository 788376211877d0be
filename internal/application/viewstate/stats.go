package viewstate

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Bhaskar125/gym-management-system/internal/application/projections"
)

// StatsView holds the dashboard counters. There is no subscription and no
// optimistic path: the numbers change only through an explicit Refresh.
type StatsView struct {
	mu     sync.Mutex
	phase  Phase
	errmsg string
	stats  projections.DashboardStats

	deps projections.GetDashboardStatsDeps
	log  *slog.Logger
}

// NewStatsView creates an idle container over the stats projection.
func NewStatsView(deps projections.GetDashboardStatsDeps, log *slog.Logger) *StatsView {
	if log == nil {
		log = slog.Default()
	}
	return &StatsView{deps: deps, log: log}
}

// Refresh recomputes the counters.
// POST: Container is Ready with fresh counters, or Failed with the
// previous counters retained
func (v *StatsView) Refresh(ctx context.Context) {
	v.mu.Lock()
	v.phase = PhaseLoading
	v.mu.Unlock()

	stats, err := projections.QueryGetDashboardStats(ctx, v.deps)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.phase = PhaseFailed
		v.errmsg = "failed to fetch dashboard stats"
		v.log.Error("view_event", "view", "stats", "event", "read_failed", "error", err)
		return
	}
	v.stats = stats
	v.phase = PhaseReady
	v.errmsg = ""
}

// Phase returns the current lifecycle phase.
func (v *StatsView) Phase() Phase {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.phase
}

// Err returns the last read error message, empty when healthy.
func (v *StatsView) Err() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.errmsg
}

// Stats returns the last computed counters.
func (v *StatsView) Stats() projections.DashboardStats {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stats
}
