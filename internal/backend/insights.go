package backend

import (
	"context"

	"github.com/GriffinCanCode/outreach-console/internal/shared/types"
)

// DashboardStats returns the overview counters.
func (a *API) DashboardStats(ctx context.Context) (types.DashboardStats, error) {
	var stats types.DashboardStats
	err := a.get(ctx, RouteDashboardStats, &stats)
	return stats, err
}

// Performance returns the daily message series and niche distribution.
func (a *API) Performance(ctx context.Context) (types.Performance, error) {
	var perf types.Performance
	err := a.get(ctx, RoutePerformance, &perf)
	return perf, err
}
