package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetOverview returns site-wide counts and recent activity. The result is cached.
	GetOverview(ctx context.Context) (OverviewResponse, error)

	// GetAttendance returns today's snapshot and the rankings and daily trend
	// over the filter's window.
	GetAttendance(ctx context.Context, filter AttendanceDashboardFilter) (AttendanceDashboardResponse, error)

	GetProducts(ctx context.Context) (ProductDashboardResponse, error)
	GetTeam(ctx context.Context) (TeamDashboardResponse, error)
	GetContacts(ctx context.Context) (ContactDashboardResponse, error)

	// GetAnalytics returns growth over the trailing period.
	GetAnalytics(ctx context.Context, filter AnalyticsFilter) (AnalyticsResponse, error)
}
