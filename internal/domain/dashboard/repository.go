package dashboard

import (
	"context"
	"time"

	"github.com/novatech-uz/company-backend-go/internal/domain/attendance"
	"github.com/novatech-uz/company-backend-go/internal/domain/contact"
)

// OpenCounts are today's records without check-out and without approval.
type OpenCounts struct {
	StillWorking    int64
	PendingApproval int64
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	// GetProductCounts returns total/active/featured in single query
	GetProductCounts(ctx context.Context) (ProductCounts, error)

	// GetTeamCounts returns directory totals and attendance for date in single query
	GetTeamCounts(ctx context.Context, date time.Time) (TeamCounts, error)

	GetContactCounts(ctx context.Context) (ContactCounts, error)
	GetTestimonialCounts(ctx context.Context) (TestimonialCounts, error)
	CountActiveTechnologies(ctx context.Context) (int64, error)
	CountActiveAwards(ctx context.Context) (int64, error)

	// GetDailyCounts returns one row per day that has records in [start, end].
	// Days without records are absent from the result.
	GetDailyCounts(ctx context.Context, start, end time.Time) ([]DayCounts, error)

	GetOpenCounts(ctx context.Context, date time.Time) (OpenCounts, error)

	// GetStatusStats groups records in [start, end] by status.
	GetStatusStats(ctx context.Context, start, end time.Time) ([]attendance.StatusStat, error)

	// GetLateComers ranks employees by late records in [start, end].
	GetLateComers(ctx context.Context, start, end time.Time, limit int) ([]LateComer, error)

	// GetOvertimeLeaders ranks employees by total overtime in [start, end].
	GetOvertimeLeaders(ctx context.Context, start, end time.Time, limit int) ([]OvertimeLeader, error)

	CountProductsByStatus(ctx context.Context) ([]contact.CountBy, error)

	// GetDepartmentStats covers active members only.
	GetDepartmentStats(ctx context.Context) ([]DepartmentStat, error)

	// ListActiveMembers returns active members ordered by ranking, best first.
	// A limit of zero returns all of them.
	ListActiveMembers(ctx context.Context, ranking MemberRanking, limit int) ([]MemberSummary, error)

	// AvgContactResponse returns the mean seconds from creation to the last
	// update of replied and closed requests, or zero when there are none.
	AvgContactResponse(ctx context.Context) (float64, error)

	// ListHighPriorityOpen returns high priority requests that are not closed, newest first.
	ListHighPriorityOpen(ctx context.Context, limit int) ([]contact.Contact, error)

	GetGrowth(ctx context.Context, since time.Time) (GrowthCounts, error)
}
