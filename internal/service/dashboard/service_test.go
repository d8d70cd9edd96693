package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/novatech-uz/company-backend-go/internal/domain/attendance"
	"github.com/novatech-uz/company-backend-go/internal/domain/contact"
	"github.com/novatech-uz/company-backend-go/internal/domain/dashboard"
	"github.com/novatech-uz/company-backend-go/internal/domain/product"
	"github.com/novatech-uz/company-backend-go/internal/pkg/clock"
	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDashboardRepo struct {
	team      dashboard.TeamCounts
	days      []dashboard.DayCounts
	open      dashboard.OpenCounts
	contacts  dashboard.ContactCounts
	status    []attendance.StatusStat
	late      []dashboard.LateComer
	overtime  []dashboard.OvertimeLeader
	members   []dashboard.MemberSummary
	growth    dashboard.GrowthCounts
	failAward error

	mu          sync.Mutex
	rangeStart  time.Time
	rangeEnd    time.Time
	rankLimit   int
	growthSince time.Time
}

func (s *stubDashboardRepo) GetProductCounts(context.Context) (dashboard.ProductCounts, error) {
	return dashboard.ProductCounts{Total: 12, Active: 10, Featured: 3}, nil
}

func (s *stubDashboardRepo) GetTeamCounts(context.Context, time.Time) (dashboard.TeamCounts, error) {
	return s.team, nil
}

func (s *stubDashboardRepo) GetContactCounts(context.Context) (dashboard.ContactCounts, error) {
	return s.contacts, nil
}

func (s *stubDashboardRepo) GetTestimonialCounts(context.Context) (dashboard.TestimonialCounts, error) {
	return dashboard.TestimonialCounts{Active: 8, AvgRating: 4.75}, nil
}

func (s *stubDashboardRepo) CountActiveTechnologies(context.Context) (int64, error) {
	return 21, nil
}

func (s *stubDashboardRepo) CountActiveAwards(context.Context) (int64, error) {
	return 4, s.failAward
}

// GetDailyCounts serves both the window and the single-day query, so it
// filters the canned rows by date.
func (s *stubDashboardRepo) GetDailyCounts(_ context.Context, start, end time.Time) ([]dashboard.DayCounts, error) {
	from, to := start.Format("2006-01-02"), end.Format("2006-01-02")
	out := []dashboard.DayCounts{}
	for _, d := range s.days {
		if d.Date >= from && d.Date <= to {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *stubDashboardRepo) GetOpenCounts(context.Context, time.Time) (dashboard.OpenCounts, error) {
	return s.open, nil
}

func (s *stubDashboardRepo) GetStatusStats(_ context.Context, start, end time.Time) ([]attendance.StatusStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rangeStart, s.rangeEnd = start, end
	return s.status, nil
}

func (s *stubDashboardRepo) GetLateComers(_ context.Context, _, _ time.Time, limit int) ([]dashboard.LateComer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rankLimit = limit
	return s.late, nil
}

func (s *stubDashboardRepo) GetOvertimeLeaders(context.Context, time.Time, time.Time, int) ([]dashboard.OvertimeLeader, error) {
	return s.overtime, nil
}

func (s *stubDashboardRepo) CountProductsByStatus(context.Context) ([]contact.CountBy, error) {
	return []contact.CountBy{{Key: "stable", Count: 9}, {Key: "beta", Count: 3}}, nil
}

func (s *stubDashboardRepo) GetDepartmentStats(context.Context) ([]dashboard.DepartmentStat, error) {
	return []dashboard.DepartmentStat{{Department: "backend", Count: 4, AvgExperience: 3.5, TotalProjects: 40}}, nil
}

func (s *stubDashboardRepo) ListActiveMembers(_ context.Context, ranking dashboard.MemberRanking, limit int) ([]dashboard.MemberSummary, error) {
	if ranking == dashboard.RankByProjects {
		return []dashboard.MemberSummary{{Name: "Top", ProjectsCompleted: 50}}, nil
	}
	if limit > 0 && limit < len(s.members) {
		return s.members[:limit], nil
	}
	return s.members, nil
}

func (s *stubDashboardRepo) AvgContactResponse(context.Context) (float64, error) {
	return 7200.456, nil
}

func (s *stubDashboardRepo) ListHighPriorityOpen(context.Context, int) ([]contact.Contact, error) {
	return nil, nil
}

func (s *stubDashboardRepo) GetGrowth(_ context.Context, since time.Time) (dashboard.GrowthCounts, error) {
	s.growthSince = since
	return s.growth, nil
}

type stubContactRepo struct {
	contact.ContactRepository
}

func (stubContactRepo) Recent(context.Context, int) ([]contact.Contact, error) {
	return nil, nil
}

func (stubContactRepo) CountBy(_ context.Context, column string) ([]contact.CountBy, error) {
	return []contact.CountBy{{Key: column + "-a", Count: 2}}, nil
}

type stubProductRepo struct {
	product.ProductRepository
}

func (stubProductRepo) Recent(_ context.Context, limit int) ([]product.Product, error) {
	return []product.Product{{ID: "p-1", Name: "HelpDesk"}}, nil
}

func (stubProductRepo) StatsByCategory(context.Context) ([]product.CategoryStat, error) {
	return nil, nil
}

// List echoes the sort key so tests can tell the rankings apart.
func (stubProductRepo) List(_ context.Context, filter product.ProductFilter) ([]product.Product, int64, error) {
	if filter.IsActive == nil || !*filter.IsActive || filter.Limit != 5 || filter.SortOrder != "desc" {
		return nil, 0, errors.New("unexpected product filter")
	}
	return []product.Product{{Name: filter.SortBy}}, 1, nil
}

var now = time.Date(2025, 3, 12, 11, 0, 0, 0, time.UTC)

func newTestService(repo *stubDashboardRepo) dashboard.DashboardService {
	return NewDashboardService(repo, stubContactRepo{}, stubProductRepo{}, clock.Fixed{T: now}, clock.DefaultSchedule(), nil)
}

func TestGetOverview_AggregatesCounts(t *testing.T) {
	repo := &stubDashboardRepo{
		team:     dashboard.TeamCounts{Total: 15, Active: 12, PresentToday: 9, LateToday: 2},
		contacts: dashboard.ContactCounts{Total: 30, New: 5, HighPriorityOpen: 1},
	}

	out, err := newTestService(repo).GetOverview(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(10), out.Products.Active)
	assert.Equal(t, int64(3), out.Team.AbsentToday)
	assert.Equal(t, int64(5), out.Contacts.New)
	assert.Equal(t, 4.75, out.Testimonials.AvgRating)
	assert.Equal(t, int64(21), out.Technologies)
	assert.Equal(t, int64(4), out.Awards)
	assert.NotNil(t, out.RecentContacts)
	assert.Empty(t, out.RecentContacts)
	assert.Len(t, out.RecentProducts, 1)
	assert.Equal(t, now, out.GeneratedAt)
}

func TestGetOverview_AbsentNeverNegative(t *testing.T) {
	repo := &stubDashboardRepo{team: dashboard.TeamCounts{Active: 3, PresentToday: 5}}

	out, err := newTestService(repo).GetOverview(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Team.AbsentToday)
}

func TestGetOverview_QueryFailure(t *testing.T) {
	repo := &stubDashboardRepo{failAward: errors.New("connection reset")}

	_, err := newTestService(repo).GetOverview(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestGetAttendance_DefaultsToThirtyDays(t *testing.T) {
	repo := &stubDashboardRepo{
		team: dashboard.TeamCounts{Active: 10},
		days: []dashboard.DayCounts{
			{Date: "2025-02-10", Present: 9, Recorded: 9},
			{Date: "2025-02-11", Present: 6, Recorded: 6},
			{Date: "2025-03-12", Present: 4, Late: 2, Recorded: 6},
		},
		open: dashboard.OpenCounts{StillWorking: 5, PendingApproval: 6},
	}

	out, err := newTestService(repo).GetAttendance(context.Background(), dashboard.AttendanceDashboardFilter{})

	require.NoError(t, err)
	assert.Equal(t, dashboard.DateRange{StartDate: "2025-02-11", EndDate: "2025-03-12"}, out.Range)
	assert.Equal(t, "2025-02-11", repo.rangeStart.Format("2006-01-02"))
	assert.Equal(t, "2025-03-12", repo.rangeEnd.Format("2006-01-02"))
	assert.Equal(t, 10, repo.rankLimit)

	require.Len(t, out.Trend, 30)
	assert.Equal(t, "2025-02-11", out.Trend[0].Date)
	assert.Equal(t, int64(6), out.Trend[0].Present)
	assert.Equal(t, int64(0), out.Trend[1].Recorded)
	assert.Equal(t, "2025-03-12", out.Trend[29].Date)

	assert.Equal(t, int64(4), out.Today.Present)
	assert.Equal(t, int64(2), out.Today.Late)
	assert.Equal(t, int64(4), out.Today.NotCheckedIn)
	assert.Equal(t, int64(5), out.Today.StillWorking)
	assert.Equal(t, int64(6), out.Today.PendingApproval)

	assert.NotNil(t, out.StatusStats)
	assert.NotNil(t, out.LateComers)
	assert.NotNil(t, out.OvertimeLeaders)
}

func TestGetAttendance_ExplicitRange(t *testing.T) {
	repo := &stubDashboardRepo{
		team: dashboard.TeamCounts{Active: 3},
		days: []dashboard.DayCounts{
			{Date: "2025-03-01", Late: 1, Recorded: 1},
			{Date: "2025-03-12", Present: 3, Recorded: 3},
		},
		status: []attendance.StatusStat{{Status: attendance.StatusLate, Count: 4, AvgWorkHours: 7.456}},
		late: []dashboard.LateComer{
			{EmployeeID: "e-1", Name: "Aziz", LateCount: 3, TotalLateMinutes: 95, AvgLateMinutes: 31.6667},
		},
		overtime: []dashboard.OvertimeLeader{{EmployeeID: "e-2", Name: "Dilnoza", TotalOvertime: 5.256, OvertimeCount: 3}},
	}
	start, end := "2025-02-28", "2025-03-02"

	out, err := newTestService(repo).GetAttendance(context.Background(), dashboard.AttendanceDashboardFilter{StartDate: &start, EndDate: &end})

	require.NoError(t, err)
	require.Len(t, out.Trend, 3)
	assert.Equal(t, "2025-02-28", out.Trend[0].Date)
	assert.Equal(t, int64(1), out.Trend[1].Late)
	assert.Equal(t, "2025-03-02", out.Trend[2].Date)

	// Today lies outside the window but the snapshot still reflects it.
	assert.Equal(t, int64(3), out.Today.Present)
	assert.Equal(t, int64(0), out.Today.NotCheckedIn)

	assert.Equal(t, 7.46, out.StatusStats[0].AvgWorkHours)
	require.Len(t, out.LateComers, 1)
	assert.Equal(t, int64(95), out.LateComers[0].TotalLateMinutes)
	assert.Equal(t, 31.67, out.LateComers[0].AvgLateMinutes)
	assert.Equal(t, 5.26, out.OvertimeLeaders[0].TotalOvertime)
}

func TestGetAttendance_OnlyStartDateRunsToToday(t *testing.T) {
	repo := &stubDashboardRepo{}
	start := "2025-03-10"

	out, err := newTestService(repo).GetAttendance(context.Background(), dashboard.AttendanceDashboardFilter{StartDate: &start})

	require.NoError(t, err)
	assert.Equal(t, "2025-03-12", out.Range.EndDate)
	assert.Len(t, out.Trend, 3)
}

func TestGetAttendance_InvalidWindow(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
	}{
		{name: "bad format", start: "03/01/2025", end: "2025-03-02"},
		{name: "reversed", start: "2025-03-05", end: "2025-03-01"},
		{name: "too long", start: "2023-01-01", end: "2025-01-01"},
		{name: "start after default end", start: "2025-04-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := dashboard.AttendanceDashboardFilter{StartDate: &tt.start}
			if tt.end != "" {
				filter.EndDate = &tt.end
			}

			_, err := newTestService(&stubDashboardRepo{}).GetAttendance(context.Background(), filter)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
		})
	}
}

func TestGetAttendance_ScheduleZoneDecidesToday(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	schedule := clock.DefaultSchedule()
	schedule.Location = loc
	repo := &stubDashboardRepo{}
	// 02:00 UTC on the 12th is still the 11th in New York.
	svc := NewDashboardService(repo, stubContactRepo{}, stubProductRepo{}, clock.Fixed{T: time.Date(2025, 3, 12, 2, 0, 0, 0, time.UTC)}, schedule, nil)

	out, err := svc.GetAttendance(context.Background(), dashboard.AttendanceDashboardFilter{})

	require.NoError(t, err)
	assert.Equal(t, "2025-03-11", out.Range.EndDate)
	assert.Equal(t, "2025-03-11", out.Today.Date)
}

func TestGetProducts(t *testing.T) {
	out, err := newTestService(&stubDashboardRepo{}).GetProducts(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, out.CategoryStats)
	assert.Len(t, out.StatusStats, 2)
	require.Len(t, out.TopRated, 1)
	assert.Equal(t, "rating", out.TopRated[0].Name)
	require.Len(t, out.MostDownloaded, 1)
	assert.Equal(t, "downloads", out.MostDownloaded[0].Name)
}

func TestGetTeam_BucketsExperience(t *testing.T) {
	repo := &stubDashboardRepo{members: []dashboard.MemberSummary{
		{Name: "A", Experience: 0},
		{Name: "B", Experience: 1},
		{Name: "C", Experience: 2},
		{Name: "D", Experience: 7},
		{Name: "E", Experience: 8},
		{Name: "F", Experience: 20},
	}}

	out, err := newTestService(repo).GetTeam(context.Background())

	require.NoError(t, err)
	require.Len(t, out.ExperienceStats, 4)
	assert.Equal(t, "0-1", out.ExperienceStats[0].Label)
	assert.Equal(t, []string{"A", "B"}, out.ExperienceStats[0].Members)
	assert.Equal(t, "2-4", out.ExperienceStats[1].Label)
	assert.Equal(t, int64(1), out.ExperienceStats[1].Count)
	assert.Equal(t, "5-7", out.ExperienceStats[2].Label)
	assert.Equal(t, []string{"D"}, out.ExperienceStats[2].Members)
	assert.Equal(t, "8+", out.ExperienceStats[3].Label)
	assert.Equal(t, int64(2), out.ExperienceStats[3].Count)

	assert.Len(t, out.RecentJoins, 5)
	assert.Equal(t, "A", out.RecentJoins[0].Name)
	require.Len(t, out.TopPerformers, 1)
	assert.Len(t, out.DepartmentStats, 1)
}

func TestGetTeam_EmptyBucketsStillListed(t *testing.T) {
	out, err := newTestService(&stubDashboardRepo{}).GetTeam(context.Background())

	require.NoError(t, err)
	require.Len(t, out.ExperienceStats, 4)
	for _, b := range out.ExperienceStats {
		assert.Zero(t, b.Count)
		assert.NotNil(t, b.Members)
	}
	assert.NotNil(t, out.RecentJoins)
}

func TestGetContacts(t *testing.T) {
	out, err := newTestService(&stubDashboardRepo{}).GetContacts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "status-a", out.StatusStats[0].Key)
	assert.Equal(t, "priority-a", out.PriorityStats[0].Key)
	assert.Equal(t, "service-a", out.ServiceStats[0].Key)
	assert.Equal(t, 7200.46, out.AvgResponseSeconds)
	assert.NotNil(t, out.HighPriority)
	assert.Empty(t, out.HighPriority)
}

func TestGetAnalytics(t *testing.T) {
	repo := &stubDashboardRepo{growth: dashboard.GrowthCounts{
		Products: dashboard.Growth{Total: 12, Growth: 2},
		Team:     dashboard.Growth{Total: 15, Growth: 1},
	}}

	out, err := newTestService(repo).GetAnalytics(context.Background(), dashboard.AnalyticsFilter{})

	require.NoError(t, err)
	assert.Equal(t, 30, out.PeriodDays)
	assert.Equal(t, time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), repo.growthSince)
	assert.Equal(t, repo.growthSince, out.Since)
	assert.Equal(t, int64(2), out.Products.Growth)
	assert.Equal(t, int64(15), out.Team.Total)
}

func TestGetAnalytics_PeriodOutOfRange(t *testing.T) {
	for _, period := range []int{-1, 366} {
		_, err := newTestService(&stubDashboardRepo{}).GetAnalytics(context.Background(), dashboard.AnalyticsFilter{Period: period})

		var verrs validator.ValidationErrors
		assert.ErrorAs(t, err, &verrs, "period %d", period)
	}
}
