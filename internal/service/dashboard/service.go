package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/novatech-uz/company-backend-go/internal/domain/attendance"
	"github.com/novatech-uz/company-backend-go/internal/domain/contact"
	"github.com/novatech-uz/company-backend-go/internal/domain/dashboard"
	"github.com/novatech-uz/company-backend-go/internal/domain/product"
	"github.com/novatech-uz/company-backend-go/internal/pkg/cache"
	"github.com/novatech-uz/company-backend-go/internal/pkg/clock"
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
	"golang.org/x/sync/errgroup"
)

const (
	overviewCacheKey  = "dashboard:overview"
	recentLimit       = 5
	rankingLimit      = 10
	highPriorityLimit = 10
	dateLayout        = "2006-01-02"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	contacts contact.ContactRepository
	products product.ProductRepository
	clock    clock.Clock
	schedule clock.Schedule
	cache    *cache.Cache
}

func NewDashboardService(
	repo dashboard.DashboardRepository,
	contactRepo contact.ContactRepository,
	productRepo product.ProductRepository,
	clk clock.Clock,
	schedule clock.Schedule,
	dashboardCache *cache.Cache,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		contacts:            contactRepo,
		products:            productRepo,
		clock:               clk,
		schedule:            schedule,
		cache:               dashboardCache,
	}
}

// GetOverview returns the cached overview, rebuilding it on a miss.
func (s *DashboardServiceImpl) GetOverview(ctx context.Context) (dashboard.OverviewResponse, error) {
	return cache.Remember(ctx, s.cache, overviewCacheKey, s.buildOverview)
}

// buildOverview fans out one goroutine per query.
func (s *DashboardServiceImpl) buildOverview(ctx context.Context) (dashboard.OverviewResponse, error) {
	now := s.clock.Now()
	today := s.schedule.Midnight(now)

	var out dashboard.OverviewResponse
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c, err := s.DashboardRepository.GetProductCounts(gCtx)
		out.Products = c
		return err
	})
	g.Go(func() error {
		c, err := s.DashboardRepository.GetTeamCounts(gCtx, today)
		if err != nil {
			return err
		}
		c.AbsentToday = c.Active - c.PresentToday
		if c.AbsentToday < 0 {
			c.AbsentToday = 0
		}
		out.Team = c
		return nil
	})
	g.Go(func() error {
		c, err := s.DashboardRepository.GetContactCounts(gCtx)
		out.Contacts = c
		return err
	})
	g.Go(func() error {
		c, err := s.DashboardRepository.GetTestimonialCounts(gCtx)
		out.Testimonials = c
		return err
	})
	g.Go(func() error {
		n, err := s.DashboardRepository.CountActiveTechnologies(gCtx)
		out.Technologies = n
		return err
	})
	g.Go(func() error {
		n, err := s.DashboardRepository.CountActiveAwards(gCtx)
		out.Awards = n
		return err
	})
	g.Go(func() error {
		recent, err := s.contacts.Recent(gCtx, recentLimit)
		out.RecentContacts = recent
		return err
	})
	g.Go(func() error {
		recent, err := s.products.Recent(gCtx, recentLimit)
		out.RecentProducts = recent
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.OverviewResponse{}, fmt.Errorf("failed to build dashboard overview: %w", err)
	}

	if out.RecentContacts == nil {
		out.RecentContacts = []contact.Contact{}
	}
	if out.RecentProducts == nil {
		out.RecentProducts = []product.Product{}
	}
	out.GeneratedAt = now.UTC()
	return out, nil
}

// GetAttendance returns today's snapshot plus status stats, the daily trend
// and the employee rankings over the filter's window.
func (s *DashboardServiceImpl) GetAttendance(ctx context.Context, filter dashboard.AttendanceDashboardFilter) (dashboard.AttendanceDashboardResponse, error) {
	if err := filter.Validate(); err != nil {
		return dashboard.AttendanceDashboardResponse{}, err
	}
	today := s.schedule.Midnight(s.clock.Now())
	start, end, err := filter.Window(today)
	if err != nil {
		return dashboard.AttendanceDashboardResponse{}, err
	}

	var (
		days     []dashboard.DayCounts
		todayRow []dashboard.DayCounts
		team     dashboard.TeamCounts
		open     dashboard.OpenCounts
		out      dashboard.AttendanceDashboardResponse
	)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		days, err = s.DashboardRepository.GetDailyCounts(gCtx, start, end)
		return err
	})
	g.Go(func() error {
		var err error
		todayRow, err = s.DashboardRepository.GetDailyCounts(gCtx, today, today)
		return err
	})
	g.Go(func() error {
		var err error
		team, err = s.DashboardRepository.GetTeamCounts(gCtx, today)
		return err
	})
	g.Go(func() error {
		var err error
		open, err = s.DashboardRepository.GetOpenCounts(gCtx, today)
		return err
	})
	g.Go(func() error {
		stats, err := s.DashboardRepository.GetStatusStats(gCtx, start, end)
		out.StatusStats = stats
		return err
	})
	g.Go(func() error {
		late, err := s.DashboardRepository.GetLateComers(gCtx, start, end, rankingLimit)
		out.LateComers = late
		return err
	})
	g.Go(func() error {
		leaders, err := s.DashboardRepository.GetOvertimeLeaders(gCtx, start, end, rankingLimit)
		out.OvertimeLeaders = leaders
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.AttendanceDashboardResponse{}, fmt.Errorf("failed to build attendance dashboard: %w", err)
	}

	snapshot := dashboard.TodaySnapshot{
		DayCounts:       fillTrend(todayRow, today, today)[0],
		ActiveEmployees: team.Active,
		StillWorking:    open.StillWorking,
		PendingApproval: open.PendingApproval,
	}
	snapshot.NotCheckedIn = team.Active - snapshot.Recorded
	if snapshot.NotCheckedIn < 0 {
		snapshot.NotCheckedIn = 0
	}

	for i := range out.StatusStats {
		out.StatusStats[i].AvgWorkHours = attendance.Round2(out.StatusStats[i].AvgWorkHours)
		out.StatusStats[i].TotalOvertime = attendance.Round2(out.StatusStats[i].TotalOvertime)
	}
	for i := range out.LateComers {
		out.LateComers[i].AvgLateMinutes = attendance.Round2(out.LateComers[i].AvgLateMinutes)
	}
	for i := range out.OvertimeLeaders {
		out.OvertimeLeaders[i].TotalOvertime = attendance.Round2(out.OvertimeLeaders[i].TotalOvertime)
	}
	if out.StatusStats == nil {
		out.StatusStats = []attendance.StatusStat{}
	}
	if out.LateComers == nil {
		out.LateComers = []dashboard.LateComer{}
	}
	if out.OvertimeLeaders == nil {
		out.OvertimeLeaders = []dashboard.OvertimeLeader{}
	}

	out.Range = dashboard.DateRange{StartDate: start.Format(dateLayout), EndDate: end.Format(dateLayout)}
	out.Today = snapshot
	out.Trend = fillTrend(days, start, end)
	return out, nil
}

// GetProducts returns category and status breakdowns with the top products.
func (s *DashboardServiceImpl) GetProducts(ctx context.Context) (dashboard.ProductDashboardResponse, error) {
	var out dashboard.ProductDashboardResponse
	active := true
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.products.StatsByCategory(gCtx)
		out.CategoryStats = stats
		return err
	})
	g.Go(func() error {
		stats, err := s.DashboardRepository.CountProductsByStatus(gCtx)
		out.StatusStats = stats
		return err
	})
	g.Go(func() error {
		top, _, err := s.products.List(gCtx, topProducts("rating", &active))
		out.TopRated = top
		return err
	})
	g.Go(func() error {
		top, _, err := s.products.List(gCtx, topProducts("downloads", &active))
		out.MostDownloaded = top
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.ProductDashboardResponse{}, fmt.Errorf("failed to build products dashboard: %w", err)
	}

	if out.CategoryStats == nil {
		out.CategoryStats = []product.CategoryStat{}
	}
	if out.StatusStats == nil {
		out.StatusStats = []contact.CountBy{}
	}
	if out.TopRated == nil {
		out.TopRated = []product.Product{}
	}
	if out.MostDownloaded == nil {
		out.MostDownloaded = []product.Product{}
	}
	return out, nil
}

func topProducts(sortBy string, active *bool) product.ProductFilter {
	return product.ProductFilter{
		Params:   listing.Params{Page: 1, Limit: recentLimit, SortBy: sortBy, SortOrder: "desc"},
		IsActive: active,
	}
}

// GetTeam returns department stats, experience buckets and member rankings.
func (s *DashboardServiceImpl) GetTeam(ctx context.Context) (dashboard.TeamDashboardResponse, error) {
	var (
		out    dashboard.TeamDashboardResponse
		joined []dashboard.MemberSummary
	)
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.DashboardRepository.GetDepartmentStats(gCtx)
		out.DepartmentStats = stats
		return err
	})
	g.Go(func() error {
		top, err := s.DashboardRepository.ListActiveMembers(gCtx, dashboard.RankByProjects, recentLimit)
		out.TopPerformers = top
		return err
	})
	g.Go(func() error {
		var err error
		joined, err = s.DashboardRepository.ListActiveMembers(gCtx, dashboard.RankByJoinDate, 0)
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.TeamDashboardResponse{}, fmt.Errorf("failed to build team dashboard: %w", err)
	}

	out.ExperienceStats = bucketExperience(joined)
	if len(joined) > recentLimit {
		joined = joined[:recentLimit]
	}
	out.RecentJoins = joined
	if out.RecentJoins == nil {
		out.RecentJoins = []dashboard.MemberSummary{}
	}
	if out.DepartmentStats == nil {
		out.DepartmentStats = []dashboard.DepartmentStat{}
	}
	if out.TopPerformers == nil {
		out.TopPerformers = []dashboard.MemberSummary{}
	}
	return out, nil
}

// experienceBounds are the lower bounds of each experience bucket in years.
var experienceBounds = []int{0, 2, 5, 8}

// bucketExperience always returns every bucket, empty ones included.
func bucketExperience(members []dashboard.MemberSummary) []dashboard.ExperienceBucket {
	buckets := make([]dashboard.ExperienceBucket, len(experienceBounds))
	for i, lo := range experienceBounds {
		b := dashboard.ExperienceBucket{Min: lo, Members: []string{}}
		if i+1 < len(experienceBounds) {
			b.Max = experienceBounds[i+1]
			b.Label = fmt.Sprintf("%d-%d", lo, b.Max-1)
		} else {
			b.Label = fmt.Sprintf("%d+", lo)
		}
		buckets[i] = b
	}

	for _, m := range members {
		i := len(experienceBounds) - 1
		for i > 0 && m.Experience < experienceBounds[i] {
			i--
		}
		buckets[i].Count++
		buckets[i].Members = append(buckets[i].Members, m.Name)
	}
	return buckets
}

// GetContacts returns request breakdowns, response time and open high priority requests.
func (s *DashboardServiceImpl) GetContacts(ctx context.Context) (dashboard.ContactDashboardResponse, error) {
	var out dashboard.ContactDashboardResponse
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		counts, err := s.contacts.CountBy(gCtx, "status")
		out.StatusStats = counts
		return err
	})
	g.Go(func() error {
		counts, err := s.contacts.CountBy(gCtx, "priority")
		out.PriorityStats = counts
		return err
	})
	g.Go(func() error {
		counts, err := s.contacts.CountBy(gCtx, "service")
		out.ServiceStats = counts
		return err
	})
	g.Go(func() error {
		avg, err := s.DashboardRepository.AvgContactResponse(gCtx)
		out.AvgResponseSeconds = attendance.Round2(avg)
		return err
	})
	g.Go(func() error {
		open, err := s.DashboardRepository.ListHighPriorityOpen(gCtx, highPriorityLimit)
		out.HighPriority = open
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.ContactDashboardResponse{}, fmt.Errorf("failed to build contacts dashboard: %w", err)
	}

	if out.StatusStats == nil {
		out.StatusStats = []contact.CountBy{}
	}
	if out.PriorityStats == nil {
		out.PriorityStats = []contact.CountBy{}
	}
	if out.ServiceStats == nil {
		out.ServiceStats = []contact.CountBy{}
	}
	if out.HighPriority == nil {
		out.HighPriority = []contact.Contact{}
	}
	return out, nil
}

// GetAnalytics counts what arrived since the start of the day period days ago.
func (s *DashboardServiceImpl) GetAnalytics(ctx context.Context, filter dashboard.AnalyticsFilter) (dashboard.AnalyticsResponse, error) {
	if err := filter.Validate(); err != nil {
		return dashboard.AnalyticsResponse{}, err
	}
	since := s.schedule.Midnight(s.clock.Now()).AddDate(0, 0, -filter.Period)

	growth, err := s.DashboardRepository.GetGrowth(ctx, since)
	if err != nil {
		return dashboard.AnalyticsResponse{}, fmt.Errorf("failed to build analytics: %w", err)
	}
	return dashboard.AnalyticsResponse{
		PeriodDays:   filter.Period,
		Since:        since,
		GrowthCounts: growth,
	}, nil
}

// fillTrend returns one entry per day from start to end inclusive, taking
// counts from days where present and zeros elsewhere.
func fillTrend(days []dashboard.DayCounts, start, end time.Time) []dashboard.DayCounts {
	byDate := make(map[string]dashboard.DayCounts, len(days))
	for _, d := range days {
		byDate[d.Date] = d
	}

	var trend []dashboard.DayCounts
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)
		d, ok := byDate[key]
		if !ok {
			d = dashboard.DayCounts{Date: key}
		}
		trend = append(trend, d)
	}
	return trend
}
