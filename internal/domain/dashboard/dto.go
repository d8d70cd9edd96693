package dashboard

import (
	"time"

	"github.com/novatech-uz/company-backend-go/internal/domain/attendance"
	"github.com/novatech-uz/company-backend-go/internal/domain/contact"
	"github.com/novatech-uz/company-backend-go/internal/domain/product"
	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
)

// ========== OVERVIEW ==========

// OverviewResponse is the admin landing page payload.
type OverviewResponse struct {
	Products       ProductCounts     `json:"products"`
	Team           TeamCounts        `json:"team"`
	Contacts       ContactCounts     `json:"contacts"`
	Testimonials   TestimonialCounts `json:"testimonials"`
	Technologies   int64             `json:"technologies"`
	Awards         int64             `json:"awards"`
	RecentContacts []contact.Contact `json:"recent_contacts"`
	RecentProducts []product.Product `json:"recent_products"`
	GeneratedAt    time.Time         `json:"generated_at"`
}

type ProductCounts struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Featured int64 `json:"featured"`
}

// TeamCounts carries directory totals and today's attendance.
// Present counts present and late records.
type TeamCounts struct {
	Total        int64 `json:"total"`
	Active       int64 `json:"active"`
	PresentToday int64 `json:"present_today"`
	LateToday    int64 `json:"late_today"`
	AbsentToday  int64 `json:"absent_today"`
}

type ContactCounts struct {
	Total            int64 `json:"total"`
	New              int64 `json:"new"`
	HighPriorityOpen int64 `json:"high_priority_open"`
}

type TestimonialCounts struct {
	Active    int64   `json:"active"`
	AvgRating float64 `json:"avg_rating"`
}

// ========== ATTENDANCE ==========

// DayCounts is the status distribution of one calendar day.
type DayCounts struct {
	Date     string `json:"date"` // Format: "YYYY-MM-DD"
	Present  int64  `json:"present"`
	Late     int64  `json:"late"`
	Absent   int64  `json:"absent"`
	HalfDay  int64  `json:"half_day"`
	Leave    int64  `json:"leave"`
	Holiday  int64  `json:"holiday"`
	Recorded int64  `json:"recorded"`
}

// TodaySnapshot adds the directory view to today's counts.
type TodaySnapshot struct {
	DayCounts
	ActiveEmployees int64 `json:"active_employees"`
	NotCheckedIn    int64 `json:"not_checked_in"`
	StillWorking    int64 `json:"still_working"`
	PendingApproval int64 `json:"pending_approval"`
}

// AttendanceDashboardFilter selects the reporting window. Both ends are
// inclusive calendar dates; the default is the 30 days ending today.
type AttendanceDashboardFilter struct {
	StartDate *string
	EndDate   *string
}

const (
	DefaultRangeDays = 30
	// MaxRangeDays caps the attendance dashboard window.
	MaxRangeDays = 366
)

func (f *AttendanceDashboardFilter) Validate() error {
	var errs validator.ValidationErrors
	var from, to time.Time
	if f.StartDate != nil && *f.StartDate != "" {
		d, ok := validator.IsValidDate(*f.StartDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
		}
		from = d
	}
	if f.EndDate != nil && *f.EndDate != "" {
		d, ok := validator.IsValidDate(*f.EndDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
		}
		to = d
	}
	if len(errs) == 0 && !from.IsZero() && !to.IsZero() && to.Before(from) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must not be before start_date"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Window resolves the filter against today, a midnight in the schedule's
// zone. A missing end is today; a missing start is 29 days before the end.
// Call Validate first.
func (f *AttendanceDashboardFilter) Window(today time.Time) (time.Time, time.Time, error) {
	loc := today.Location()
	end := today
	if f.EndDate != nil && *f.EndDate != "" {
		end, _ = time.ParseInLocation("2006-01-02", *f.EndDate, loc)
	}
	start := end.AddDate(0, 0, -(DefaultRangeDays - 1))
	if f.StartDate != nil && *f.StartDate != "" {
		start, _ = time.ParseInLocation("2006-01-02", *f.StartDate, loc)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, validator.ValidationErrors{{Field: "start_date", Message: "start_date must not be after end_date"}}
	}
	if !start.AddDate(0, 0, MaxRangeDays).After(end) {
		return time.Time{}, time.Time{}, validator.ValidationErrors{{Field: "end_date", Message: "date range must not exceed 366 days"}}
	}
	return start, end, nil
}

type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// LateComer aggregates late records of one employee over the window.
type LateComer struct {
	EmployeeID       string  `json:"employee_id"`
	Name             string  `json:"name"`
	Position         string  `json:"position"`
	LateCount        int64   `json:"late_count"`
	TotalLateMinutes int64   `json:"total_late_minutes"`
	AvgLateMinutes   float64 `json:"avg_late_minutes"`
}

// OvertimeLeader aggregates records with positive overtime.
type OvertimeLeader struct {
	EmployeeID    string  `json:"employee_id"`
	Name          string  `json:"name"`
	Position      string  `json:"position"`
	TotalOvertime float64 `json:"total_overtime"`
	OvertimeCount int64   `json:"overtime_count"`
}

type AttendanceDashboardResponse struct {
	Range           DateRange               `json:"range"`
	Today           TodaySnapshot           `json:"today"`
	StatusStats     []attendance.StatusStat `json:"status_stats"`
	Trend           []DayCounts             `json:"trend"` // oldest first, one entry per day
	LateComers      []LateComer             `json:"late_comers"`
	OvertimeLeaders []OvertimeLeader        `json:"overtime_leaders"`
}

// ========== PRODUCTS ==========

type ProductDashboardResponse struct {
	CategoryStats  []product.CategoryStat `json:"category_stats"`
	StatusStats    []contact.CountBy      `json:"status_stats"`
	TopRated       []product.Product      `json:"top_rated"`
	MostDownloaded []product.Product      `json:"most_downloaded"`
}

// ========== TEAM ==========

type DepartmentStat struct {
	Department    string  `json:"department"`
	Count         int64   `json:"count"`
	AvgExperience float64 `json:"avg_experience"`
	TotalProjects int64   `json:"total_projects"`
}

// MemberSummary is the slice of a team member shown on the team dashboard.
type MemberSummary struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Position          string    `json:"position"`
	AvatarURL         string    `json:"avatar_url"`
	Experience        int       `json:"experience"`
	ProjectsCompleted int       `json:"projects_completed"`
	JoinDate          time.Time `json:"join_date"`
}

// ExperienceBucket groups active members by years of experience. Max is
// exclusive; the last bucket has no upper bound and reports Max as 0.
type ExperienceBucket struct {
	Label   string   `json:"label"`
	Min     int      `json:"min"`
	Max     int      `json:"max,omitempty"`
	Count   int64    `json:"count"`
	Members []string `json:"members"`
}

// MemberRanking orders team members on the dashboard.
type MemberRanking string

const (
	RankByProjects MemberRanking = "projects"
	RankByJoinDate MemberRanking = "join_date"
)

type TeamDashboardResponse struct {
	DepartmentStats []DepartmentStat   `json:"department_stats"`
	ExperienceStats []ExperienceBucket `json:"experience_stats"`
	TopPerformers   []MemberSummary    `json:"top_performers"`
	RecentJoins     []MemberSummary    `json:"recent_joins"`
}

// ========== CONTACTS ==========

type ContactDashboardResponse struct {
	StatusStats   []contact.CountBy `json:"status_stats"`
	PriorityStats []contact.CountBy `json:"priority_stats"`
	ServiceStats  []contact.CountBy `json:"service_stats"`
	// AvgResponseSeconds averages updated_at - created_at over replied and closed requests.
	AvgResponseSeconds float64           `json:"avg_response_seconds"`
	HighPriority       []contact.Contact `json:"high_priority"`
}

// ========== ANALYTICS ==========

const (
	DefaultAnalyticsPeriod = 30
	MaxAnalyticsPeriod     = 365
)

// AnalyticsFilter selects the trailing window in days.
type AnalyticsFilter struct {
	Period int
}

func (f *AnalyticsFilter) Validate() error {
	if f.Period == 0 {
		f.Period = DefaultAnalyticsPeriod
	}
	if f.Period < 1 || f.Period > MaxAnalyticsPeriod {
		return validator.ValidationErrors{{Field: "period", Message: "period must be between 1 and 365 days"}}
	}
	return nil
}

// Growth is an all-time total and how many of those arrived in the window.
type Growth struct {
	Total  int64 `json:"total"`
	Growth int64 `json:"growth"`
}

type GrowthCounts struct {
	Products Growth `json:"products"`
	Contacts Growth `json:"contacts"`
	Team     Growth `json:"team"`
}

type AnalyticsResponse struct {
	PeriodDays int       `json:"period_days"`
	Since      time.Time `json:"since"`
	GrowthCounts
}
