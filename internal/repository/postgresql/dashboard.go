package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/novatech-uz/company-backend-go/internal/domain/attendance"
	"github.com/novatech-uz/company-backend-go/internal/domain/contact"
	"github.com/novatech-uz/company-backend-go/internal/domain/dashboard"
	"github.com/novatech-uz/company-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// GetProductCounts returns total/active/featured in single query
func (r *dashboardRepositoryImpl) GetProductCounts(ctx context.Context) (dashboard.ProductCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_active),
			COUNT(*) FILTER (WHERE is_active AND is_featured)
		FROM products
	`
	var c dashboard.ProductCounts
	if err := q.QueryRow(ctx, query).Scan(&c.Total, &c.Active, &c.Featured); err != nil {
		return dashboard.ProductCounts{}, fmt.Errorf("failed to get product counts: %w", err)
	}
	return c, nil
}

// GetTeamCounts returns directory totals and attendance for date in single query
func (r *dashboardRepositoryImpl) GetTeamCounts(ctx context.Context, date time.Time) (dashboard.TeamCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_active),
			(SELECT COUNT(*) FROM attendances WHERE date = $1 AND status IN ('present', 'late')),
			(SELECT COUNT(*) FROM attendances WHERE date = $1 AND status = 'late')
		FROM team_members
	`
	var c dashboard.TeamCounts
	err := q.QueryRow(ctx, query, date.Format(dateLayout)).Scan(&c.Total, &c.Active, &c.PresentToday, &c.LateToday)
	if err != nil {
		return dashboard.TeamCounts{}, fmt.Errorf("failed to get team counts: %w", err)
	}
	return c, nil
}

// GetContactCounts implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) GetContactCounts(ctx context.Context) (dashboard.ContactCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'new'),
			COUNT(*) FILTER (WHERE priority = 'high' AND status <> 'closed')
		FROM contacts
	`
	var c dashboard.ContactCounts
	if err := q.QueryRow(ctx, query).Scan(&c.Total, &c.New, &c.HighPriorityOpen); err != nil {
		return dashboard.ContactCounts{}, fmt.Errorf("failed to get contact counts: %w", err)
	}
	return c, nil
}

// GetTestimonialCounts implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) GetTestimonialCounts(ctx context.Context) (dashboard.TestimonialCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*), COALESCE(ROUND(AVG(rating), 2), 0)::float8
		FROM testimonials
		WHERE is_active = TRUE
	`
	var c dashboard.TestimonialCounts
	if err := q.QueryRow(ctx, query).Scan(&c.Active, &c.AvgRating); err != nil {
		return dashboard.TestimonialCounts{}, fmt.Errorf("failed to get testimonial counts: %w", err)
	}
	return c, nil
}

// CountActiveTechnologies implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountActiveTechnologies(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM technologies WHERE is_active = TRUE`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count technologies: %w", err)
	}
	return total, nil
}

// CountActiveAwards implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountActiveAwards(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM awards WHERE is_active = TRUE`).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count awards: %w", err)
	}
	return total, nil
}

// GetDailyCounts returns per-day status counts in single query
func (r *dashboardRepositoryImpl) GetDailyCounts(ctx context.Context, start, end time.Time) ([]dashboard.DayCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			TO_CHAR(date, 'YYYY-MM-DD'),
			COUNT(*) FILTER (WHERE status = 'present'),
			COUNT(*) FILTER (WHERE status = 'late'),
			COUNT(*) FILTER (WHERE status = 'absent'),
			COUNT(*) FILTER (WHERE status = 'half-day'),
			COUNT(*) FILTER (WHERE status = 'leave'),
			COUNT(*) FILTER (WHERE status = 'holiday'),
			COUNT(*)
		FROM attendances
		WHERE date BETWEEN $1 AND $2
		GROUP BY date
		ORDER BY date ASC
	`
	rows, err := q.Query(ctx, query, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to get daily attendance counts: %w", err)
	}
	defer rows.Close()

	days := []dashboard.DayCounts{}
	for rows.Next() {
		var d dashboard.DayCounts
		if err := rows.Scan(&d.Date, &d.Present, &d.Late, &d.Absent, &d.HalfDay, &d.Leave, &d.Holiday, &d.Recorded); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// GetOpenCounts implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) GetOpenCounts(ctx context.Context, date time.Time) (dashboard.OpenCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE check_in IS NOT NULL AND check_out IS NULL),
			COUNT(*) FILTER (WHERE NOT is_approved)
		FROM attendances
		WHERE date = $1
	`
	var c dashboard.OpenCounts
	if err := q.QueryRow(ctx, query, date.Format(dateLayout)).Scan(&c.StillWorking, &c.PendingApproval); err != nil {
		return dashboard.OpenCounts{}, fmt.Errorf("failed to get open attendance counts: %w", err)
	}
	return c, nil
}

// GetStatusStats implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) GetStatusStats(ctx context.Context, start, end time.Time) ([]attendance.StatusStat, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT status, COUNT(*), COALESCE(AVG(work_hours), 0)::float8, COALESCE(SUM(overtime), 0)::float8
		FROM attendances
		WHERE date BETWEEN $1 AND $2
		GROUP BY status
		ORDER BY COUNT(*) DESC, status ASC
	`
	rows, err := q.Query(ctx, query, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance status stats: %w", err)
	}
	defer rows.Close()

	stats := []attendance.StatusStat{}
	for rows.Next() {
		var s attendance.StatusStat
		if err := rows.Scan(&s.Status, &s.Count, &s.AvgWorkHours, &s.TotalOvertime); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// GetLateComers groups late records per employee in a single query
func (r *dashboardRepositoryImpl) GetLateComers(ctx context.Context, start, end time.Time, limit int) ([]dashboard.LateComer, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT tm.id, tm.name, tm.position,
			COUNT(*),
			COALESCE(SUM(a.late_minutes), 0),
			COALESCE(AVG(a.late_minutes), 0)::float8
		FROM attendances a
		JOIN team_members tm ON tm.id = a.employee_id
		WHERE a.date BETWEEN $1 AND $2 AND a.status = 'late'
		GROUP BY tm.id, tm.name, tm.position
		ORDER BY COUNT(*) DESC, SUM(a.late_minutes) DESC, tm.name ASC
		LIMIT $3
	`
	rows, err := q.Query(ctx, query, start.Format(dateLayout), end.Format(dateLayout), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get late comers: %w", err)
	}
	defer rows.Close()

	out := []dashboard.LateComer{}
	for rows.Next() {
		var l dashboard.LateComer
		if err := rows.Scan(&l.EmployeeID, &l.Name, &l.Position, &l.LateCount, &l.TotalLateMinutes, &l.AvgLateMinutes); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// GetOvertimeLeaders groups overtime per employee in single query
func (r *dashboardRepositoryImpl) GetOvertimeLeaders(ctx context.Context, start, end time.Time, limit int) ([]dashboard.OvertimeLeader, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT tm.id, tm.name, tm.position, SUM(a.overtime)::float8, COUNT(*)
		FROM attendances a
		JOIN team_members tm ON tm.id = a.employee_id
		WHERE a.date BETWEEN $1 AND $2 AND a.overtime > 0
		GROUP BY tm.id, tm.name, tm.position
		ORDER BY SUM(a.overtime) DESC, tm.name ASC
		LIMIT $3
	`
	rows, err := q.Query(ctx, query, start.Format(dateLayout), end.Format(dateLayout), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get overtime leaders: %w", err)
	}
	defer rows.Close()

	out := []dashboard.OvertimeLeader{}
	for rows.Next() {
		var o dashboard.OvertimeLeader
		if err := rows.Scan(&o.EmployeeID, &o.Name, &o.Position, &o.TotalOvertime, &o.OvertimeCount); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// CountProductsByStatus implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountProductsByStatus(ctx context.Context) ([]contact.CountBy, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT status, COUNT(*) FROM products GROUP BY status ORDER BY COUNT(*) DESC, status ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to count products by status: %w", err)
	}
	defer rows.Close()

	counts := []contact.CountBy{}
	for rows.Next() {
		var c contact.CountBy
		if err := rows.Scan(&c.Key, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// GetDepartmentStats implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) GetDepartmentStats(ctx context.Context) ([]dashboard.DepartmentStat, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT department, COUNT(*), COALESCE(ROUND(AVG(experience), 2), 0)::float8, COALESCE(SUM(projects_completed), 0)
		FROM team_members
		WHERE is_active = TRUE
		GROUP BY department
		ORDER BY COUNT(*) DESC, department ASC
	`
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get department stats: %w", err)
	}
	defer rows.Close()

	stats := []dashboard.DepartmentStat{}
	for rows.Next() {
		var s dashboard.DepartmentStat
		if err := rows.Scan(&s.Department, &s.Count, &s.AvgExperience, &s.TotalProjects); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

var memberRankings = map[dashboard.MemberRanking]string{
	dashboard.RankByProjects: "projects_completed DESC, name ASC",
	dashboard.RankByJoinDate: "join_date DESC, created_at DESC",
}

// ListActiveMembers implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) ListActiveMembers(ctx context.Context, ranking dashboard.MemberRanking, limit int) ([]dashboard.MemberSummary, error) {
	orderBy, ok := memberRankings[ranking]
	if !ok {
		return nil, fmt.Errorf("unknown member ranking %q", ranking)
	}
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, position, avatar_url, experience, projects_completed, join_date
		FROM team_members
		WHERE is_active = TRUE
		ORDER BY ` + orderBy
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer rows.Close()

	members := []dashboard.MemberSummary{}
	for rows.Next() {
		var m dashboard.MemberSummary
		if err := rows.Scan(&m.ID, &m.Name, &m.Position, &m.AvatarURL, &m.Experience, &m.ProjectsCompleted, &m.JoinDate); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// AvgContactResponse implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) AvgContactResponse(ctx context.Context) (float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(AVG(EXTRACT(EPOCH FROM (updated_at - created_at))), 0)::float8
		FROM contacts
		WHERE status IN ('replied', 'closed')
	`
	var avg float64
	if err := q.QueryRow(ctx, query).Scan(&avg); err != nil {
		return 0, fmt.Errorf("failed to get contact response time: %w", err)
	}
	return avg, nil
}

// ListHighPriorityOpen implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) ListHighPriorityOpen(ctx context.Context, limit int) ([]contact.Contact, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, contactSelect+`
		WHERE c.priority = 'high' AND c.status <> 'closed'
		ORDER BY c.created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list high priority contacts: %w", err)
	}
	return collectContacts(rows)
}

// GetGrowth returns totals and window counts in a single query
func (r *dashboardRepositoryImpl) GetGrowth(ctx context.Context, since time.Time) (dashboard.GrowthCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM products WHERE created_at >= $1),
			(SELECT COUNT(*) FROM contacts),
			(SELECT COUNT(*) FROM contacts WHERE created_at >= $1),
			(SELECT COUNT(*) FROM team_members),
			(SELECT COUNT(*) FROM team_members WHERE join_date >= $2)
	`
	var g dashboard.GrowthCounts
	err := q.QueryRow(ctx, query, since, since.Format(dateLayout)).Scan(
		&g.Products.Total, &g.Products.Growth,
		&g.Contacts.Total, &g.Contacts.Growth,
		&g.Team.Total, &g.Team.Growth,
	)
	if err != nil {
		return dashboard.GrowthCounts{}, fmt.Errorf("failed to get growth counts: %w", err)
	}
	return g, nil
}
