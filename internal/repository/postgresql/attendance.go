package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/novatech-uz/company-backend-go/internal/domain/attendance"
	"github.com/novatech-uz/company-backend-go/internal/pkg/database"
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
)

const dateLayout = "2006-01-02"

const attendanceSelect = `
	SELECT a.id, a.employee_id, a.date, a.check_in, a.check_out, a.status, a.leave_type,
		a.work_hours, a.overtime, a.late_minutes, a.location_lat, a.location_lng, a.location_address,
		a.notes, a.is_approved, a.approved_by, a.approved_at, a.ip_address, a.device,
		a.created_at, a.updated_at,
		tm.name, tm.position, tm.avatar_url, tm.department, tm.email,
		u.name
	FROM attendances a
	JOIN team_members tm ON tm.id = a.employee_id
	LEFT JOIN users u ON u.id = a.approved_by`

var attendanceSortColumns = map[string]string{
	"date":         "a.date",
	"check_in":     "a.check_in",
	"status":       "a.status",
	"work_hours":   "a.work_hours",
	"late_minutes": "a.late_minutes",
	"created_at":   "a.created_at",
}

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var (
		a        attendance.Attendance
		emp      attendance.EmployeeSummary
		lat, lng *float64
		address  *string
	)
	err := row.Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.CheckIn, &a.CheckOut, &a.Status, &a.LeaveType,
		&a.WorkHours, &a.Overtime, &a.LateMinutes, &lat, &lng, &address,
		&a.Notes, &a.IsApproved, &a.ApprovedBy, &a.ApprovedAt, &a.IPAddress, &a.Device,
		&a.CreatedAt, &a.UpdatedAt,
		&emp.Name, &emp.Position, &emp.AvatarURL, &emp.Department, &emp.Email,
		&a.ApproverName,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}

	if lat != nil || lng != nil || address != nil {
		a.Location = &attendance.Location{Latitude: lat, Longitude: lng, Address: address}
	}
	emp.ID = a.EmployeeID
	a.Employee = &emp
	return a, nil
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	defer rows.Close()

	records := []attendance.Attendance{}
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func locationArgs(loc *attendance.Location) (lat, lng *float64, address *string) {
	if loc == nil {
		return nil, nil, nil
	}
	return loc.Latitude, loc.Longitude, loc.Address
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("generate attendance id: %w", err)
	}

	lat, lng, address := locationArgs(a.Location)
	query := `
		INSERT INTO attendances (
			id, employee_id, date, check_in, check_out, status, leave_type,
			work_hours, overtime, late_minutes, location_lat, location_lng, location_address,
			notes, ip_address, device
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at
	`
	err = q.QueryRow(ctx, query,
		id.String(), a.EmployeeID, a.Date.Format(dateLayout), a.CheckIn, a.CheckOut, a.Status, a.LeaveType,
		a.WorkHours, a.Overtime, a.LateMinutes, lat, lng, address,
		a.Notes, a.IPAddress, a.Device,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrDuplicateEntry
		}
		return attendance.Attendance{}, err
	}
	return a, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return found, nil
}

// Close implements attendance.AttendanceRepository. The `check_out IS NULL`
// predicate makes concurrent check-outs race on the row, not in the caller.
func (r *attendanceRepositoryImpl) Close(ctx context.Context, id string, checkOut time.Time, workHours, overtime float64, notes *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out = $2, work_hours = $3, overtime = $4, notes = COALESCE($5, notes), updated_at = NOW()
		WHERE id = $1 AND check_out IS NULL
	`
	tag, err := q.Exec(ctx, query, id, checkOut, workHours, overtime, notes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM attendances WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return attendance.ErrAlreadyCheckedOut
	}
	return attendance.ErrAttendanceNotFound
}

// ListOpenBefore implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListOpenBefore(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := attendanceSelect + `
		WHERE a.check_out IS NULL AND a.date < $1 AND a.status IN ('present', 'late', 'half-day')
		ORDER BY a.date ASC, a.check_in ASC`
	rows, err := q.Query(ctx, query, date.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("list open attendances: %w", err)
	}
	return collectAttendances(rows)
}

// Approve implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Approve(ctx context.Context, id string, approverID string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET is_approved = TRUE, approved_by = $2, approved_at = $3, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, id, approverID, at)
	if err != nil {
		if isForeignKeyViolation(err) {
			return attendance.ErrApproverNotFound
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, a attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	lat, lng, address := locationArgs(a.Location)
	query := `
		UPDATE attendances
		SET date = $2, check_in = $3, check_out = $4, status = $5, leave_type = $6,
			work_hours = $7, overtime = $8, late_minutes = $9,
			location_lat = $10, location_lng = $11, location_address = $12,
			notes = $13, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		a.ID, a.Date.Format(dateLayout), a.CheckIn, a.CheckOut, a.Status, a.LeaveType,
		a.WorkHours, a.Overtime, a.LateMinutes, lat, lng, address, a.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.ErrDuplicateEntry
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// Delete implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := listing.NewWhere().
		EqString("a.employee_id", filter.EmployeeID).
		EqString("a.status", filter.Status).
		Gte("a.date", filter.StartDate).
		Lte("a.date", filter.EndDate).
		EqBool("a.is_approved", filter.IsApproved).
		Search(filter.Search, "tm.name", "a.notes")

	var total int64
	countQuery := `SELECT COUNT(*) FROM attendances a JOIN team_members tm ON tm.id = a.employee_id ` + where.SQL()
	if err := q.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count attendance: %w", err)
	}

	page, args := where.Paginate(filter.Params)
	query := fmt.Sprintf(`%s %s ORDER BY %s, a.check_in DESC %s`,
		attendanceSelect, where.SQL(), filter.OrderBy(attendanceSortColumns, "date"), page)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list attendance: %w", err)
	}
	records, err := collectAttendances(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, filter attendance.EmployeeAttendanceFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	where := listing.NewWhere().
		Eq("a.employee_id", filter.EmployeeID).
		Gte("a.date", filter.StartDate).
		Lte("a.date", filter.EndDate)

	rows, err := q.Query(ctx, attendanceSelect+" "+where.SQL()+" ORDER BY a.date DESC, a.check_in DESC", where.Args()...)
	if err != nil {
		return nil, err
	}
	return collectAttendances(rows)
}

// ListByDate implements attendance.AttendanceRepository. A zero limit
// returns every record of the day.
func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, date time.Time, status *attendance.Status, limit int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	where := listing.NewWhere().Eq("a.date", date.Format(dateLayout))
	if status != nil {
		where.Eq("a.status", *status)
	}

	query := attendanceSelect + " " + where.SQL() + " ORDER BY a.check_in ASC"
	args := where.Args()
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", where.Next())
		args = append(args, limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectAttendances(rows)
}

// CountByDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) CountByDate(ctx context.Context, date time.Time, statuses []attendance.Status) (int64, error) {
	q := GetQuerier(ctx, r.db)

	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}

	var total int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendances WHERE date = $1 AND status = ANY($2)`,
		date.Format(dateLayout), values,
	).Scan(&total)
	return total, err
}

// StatusBreakdown implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) StatusBreakdown(ctx context.Context, filter attendance.StatsFilter) ([]attendance.StatusStat, error) {
	q := GetQuerier(ctx, r.db)

	where := listing.NewWhere().
		Gte("date", filter.StartDate).
		Lte("date", filter.EndDate)

	query := `
		SELECT status, COUNT(*), COALESCE(AVG(work_hours), 0), COALESCE(SUM(overtime), 0)
		FROM attendances
		` + where.SQL() + `
		GROUP BY status
		ORDER BY status
	`
	rows, err := q.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, err
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

// MonthlyRollup implements attendance.AttendanceRepository. Present days
// exclude late days, so a late arrival lowers the attendance rate.
func (r *attendanceRepositoryImpl) MonthlyRollup(ctx context.Context, start, end time.Time) ([]attendance.EmployeeRollup, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT tm.id, tm.name, tm.position,
			COUNT(*),
			COUNT(*) FILTER (WHERE a.status = 'present'),
			COUNT(*) FILTER (WHERE a.status = 'late'),
			COUNT(*) FILTER (WHERE a.status = 'absent'),
			COALESCE(SUM(a.work_hours), 0),
			COALESCE(SUM(a.overtime), 0),
			COALESCE(AVG(a.late_minutes), 0)
		FROM attendances a
		JOIN team_members tm ON tm.id = a.employee_id
		WHERE a.date BETWEEN $1 AND $2
		GROUP BY tm.id, tm.name, tm.position
		ORDER BY tm.name
	`
	rows, err := q.Query(ctx, query, start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rollups := []attendance.EmployeeRollup{}
	for rows.Next() {
		var ru attendance.EmployeeRollup
		if err := rows.Scan(
			&ru.EmployeeID, &ru.EmployeeName, &ru.EmployeePosition,
			&ru.TotalDays, &ru.PresentDays, &ru.LateDays, &ru.AbsentDays,
			&ru.TotalWorkHours, &ru.TotalOvertime, &ru.AvgLateMinutes,
		); err != nil {
			return nil, err
		}
		rollups = append(rollups, ru)
	}
	return rollups, rows.Err()
}
