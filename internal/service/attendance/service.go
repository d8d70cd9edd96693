package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/novatech-uz/company-backend-go/internal/domain/attendance"
	"github.com/novatech-uz/company-backend-go/internal/domain/employee"
	"github.com/novatech-uz/company-backend-go/internal/pkg/cache"
	"github.com/novatech-uz/company-backend-go/internal/pkg/clock"
	"github.com/novatech-uz/company-backend-go/internal/pkg/export"
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
)

const (
	lateComersLimit = 10

	reportCacheKeyPrefix = "attendance:report:"
	reportCachePattern   = "attendance:report:*"
	dashboardPattern     = "dashboard:*"

	staleCloseNote = "Auto-closed: no check-out recorded"
)

// CheckInObserver receives the outcome of every check-in attempt.
type CheckInObserver interface {
	ObserveCheckIn(outcome string)
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	clock    clock.Clock
	schedule clock.Schedule
	cache    *cache.Cache
	observer CheckInObserver
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
	schedule clock.Schedule,
	reportCache *cache.Cache,
	observer CheckInObserver,
) attendance.AttendanceService {
	if clk == nil {
		clk = clock.System{}
	}
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		clock:                clk,
		schedule:             schedule,
		cache:                reportCache,
		observer:             observer,
	}
}

func (s *AttendanceServiceImpl) observe(outcome string) {
	if s.observer != nil {
		s.observer.ObserveCheckIn(outcome)
	}
}

// invalidate drops cached aggregates that depend on attendance rows.
func (s *AttendanceServiceImpl) invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx, dashboardPattern)
	s.cache.Invalidate(ctx, reportCachePattern)
}

func (s *AttendanceServiceImpl) activeEmployee(ctx context.Context, id string) (employee.Employee, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}
	if !emp.IsActive {
		return employee.Employee{}, employee.ErrEmployeeInactive
	}
	return emp, nil
}

func summaryOf(emp employee.Employee) *attendance.EmployeeSummary {
	return &attendance.EmployeeSummary{
		ID:         emp.ID,
		Name:       emp.Name,
		Position:   emp.Position,
		AvatarURL:  emp.AvatarURL,
		Department: string(emp.Department),
		Email:      emp.Email,
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// CheckIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		s.observe("rejected")
		return attendance.Attendance{}, err
	}

	emp, err := s.activeEmployee(ctx, req.EmployeeID)
	if err != nil {
		s.observe("rejected")
		return attendance.Attendance{}, err
	}

	now := s.clock.Now()
	record := attendance.Attendance{
		EmployeeID: emp.ID,
		Date:       s.schedule.Midnight(now),
		CheckIn:    now,
		Status:     attendance.StatusPresent,
		Location:   req.Location,
		Notes:      req.Notes,
		IPAddress:  optionalString(req.IPAddress),
		Device:     optionalString(req.Device),
	}
	record.ApplyLateness(s.schedule)

	created, err := s.AttendanceRepository.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateEntry) {
			s.observe("duplicate")
			return attendance.Attendance{}, err
		}
		s.observe("error")
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	s.observe(string(created.Status))
	s.invalidate(ctx)

	created.Employee = summaryOf(emp)
	return created, nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, id string, req attendance.CheckOutRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}

	record, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if !record.IsOpen() {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
	}

	now := s.clock.Now()
	if !now.After(record.CheckIn) {
		return attendance.Attendance{}, attendance.ErrCheckOutBeforeCheckIn
	}
	workHours, overtime := attendance.WorkHours(record.CheckIn, now, s.schedule)

	if err := s.AttendanceRepository.Close(ctx, id, now, workHours, overtime, req.Notes); err != nil {
		return attendance.Attendance{}, err
	}
	s.invalidate(ctx)

	return s.AttendanceRepository.GetByID(ctx, id)
}

// Approve implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Approve(ctx context.Context, id string, approverID string) (attendance.Attendance, error) {
	if err := s.AttendanceRepository.Approve(ctx, id, approverID, s.clock.Now()); err != nil {
		return attendance.Attendance{}, err
	}
	s.invalidate(ctx)

	return s.AttendanceRepository.GetByID(ctx, id)
}

// CloseStale implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CloseStale(ctx context.Context) (int, error) {
	today := s.schedule.Midnight(s.clock.Now())

	open, err := s.AttendanceRepository.ListOpenBefore(ctx, today)
	if err != nil {
		return 0, err
	}

	note := staleCloseNote
	closed := 0
	for _, record := range open {
		end := s.schedule.EndOn(record.Date)
		if !end.After(record.CheckIn) {
			end = record.CheckIn
		}
		workHours, overtime := attendance.WorkHours(record.CheckIn, end, s.schedule)

		err := s.AttendanceRepository.Close(ctx, record.ID, end, workHours, overtime, &note)
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) {
			continue
		}
		if err != nil {
			slog.Error("Failed to close stale attendance", "attendance_id", record.ID, "error", err)
			continue
		}
		closed++
	}

	if closed > 0 {
		s.invalidate(ctx)
		slog.Info("Closed stale attendances", "count", closed)
	}
	return closed, nil
}

// GetByEmployee implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetByEmployee(ctx context.Context, filter attendance.EmployeeAttendanceFilter) ([]attendance.Attendance, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := s.AttendanceRepository.ListByEmployee(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee attendance: %w", err)
	}
	if records == nil {
		records = []attendance.Attendance{}
	}
	return records, nil
}

// GetToday implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetToday(ctx context.Context) ([]attendance.Attendance, error) {
	today := s.schedule.Midnight(s.clock.Now())

	records, err := s.AttendanceRepository.ListByDate(ctx, today, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list today's attendance: %w", err)
	}
	if records == nil {
		records = []attendance.Attendance{}
	}
	return records, nil
}

// GetStats implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetStats(ctx context.Context, filter attendance.StatsFilter) (attendance.AttendanceStats, error) {
	if err := filter.Validate(); err != nil {
		return attendance.AttendanceStats{}, err
	}

	byStatus, err := s.AttendanceRepository.StatusBreakdown(ctx, filter)
	if err != nil {
		return attendance.AttendanceStats{}, fmt.Errorf("failed to aggregate attendance by status: %w", err)
	}
	for i := range byStatus {
		byStatus[i].AvgWorkHours = attendance.Round2(byStatus[i].AvgWorkHours)
		byStatus[i].TotalOvertime = attendance.Round2(byStatus[i].TotalOvertime)
	}

	totalEmployees, err := s.EmployeeRepository.CountActive(ctx)
	if err != nil {
		return attendance.AttendanceStats{}, fmt.Errorf("failed to count active employees: %w", err)
	}

	today := s.schedule.Midnight(s.clock.Now())
	todayPresent, err := s.AttendanceRepository.CountByDate(ctx, today, []attendance.Status{attendance.StatusPresent, attendance.StatusLate})
	if err != nil {
		return attendance.AttendanceStats{}, fmt.Errorf("failed to count today's attendance: %w", err)
	}

	late := attendance.StatusLate
	lateComers, err := s.AttendanceRepository.ListByDate(ctx, today, &late, lateComersLimit)
	if err != nil {
		return attendance.AttendanceStats{}, fmt.Errorf("failed to list late comers: %w", err)
	}

	todayAbsent := totalEmployees - todayPresent
	if todayAbsent < 0 {
		todayAbsent = 0
	}
	if byStatus == nil {
		byStatus = []attendance.StatusStat{}
	}
	if lateComers == nil {
		lateComers = []attendance.Attendance{}
	}

	return attendance.AttendanceStats{
		TotalEmployees: totalEmployees,
		TodayPresent:   todayPresent,
		TodayAbsent:    todayAbsent,
		ByStatus:       byStatus,
		LateComers:     lateComers,
	}, nil
}

// GetMonthlyReport implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMonthlyReport(ctx context.Context, req attendance.MonthlyReportRequest) (attendance.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return attendance.MonthlyReport{}, err
	}

	today := s.schedule.Midnight(s.clock.Now())
	if req.Year == 0 {
		req.Year = today.Year()
	}
	if req.Month == 0 {
		req.Month = int(today.Month())
	}

	key := fmt.Sprintf("%s%04d-%02d", reportCacheKeyPrefix, req.Year, req.Month)
	return cache.Remember(ctx, s.cache, key, func(ctx context.Context) (attendance.MonthlyReport, error) {
		return s.buildMonthlyReport(ctx, req.Year, time.Month(req.Month))
	})
}

func (s *AttendanceServiceImpl) buildMonthlyReport(ctx context.Context, year int, month time.Month) (attendance.MonthlyReport, error) {
	start, end := s.schedule.MonthRange(year, month)

	rollups, err := s.AttendanceRepository.MonthlyRollup(ctx, start, end)
	if err != nil {
		return attendance.MonthlyReport{}, fmt.Errorf("failed to aggregate monthly attendance: %w", err)
	}

	rows := make([]attendance.MonthlyReportRow, 0, len(rollups))
	for _, r := range rollups {
		rows = append(rows, attendance.MonthlyReportRow{
			EmployeeID:       r.EmployeeID,
			EmployeeName:     r.EmployeeName,
			EmployeePosition: r.EmployeePosition,
			TotalDays:        r.TotalDays,
			PresentDays:      r.PresentDays,
			LateDays:         r.LateDays,
			AbsentDays:       r.AbsentDays,
			TotalWorkHours:   attendance.Round2(r.TotalWorkHours),
			TotalOvertime:    attendance.Round2(r.TotalOvertime),
			AvgLateMinutes:   math.Round(r.AvgLateMinutes),
			AttendanceRate:   attendance.AttendanceRate(r.PresentDays, r.TotalDays),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].EmployeeName < rows[j].EmployeeName
	})

	return attendance.MonthlyReport{
		Period: attendance.Period{
			Start: start.Format("2006-01-02"),
			End:   end.Format("2006-01-02"),
		},
		Count: len(rows),
		Rows:  rows,
	}, nil
}

var reportHeaders = []string{
	"Employee", "Position", "Total Days", "Present", "Late", "Absent",
	"Work Hours", "Overtime", "Avg Late Min", "Rate %",
}

// ExportMonthlyReport implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ExportMonthlyReport(ctx context.Context, req attendance.MonthlyReportRequest, format export.Format) (export.File, error) {
	report, err := s.GetMonthlyReport(ctx, req)
	if err != nil {
		return export.File{}, err
	}

	data := export.Dataset{Headers: reportHeaders}
	for _, row := range report.Rows {
		data.Rows = append(data.Rows, map[string]string{
			"Employee":     row.EmployeeName,
			"Position":     row.EmployeePosition,
			"Total Days":   strconv.Itoa(row.TotalDays),
			"Present":      strconv.Itoa(row.PresentDays),
			"Late":         strconv.Itoa(row.LateDays),
			"Absent":       strconv.Itoa(row.AbsentDays),
			"Work Hours":   strconv.FormatFloat(row.TotalWorkHours, 'f', 2, 64),
			"Overtime":     strconv.FormatFloat(row.TotalOvertime, 'f', 2, 64),
			"Avg Late Min": strconv.FormatFloat(row.AvgLateMinutes, 'f', 0, 64),
			"Rate %":       strconv.FormatFloat(row.AttendanceRate, 'f', 2, 64),
		})
	}

	title := fmt.Sprintf("Attendance report %s to %s", report.Period.Start, report.Period.End)
	name := "attendance-" + report.Period.Start[:7]
	return export.Render(format, data, title, name)
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	if records == nil {
		records = []attendance.Attendance{}
	}

	return attendance.ListAttendanceResponse{
		Attendances: records,
		Meta:        listing.BuildMeta(total, filter.Params),
	}, nil
}

// Get implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Get(ctx context.Context, id string) (attendance.Attendance, error) {
	return s.AttendanceRepository.GetByID(ctx, id)
}

// Create implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Create(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.Attendance{}, err
	}

	record := attendance.Attendance{
		EmployeeID: emp.ID,
		Date:       s.schedule.Midnight(req.ParsedCheckIn),
		CheckIn:    req.ParsedCheckIn,
		CheckOut:   req.ParsedCheckOut,
		Status:     attendance.StatusPresent,
		Location:   req.Location,
		Notes:      req.Notes,
	}
	if req.ParsedDate != nil {
		record.Date = *req.ParsedDate
	}
	if req.Status != nil {
		record.Status = attendance.Status(*req.Status)
	}
	if req.LeaveType != nil && record.Status == attendance.StatusLeave {
		lt := attendance.LeaveType(*req.LeaveType)
		record.LeaveType = &lt
	}
	if record.Status == attendance.StatusPresent {
		record.ApplyLateness(s.schedule)
	}
	record.ApplyWorkHours(s.schedule)

	created, err := s.AttendanceRepository.Create(ctx, record)
	if err != nil {
		if errors.Is(err, attendance.ErrDuplicateEntry) {
			return attendance.Attendance{}, err
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}
	s.invalidate(ctx)

	created.Employee = summaryOf(emp)
	return created, nil
}

// Update implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Update(ctx context.Context, id string, req attendance.UpdateAttendanceRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}

	record, err := s.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.Attendance{}, err
	}

	timesChanged := false
	if req.ParsedCheckIn != nil {
		record.CheckIn = *req.ParsedCheckIn
		record.LateMinutes = attendance.LateMinutes(record.CheckIn, s.schedule)
		timesChanged = true
	}
	if req.ParsedCheckOut != nil {
		record.CheckOut = req.ParsedCheckOut
		timesChanged = true
	}
	if record.CheckOut != nil && !record.CheckOut.After(record.CheckIn) {
		return attendance.Attendance{}, attendance.ErrCheckOutBeforeCheckIn
	}
	if timesChanged {
		record.ApplyWorkHours(s.schedule)
	}

	if req.ParsedDate != nil {
		record.Date = *req.ParsedDate
	}
	if req.Status != nil {
		record.Status = attendance.Status(*req.Status)
		if record.Status != attendance.StatusLeave {
			record.LeaveType = nil
		}
	}
	if req.LeaveType != nil {
		lt := attendance.LeaveType(*req.LeaveType)
		record.LeaveType = &lt
	}
	if req.WorkHours != nil {
		record.WorkHours = *req.WorkHours
	}
	if req.Overtime != nil {
		record.Overtime = *req.Overtime
	}
	if req.LateMinutes != nil {
		record.LateMinutes = *req.LateMinutes
	}
	if req.Location != nil {
		record.Location = req.Location
	}
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	if err := s.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.Attendance{}, err
	}
	s.invalidate(ctx)

	slog.Info("Attendance overridden", "attendance_id", id, "times_changed", timesChanged)
	return s.AttendanceRepository.GetByID(ctx, id)
}

// Delete implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.AttendanceRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}
