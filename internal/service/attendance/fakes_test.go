package attendance

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/novatech-uz/company-backend-go/internal/domain/attendance"
	"github.com/novatech-uz/company-backend-go/internal/domain/employee"
)

// memAttendanceRepo emulates the UNIQUE(employee_id, date) index and the
// `check_out IS NULL` update predicate under a single lock.
type memAttendanceRepo struct {
	mu      sync.Mutex
	records map[string]attendance.Attendance
	byDay   map[string]string
	rollups []attendance.EmployeeRollup
	stats   []attendance.StatusStat
}

func newMemAttendanceRepo() *memAttendanceRepo {
	return &memAttendanceRepo{
		records: map[string]attendance.Attendance{},
		byDay:   map[string]string{},
	}
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (m *memAttendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := dayKey(a.EmployeeID, a.Date)
	if _, exists := m.byDay[key]; exists {
		return attendance.Attendance{}, attendance.ErrDuplicateEntry
	}
	a.ID = uuid.NewString()
	a.CreatedAt = a.CheckIn
	a.UpdatedAt = a.CheckIn
	m.records[a.ID] = a
	m.byDay[key] = a.ID
	return a, nil
}

func (m *memAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (m *memAttendanceRepo) Close(ctx context.Context, id string, checkOut time.Time, workHours, overtime float64, notes *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.records[id]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	if a.CheckOut != nil {
		return attendance.ErrAlreadyCheckedOut
	}
	a.CheckOut = &checkOut
	a.WorkHours = workHours
	a.Overtime = overtime
	if notes != nil {
		a.Notes = notes
	}
	m.records[id] = a
	return nil
}

func (m *memAttendanceRepo) ListOpenBefore(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range m.all() {
		if a.CheckOut == nil && a.Date.Before(date) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckIn.Before(out[j].CheckIn) })
	return out, nil
}

func (m *memAttendanceRepo) Approve(ctx context.Context, id string, approverID string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.records[id]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	a.IsApproved = true
	a.ApprovedBy = &approverID
	a.ApprovedAt = &at
	m.records[id] = a
	return nil
}

func (m *memAttendanceRepo) Update(ctx context.Context, a attendance.Attendance) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	old, ok := m.records[a.ID]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	oldKey, newKey := dayKey(old.EmployeeID, old.Date), dayKey(a.EmployeeID, a.Date)
	if oldKey != newKey {
		if _, exists := m.byDay[newKey]; exists {
			return attendance.ErrDuplicateEntry
		}
		delete(m.byDay, oldKey)
		m.byDay[newKey] = a.ID
	}
	m.records[a.ID] = a
	return nil
}

func (m *memAttendanceRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.records[id]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(m.byDay, dayKey(a.EmployeeID, a.Date))
	delete(m.records, id)
	return nil
}

func (m *memAttendanceRepo) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	all := m.all()
	return all, int64(len(all)), nil
}

func (m *memAttendanceRepo) ListByEmployee(ctx context.Context, filter attendance.EmployeeAttendanceFilter) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range m.all() {
		if a.EmployeeID != filter.EmployeeID {
			continue
		}
		date := a.Date.Format("2006-01-02")
		if filter.StartDate != nil && date < *filter.StartDate {
			continue
		}
		if filter.EndDate != nil && date > *filter.EndDate {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CheckIn.After(out[j].CheckIn)
	})
	return out, nil
}

func (m *memAttendanceRepo) ListByDate(ctx context.Context, date time.Time, status *attendance.Status, limit int) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range m.all() {
		if !a.Date.Equal(date) {
			continue
		}
		if status != nil && a.Status != *status {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckIn.Before(out[j].CheckIn) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memAttendanceRepo) CountByDate(ctx context.Context, date time.Time, statuses []attendance.Status) (int64, error) {
	var n int64
	for _, a := range m.all() {
		if !a.Date.Equal(date) {
			continue
		}
		for _, s := range statuses {
			if a.Status == s {
				n++
				break
			}
		}
	}
	return n, nil
}

func (m *memAttendanceRepo) StatusBreakdown(ctx context.Context, filter attendance.StatsFilter) ([]attendance.StatusStat, error) {
	return m.stats, nil
}

func (m *memAttendanceRepo) MonthlyRollup(ctx context.Context, start, end time.Time) ([]attendance.EmployeeRollup, error) {
	return m.rollups, nil
}

func (m *memAttendanceRepo) all() []attendance.Attendance {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]attendance.Attendance, 0, len(m.records))
	for _, a := range m.records {
		out = append(out, a)
	}
	return out
}

func (m *memAttendanceRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

type memEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newMemEmployeeRepo(emps ...employee.Employee) *memEmployeeRepo {
	m := &memEmployeeRepo{employees: map[string]employee.Employee{}}
	for _, e := range emps {
		m.employees[e.ID] = e
	}
	return m
}

func (m *memEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	m.employees[e.ID] = e
	return e, nil
}

func (m *memEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := m.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (m *memEmployeeRepo) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	return m.GetByID(ctx, id)
}

func (m *memEmployeeRepo) Delete(ctx context.Context, id string) error {
	delete(m.employees, id)
	return nil
}

func (m *memEmployeeRepo) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (m *memEmployeeRepo) ListFeatured(ctx context.Context, limit int) ([]employee.Employee, error) {
	return nil, nil
}

func (m *memEmployeeRepo) ListByDepartment(ctx context.Context, department employee.Department) ([]employee.Employee, error) {
	return nil, nil
}

func (m *memEmployeeRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	for _, e := range m.employees {
		if e.IsActive {
			n++
		}
	}
	return n, nil
}

// settableClock lets a test move time between check-in and check-out.
type settableClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *settableClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *settableClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

type countingObserver struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (o *countingObserver) ObserveCheckIn(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.outcomes == nil {
		o.outcomes = map[string]int{}
	}
	o.outcomes[outcome]++
}

func (o *countingObserver) get(outcome string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.outcomes[outcome]
}
