package attendance

import (
	"context"
	"time"
)

// AttendanceRepository persists attendance records. Per-day uniqueness and
// single-fire checkout are enforced by the store, not by callers.
type AttendanceRepository interface {
	// Create inserts a record. A second record for the same employee and
	// date fails with ErrDuplicateEntry.
	Create(ctx context.Context, a Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// Close sets check-out and derived hours only while the record is open.
	// It returns ErrAlreadyCheckedOut when another caller closed it first.
	Close(ctx context.Context, id string, checkOut time.Time, workHours, overtime float64, notes *string) error

	Approve(ctx context.Context, id string, approverID string, at time.Time) error

	// ListOpenBefore returns records dated before date that were never checked out.
	ListOpenBefore(ctx context.Context, date time.Time) ([]Attendance, error)

	// Update saves an admin override of the whole record.
	Update(ctx context.Context, a Attendance) error

	Delete(ctx context.Context, id string) error

	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// ListByEmployee returns newest first.
	ListByEmployee(ctx context.Context, filter EmployeeAttendanceFilter) ([]Attendance, error)

	// ListByDate returns the day's records ordered by check-in.
	ListByDate(ctx context.Context, date time.Time, status *Status, limit int) ([]Attendance, error)

	CountByDate(ctx context.Context, date time.Time, statuses []Status) (int64, error)

	StatusBreakdown(ctx context.Context, filter StatsFilter) ([]StatusStat, error)

	MonthlyRollup(ctx context.Context, start, end time.Time) ([]EmployeeRollup, error)
}
