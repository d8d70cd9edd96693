package attendance

import (
	"context"

	"github.com/novatech-uz/company-backend-go/internal/pkg/export"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn opens today's record for an active employee.
	CheckIn(ctx context.Context, req CheckInRequest) (Attendance, error)

	// CheckOut closes an open record and computes worked hours.
	CheckOut(ctx context.Context, id string, req CheckOutRequest) (Attendance, error)

	// Approve marks a record approved. Approving again records the new approver.
	Approve(ctx context.Context, id string, approverID string) (Attendance, error)

	// CloseStale checks out records left open on earlier days at the end of
	// their scheduled working day and returns how many were closed.
	CloseStale(ctx context.Context) (int, error)

	GetByEmployee(ctx context.Context, filter EmployeeAttendanceFilter) ([]Attendance, error)
	GetToday(ctx context.Context) ([]Attendance, error)
	GetStats(ctx context.Context, filter StatsFilter) (AttendanceStats, error)
	GetMonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReport, error)
	ExportMonthlyReport(ctx context.Context, req MonthlyReportRequest, format export.Format) (export.File, error)

	List(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)
	Get(ctx context.Context, id string) (Attendance, error)
	Create(ctx context.Context, req CreateAttendanceRequest) (Attendance, error)
	Update(ctx context.Context, id string, req UpdateAttendanceRequest) (Attendance, error)
	Delete(ctx context.Context, id string) error
}
