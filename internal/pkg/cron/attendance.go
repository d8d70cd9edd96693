package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/novatech-uz/company-backend-go/internal/domain/attendance"
)

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	interval          time.Duration
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, interval time.Duration) *AttendanceJobs {
	if interval <= 0 {
		interval = time.Hour
	}
	return &AttendanceJobs{
		attendanceService: attendanceService,
		interval:          interval,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("close_stale_attendances", j.interval, j.CloseStaleAttendances)
}

// CloseStaleAttendances checks out sessions nobody closed on their own day.
func (j *AttendanceJobs) CloseStaleAttendances(ctx context.Context) error {
	if _, err := j.attendanceService.CloseStale(ctx); err != nil {
		return fmt.Errorf("close stale attendances: %w", err)
	}
	return nil
}
