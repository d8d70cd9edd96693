package attendance

import (
	"math"
	"time"

	"github.com/novatech-uz/company-backend-go/internal/pkg/clock"
)

// Round2 rounds half away from zero to two decimals.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// LateMinutes is the whole number of minutes checkIn falls after the
// scheduled start of its calendar day, or 0 when on time or early.
func LateMinutes(checkIn time.Time, s clock.Schedule) int {
	start := s.StartOn(checkIn)
	if !checkIn.After(start) {
		return 0
	}
	return int(math.Round(checkIn.Sub(start).Minutes()))
}

// WorkHours returns the rounded span between checkIn and checkOut and the
// rounded excess over the standard working day.
func WorkHours(checkIn, checkOut time.Time, s clock.Schedule) (workHours, overtime float64) {
	d := float64(checkOut.Sub(checkIn).Milliseconds()) / float64(time.Hour.Milliseconds())
	workHours = Round2(d)
	if d > s.StandardHours {
		overtime = Round2(d - s.StandardHours)
	}
	return workHours, overtime
}

// ApplyLateness sets LateMinutes and upgrades the status to late once the
// grace period is exceeded. It only runs at check-in.
func (a *Attendance) ApplyLateness(s clock.Schedule) {
	a.LateMinutes = LateMinutes(a.CheckIn, s)
	if a.LateMinutes > s.GraceMinutes {
		a.Status = StatusLate
	}
}

// ApplyWorkHours recomputes WorkHours and Overtime from CheckIn/CheckOut.
func (a *Attendance) ApplyWorkHours(s clock.Schedule) {
	if a.CheckOut == nil {
		a.WorkHours, a.Overtime = 0, 0
		return
	}
	a.WorkHours, a.Overtime = WorkHours(a.CheckIn, *a.CheckOut, s)
}

// AttendanceRate is present/total as a percentage with two decimals.
func AttendanceRate(presentDays, totalDays int) float64 {
	if totalDays <= 0 {
		return 0
	}
	return Round2(float64(presentDays) / float64(totalDays) * 100)
}
