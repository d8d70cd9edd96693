// Package clock supplies the wall clock and the working-day schedule to
// services, so tests can pin both to fixed values.
package clock

import (
	"fmt"
	"time"
)

type Clock interface {
	Now() time.Time
}

// System reads the real wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns T.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

// Schedule describes the office working day in a single time zone.
type Schedule struct {
	Location      *time.Location
	StartHour     int
	StartMinute   int
	GraceMinutes  int
	StandardHours float64
}

// DefaultSchedule is 09:00 start, 15 minutes grace, 8 hour day in UTC.
func DefaultSchedule() Schedule {
	return Schedule{
		Location:      time.UTC,
		StartHour:     9,
		GraceMinutes:  15,
		StandardHours: 8,
	}
}

// NewSchedule builds a Schedule from a zone name and an HH:MM start time.
func NewSchedule(timezone, start string, graceMinutes int, standardHours float64) (Schedule, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Schedule{}, fmt.Errorf("load location %q: %w", timezone, err)
	}
	t, err := time.Parse("15:04", start)
	if err != nil {
		return Schedule{}, fmt.Errorf("parse start time %q: %w", start, err)
	}
	return Schedule{
		Location:      loc,
		StartHour:     t.Hour(),
		StartMinute:   t.Minute(),
		GraceMinutes:  graceMinutes,
		StandardHours: standardHours,
	}, nil
}

func (s Schedule) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}

// Midnight truncates t to the start of its calendar day in the schedule's zone.
func (s Schedule) Midnight(t time.Time) time.Time {
	local := t.In(s.location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.location())
}

// StartOn returns the scheduled start on the calendar day of t.
func (s Schedule) StartOn(t time.Time) time.Time {
	local := t.In(s.location())
	return time.Date(local.Year(), local.Month(), local.Day(), s.StartHour, s.StartMinute, 0, 0, s.location())
}

// OnDate returns the scheduled start on a calendar date. Only the date's
// own year, month and day are used, so a DATE column read back as UTC
// midnight lands on the same day in any zone.
func (s Schedule) OnDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), s.StartHour, s.StartMinute, 0, 0, s.location())
}

// EndOn returns the scheduled end of a calendar date.
func (s Schedule) EndOn(date time.Time) time.Time {
	return s.OnDate(date).Add(time.Duration(s.StandardHours * float64(time.Hour)))
}

// MonthRange returns the first and last calendar day of year/month.
func (s Schedule) MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, s.location())
	end := start.AddDate(0, 1, -1)
	return start, end
}
