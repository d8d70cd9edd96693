package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchedule(t *testing.T) {
	s, err := NewSchedule("Asia/Tashkent", "09:30", 10, 7.5)
	require.NoError(t, err)

	assert.Equal(t, "Asia/Tashkent", s.Location.String())
	assert.Equal(t, 9, s.StartHour)
	assert.Equal(t, 30, s.StartMinute)
	assert.Equal(t, 10, s.GraceMinutes)
	assert.Equal(t, 7.5, s.StandardHours)
}

func TestNewSchedule_Invalid(t *testing.T) {
	_, err := NewSchedule("Mars/Olympus", "09:00", 15, 8)
	assert.Error(t, err)

	_, err = NewSchedule("UTC", "nine", 15, 8)
	assert.Error(t, err)
}

func TestSchedule_MidnightUsesScheduleZone(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	s := Schedule{Location: loc, StartHour: 9}

	// 21:30 UTC on the 1st is 02:30 on the 2nd in UTC+5.
	ts := time.Date(2024, 3, 1, 21, 30, 0, 0, time.UTC)
	got := s.Midnight(ts)

	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, loc), got)
}

func TestSchedule_StartOn(t *testing.T) {
	s := DefaultSchedule()
	ts := time.Date(2024, 3, 1, 17, 45, 12, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), s.StartOn(ts))
}

func TestSchedule_OnDateKeepsCalendarDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	s := Schedule{Location: loc, StartHour: 9, StandardHours: 8}

	// A DATE column comes back from pgx as UTC midnight.
	date := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 3, 11, 9, 0, 0, 0, loc), s.OnDate(date))
	assert.Equal(t, time.Date(2024, 3, 11, 17, 0, 0, 0, loc), s.EndOn(date))
	assert.Equal(t, time.Date(2024, 3, 10, 9, 0, 0, 0, loc), s.StartOn(date))
}

func TestSchedule_MonthRange(t *testing.T) {
	s := DefaultSchedule()

	start, end := s.MonthRange(2024, time.February)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), end)

	start, end = s.MonthRange(2023, time.December)
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), end)
}

func TestFixed(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, ts, Fixed{T: ts}.Now())
}
