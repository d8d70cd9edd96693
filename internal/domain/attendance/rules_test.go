package attendance

import (
	"testing"
	"time"

	"github.com/novatech-uz/company-backend-go/internal/pkg/clock"
	"github.com/stretchr/testify/assert"
)

func at(hour, minute, second int) time.Time {
	return time.Date(2024, time.March, 11, hour, minute, second, 0, time.UTC)
}

func TestLateMinutes(t *testing.T) {
	s := clock.DefaultSchedule()

	cases := []struct {
		name    string
		checkIn time.Time
		want    int
	}{
		{"early", at(8, 55, 0), 0},
		{"exactly on time", at(9, 0, 0), 0},
		{"half a minute rounds up", at(9, 0, 30), 1},
		{"under half a minute rounds down", at(9, 0, 29), 0},
		{"within grace", at(9, 15, 0), 15},
		{"late", at(9, 20, 0), 20},
		{"afternoon", at(13, 0, 0), 240},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, LateMinutes(tc.checkIn, s))
		})
	}
}

func TestLateMinutes_UsesScheduleZone(t *testing.T) {
	tashkent := time.FixedZone("UZT", 5*3600)
	s := clock.DefaultSchedule()
	s.Location = tashkent

	// 04:20 UTC is 09:20 in Tashkent.
	assert.Equal(t, 20, LateMinutes(time.Date(2024, 3, 11, 4, 20, 0, 0, time.UTC), s))
}

func TestApplyLateness(t *testing.T) {
	s := clock.DefaultSchedule()

	onTime := Attendance{CheckIn: at(8, 55, 0), Status: StatusPresent}
	onTime.ApplyLateness(s)
	assert.Equal(t, StatusPresent, onTime.Status)
	assert.Equal(t, 0, onTime.LateMinutes)

	grace := Attendance{CheckIn: at(9, 15, 0), Status: StatusPresent}
	grace.ApplyLateness(s)
	assert.Equal(t, StatusPresent, grace.Status)
	assert.Equal(t, 15, grace.LateMinutes)

	late := Attendance{CheckIn: at(9, 20, 0), Status: StatusPresent}
	late.ApplyLateness(s)
	assert.Equal(t, StatusLate, late.Status)
	assert.Equal(t, 20, late.LateMinutes)
}

func TestWorkHours(t *testing.T) {
	s := clock.DefaultSchedule()

	cases := []struct {
		name         string
		in, out      time.Time
		wantHours    float64
		wantOvertime float64
	}{
		{"nine and a half hours", at(9, 0, 0), at(18, 30, 0), 9.5, 1.5},
		{"exactly eight hours", at(9, 0, 0), at(17, 0, 0), 8, 0},
		{"short day", at(9, 0, 0), at(13, 20, 0), 4.33, 0},
		{"rounded overtime", at(9, 0, 0), at(17, 10, 0), 8.17, 0.17},
		{"sub-minute precision", at(9, 0, 0), at(17, 0, 36), 8.01, 0.01},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hours, overtime := WorkHours(tc.in, tc.out, s)
			assert.Equal(t, tc.wantHours, hours)
			assert.Equal(t, tc.wantOvertime, overtime)
		})
	}
}

func TestApplyWorkHours_OpenRecordIsZero(t *testing.T) {
	a := Attendance{CheckIn: at(9, 0, 0), WorkHours: 3, Overtime: 1}
	a.ApplyWorkHours(clock.DefaultSchedule())
	assert.Zero(t, a.WorkHours)
	assert.Zero(t, a.Overtime)
}

func TestAttendanceRate(t *testing.T) {
	assert.Equal(t, 90.91, AttendanceRate(20, 22))
	assert.Equal(t, 100.0, AttendanceRate(5, 5))
	assert.Equal(t, 0.0, AttendanceRate(0, 0))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.01, Round2(1.005000001))
	assert.Equal(t, 2.5, Round2(2.499999))
	assert.Equal(t, 0.0, Round2(0.004))
}
