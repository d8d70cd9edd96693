package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/novatech-uz/company-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler()
	var runs atomic.Int32
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start(context.Background())
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	s := NewScheduler()
	assert.NotPanics(t, s.Stop)
}

func TestScheduler_RunOnceContinuesAfterFailure(t *testing.T) {
	s := NewScheduler()
	var second bool
	s.AddJob("fails", time.Hour, func(ctx context.Context) error { return errors.New("boom") })
	s.AddJob("runs", time.Hour, func(ctx context.Context) error {
		second = true
		return nil
	})

	s.RunOnce(context.Background())

	assert.True(t, second)
}

type stubAttendanceService struct {
	attendance.AttendanceService
	calls int
	err   error
}

func (s *stubAttendanceService) CloseStale(ctx context.Context) (int, error) {
	s.calls++
	return 2, s.err
}

func TestAttendanceJobs_CloseStale(t *testing.T) {
	svc := &stubAttendanceService{}
	jobs := NewAttendanceJobs(svc, 0)

	require.NoError(t, jobs.CloseStaleAttendances(context.Background()))
	assert.Equal(t, 1, svc.calls)
	assert.Equal(t, time.Hour, jobs.interval)

	svc.err = errors.New("db down")
	assert.ErrorContains(t, jobs.CloseStaleAttendances(context.Background()), "db down")
}
