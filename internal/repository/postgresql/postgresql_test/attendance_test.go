package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/novatech-uz/company-backend-go/internal/domain/attendance"
	"github.com/novatech-uz/company-backend-go/internal/domain/dashboard"
	"github.com/novatech-uz/company-backend-go/internal/domain/user"
	"github.com/novatech-uz/company-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttendanceRepository_Create_OnePerDay(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testSetup.DB)
	emp := createTestEmployee(t, ctx, "Aziz")

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	record := attendance.Attendance{
		EmployeeID: emp.ID,
		Date:       day,
		CheckIn:    day.Add(9 * time.Hour),
		Status:     attendance.StatusPresent,
	}

	created, err := repo.Create(ctx, record)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = repo.Create(ctx, record)
	assert.ErrorIs(t, err, attendance.ErrDuplicateEntry)
}

func TestAttendanceRepository_Close_OnlyOnce(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testSetup.DB)
	emp := createTestEmployee(t, ctx, "Dilnoza")

	day := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID: emp.ID,
		Date:       day,
		CheckIn:    day.Add(9 * time.Hour),
		Status:     attendance.StatusPresent,
	})
	require.NoError(t, err)

	require.NoError(t, repo.Close(ctx, created.ID, day.Add(17*time.Hour), 8, 0, nil))

	err = repo.Close(ctx, created.ID, day.Add(18*time.Hour), 9, 1, nil)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	err = repo.Close(ctx, "00000000-0000-0000-0000-000000000000", day.Add(18*time.Hour), 9, 1, nil)
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)

	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, found.CheckOut)
	assert.Equal(t, 8.0, found.WorkHours)
	assert.Equal(t, "Dilnoza", found.Employee.Name)
}

func TestAttendanceRepository_ListOpenBefore(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testSetup.DB)
	emp := createTestEmployee(t, ctx, "Rustam")

	yesterday := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	today := yesterday.AddDate(0, 0, 1)

	open, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID: emp.ID, Date: yesterday, CheckIn: yesterday.Add(9 * time.Hour), Status: attendance.StatusLate,
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, attendance.Attendance{
		EmployeeID: emp.ID, Date: today, CheckIn: today.Add(9 * time.Hour), Status: attendance.StatusPresent,
	})
	require.NoError(t, err)

	records, err := repo.ListOpenBefore(ctx, today)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, open.ID, records[0].ID)
}

func TestAttendanceRepository_ListByEmployee_RangeNewestFirst(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testSetup.DB)
	emp := createTestEmployee(t, ctx, "Kamola")

	var ids []string
	for day := 10; day <= 13; day++ {
		date := time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC)
		created, err := repo.Create(ctx, attendance.Attendance{
			EmployeeID: emp.ID, Date: date, CheckIn: date.Add(9 * time.Hour), Status: attendance.StatusPresent,
		})
		require.NoError(t, err)
		ids = append(ids, created.ID)
	}
	start, end := "2025-03-11", "2025-03-12"

	records, err := repo.ListByEmployee(ctx, attendance.EmployeeAttendanceFilter{EmployeeID: emp.ID, StartDate: &start, EndDate: &end})

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, ids[2], records[0].ID)
	assert.Equal(t, ids[1], records[1].ID)
}

func TestAttendanceRepository_Approve_UnknownApprover(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testSetup.DB)
	emp := createTestEmployee(t, ctx, "Jasur")
	admin := createTestUser(t, ctx, "admin@example.com", user.RoleAdmin)

	day := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	created, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID: emp.ID, Date: day, CheckIn: day.Add(9 * time.Hour), Status: attendance.StatusPresent,
	})
	require.NoError(t, err)

	err = repo.Approve(ctx, created.ID, "00000000-0000-0000-0000-000000000000", day.Add(18*time.Hour))
	assert.ErrorIs(t, err, attendance.ErrApproverNotFound)

	require.NoError(t, repo.Approve(ctx, created.ID, admin.ID, day.Add(18*time.Hour)))
	found, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, found.IsApproved)
}

func TestDashboardRepository_Rankings(t *testing.T) {
	setupTestData(t)
	ctx := context.Background()
	repo := postgresql.NewAttendanceRepository(testSetup.DB)
	dash := postgresql.NewDashboardRepository(testSetup.DB)
	often := createTestEmployee(t, ctx, "Often Late")
	once := createTestEmployee(t, ctx, "Once Late")

	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		date := start.AddDate(0, 0, i)
		_, err := repo.Create(ctx, attendance.Attendance{
			EmployeeID: often.ID, Date: date, CheckIn: date.Add(9*time.Hour + 30*time.Minute),
			Status: attendance.StatusLate, LateMinutes: 30, Overtime: 0.5,
		})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, attendance.Attendance{
		EmployeeID: once.ID, Date: start, CheckIn: start.Add(10 * time.Hour),
		Status: attendance.StatusLate, LateMinutes: 60, Overtime: 2,
	})
	require.NoError(t, err)
	end := start.AddDate(0, 0, 2)

	late, err := dash.GetLateComers(ctx, start, end, 10)
	require.NoError(t, err)
	require.Len(t, late, 2)
	assert.Equal(t, often.ID, late[0].EmployeeID)
	assert.Equal(t, int64(3), late[0].LateCount)
	assert.Equal(t, int64(90), late[0].TotalLateMinutes)
	assert.Equal(t, "Once Late", late[1].Name)

	leaders, err := dash.GetOvertimeLeaders(ctx, start, end, 10)
	require.NoError(t, err)
	require.Len(t, leaders, 2)
	assert.Equal(t, once.ID, leaders[0].EmployeeID)
	assert.Equal(t, 2.0, leaders[0].TotalOvertime)
	assert.Equal(t, int64(3), leaders[1].OvertimeCount)

	members, err := dash.ListActiveMembers(ctx, dashboard.RankByJoinDate, 1)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}
