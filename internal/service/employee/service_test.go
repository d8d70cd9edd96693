package employee

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/novatech-uz/company-backend-go/internal/domain/employee"
	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmployeeRepo struct {
	employee.EmployeeRepository

	created      employee.Employee
	featuredSize int
	department   employee.Department
	deleteErr    error
}

func (s *stubEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	e.ID = "0195b7a4-0000-7000-8000-0000000000e1"
	s.created = e
	return e, nil
}

func (s *stubEmployeeRepo) Update(_ context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	return employee.Employee{ID: id}, nil
}

func (s *stubEmployeeRepo) Delete(context.Context, string) error {
	return s.deleteErr
}

func (s *stubEmployeeRepo) ListFeatured(_ context.Context, limit int) ([]employee.Employee, error) {
	s.featuredSize = limit
	return []employee.Employee{}, nil
}

func (s *stubEmployeeRepo) ListByDepartment(_ context.Context, department employee.Department) ([]employee.Employee, error) {
	s.department = department
	return []employee.Employee{}, nil
}

type recordingCache struct {
	patterns []string
}

func (r *recordingCache) Invalidate(_ context.Context, pattern string) {
	r.patterns = append(r.patterns, pattern)
}

func newTestService(repo *stubEmployeeRepo) (*EmployeeServiceImpl, *recordingCache) {
	rec := &recordingCache{}
	return &EmployeeServiceImpl{EmployeeRepository: repo, cache: rec}, rec
}

func validCreate() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		Name:      "Aziz Karimov",
		Position:  "Backend Developer",
		AvatarURL: "https://cdn.example.com/aziz.png",
	}
}

func TestCreate_Defaults(t *testing.T) {
	repo := &stubEmployeeRepo{}
	svc, _ := newTestService(repo)

	_, err := svc.Create(context.Background(), validCreate())

	require.NoError(t, err)
	assert.Equal(t, employee.DepartmentOther, repo.created.Department)
	assert.True(t, repo.created.IsActive)
	assert.False(t, repo.created.JoinDate.IsZero())
}

func TestCreate_InactiveWithJoinDate(t *testing.T) {
	repo := &stubEmployeeRepo{}
	svc, _ := newTestService(repo)
	req := validCreate()
	inactive := false
	joined := "2023-06-01"
	req.IsActive = &inactive
	req.JoinDate = &joined
	req.Department = "devops"

	_, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.False(t, repo.created.IsActive)
	assert.Equal(t, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), repo.created.JoinDate)
	assert.Equal(t, employee.DepartmentDevOps, repo.created.Department)
}

func TestCreate_Invalid(t *testing.T) {
	repo := &stubEmployeeRepo{}
	svc, rec := newTestService(repo)
	req := validCreate()
	req.AvatarURL = "not a url"
	req.Department = "sales"
	bad := "01/06/2023"
	req.JoinDate = &bad

	_, err := svc.Create(context.Background(), req)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
	assert.Empty(t, repo.created.ID)
	assert.Empty(t, rec.patterns)
}

func TestWrites_InvalidateDashboardAndReports(t *testing.T) {
	want := []string{"dashboard:*", "attendance:report:*"}
	name := "Aziz K."

	t.Run("create", func(t *testing.T) {
		svc, rec := newTestService(&stubEmployeeRepo{})
		_, err := svc.Create(context.Background(), validCreate())
		require.NoError(t, err)
		assert.Equal(t, want, rec.patterns)
	})
	t.Run("update", func(t *testing.T) {
		svc, rec := newTestService(&stubEmployeeRepo{})
		_, err := svc.Update(context.Background(), "id-1", employee.UpdateEmployeeRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, want, rec.patterns)
	})
	t.Run("delete", func(t *testing.T) {
		svc, rec := newTestService(&stubEmployeeRepo{})
		require.NoError(t, svc.Delete(context.Background(), "id-1"))
		assert.Equal(t, want, rec.patterns)
	})
}

func TestDelete_FailureKeepsCache(t *testing.T) {
	svc, rec := newTestService(&stubEmployeeRepo{deleteErr: employee.ErrEmployeeHasAttendance})

	err := svc.Delete(context.Background(), "id-1")

	assert.ErrorIs(t, err, employee.ErrEmployeeHasAttendance)
	assert.Empty(t, rec.patterns)
}

func TestNewEmployeeService_NilCache(t *testing.T) {
	svc := NewEmployeeService(&stubEmployeeRepo{}, nil)

	_, err := svc.Create(context.Background(), validCreate())

	assert.NoError(t, err)
}

func TestFeatured_ClampsLimit(t *testing.T) {
	repo := &stubEmployeeRepo{}
	svc, _ := newTestService(repo)

	_, err := svc.Featured(context.Background(), -3)
	require.NoError(t, err)
	assert.Equal(t, defaultFeaturedLimit, repo.featuredSize)

	_, err = svc.Featured(context.Background(), 51)
	require.NoError(t, err)
	assert.Equal(t, maxFeaturedLimit, repo.featuredSize)

	_, err = svc.Featured(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, 12, repo.featuredSize)
}

func TestByDepartment(t *testing.T) {
	repo := &stubEmployeeRepo{}
	svc, _ := newTestService(repo)

	_, err := svc.ByDepartment(context.Background(), "qa")
	require.NoError(t, err)
	assert.Equal(t, employee.DepartmentQA, repo.department)

	_, err = svc.ByDepartment(context.Background(), "sales")
	var verrs validator.ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}
