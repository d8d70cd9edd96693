package employee

import (
	"context"
	"fmt"
	"time"

	"github.com/novatech-uz/company-backend-go/internal/domain/employee"
	"github.com/novatech-uz/company-backend-go/internal/pkg/cache"
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
)

const (
	defaultFeaturedLimit = 6
	maxFeaturedLimit     = 50

	dashboardPattern        = "dashboard:*"
	attendanceReportPattern = "attendance:report:*"
)

type invalidator interface {
	Invalidate(ctx context.Context, pattern string)
}

type EmployeeServiceImpl struct {
	employee.EmployeeRepository
	cache invalidator
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository, dashboardCache *cache.Cache) employee.EmployeeService {
	return &EmployeeServiceImpl{
		EmployeeRepository: employeeRepo,
		cache:              dashboardCache,
	}
}

// invalidate drops the dashboard and the cached monthly reports, which both
// carry team member names and counts.
func (s *EmployeeServiceImpl) invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx, dashboardPattern)
	s.cache.Invalidate(ctx, attendanceReportPattern)
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	newEmployee := employee.Employee{
		Name:              req.Name,
		Position:          req.Position,
		Bio:               req.Bio,
		AvatarURL:         req.AvatarURL,
		Email:             req.Email,
		Phone:             req.Phone,
		Department:        employee.Department(req.Department),
		Experience:        req.Experience,
		JoinDate:          time.Now().UTC().Truncate(24 * time.Hour),
		IsActive:          true,
		IsFeatured:        req.IsFeatured,
		DisplayOrder:      req.DisplayOrder,
		ProjectsCompleted: req.ProjectsCompleted,
	}
	if req.ParsedJoinDate != nil {
		newEmployee.JoinDate = *req.ParsedJoinDate
	}
	if req.IsActive != nil {
		newEmployee.IsActive = *req.IsActive
	}
	if req.SocialLinks != nil {
		newEmployee.SocialLinks = *req.SocialLinks
	}

	created, err := s.EmployeeRepository.Create(ctx, newEmployee)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create team member: %w", err)
	}
	s.invalidate(ctx)
	return created, nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.Employee, error) {
	return s.EmployeeRepository.GetByID(ctx, id)
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	updated, err := s.EmployeeRepository.Update(ctx, id, req)
	if err != nil {
		return employee.Employee{}, err
	}
	s.invalidate(ctx)
	return updated, nil
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.EmployeeRepository.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.EmployeeRepository.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list team members: %w", err)
	}

	return employee.ListEmployeeResponse{
		Employees: employees,
		Meta:      listing.BuildMeta(total, filter.Params),
	}, nil
}

// Featured implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Featured(ctx context.Context, limit int) ([]employee.Employee, error) {
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}
	if limit > maxFeaturedLimit {
		limit = maxFeaturedLimit
	}
	return s.EmployeeRepository.ListFeatured(ctx, limit)
}

// ByDepartment implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ByDepartment(ctx context.Context, department string) ([]employee.Employee, error) {
	if !validator.IsInSlice(department, employee.Departments) {
		return nil, validator.ValidationErrors{{Field: "department", Message: "invalid department"}}
	}
	return s.EmployeeRepository.ListByDepartment(ctx, employee.Department(department))
}
