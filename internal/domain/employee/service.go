package employee

import "context"

type EmployeeService interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (Employee, error)
	Get(ctx context.Context, id string) (Employee, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (Employee, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
	Featured(ctx context.Context, limit int) ([]Employee, error)
	ByDepartment(ctx context.Context, department string) ([]Employee, error)
}
