package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (Employee, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	ListFeatured(ctx context.Context, limit int) ([]Employee, error)
	ListByDepartment(ctx context.Context, department Department) ([]Employee, error)
	CountActive(ctx context.Context) (int64, error)
}
