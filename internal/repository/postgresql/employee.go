package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/novatech-uz/company-backend-go/internal/domain/employee"
	"github.com/novatech-uz/company-backend-go/internal/pkg/database"
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
)

const employeeColumns = `
	id, name, position, bio, avatar_url, email, phone, department, experience, join_date,
	is_active, is_featured, display_order, projects_completed, social_links, created_at, updated_at`

var employeeSortColumns = map[string]string{
	"name":       "name",
	"position":   "position",
	"department": "department",
	"experience": "experience",
	"join_date":  "join_date",
	"order":      "display_order",
	"created_at": "created_at",
}

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.Name, &emp.Position, &emp.Bio, &emp.AvatarURL, &emp.Email, &emp.Phone,
		&emp.Department, &emp.Experience, &emp.JoinDate, &emp.IsActive, &emp.IsFeatured,
		&emp.DisplayOrder, &emp.ProjectsCompleted, &emp.SocialLinks, &emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	defer rows.Close()

	employees := []employee.Employee{}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return employees, nil
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return employee.Employee{}, fmt.Errorf("generate team member id: %w", err)
	}

	query := `
		INSERT INTO team_members (
			id, name, position, bio, avatar_url, email, phone, department, experience, join_date,
			is_active, is_featured, display_order, projects_completed, social_links
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		id.String(), e.Name, e.Position, e.Bio, e.AvatarURL, e.Email, e.Phone, e.Department,
		e.Experience, e.JoinDate, e.IsActive, e.IsFeatured, e.DisplayOrder, e.ProjectsCompleted, e.SocialLinks,
	))
	if err != nil {
		return employee.Employee{}, err
	}
	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM team_members WHERE id = $1`

	found, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return found, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Department != nil {
		updates["department"] = *req.Department
	}
	if req.Experience != nil {
		updates["experience"] = *req.Experience
	}
	if req.ParsedJoinDate != nil {
		updates["join_date"] = *req.ParsedJoinDate
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}
	if req.ProjectsCompleted != nil {
		updates["projects_completed"] = *req.ProjectsCompleted
	}
	if req.SocialLinks != nil {
		updates["social_links"] = *req.SocialLinks
	}

	if len(updates) == 0 {
		return r.GetByID(ctx, id)
	}

	setClauses := []string{}
	args := []interface{}{}
	argIdx := 1
	for col, val := range updates {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, val)
		argIdx++
	}
	setClauses = append(setClauses, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE team_members SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setClauses, ", "), argIdx, employeeColumns)

	updated, err := scanEmployee(q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return updated, nil
}

// Delete implements employee.EmployeeRepository. Members with attendance
// history are protected by the foreign key.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM team_members WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return employee.ErrEmployeeHasAttendance
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := listing.NewWhere().
		EqString("department", filter.Department).
		EqBool("is_active", filter.IsActive).
		EqBool("is_featured", filter.IsFeatured).
		Search(filter.Search, "name", "position", "bio")

	var total int64
	countQuery := `SELECT COUNT(*) FROM team_members ` + where.SQL()
	if err := q.QueryRow(ctx, countQuery, where.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count team members: %w", err)
	}

	page, args := where.Paginate(filter.Params)
	query := fmt.Sprintf(`SELECT %s FROM team_members %s ORDER BY %s, created_at DESC %s`,
		employeeColumns, where.SQL(), filter.OrderBy(employeeSortColumns, "order"), page)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list team members: %w", err)
	}
	employees, err := collectEmployees(rows)
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// ListFeatured implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListFeatured(ctx context.Context, limit int) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM team_members
		WHERE is_featured = TRUE AND is_active = TRUE
		ORDER BY display_order ASC, created_at DESC
		LIMIT $1
	`
	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	return collectEmployees(rows)
}

// ListByDepartment implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListByDepartment(ctx context.Context, department employee.Department) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM team_members
		WHERE department = $1 AND is_active = TRUE
		ORDER BY display_order ASC, name ASC
	`
	rows, err := q.Query(ctx, query, department)
	if err != nil {
		return nil, err
	}
	return collectEmployees(rows)
}

// CountActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) CountActive(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM team_members WHERE is_active = TRUE`).Scan(&total)
	return total, err
}
