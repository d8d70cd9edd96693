package employee

import (
	"time"

	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name              string       `json:"name" validate:"required,max=100"`
	Position          string       `json:"position" validate:"required,max=100"`
	Bio               *string      `json:"bio,omitempty" validate:"omitempty,max=1000"`
	AvatarURL         string       `json:"avatar_url" validate:"required,url"`
	Email             *string      `json:"email,omitempty" validate:"omitempty,email"`
	Phone             *string      `json:"phone,omitempty" validate:"omitempty,max=30"`
	Department        string       `json:"department" validate:"omitempty,oneof=frontend backend fullstack mobile devops design qa management marketing other"`
	Experience        int          `json:"experience" validate:"gte=0"`
	JoinDate          *string      `json:"join_date,omitempty"`
	IsActive          *bool        `json:"is_active,omitempty"`
	IsFeatured        bool         `json:"is_featured"`
	DisplayOrder      int          `json:"order"`
	ProjectsCompleted int          `json:"projects_completed" validate:"gte=0"`
	SocialLinks       *SocialLinks `json:"social_links,omitempty"`

	ParsedJoinDate *time.Time `json:"-"`
}

func (r *CreateEmployeeRequest) Validate() error {
	errs := validator.StructErrors(r)

	if r.JoinDate != nil && *r.JoinDate != "" {
		d, ok := validator.IsValidDate(*r.JoinDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "join_date",
				Message: "join_date must be in YYYY-MM-DD format",
			})
		} else {
			r.ParsedJoinDate = &d
		}
	}

	if len(errs) > 0 {
		return errs
	}
	if r.Department == "" {
		r.Department = string(DepartmentOther)
	}
	return nil
}

type UpdateEmployeeRequest struct {
	Name              *string      `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Position          *string      `json:"position,omitempty" validate:"omitempty,min=1,max=100"`
	Bio               *string      `json:"bio,omitempty" validate:"omitempty,max=1000"`
	AvatarURL         *string      `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Email             *string      `json:"email,omitempty" validate:"omitempty,email"`
	Phone             *string      `json:"phone,omitempty" validate:"omitempty,max=30"`
	Department        *string      `json:"department,omitempty" validate:"omitempty,oneof=frontend backend fullstack mobile devops design qa management marketing other"`
	Experience        *int         `json:"experience,omitempty" validate:"omitempty,gte=0"`
	JoinDate          *string      `json:"join_date,omitempty"`
	IsActive          *bool        `json:"is_active,omitempty"`
	IsFeatured        *bool        `json:"is_featured,omitempty"`
	DisplayOrder      *int         `json:"order,omitempty"`
	ProjectsCompleted *int         `json:"projects_completed,omitempty" validate:"omitempty,gte=0"`
	SocialLinks       *SocialLinks `json:"social_links,omitempty"`

	ParsedJoinDate *time.Time `json:"-"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	errs := validator.StructErrors(r)

	if r.JoinDate != nil {
		d, ok := validator.IsValidDate(*r.JoinDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "join_date",
				Message: "join_date must be in YYYY-MM-DD format",
			})
		} else {
			r.ParsedJoinDate = &d
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeFilter struct {
	listing.Params
	Department *string
	IsActive   *bool
	IsFeatured *bool
}

var SortableFields = []string{"name", "position", "department", "experience", "join_date", "order", "created_at"}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors
	if err := f.Params.Validate(SortableFields, "order", "asc"); err != nil {
		if listErrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, listErrs...)
		}
	}
	if f.Department != nil && *f.Department != "" && !validator.IsInSlice(*f.Department, Departments) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "invalid department",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListEmployeeResponse struct {
	Employees []Employee   `json:"employees"`
	Meta      listing.Meta `json:"-"`
}
