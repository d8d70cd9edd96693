package feature

import (
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
)

type CreateFeatureRequest struct {
	Title        string   `json:"title" validate:"required,max=100"`
	Description  string   `json:"description" validate:"required,max=500"`
	Icon         string   `json:"icon" validate:"omitempty,max=100"`
	ImageURL     *string  `json:"image_url,omitempty" validate:"omitempty,url"`
	DisplayOrder int      `json:"order"`
	IsActive     *bool    `json:"is_active,omitempty"`
	Benefits     []string `json:"benefits" validate:"omitempty,dive,min=1,max=200"`
	Category     string   `json:"category" validate:"omitempty,oneof=development design marketing consulting support other"`
}

func (r *CreateFeatureRequest) Validate() error {
	if errs := validator.StructErrors(r); len(errs) > 0 {
		return errs
	}
	if r.Icon == "" {
		r.Icon = "fas fa-code"
	}
	if r.Category == "" {
		r.Category = "development"
	}
	return nil
}

type UpdateFeatureRequest struct {
	Title        *string   `json:"title,omitempty" validate:"omitempty,min=1,max=100"`
	Description  *string   `json:"description,omitempty" validate:"omitempty,min=1,max=500"`
	Icon         *string   `json:"icon,omitempty" validate:"omitempty,min=1,max=100"`
	ImageURL     *string   `json:"image_url,omitempty" validate:"omitempty,url"`
	DisplayOrder *int      `json:"order,omitempty"`
	IsActive     *bool     `json:"is_active,omitempty"`
	Benefits     *[]string `json:"benefits,omitempty" validate:"omitempty,dive,min=1,max=200"`
	Category     *string   `json:"category,omitempty" validate:"omitempty,oneof=development design marketing consulting support other"`
}

func (r *UpdateFeatureRequest) Validate() error {
	if errs := validator.StructErrors(r); len(errs) > 0 {
		return errs
	}
	return nil
}

type FeatureFilter struct {
	listing.Params
	Category *string
	IsActive *bool
}

var SortableFields = []string{"order", "title", "created_at"}

func (f *FeatureFilter) Validate() error {
	var errs validator.ValidationErrors
	if err := f.Params.Validate(SortableFields, "order", "asc"); err != nil {
		if listErrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, listErrs...)
		}
	}
	if f.Category != nil && *f.Category != "" && !validator.IsInSlice(*f.Category, Categories) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "invalid category"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListFeatureResponse struct {
	Features []Feature    `json:"features"`
	Meta     listing.Meta `json:"-"`
}
