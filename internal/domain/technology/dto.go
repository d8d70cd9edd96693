package technology

import (
	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
)

type CreateTechnologyRequest struct {
	Name              string  `json:"name" validate:"required,max=100"`
	Description       *string `json:"description,omitempty" validate:"omitempty,max=500"`
	IconURL           *string `json:"icon_url,omitempty" validate:"omitempty,url"`
	LogoURL           *string `json:"logo_url,omitempty" validate:"omitempty,url"`
	Category          string  `json:"category" validate:"required,oneof=frontend backend database mobile devops cloud ai-ml blockchain testing design other"`
	Type              string  `json:"type" validate:"omitempty,oneof=language framework library tool platform other"`
	OfficialWebsite   *string `json:"official_website,omitempty" validate:"omitempty,url"`
	Documentation     *string `json:"documentation,omitempty" validate:"omitempty,url"`
	ProficiencyLevel  string  `json:"proficiency_level" validate:"omitempty,oneof=beginner intermediate advanced expert"`
	YearsOfExperience int     `json:"years_of_experience" validate:"gte=0,lte=60"`
	IsActive          *bool   `json:"is_active,omitempty"`
	IsFeatured        bool    `json:"is_featured"`
	DisplayOrder      int     `json:"order"`
	Color             string  `json:"color" validate:"omitempty,hexcolor"`
}

func (r *CreateTechnologyRequest) Validate() error {
	if errs := validator.StructErrors(r); len(errs) > 0 {
		return errs
	}
	if r.Type == "" {
		r.Type = "other"
	}
	if r.ProficiencyLevel == "" {
		r.ProficiencyLevel = "intermediate"
	}
	if r.Color == "" {
		r.Color = "#000000"
	}
	return nil
}

type UpdateTechnologyRequest struct {
	Name              *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description       *string `json:"description,omitempty" validate:"omitempty,max=500"`
	IconURL           *string `json:"icon_url,omitempty" validate:"omitempty,url"`
	LogoURL           *string `json:"logo_url,omitempty" validate:"omitempty,url"`
	Category          *string `json:"category,omitempty" validate:"omitempty,oneof=frontend backend database mobile devops cloud ai-ml blockchain testing design other"`
	Type              *string `json:"type,omitempty" validate:"omitempty,oneof=language framework library tool platform other"`
	OfficialWebsite   *string `json:"official_website,omitempty" validate:"omitempty,url"`
	Documentation     *string `json:"documentation,omitempty" validate:"omitempty,url"`
	ProficiencyLevel  *string `json:"proficiency_level,omitempty" validate:"omitempty,oneof=beginner intermediate advanced expert"`
	YearsOfExperience *int    `json:"years_of_experience,omitempty" validate:"omitempty,gte=0,lte=60"`
	IsActive          *bool   `json:"is_active,omitempty"`
	IsFeatured        *bool   `json:"is_featured,omitempty"`
	DisplayOrder      *int    `json:"order,omitempty"`
	Color             *string `json:"color,omitempty" validate:"omitempty,hexcolor"`

	Slug *string `json:"-"`
}

func (r *UpdateTechnologyRequest) Validate() error {
	if errs := validator.StructErrors(r); len(errs) > 0 {
		return errs
	}
	return nil
}

type TechnologyFilter struct {
	listing.Params
	Category         *string
	Type             *string
	ProficiencyLevel *string
	IsFeatured       *bool
	IsActive         *bool
}

var SortableFields = []string{"name", "order", "years_of_experience", "created_at"}

func (f *TechnologyFilter) Validate() error {
	var errs validator.ValidationErrors
	if err := f.Params.Validate(SortableFields, "order", "asc"); err != nil {
		if listErrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, listErrs...)
		}
	}
	if f.Category != nil && *f.Category != "" && !validator.IsInSlice(*f.Category, Categories) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "invalid category"})
	}
	if f.Type != nil && *f.Type != "" && !validator.IsInSlice(*f.Type, Types) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "invalid type"})
	}
	if f.ProficiencyLevel != nil && *f.ProficiencyLevel != "" && !validator.IsInSlice(*f.ProficiencyLevel, ProficiencyLevels) {
		errs = append(errs, validator.ValidationError{Field: "proficiency_level", Message: "invalid proficiency level"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListTechnologyResponse struct {
	Technologies []Technology `json:"technologies"`
	Meta         listing.Meta `json:"-"`
}
