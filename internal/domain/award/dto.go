package award

import (
	"time"

	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
)

type CreateAwardRequest struct {
	Title           string  `json:"title" validate:"required,max=200"`
	Description     string  `json:"description" validate:"required,max=1000"`
	Organization    string  `json:"organization" validate:"required,max=200"`
	Category        string  `json:"category" validate:"omitempty,oneof=innovation quality design customer-service growth leadership technology industry-specific other"`
	Year            *int    `json:"year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	Date            *string `json:"date,omitempty"`
	ImageURL        *string `json:"image_url,omitempty" validate:"omitempty,url"`
	CertificateURL  *string `json:"certificate_url,omitempty" validate:"omitempty,url"`
	VerificationURL *string `json:"verification_url,omitempty" validate:"omitempty,url"`
	Rank            *string `json:"rank,omitempty" validate:"omitempty,max=100"`
	IsActive        *bool   `json:"is_active,omitempty"`
	DisplayOrder    int     `json:"order"`

	ParsedDate *time.Time `json:"-"`
}

func (r *CreateAwardRequest) Validate() error {
	errs := validator.StructErrors(r)
	if r.Date != nil && *r.Date != "" {
		d, ok := validator.IsValidDate(*r.Date)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
		} else {
			r.ParsedDate = &d
		}
	}
	if len(errs) > 0 {
		return errs
	}

	if r.Category == "" {
		r.Category = "other"
	}
	// The year follows the award date when only the date is given.
	if r.Year == nil && r.ParsedDate != nil {
		y := r.ParsedDate.Year()
		r.Year = &y
	}
	return nil
}

type UpdateAwardRequest struct {
	Title           *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description     *string `json:"description,omitempty" validate:"omitempty,min=1,max=1000"`
	Organization    *string `json:"organization,omitempty" validate:"omitempty,min=1,max=200"`
	Category        *string `json:"category,omitempty" validate:"omitempty,oneof=innovation quality design customer-service growth leadership technology industry-specific other"`
	Year            *int    `json:"year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	Date            *string `json:"date,omitempty"`
	ImageURL        *string `json:"image_url,omitempty" validate:"omitempty,url"`
	CertificateURL  *string `json:"certificate_url,omitempty" validate:"omitempty,url"`
	VerificationURL *string `json:"verification_url,omitempty" validate:"omitempty,url"`
	Rank            *string `json:"rank,omitempty" validate:"omitempty,max=100"`
	IsActive        *bool   `json:"is_active,omitempty"`
	DisplayOrder    *int    `json:"order,omitempty"`

	ParsedDate *time.Time `json:"-"`
}

func (r *UpdateAwardRequest) Validate() error {
	errs := validator.StructErrors(r)
	if r.Date != nil {
		d, ok := validator.IsValidDate(*r.Date)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be in YYYY-MM-DD format"})
		} else {
			r.ParsedDate = &d
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AwardFilter struct {
	listing.Params
	Category *string
	Year     *int
	IsActive *bool
}

var SortableFields = []string{"year", "date", "title", "order", "created_at"}

func (f *AwardFilter) Validate() error {
	var errs validator.ValidationErrors
	if err := f.Params.Validate(SortableFields, "year", "desc"); err != nil {
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

type ListAwardResponse struct {
	Awards []Award      `json:"awards"`
	Meta   listing.Meta `json:"-"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

type YearCount struct {
	Year  int   `json:"year"`
	Count int64 `json:"count"`
}

type AwardStats struct {
	Total      int64           `json:"total"`
	ByCategory []CategoryCount `json:"by_category"`
	ByYear     []YearCount     `json:"by_year"`
}
