package testimonial

import (
	"time"

	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
)

type CreateTestimonialRequest struct {
	ClientName     string    `json:"client_name" validate:"required,max=100"`
	ClientPosition *string   `json:"client_position,omitempty" validate:"omitempty,max=100"`
	ClientCompany  *string   `json:"client_company,omitempty" validate:"omitempty,max=100"`
	ClientAvatar   *string   `json:"client_avatar,omitempty" validate:"omitempty,url"`
	CompanyLogo    *string   `json:"company_logo,omitempty" validate:"omitempty,url"`
	Testimonial    string    `json:"testimonial" validate:"required,max=1000"`
	Rating         int       `json:"rating" validate:"omitempty,gte=1,lte=5"`
	ProjectID      *string   `json:"project_id,omitempty" validate:"omitempty,uuid"`
	Service        *string   `json:"service,omitempty" validate:"omitempty,oneof=web-development mobile-development ui-ux-design consulting maintenance other"`
	DateReceived   *string   `json:"date_received,omitempty"`
	Location       *Location `json:"location,omitempty"`
	IsVerified     bool      `json:"is_verified"`
	IsFeatured     bool      `json:"is_featured"`
	IsActive       *bool     `json:"is_active,omitempty"`
	DisplayOrder   int       `json:"order"`
	LinkedinURL    *string   `json:"linkedin_url,omitempty" validate:"omitempty,url"`
	WebsiteURL     *string   `json:"website_url,omitempty" validate:"omitempty,url"`

	ParsedDateReceived *time.Time `json:"-"`
}

func (r *CreateTestimonialRequest) Validate() error {
	errs := validator.StructErrors(r)
	if r.DateReceived != nil && *r.DateReceived != "" {
		d, ok := validator.IsValidDate(*r.DateReceived)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "date_received", Message: "date_received must be in YYYY-MM-DD format"})
		} else {
			r.ParsedDateReceived = &d
		}
	}
	if len(errs) > 0 {
		return errs
	}
	if r.Rating == 0 {
		r.Rating = 5
	}
	return nil
}

type UpdateTestimonialRequest struct {
	ClientName     *string   `json:"client_name,omitempty" validate:"omitempty,min=1,max=100"`
	ClientPosition *string   `json:"client_position,omitempty" validate:"omitempty,max=100"`
	ClientCompany  *string   `json:"client_company,omitempty" validate:"omitempty,max=100"`
	ClientAvatar   *string   `json:"client_avatar,omitempty" validate:"omitempty,url"`
	CompanyLogo    *string   `json:"company_logo,omitempty" validate:"omitempty,url"`
	Testimonial    *string   `json:"testimonial,omitempty" validate:"omitempty,min=1,max=1000"`
	Rating         *int      `json:"rating,omitempty" validate:"omitempty,gte=1,lte=5"`
	ProjectID      *string   `json:"project_id,omitempty" validate:"omitempty,uuid"`
	Service        *string   `json:"service,omitempty" validate:"omitempty,oneof=web-development mobile-development ui-ux-design consulting maintenance other"`
	DateReceived   *string   `json:"date_received,omitempty"`
	Location       *Location `json:"location,omitempty"`
	IsVerified     *bool     `json:"is_verified,omitempty"`
	IsFeatured     *bool     `json:"is_featured,omitempty"`
	IsActive       *bool     `json:"is_active,omitempty"`
	DisplayOrder   *int      `json:"order,omitempty"`
	LinkedinURL    *string   `json:"linkedin_url,omitempty" validate:"omitempty,url"`
	WebsiteURL     *string   `json:"website_url,omitempty" validate:"omitempty,url"`

	ParsedDateReceived *time.Time `json:"-"`
}

func (r *UpdateTestimonialRequest) Validate() error {
	errs := validator.StructErrors(r)
	if r.DateReceived != nil {
		d, ok := validator.IsValidDate(*r.DateReceived)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "date_received", Message: "date_received must be in YYYY-MM-DD format"})
		} else {
			r.ParsedDateReceived = &d
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TestimonialFilter struct {
	listing.Params
	Service    *string
	ProjectID  *string
	IsVerified *bool
	IsFeatured *bool
	IsActive   *bool
	MinRating  *int
}

var SortableFields = []string{"date_received", "rating", "order", "client_name", "created_at"}

func (f *TestimonialFilter) Validate() error {
	var errs validator.ValidationErrors
	if err := f.Params.Validate(SortableFields, "order", "asc"); err != nil {
		if listErrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, listErrs...)
		}
	}
	if f.Service != nil && *f.Service != "" && !validator.IsInSlice(*f.Service, Services) {
		errs = append(errs, validator.ValidationError{Field: "service", Message: "invalid service"})
	}
	if f.ProjectID != nil && *f.ProjectID != "" && !validator.IsValidUUID(*f.ProjectID) {
		errs = append(errs, validator.ValidationError{Field: "project_id", Message: "project_id must be a valid UUID"})
	}
	if f.MinRating != nil && (*f.MinRating < 1 || *f.MinRating > 5) {
		errs = append(errs, validator.ValidationError{Field: "min_rating", Message: "min_rating must be between 1 and 5"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListTestimonialResponse struct {
	Testimonials []Testimonial `json:"testimonials"`
	Meta         listing.Meta  `json:"-"`
}

type RatingCount struct {
	Rating int   `json:"rating"`
	Count  int64 `json:"count"`
}

type TestimonialStats struct {
	Total     int64         `json:"total"`
	AvgRating float64       `json:"avg_rating"`
	ByRating  []RatingCount `json:"by_rating"`
}
