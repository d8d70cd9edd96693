package product

import (
	"time"

	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
)

type CreateProductRequest struct {
	Name             string   `json:"name" validate:"required,max=100"`
	ShortDescription string   `json:"short_description" validate:"required,max=200"`
	FullDescription  string   `json:"full_description" validate:"required"`
	MainImageURL     string   `json:"main_image_url" validate:"required,url"`
	Gallery          []string `json:"gallery" validate:"omitempty,dive,url"`
	Features         []string `json:"features" validate:"omitempty,dive,max=200"`
	Category         string   `json:"category" validate:"required,oneof=web-app mobile-app desktop-app ai-ml blockchain iot other"`
	Price            string   `json:"price" validate:"omitempty,oneof=free freemium paid custom"`
	Pricing          *Pricing `json:"pricing,omitempty"`
	DemoURL          *string  `json:"demo_url,omitempty" validate:"omitempty,url"`
	GithubURL        *string  `json:"github_url,omitempty" validate:"omitempty,url"`
	DownloadURL      *string  `json:"download_url,omitempty" validate:"omitempty,url"`
	Status           string   `json:"status" validate:"omitempty,oneof=development beta stable discontinued"`
	Version          string   `json:"version" validate:"omitempty,max=30"`
	ReleaseDate      *string  `json:"release_date,omitempty"`
	IsFeatured       bool     `json:"is_featured"`
	IsActive         *bool    `json:"is_active,omitempty"`
	DisplayOrder     int      `json:"order"`

	ParsedReleaseDate *time.Time `json:"-"`
}

func (r *CreateProductRequest) Validate() error {
	errs := validator.StructErrors(r)
	errs = append(errs, validatePricing(r.Pricing)...)

	if r.ReleaseDate != nil && *r.ReleaseDate != "" {
		d, ok := validator.IsValidDate(*r.ReleaseDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "release_date",
				Message: "release_date must be in YYYY-MM-DD format",
			})
		} else {
			r.ParsedReleaseDate = &d
		}
	}

	if len(errs) > 0 {
		return errs
	}
	if r.Price == "" {
		r.Price = "custom"
	}
	if r.Status == "" {
		r.Status = "stable"
	}
	if r.Version == "" {
		r.Version = "1.0.0"
	}
	return nil
}

type UpdateProductRequest struct {
	Name             *string   `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	ShortDescription *string   `json:"short_description,omitempty" validate:"omitempty,min=1,max=200"`
	FullDescription  *string   `json:"full_description,omitempty" validate:"omitempty,min=1"`
	MainImageURL     *string   `json:"main_image_url,omitempty" validate:"omitempty,url"`
	Gallery          *[]string `json:"gallery,omitempty" validate:"omitempty,dive,url"`
	Features         *[]string `json:"features,omitempty" validate:"omitempty,dive,max=200"`
	Category         *string   `json:"category,omitempty" validate:"omitempty,oneof=web-app mobile-app desktop-app ai-ml blockchain iot other"`
	Price            *string   `json:"price,omitempty" validate:"omitempty,oneof=free freemium paid custom"`
	Pricing          *Pricing  `json:"pricing,omitempty"`
	DemoURL          *string   `json:"demo_url,omitempty" validate:"omitempty,url"`
	GithubURL        *string   `json:"github_url,omitempty" validate:"omitempty,url"`
	DownloadURL      *string   `json:"download_url,omitempty" validate:"omitempty,url"`
	Status           *string   `json:"status,omitempty" validate:"omitempty,oneof=development beta stable discontinued"`
	Version          *string   `json:"version,omitempty" validate:"omitempty,max=30"`
	ReleaseDate      *string   `json:"release_date,omitempty"`
	Downloads        *int64    `json:"downloads,omitempty" validate:"omitempty,gte=0"`
	Rating           *Rating   `json:"rating,omitempty"`
	IsFeatured       *bool     `json:"is_featured,omitempty"`
	IsActive         *bool     `json:"is_active,omitempty"`
	DisplayOrder     *int      `json:"order,omitempty"`

	ParsedReleaseDate *time.Time `json:"-"`
	Slug              *string    `json:"-"`
}

func (r *UpdateProductRequest) Validate() error {
	errs := validator.StructErrors(r)
	errs = append(errs, validatePricing(r.Pricing)...)

	if r.Rating != nil && (r.Rating.Average < 0 || r.Rating.Average > 5 || r.Rating.Count < 0) {
		errs = append(errs, validator.ValidationError{
			Field:   "rating",
			Message: "rating.average must be between 0 and 5 and rating.count must not be negative",
		})
	}
	if r.ReleaseDate != nil {
		d, ok := validator.IsValidDate(*r.ReleaseDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "release_date",
				Message: "release_date must be in YYYY-MM-DD format",
			})
		} else {
			r.ParsedReleaseDate = &d
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePricing(p *Pricing) validator.ValidationErrors {
	if p == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if p.Amount != nil && *p.Amount < 0 {
		errs = append(errs, validator.ValidationError{Field: "pricing.amount", Message: "amount must not be negative"})
	}
	if p.Period != nil && !validator.IsInSlice(*p.Period, []string{"one-time", "monthly", "yearly"}) {
		errs = append(errs, validator.ValidationError{Field: "pricing.period", Message: "period must be one of: one-time, monthly, yearly"})
	}
	if p.Currency != "" && len(p.Currency) != 3 {
		errs = append(errs, validator.ValidationError{Field: "pricing.currency", Message: "currency must be a 3-letter code"})
	}
	return errs
}

type ProductFilter struct {
	listing.Params
	Category   *string
	Status     *string
	Price      *string
	IsFeatured *bool
	IsActive   *bool
}

var SortableFields = []string{"name", "created_at", "order", "downloads", "rating", "release_date"}

func (f *ProductFilter) Validate() error {
	var errs validator.ValidationErrors
	if err := f.Params.Validate(SortableFields, "order", "asc"); err != nil {
		if listErrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, listErrs...)
		}
	}
	if f.Category != nil && *f.Category != "" && !validator.IsInSlice(*f.Category, Categories) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "invalid category"})
	}
	if f.Status != nil && *f.Status != "" && !validator.IsInSlice(*f.Status, Statuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "invalid status"})
	}
	if f.Price != nil && *f.Price != "" && !validator.IsInSlice(*f.Price, Prices) {
		errs = append(errs, validator.ValidationError{Field: "price", Message: "invalid price"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListProductResponse struct {
	Products []Product    `json:"products"`
	Meta     listing.Meta `json:"-"`
}

type CategoryStat struct {
	Category       string  `json:"category"`
	Count          int64   `json:"count"`
	AvgRating      float64 `json:"avg_rating"`
	TotalDownloads int64   `json:"total_downloads"`
}
