package testimonial

import "time"

var Services = []string{"web-development", "mobile-development", "ui-ux-design", "consulting", "maintenance", "other"}

type Location struct {
	Country *string `json:"country,omitempty"`
	City    *string `json:"city,omitempty"`
}

type Testimonial struct {
	ID             string    `json:"id"`
	ClientName     string    `json:"client_name"`
	ClientPosition *string   `json:"client_position,omitempty"`
	ClientCompany  *string   `json:"client_company,omitempty"`
	ClientAvatar   *string   `json:"client_avatar,omitempty"`
	CompanyLogo    *string   `json:"company_logo,omitempty"`
	Testimonial    string    `json:"testimonial"`
	Rating         int       `json:"rating"`
	ProjectID      *string   `json:"project_id,omitempty"`
	ProjectName    *string   `json:"project_name,omitempty"`
	ProjectSlug    *string   `json:"project_slug,omitempty"`
	Service        *string   `json:"service,omitempty"`
	DateReceived   time.Time `json:"date_received"`
	Location       Location  `json:"location"`
	IsVerified     bool      `json:"is_verified"`
	IsFeatured     bool      `json:"is_featured"`
	IsActive       bool      `json:"is_active"`
	DisplayOrder   int       `json:"order"`
	LinkedinURL    *string   `json:"linkedin_url,omitempty"`
	WebsiteURL     *string   `json:"website_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
