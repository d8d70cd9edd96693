package award

import "time"

var Categories = []string{
	"innovation", "quality", "design", "customer-service", "growth",
	"leadership", "technology", "industry-specific", "other",
}

type Award struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Organization    string     `json:"organization"`
	Category        string     `json:"category"`
	Year            *int       `json:"year,omitempty"`
	Date            *time.Time `json:"date,omitempty"`
	ImageURL        *string    `json:"image_url,omitempty"`
	CertificateURL  *string    `json:"certificate_url,omitempty"`
	VerificationURL *string    `json:"verification_url,omitempty"`
	Rank            *string    `json:"rank,omitempty"`
	IsActive        bool       `json:"is_active"`
	DisplayOrder    int        `json:"order"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
