package feature

import "time"

var Categories = []string{"development", "design", "marketing", "consulting", "support", "other"}

type Feature struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"`
	ImageURL     *string   `json:"image_url,omitempty"`
	DisplayOrder int       `json:"order"`
	IsActive     bool      `json:"is_active"`
	Benefits     []string  `json:"benefits"`
	Category     string    `json:"category"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
