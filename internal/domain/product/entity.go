package product

import "time"

var (
	Categories = []string{"web-app", "mobile-app", "desktop-app", "ai-ml", "blockchain", "iot", "other"}
	Prices     = []string{"free", "freemium", "paid", "custom"}
	Statuses   = []string{"development", "beta", "stable", "discontinued"}
)

type Pricing struct {
	Currency string   `json:"currency"`
	Amount   *float64 `json:"amount,omitempty"`
	Period   *string  `json:"period,omitempty"`
}

type Rating struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

type Product struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Slug             string     `json:"slug"`
	ShortDescription string     `json:"short_description"`
	FullDescription  string     `json:"full_description"`
	MainImageURL     string     `json:"main_image_url"`
	Gallery          []string   `json:"gallery"`
	Features         []string   `json:"features"`
	Category         string     `json:"category"`
	Price            string     `json:"price"`
	Pricing          Pricing    `json:"pricing"`
	DemoURL          *string    `json:"demo_url,omitempty"`
	GithubURL        *string    `json:"github_url,omitempty"`
	DownloadURL      *string    `json:"download_url,omitempty"`
	Status           string     `json:"status"`
	Version          string     `json:"version"`
	ReleaseDate      *time.Time `json:"release_date,omitempty"`
	Downloads        int64      `json:"downloads"`
	Rating           Rating     `json:"rating"`
	IsFeatured       bool       `json:"is_featured"`
	IsActive         bool       `json:"is_active"`
	DisplayOrder     int        `json:"order"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
