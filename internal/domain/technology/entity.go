package technology

import "time"

var (
	Categories = []string{
		"frontend", "backend", "database", "mobile", "devops", "cloud",
		"ai-ml", "blockchain", "testing", "design", "other",
	}
	Types             = []string{"language", "framework", "library", "tool", "platform", "other"}
	ProficiencyLevels = []string{"beginner", "intermediate", "advanced", "expert"}
)

type Technology struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Slug              string    `json:"slug"`
	Description       *string   `json:"description,omitempty"`
	IconURL           *string   `json:"icon_url,omitempty"`
	LogoURL           *string   `json:"logo_url,omitempty"`
	Category          string    `json:"category"`
	Type              string    `json:"type"`
	OfficialWebsite   *string   `json:"official_website,omitempty"`
	Documentation     *string   `json:"documentation,omitempty"`
	ProficiencyLevel  string    `json:"proficiency_level"`
	YearsOfExperience int       `json:"years_of_experience"`
	IsActive          bool      `json:"is_active"`
	IsFeatured        bool      `json:"is_featured"`
	DisplayOrder      int       `json:"order"`
	Color             string    `json:"color"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
