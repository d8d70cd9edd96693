package employee

import "time"

type Department string

const (
	DepartmentFrontend   Department = "frontend"
	DepartmentBackend    Department = "backend"
	DepartmentFullstack  Department = "fullstack"
	DepartmentMobile     Department = "mobile"
	DepartmentDevOps     Department = "devops"
	DepartmentDesign     Department = "design"
	DepartmentQA         Department = "qa"
	DepartmentManagement Department = "management"
	DepartmentMarketing  Department = "marketing"
	DepartmentOther      Department = "other"
)

var Departments = []string{
	string(DepartmentFrontend), string(DepartmentBackend), string(DepartmentFullstack),
	string(DepartmentMobile), string(DepartmentDevOps), string(DepartmentDesign),
	string(DepartmentQA), string(DepartmentManagement), string(DepartmentMarketing),
	string(DepartmentOther),
}

// SocialLinks is stored as a JSONB document.
type SocialLinks struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Website   string `json:"website,omitempty"`
}

// Employee is a member of the public team directory. Attendance records
// reference it by ID.
type Employee struct {
	ID                string      `json:"id"`
	Name              string      `json:"name"`
	Position          string      `json:"position"`
	Bio               *string     `json:"bio,omitempty"`
	AvatarURL         string      `json:"avatar_url"`
	Email             *string     `json:"email,omitempty"`
	Phone             *string     `json:"phone,omitempty"`
	Department        Department  `json:"department"`
	Experience        int         `json:"experience"`
	JoinDate          time.Time   `json:"join_date"`
	IsActive          bool        `json:"is_active"`
	IsFeatured        bool        `json:"is_featured"`
	DisplayOrder      int         `json:"order"`
	ProjectsCompleted int         `json:"projects_completed"`
	SocialLinks       SocialLinks `json:"social_links"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}
