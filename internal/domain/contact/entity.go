package contact

import "time"

type Status string

const (
	StatusNew        Status = "new"
	StatusInProgress Status = "in-progress"
	StatusReplied    Status = "replied"
	StatusClosed     Status = "closed"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Source string

const (
	SourceWebsite     Source = "website"
	SourceSocialMedia Source = "social-media"
	SourceReferral    Source = "referral"
	SourceOther       Source = "other"
)

var (
	Statuses   = []string{string(StatusNew), string(StatusInProgress), string(StatusReplied), string(StatusClosed)}
	Priorities = []string{string(PriorityLow), string(PriorityMedium), string(PriorityHigh)}
)

// Contact is an inbound enquiry from the public site.
type Contact struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone,omitempty"`
	Company    *string   `json:"company,omitempty"`
	Subject    string    `json:"subject"`
	Message    string    `json:"message"`
	Service    *string   `json:"service,omitempty"`
	Budget     *string   `json:"budget,omitempty"`
	Timeline   *string   `json:"timeline,omitempty"`
	Status     Status    `json:"status"`
	Priority   Priority  `json:"priority"`
	AssignedTo *string   `json:"assigned_to,omitempty"`
	Source     Source    `json:"source"`
	IPAddress  *string   `json:"ip_address,omitempty"`
	UserAgent  *string   `json:"user_agent,omitempty"`
	Notes      []Note    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	AssigneeName *string `json:"assignee_name,omitempty"`
}

type Note struct {
	ID          int64     `json:"id"`
	Note        string    `json:"note"`
	AddedBy     *string   `json:"added_by,omitempty"`
	AddedByName *string   `json:"added_by_name,omitempty"`
	AddedAt     time.Time `json:"added_at"`
}
