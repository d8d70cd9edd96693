package contact

import (
	"strings"

	"github.com/novatech-uz/company-backend-go/internal/pkg/listing"
	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
)

type CreateContactRequest struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Email    string  `json:"email" validate:"required,email"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Company  *string `json:"company,omitempty" validate:"omitempty,max=100"`
	Subject  string  `json:"subject" validate:"required,max=200"`
	Message  string  `json:"message" validate:"required,min=10,max=5000"`
	Service  *string `json:"service,omitempty" validate:"omitempty,oneof=web-development mobile-development ui-ux-design consulting maintenance custom-software other"`
	Budget   *string `json:"budget,omitempty" validate:"omitempty,oneof='< $5000' '$5000 - $10000' '$10000 - $25000' '$25000 - $50000' '> $50000' not-sure"`
	Timeline *string `json:"timeline,omitempty" validate:"omitempty,oneof=urgent 1-month 1-3-months 3-6-months '6+ months' flexible"`
	Source   *string `json:"source,omitempty" validate:"omitempty,oneof=website social-media referral other"`

	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

func (r *CreateContactRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Subject = strings.TrimSpace(r.Subject)

	if errs := validator.StructErrors(r); len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateContactRequest is the admin triage update.
type UpdateContactRequest struct {
	Status     *string `json:"status,omitempty" validate:"omitempty,oneof=new in-progress replied closed"`
	Priority   *string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	AssignedTo *string `json:"assigned_to,omitempty" validate:"omitempty,uuid"`
}

func (r *UpdateContactRequest) Validate() error {
	errs := validator.StructErrors(r)
	if r.Status == nil && r.Priority == nil && r.AssignedTo == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "request",
			Message: "at least one field must be provided",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AddNoteRequest struct {
	Note string `json:"note" validate:"required,max=2000"`
}

func (r *AddNoteRequest) Validate() error {
	r.Note = strings.TrimSpace(r.Note)
	if errs := validator.StructErrors(r); len(errs) > 0 {
		return errs
	}
	return nil
}

type ContactFilter struct {
	listing.Params
	Status     *string
	Priority   *string
	Service    *string
	AssignedTo *string
}

var SortableFields = []string{"created_at", "name", "status", "priority"}

func (f *ContactFilter) Validate() error {
	var errs validator.ValidationErrors
	if err := f.Params.Validate(SortableFields, "created_at", "desc"); err != nil {
		if listErrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, listErrs...)
		}
	}
	if f.Status != nil && *f.Status != "" && !validator.IsInSlice(*f.Status, Statuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "invalid status"})
	}
	if f.Priority != nil && *f.Priority != "" && !validator.IsInSlice(*f.Priority, Priorities) {
		errs = append(errs, validator.ValidationError{Field: "priority", Message: "invalid priority"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListContactResponse struct {
	Contacts []Contact    `json:"contacts"`
	Meta     listing.Meta `json:"-"`
}

type CountBy struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

type ContactStats struct {
	Total      int64     `json:"total"`
	New        int64     `json:"new"`
	ByStatus   []CountBy `json:"by_status"`
	ByPriority []CountBy `json:"by_priority"`
}
