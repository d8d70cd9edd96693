package user

import (
	"strings"
	"time"

	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Phone     *string    `json:"phone,omitempty"`
	AvatarURL *string    `json:"avatar_url,omitempty"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// UpdateDetailsRequest changes the caller's own profile fields.
type UpdateDetailsRequest struct {
	Name      *string `json:"name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

func (r *UpdateDetailsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name == nil && r.Email == nil && r.Phone == nil && r.AvatarURL == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "request",
			Message: "at least one field must be provided",
		})
	}

	if r.Name != nil {
		trimmed := strings.TrimSpace(*r.Name)
		r.Name = &trimmed
		if validator.IsEmpty(trimmed) {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name cannot be empty",
			})
		} else if len(trimmed) > 100 {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not exceed 100 characters",
			})
		}
	}

	if r.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &normalized
		if !validator.IsValidEmail(normalized) {
			errs = append(errs, validator.ValidationError{
				Field:   "email",
				Message: "invalid email format",
			})
		}
	}

	if r.AvatarURL != nil && *r.AvatarURL != "" && !validator.IsValidURL(*r.AvatarURL) {
		errs = append(errs, validator.ValidationError{
			Field:   "avatar_url",
			Message: "avatar_url must be a valid URL",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
