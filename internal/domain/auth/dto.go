package auth

import (
	"strings"

	"github.com/novatech-uz/company-backend-go/internal/domain/user"
	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
)

const minPasswordLength = 6

type RegisterRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Phone    *string `json:"phone,omitempty"`
}

func (r *RegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	errs = append(errs, validatePassword("password", r.Password)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	}
	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *UpdatePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CurrentPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "current_password",
			Message: "current_password is required",
		})
	}

	errs = append(errs, validatePassword("new_password", r.NewPassword)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePassword(field, password string) validator.ValidationErrors {
	if validator.IsEmpty(password) {
		return validator.ValidationErrors{{Field: field, Message: field + " is required"}}
	}
	if len(password) < minPasswordLength {
		return validator.ValidationErrors{{Field: field, Message: field + " must be at least 6 characters long"}}
	}
	if len(password) > 72 {
		return validator.ValidationErrors{{Field: field, Message: field + " must not exceed 72 characters"}}
	}
	return nil
}

// SessionTrackingRequest carries client metadata stored with a refresh token.
type SessionTrackingRequest struct {
	IPAddress string
	UserAgent string
}

type TokenResponse struct {
	AccessToken           string            `json:"access_token"`
	AccessTokenExpiresIn  int64             `json:"access_token_expires_in"`
	RefreshToken          string            `json:"-"`
	RefreshTokenExpiresIn int64             `json:"-"`
	User                  user.UserResponse `json:"user"`
}
