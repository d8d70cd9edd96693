package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/novatech-uz/company-backend-go/internal/domain/attendance"
	"github.com/novatech-uz/company-backend-go/internal/domain/auth"
	"github.com/novatech-uz/company-backend-go/internal/domain/award"
	"github.com/novatech-uz/company-backend-go/internal/domain/contact"
	"github.com/novatech-uz/company-backend-go/internal/domain/employee"
	"github.com/novatech-uz/company-backend-go/internal/domain/feature"
	"github.com/novatech-uz/company-backend-go/internal/domain/product"
	"github.com/novatech-uz/company-backend-go/internal/domain/technology"
	"github.com/novatech-uz/company-backend-go/internal/domain/testimonial"
	"github.com/novatech-uz/company-backend-go/internal/domain/user"
	"github.com/novatech-uz/company-backend-go/internal/pkg/export"
	"github.com/novatech-uz/company-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrWrongPassword):
		Unauthorized(w, err.Error())

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is deactivated")
	case errors.Is(err, user.ErrAdminPrivilegeRequired), errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDuplicateEntry):
		Conflict(w, "Attendance already recorded for today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out")
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		ValidationError(w, map[string]string{"check_out": err.Error()})
	case errors.Is(err, attendance.ErrApproverNotFound):
		NotFound(w, "Approver not found")

	// Team domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Team member not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		UnprocessableEntity(w, "Team member is not active")
	case errors.Is(err, employee.ErrEmployeeHasAttendance):
		Conflict(w, "Team member has attendance records")

	// Contact domain errors
	case errors.Is(err, contact.ErrContactNotFound):
		NotFound(w, "Contact not found")
	case errors.Is(err, contact.ErrAssigneeNotFound):
		NotFound(w, "Assignee not found")
	case errors.Is(err, contact.ErrAssigneeNotAdmin):
		UnprocessableEntity(w, err.Error())

	// Content domain errors
	case errors.Is(err, product.ErrProductNotFound):
		NotFound(w, "Product not found")
	case errors.Is(err, product.ErrProductNameExists):
		Conflict(w, err.Error())
	case errors.Is(err, technology.ErrTechnologyNotFound):
		NotFound(w, "Technology not found")
	case errors.Is(err, technology.ErrTechnologyNameExists):
		Conflict(w, err.Error())
	case errors.Is(err, award.ErrAwardNotFound):
		NotFound(w, "Award not found")
	case errors.Is(err, testimonial.ErrTestimonialNotFound):
		NotFound(w, "Testimonial not found")
	case errors.Is(err, testimonial.ErrProjectNotFound):
		UnprocessableEntity(w, err.Error())
	case errors.Is(err, feature.ErrFeatureNotFound):
		NotFound(w, "Feature not found")

	case errors.Is(err, export.ErrUnsupportedFormat):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
