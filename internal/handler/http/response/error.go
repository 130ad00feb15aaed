package response

import (
	"errors"
	"net/http"

	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/domain/attendance"
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/domain/auth"
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/domain/user"
	"github.com/brynsgtn/intern-attendance-webapp-sub000/internal/pkg/validator"
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
		Unauthorized(w, "Invalid or missing token")

	// Attendance conflicts: the caller's view of the record is stale
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in today")
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, "Already clocked out today")
	case errors.Is(err, attendance.ErrDuplicateDay):
		Conflict(w, "A record already exists for that day")
	case errors.Is(err, attendance.ErrConcurrentUpdate):
		Conflict(w, "The record was modified concurrently, retry the request")

	// Attendance lookups
	case errors.Is(err, attendance.ErrNotClockedIn):
		NotFound(w, "No open record for today")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Attendance bad input
	case errors.Is(err, attendance.ErrInvalidOrdering):
		BadRequest(w, "Clock-out must come after clock-in", nil)
	case errors.Is(err, attendance.ErrNoPendingRequest):
		BadRequest(w, "No pending edit request on that record", nil)

	// Authorization
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrReporterPrivilegeRequired):
		Forbidden(w, "Team leader or admin privilege required")
	case errors.Is(err, attendance.ErrNotRecordOwner):
		Forbidden(w, "Only the record owner may do that")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
