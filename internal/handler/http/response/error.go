package response

import (
	"errors"
	"net/http"

	"github.com/rotaworks/rota-backend-go/internal/domain/auth"
	"github.com/rotaworks/rota-backend-go/internal/domain/location"
	"github.com/rotaworks/rota-backend-go/internal/domain/report"
	"github.com/rotaworks/rota-backend-go/internal/domain/shift"
	"github.com/rotaworks/rota-backend-go/internal/domain/user"
	"github.com/rotaworks/rota-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Handlers call this
// for any error coming back from a service.
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Clock window refusals carry their own code (too early, expired)
	var windowErr *shift.ClockWindowError
	if errors.As(err, &windowErr) {
		TimeWindowViolation(w, windowErr.Code, windowErr.Message)
		return
	}

	var statusErr *shift.InvalidStatusError
	if errors.As(err, &statusErr) {
		InvalidStatus(w, statusErr.Error())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenCookieNotFound),
		errors.Is(err, auth.ErrRefreshTokenCookieEmpty):
		Unauthorized(w, "Refresh token is missing")
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "You do not have permission to perform this action")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrWorkerNotAssigned):
		Forbidden(w, "You are not assigned to this shift")
	case errors.Is(err, shift.ErrAlreadyCancelled),
		errors.Is(err, shift.ErrCancelCompleted):
		InvalidStatus(w, err.Error())
	case errors.Is(err, shift.ErrStatusConflict):
		StatusConflict(w, "Shift was modified by another request, please retry")

	// Location domain errors
	case errors.Is(err, location.ErrLocationNotFound):
		NotFound(w, "Location not found")

	// Report domain errors
	case errors.Is(err, report.ErrReportNotFound):
		NotFound(w, "Report not found")
	case errors.Is(err, report.ErrInvalidReportFileName):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
