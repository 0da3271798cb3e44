package shift

import (
	"errors"
	"fmt"

	"github.com/rotaworks/rota-backend-go/internal/domain/location"
	"github.com/rotaworks/rota-backend-go/internal/domain/user"
	"github.com/rotaworks/rota-backend-go/internal/pkg/validator"
)

var (
	ErrShiftNotFound     = errors.New("shift not found")
	ErrWorkerNotAssigned = errors.New("you are not assigned to this shift")
	ErrAlreadyCancelled  = errors.New("shift is already cancelled")
	ErrCancelCompleted   = errors.New("cannot cancel a completed shift")
	ErrStatusConflict    = errors.New("shift was modified concurrently")
)

// InvalidStatusError reports an operation attempted while the shift is
// in a status that does not permit it.
type InvalidStatusError struct {
	Op     string
	Status ShiftStatus
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("cannot %s a shift with status %q", e.Op, e.Status)
}

// Stable machine codes carried by batch reconcile error items and by
// error responses.
const (
	CodeValidationError  = "VALIDATION_ERROR"
	CodeInvalidStatus    = "INVALID_STATUS"
	CodeStatusConflict   = "STATUS_CONFLICT"
	CodeShiftNotFound    = "SHIFT_NOT_FOUND"
	CodeUserNotFound     = "USER_NOT_FOUND"
	CodeLocationNotFound = "LOCATION_NOT_FOUND"
	CodeForbidden        = "FORBIDDEN"
	CodeInternalError    = "INTERNAL_ERROR"
)

// ErrorCode maps an error raised by a shift operation to its stable
// machine code. Clock window errors carry their own code.
func ErrorCode(err error) string {
	var validationErrs validator.ValidationErrors
	var invalidStatus *InvalidStatusError
	var clockWindow *ClockWindowError

	switch {
	case errors.As(err, &validationErrs):
		return CodeValidationError
	case errors.As(err, &invalidStatus):
		return CodeInvalidStatus
	case errors.As(err, &clockWindow):
		return clockWindow.Code
	case errors.Is(err, ErrShiftNotFound):
		return CodeShiftNotFound
	case errors.Is(err, user.ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, location.ErrLocationNotFound):
		return CodeLocationNotFound
	case errors.Is(err, ErrAlreadyCancelled), errors.Is(err, ErrCancelCompleted):
		return CodeInvalidStatus
	case errors.Is(err, ErrStatusConflict):
		return CodeStatusConflict
	case errors.Is(err, ErrWorkerNotAssigned):
		return CodeForbidden
	default:
		return CodeInternalError
	}
}
