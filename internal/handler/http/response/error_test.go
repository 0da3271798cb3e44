package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rotaworks/rota-backend-go/internal/domain/auth"
	"github.com/rotaworks/rota-backend-go/internal/domain/location"
	"github.com/rotaworks/rota-backend-go/internal/domain/report"
	"github.com/rotaworks/rota-backend-go/internal/domain/shift"
	"github.com/rotaworks/rota-backend-go/internal/domain/user"
	"github.com/rotaworks/rota-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "clock in too early",
			err:        &shift.ClockWindowError{Code: shift.CodeClockInTooEarly, Message: "too early to clock in"},
			wantStatus: http.StatusBadRequest,
			wantCode:   shift.CodeClockInTooEarly,
		},
		{
			name:       "shift time expired",
			err:        &shift.ClockWindowError{Code: shift.CodeShiftTimeExpired, Message: "shift time has expired"},
			wantStatus: http.StatusBadRequest,
			wantCode:   shift.CodeShiftTimeExpired,
		},
		{
			name:       "clock out too early",
			err:        &shift.ClockWindowError{Code: shift.CodeClockOutTooEarly, Message: "too early to clock out"},
			wantStatus: http.StatusBadRequest,
			wantCode:   shift.CodeClockOutTooEarly,
		},
		{
			name:       "edit refused by status",
			err:        &shift.InvalidStatusError{Op: "update", Status: shift.StatusCompleted},
			wantStatus: http.StatusConflict,
			wantCode:   "INVALID_STATUS",
		},
		{
			name:       "already cancelled",
			err:        shift.ErrAlreadyCancelled,
			wantStatus: http.StatusConflict,
			wantCode:   "INVALID_STATUS",
		},
		{
			name:       "cancel completed",
			err:        shift.ErrCancelCompleted,
			wantStatus: http.StatusConflict,
			wantCode:   "INVALID_STATUS",
		},
		{
			name:       "lost race with concurrent transition",
			err:        shift.ErrStatusConflict,
			wantStatus: http.StatusConflict,
			wantCode:   "STATUS_CONFLICT",
		},
		{
			name:       "shift not found",
			err:        shift.ErrShiftNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "worker not assigned",
			err:        shift.ErrWorkerNotAssigned,
			wantStatus: http.StatusForbidden,
			wantCode:   "FORBIDDEN",
		},
		{
			name:       "user not found",
			err:        user.ErrUserNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "insufficient permissions",
			err:        user.ErrInsufficientPermissions,
			wantStatus: http.StatusForbidden,
			wantCode:   "FORBIDDEN",
		},
		{
			name:       "location not found",
			err:        location.ErrLocationNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "report not found",
			err:        report.ErrReportNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
		{
			name:       "invalid report file name",
			err:        report.ErrInvalidReportFileName,
			wantStatus: http.StatusBadRequest,
			wantCode:   "BAD_REQUEST",
		},
		{
			name:       "invalid credentials",
			err:        auth.ErrInvalidCredentials,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:       "invalid token",
			err:        auth.ErrInvalidToken,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:       "refresh token revoked",
			err:        auth.ErrRefreshTokenRevoked,
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:       "email already registered",
			err:        auth.ErrEmailAlreadyExists,
			wantStatus: http.StatusConflict,
			wantCode:   "CONFLICT",
		},
		{
			name:       "unknown error",
			err:        fmt.Errorf("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_SERVER_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			HandleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			body := decodeResponse(t, rec)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	errs := validator.ValidationErrors{
		{Field: "title", Message: "title is required"},
		{Field: "startTime", Message: "startTime must be in HH:MM format"},
	}
	rec := httptest.NewRecorder()

	HandleError(rec, errs)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decodeResponse(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "title is required", body.Error.Details["title"])
	assert.Equal(t, "startTime must be in HH:MM format", body.Error.Details["startTime"])
}

func TestHandleError_UnwrapsWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("failed to get shift: %w", shift.ErrShiftNotFound)
	rec := httptest.NewRecorder()

	HandleError(rec, wrapped)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeResponse(t, rec)
	require.NotNil(t, body.Error)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
}

func TestHandleError_InvalidStatusMessageNamesOperation(t *testing.T) {
	rec := httptest.NewRecorder()

	HandleError(rec, &shift.InvalidStatusError{Op: "update", Status: shift.StatusInProgress})

	body := decodeResponse(t, rec)
	require.NotNil(t, body.Error)
	assert.Contains(t, body.Error.Message, "update")
	assert.Contains(t, body.Error.Message, "In Progress")
}
