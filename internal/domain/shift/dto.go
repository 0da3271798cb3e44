package shift

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rotaworks/rota-backend-go/internal/domain/location"
	"github.com/rotaworks/rota-backend-go/internal/domain/user"
	"github.com/rotaworks/rota-backend-go/internal/pkg/validator"
)

// ParseDate accepts a calendar date ("2006-01-02") or a full ISO8601
// timestamp and returns the parsed instant.
func ParseDate(dateStr string) (time.Time, error) {
	if d, ok := validator.IsValidDate(dateStr); ok {
		return d, nil
	}
	if d, ok := validator.IsValidDateTime(dateStr); ok {
		return d, nil
	}
	return time.Time{}, fmt.Errorf("%q is not a valid ISO date", dateStr)
}

func shiftTypeStrings() []string {
	values := make([]string, 0, len(ShiftTypeValues))
	for _, v := range ShiftTypeValues {
		values = append(values, string(v))
	}
	return values
}

func shiftStatusStrings() []string {
	values := make([]string, 0, len(ShiftStatusValues))
	for _, v := range ShiftStatusValues {
		values = append(values, string(v))
	}
	return values
}

type CreateShiftRequest struct {
	Title             string           `json:"title"`
	Role              string           `json:"role"`
	TypeOfShift       []string         `json:"typeOfShift"`
	UserID            string           `json:"user"`
	StartTime         string           `json:"startTime"`
	FinishTime        string           `json:"finishTime"`
	NumOfShiftsPerDay *int             `json:"numOfShiftsPerDay,omitempty"`
	Location          location.Payload `json:"location"`
	Date              string           `json:"date"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if len(r.Title) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role is required",
		})
	}

	if len(r.TypeOfShift) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "typeOfShift",
			Message: "typeOfShift must contain at least one value",
		})
	}
	for _, t := range r.TypeOfShift {
		if !validator.IsInSlice(t, shiftTypeStrings()) {
			errs = append(errs, validator.ValidationError{
				Field:   "typeOfShift",
				Message: fmt.Sprintf("%q is not a valid shift type, must be one of %s", t, strings.Join(shiftTypeStrings(), ", ")),
			})
		}
	}

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user",
			Message: "user is required",
		})
	}

	if validator.IsEmpty(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "startTime",
			Message: "startTime is required",
		})
	} else if !validator.IsValidClockTime(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "startTime",
			Message: "startTime must be a 24-hour HH:MM clock time",
		})
	}

	if validator.IsEmpty(r.FinishTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "finishTime",
			Message: "finishTime is required",
		})
	} else if !validator.IsValidClockTime(r.FinishTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "finishTime",
			Message: "finishTime must be a 24-hour HH:MM clock time",
		})
	}

	if r.NumOfShiftsPerDay != nil && *r.NumOfShiftsPerDay < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "numOfShiftsPerDay",
			Message: "numOfShiftsPerDay must be a positive number",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if d, err := ParseDate(r.Date); err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be a valid ISO date",
		})
	} else if isPastDay(d) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must not be in the past",
		})
	}

	if err := r.Location.Validate(); err != nil {
		var locationErrs validator.ValidationErrors
		if errors.As(err, &locationErrs) {
			errs = append(errs, locationErrs...)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// isPastDay reports whether the instant falls on a calendar day before
// today. A shift later today is not in the past.
func isPastDay(d time.Time) bool {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
	return day.Before(today)
}

type UpdateShiftRequest struct {
	ID                string            `json:"-"`
	Title             *string           `json:"title,omitempty"`
	Role              *string           `json:"role,omitempty"`
	TypeOfShift       []string          `json:"typeOfShift,omitempty"`
	UserID            *string           `json:"user,omitempty"`
	StartTime         *string           `json:"startTime,omitempty"`
	FinishTime        *string           `json:"finishTime,omitempty"`
	NumOfShiftsPerDay *int              `json:"numOfShiftsPerDay,omitempty"`
	Location          *location.Payload `json:"location,omitempty"`
	Date              *string           `json:"date,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Title != nil {
		if validator.IsEmpty(*r.Title) {
			errs = append(errs, validator.ValidationError{
				Field:   "title",
				Message: "title must not be empty",
			})
		} else if len(*r.Title) > 255 {
			errs = append(errs, validator.ValidationError{
				Field:   "title",
				Message: "title must not exceed 255 characters",
			})
		}
	}

	if r.Role != nil && validator.IsEmpty(*r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must not be empty",
		})
	}

	if r.TypeOfShift != nil {
		if len(r.TypeOfShift) == 0 {
			errs = append(errs, validator.ValidationError{
				Field:   "typeOfShift",
				Message: "typeOfShift must contain at least one value",
			})
		}
		for _, t := range r.TypeOfShift {
			if !validator.IsInSlice(t, shiftTypeStrings()) {
				errs = append(errs, validator.ValidationError{
					Field:   "typeOfShift",
					Message: fmt.Sprintf("%q is not a valid shift type, must be one of %s", t, strings.Join(shiftTypeStrings(), ", ")),
				})
			}
		}
	}

	if r.UserID != nil && validator.IsEmpty(*r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user",
			Message: "user must not be empty",
		})
	}

	if r.StartTime != nil && !validator.IsValidClockTime(*r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "startTime",
			Message: "startTime must be a 24-hour HH:MM clock time",
		})
	}

	if r.FinishTime != nil && !validator.IsValidClockTime(*r.FinishTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "finishTime",
			Message: "finishTime must be a 24-hour HH:MM clock time",
		})
	}

	if r.NumOfShiftsPerDay != nil && *r.NumOfShiftsPerDay < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "numOfShiftsPerDay",
			Message: "numOfShiftsPerDay must be a positive number",
		})
	}

	if r.Date != nil {
		if d, err := ParseDate(*r.Date); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be a valid ISO date",
			})
		} else if isPastDay(d) {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must not be in the past",
			})
		}
	}

	if r.Location != nil {
		if err := r.Location.Validate(); err != nil {
			var locationErrs validator.ValidationErrors
			if errors.As(err, &locationErrs) {
				errs = append(errs, locationErrs...)
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BatchShiftItem is one entry of a reconcile request. An item carrying
// an id targets an existing shift; one without an id creates a new one.
type BatchShiftItem struct {
	ID                *string           `json:"id,omitempty"`
	Title             *string           `json:"title,omitempty"`
	Role              *string           `json:"role,omitempty"`
	TypeOfShift       []string          `json:"typeOfShift,omitempty"`
	UserID            *string           `json:"user,omitempty"`
	StartTime         *string           `json:"startTime,omitempty"`
	FinishTime        *string           `json:"finishTime,omitempty"`
	NumOfShiftsPerDay *int              `json:"numOfShiftsPerDay,omitempty"`
	Location          *location.Payload `json:"location,omitempty"`
	Date              *string           `json:"date,omitempty"`
}

// AsCreate converts an item without an id into a create request.
// Missing required fields surface through CreateShiftRequest.Validate.
func (it *BatchShiftItem) AsCreate() CreateShiftRequest {
	req := CreateShiftRequest{
		TypeOfShift:       it.TypeOfShift,
		NumOfShiftsPerDay: it.NumOfShiftsPerDay,
	}
	if it.Title != nil {
		req.Title = *it.Title
	}
	if it.Role != nil {
		req.Role = *it.Role
	}
	if it.UserID != nil {
		req.UserID = *it.UserID
	}
	if it.StartTime != nil {
		req.StartTime = *it.StartTime
	}
	if it.FinishTime != nil {
		req.FinishTime = *it.FinishTime
	}
	if it.Location != nil {
		req.Location = *it.Location
	}
	if it.Date != nil {
		req.Date = *it.Date
	}
	return req
}

// AsUpdate converts an item with an id into an update request.
func (it *BatchShiftItem) AsUpdate() UpdateShiftRequest {
	return UpdateShiftRequest{
		ID:                *it.ID,
		Title:             it.Title,
		Role:              it.Role,
		TypeOfShift:       it.TypeOfShift,
		UserID:            it.UserID,
		StartTime:         it.StartTime,
		FinishTime:        it.FinishTime,
		NumOfShiftsPerDay: it.NumOfShiftsPerDay,
		Location:          it.Location,
		Date:              it.Date,
	}
}

type BatchErrorDetail struct {
	Message   string `json:"message"`
	ErrorCode string `json:"errorCode"`
}

// BatchShiftError pairs a failed reconcile item with what went wrong.
// Index is the item's position in the original request.
type BatchShiftError struct {
	Index int              `json:"index"`
	Shift BatchShiftItem   `json:"shift"`
	Error BatchErrorDetail `json:"error"`
}

type BatchReconcileResponse struct {
	Created []ShiftResponse   `json:"created"`
	Updated []ShiftResponse   `json:"updated"`
	Errors  []BatchShiftError `json:"errors"`
}

// ShiftFilter carries the paging, filtering and ordering options of a
// shift listing.
type ShiftFilter struct {
	UserID    *string
	Status    *string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

var sortableShiftFields = []string{"date", "startTime", "finishTime", "title", "role", "status", "createdAt", "updatedAt"}

func (f *ShiftFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be at least 1",
		})
	} else if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be at least 1",
		})
	} else if f.Limit == 0 {
		f.Limit = 10
	} else if f.Limit > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 1000",
		})
	}

	if f.Status != nil && !validator.IsInSlice(*f.Status, shiftStatusStrings()) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("status must be one of %s", strings.Join(shiftStatusStrings(), ", ")),
		})
	}

	if f.SortBy == "" {
		f.SortBy = "date"
	} else if !validator.IsInSlice(f.SortBy, sortableShiftFields) {
		errs = append(errs, validator.ValidationError{
			Field:   "sortBy",
			Message: fmt.Sprintf("sortBy must be one of %s", strings.Join(sortableShiftFields, ", ")),
		})
	}

	if f.SortOrder != "" && f.SortOrder != "asc" && f.SortOrder != "desc" {
		errs = append(errs, validator.ValidationError{
			Field:   "sortOrder",
			Message: "sortOrder must be either asc or desc",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Offset returns the number of rows to skip for the current page.
func (f *ShiftFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// ShiftResponse is the denormalized shift view returned by every read
// and write operation. Clock fields are "HH:MM" strings; the date stays
// a full instant.
type ShiftResponse struct {
	ID                string           `json:"id"`
	Title             string           `json:"title"`
	Role              string           `json:"role"`
	TypeOfShift       []string         `json:"typeOfShift"`
	User              user.Summary     `json:"user"`
	Location          location.Summary `json:"location"`
	Date              time.Time        `json:"date"`
	StartTime         string           `json:"startTime"`
	FinishTime        string           `json:"finishTime"`
	NumOfShiftsPerDay int              `json:"numOfShiftsPerDay"`
	Status            string           `json:"status"`
	ClockInTime       *string          `json:"clockInTime"`
	ClockOutTime      *string          `json:"clockOutTime"`
	CreatedAt         string           `json:"createdAt"`
	UpdatedAt         string           `json:"updatedAt"`
}

// ClockActionResponse is the minimal projection returned by clock-in
// and clock-out.
type ClockActionResponse struct {
	ID           string  `json:"id"`
	Status       string  `json:"status"`
	ClockInTime  *string `json:"clockInTime,omitempty"`
	ClockOutTime *string `json:"clockOutTime,omitempty"`
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
	Limit       int   `json:"limit"`
}

type ListShiftsResponse struct {
	Shifts     []ShiftResponse `json:"shifts"`
	Pagination Pagination      `json:"pagination"`
}
