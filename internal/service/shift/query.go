package shift

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rotaworks/rota-backend-go/internal/domain/location"
	"github.com/rotaworks/rota-backend-go/internal/domain/shift"
	"github.com/rotaworks/rota-backend-go/internal/domain/user"
)

// GetShift implements shift.ShiftService.
func (s *ShiftServiceImpl) GetShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	found, err := s.ShiftRepository.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return mapShiftToResponse(found), nil
}

// ListShifts implements shift.ShiftService. Newest shifts come first
// unless the caller asks otherwise.
func (s *ShiftServiceImpl) ListShifts(ctx context.Context, filter shift.ShiftFilter) (shift.ListShiftsResponse, error) {
	if filter.SortOrder == "" {
		filter.SortOrder = "desc"
	}
	if err := filter.Validate(); err != nil {
		return shift.ListShiftsResponse{}, err
	}

	shifts, total, err := s.ShiftRepository.List(ctx, filter)
	if err != nil {
		return shift.ListShiftsResponse{}, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		responses = append(responses, mapShiftToResponse(sh))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return shift.ListShiftsResponse{
		Shifts: responses,
		Pagination: shift.Pagination{
			CurrentPage: filter.Page,
			TotalPages:  totalPages,
			TotalCount:  total,
			HasNextPage: filter.Page < totalPages,
			HasPrevPage: filter.Page > 1,
			Limit:       filter.Limit,
		},
	}, nil
}

// MyShifts implements shift.ShiftService. The listing is pinned to the
// calling worker and runs oldest first so the next shift tops the list.
func (s *ShiftServiceImpl) MyShifts(ctx context.Context, userID string, filter shift.ShiftFilter) (shift.ListShiftsResponse, error) {
	filter.UserID = &userID
	if filter.SortOrder == "" {
		filter.SortOrder = "asc"
	}
	return s.ListShifts(ctx, filter)
}

// mapShiftToResponse converts a Shift entity to ShiftResponse
func mapShiftToResponse(sh shift.Shift) shift.ShiftResponse {
	types := make([]string, 0, len(sh.TypeOfShift))
	for _, t := range sh.TypeOfShift {
		types = append(types, string(t))
	}

	return shift.ShiftResponse{
		ID:          sh.ID,
		Title:       sh.Title,
		Role:        sh.Role,
		TypeOfShift: types,
		User: user.Summary{
			ID:    sh.UserID,
			Name:  sh.WorkerName,
			Email: sh.WorkerEmail,
			Role:  sh.WorkerRole,
		},
		Location: location.Summary{
			ID:            sh.LocationID,
			Name:          sh.LocationName,
			Address:       sh.LocationAddress,
			PostCode:      sh.LocationPostCode,
			Distance:      sh.LocationDistance,
			Constituency:  sh.LocationConstituency,
			AdminDistrict: sh.LocationAdminDistrict,
		},
		Date:              sh.Date,
		StartTime:         sh.StartTime.Format("15:04"),
		FinishTime:        sh.FinishTime.Format("15:04"),
		NumOfShiftsPerDay: sh.NumOfShiftsPerDay,
		Status:            string(sh.Status),
		ClockInTime:       clockPtrToString(sh.ClockInTime),
		ClockOutTime:      clockPtrToString(sh.ClockOutTime),
		CreatedAt:         sh.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         sh.UpdatedAt.Format(time.RFC3339),
	}
}
