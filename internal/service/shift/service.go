package shift

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rotaworks/rota-backend-go/internal/domain/location"
	"github.com/rotaworks/rota-backend-go/internal/domain/shift"
	"github.com/rotaworks/rota-backend-go/internal/domain/user"
	"github.com/rotaworks/rota-backend-go/internal/pkg/email"
	"github.com/rotaworks/rota-backend-go/internal/pkg/events"
)

type ShiftServiceImpl struct {
	shift.ShiftRepository
	user.UserRepository
	locationService       location.LocationService
	emailService          email.EmailService
	publisher             events.Publisher
	earlyClockInBuffer    time.Duration
	minimumClockOutBuffer time.Duration
}

func NewShiftService(
	shiftRepository shift.ShiftRepository,
	userRepository user.UserRepository,
	locationService location.LocationService,
	emailService email.EmailService,
	publisher events.Publisher,
	earlyClockInBuffer time.Duration,
	minimumClockOutBuffer time.Duration,
) shift.ShiftService {
	if earlyClockInBuffer <= 0 {
		earlyClockInBuffer = shift.DefaultEarlyClockInBuffer
	}
	if minimumClockOutBuffer <= 0 {
		minimumClockOutBuffer = shift.DefaultMinimumClockOutBuffer
	}
	return &ShiftServiceImpl{
		ShiftRepository:       shiftRepository,
		UserRepository:        userRepository,
		locationService:       locationService,
		emailService:          emailService,
		publisher:             publisher,
		earlyClockInBuffer:    earlyClockInBuffer,
		minimumClockOutBuffer: minimumClockOutBuffer,
	}
}

// clockPtrToString safely converts a *time.Time to an "HH:MM" string.
func clockPtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("15:04")
	return &format
}

// CreateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	workerData, err := s.UserRepository.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.ShiftResponse{}, user.ErrUserNotFound
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	locationData, err := s.locationService.Resolve(ctx, req.Location)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	date, err := shift.ParseDate(req.Date)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	window, err := shift.NewWindow(date, req.StartTime, req.FinishTime)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	numOfShiftsPerDay := 1
	if req.NumOfShiftsPerDay != nil {
		numOfShiftsPerDay = *req.NumOfShiftsPerDay
	}

	types := make([]shift.ShiftType, 0, len(req.TypeOfShift))
	for _, t := range req.TypeOfShift {
		types = append(types, shift.ShiftType(t))
	}

	newShift := shift.Shift{
		Title:             req.Title,
		Role:              req.Role,
		TypeOfShift:       types,
		UserID:            workerData.ID,
		LocationID:        locationData.ID,
		Date:              date,
		StartTime:         window.Start,
		FinishTime:        window.Finish,
		NumOfShiftsPerDay: numOfShiftsPerDay,
		Status:            shift.StatusScheduled,
	}

	created, err := s.ShiftRepository.Create(ctx, newShift)
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}

	created.WorkerName = workerData.Name
	created.WorkerEmail = workerData.Email
	created.WorkerRole = string(workerData.Role)
	created.LocationName = locationData.Name
	created.LocationAddress = locationData.Address
	created.LocationPostCode = locationData.PostCode
	created.LocationDistance = locationData.Distance
	created.LocationConstituency = locationData.Constituency
	created.LocationAdminDistrict = locationData.AdminDistrict

	go func() {
		err := s.emailService.SendShiftAssigned(
			created.WorkerEmail,
			created.WorkerName,
			created.Title,
			created.Date.Format("2006-01-02"),
			created.StartTime.Format("15:04"),
			created.FinishTime.Format("15:04"),
			created.LocationName,
		)
		if err != nil {
			slog.Error("failed to send shift assigned email", "shift_id", created.ID, "error", err)
		}
	}()

	_ = s.publisher.Publish(ctx, shiftEvent(events.TypeShiftCreated, created))

	return mapShiftToResponse(created), nil
}

// UpdateShift implements shift.ShiftService. Only Scheduled shifts can
// be edited.
func (s *ShiftServiceImpl) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	existing, err := s.ShiftRepository.GetByID(ctx, req.ID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if !existing.CanEdit() {
		return shift.ShiftResponse{}, &shift.InvalidStatusError{Op: "edit", Status: existing.Status}
	}

	updated := existing
	reassigned := false

	if req.Title != nil {
		updated.Title = *req.Title
	}
	if req.Role != nil {
		updated.Role = *req.Role
	}
	if req.TypeOfShift != nil {
		types := make([]shift.ShiftType, 0, len(req.TypeOfShift))
		for _, t := range req.TypeOfShift {
			types = append(types, shift.ShiftType(t))
		}
		updated.TypeOfShift = types
	}
	if req.NumOfShiftsPerDay != nil {
		updated.NumOfShiftsPerDay = *req.NumOfShiftsPerDay
	}

	if req.UserID != nil && *req.UserID != existing.UserID {
		workerData, err := s.UserRepository.GetByID(ctx, *req.UserID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return shift.ShiftResponse{}, user.ErrUserNotFound
			}
			return shift.ShiftResponse{}, fmt.Errorf("failed to get user by id: %w", err)
		}
		updated.UserID = workerData.ID
		updated.WorkerName = workerData.Name
		updated.WorkerEmail = workerData.Email
		updated.WorkerRole = string(workerData.Role)
		reassigned = true
	}

	if req.Location != nil {
		locationData, err := s.locationService.Resolve(ctx, *req.Location)
		if err != nil {
			return shift.ShiftResponse{}, err
		}
		updated.LocationID = locationData.ID
		updated.LocationName = locationData.Name
		updated.LocationAddress = locationData.Address
		updated.LocationPostCode = locationData.PostCode
		updated.LocationDistance = locationData.Distance
		updated.LocationConstituency = locationData.Constituency
		updated.LocationAdminDistrict = locationData.AdminDistrict
	}

	// Re-anchor the time window when the date or either clock changes.
	if req.Date != nil || req.StartTime != nil || req.FinishTime != nil {
		date := existing.Date
		if req.Date != nil {
			date, err = shift.ParseDate(*req.Date)
			if err != nil {
				return shift.ShiftResponse{}, err
			}
			updated.Date = date
		}
		startClock := existing.StartTime.Format("15:04")
		if req.StartTime != nil {
			startClock = *req.StartTime
		}
		finishClock := existing.FinishTime.Format("15:04")
		if req.FinishTime != nil {
			finishClock = *req.FinishTime
		}

		window, err := shift.NewWindow(date, startClock, finishClock)
		if err != nil {
			return shift.ShiftResponse{}, err
		}
		updated.StartTime = window.Start
		updated.FinishTime = window.Finish
	}

	persisted, err := s.ShiftRepository.Update(ctx, updated)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if reassigned {
		go func() {
			err := s.emailService.SendShiftAssigned(
				persisted.WorkerEmail,
				persisted.WorkerName,
				persisted.Title,
				persisted.Date.Format("2006-01-02"),
				persisted.StartTime.Format("15:04"),
				persisted.FinishTime.Format("15:04"),
				persisted.LocationName,
			)
			if err != nil {
				slog.Error("failed to send shift assigned email", "shift_id", persisted.ID, "error", err)
			}
		}()
	}

	_ = s.publisher.Publish(ctx, shiftEvent(events.TypeShiftUpdated, persisted))

	return mapShiftToResponse(persisted), nil
}

// DeleteShift implements shift.ShiftService. Deletion has no status
// gate, a shift may be removed in any state.
func (s *ShiftServiceImpl) DeleteShift(ctx context.Context, id string) error {
	existing, err := s.ShiftRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.ShiftRepository.Delete(ctx, id); err != nil {
		return err
	}

	_ = s.publisher.Publish(ctx, shiftEvent(events.TypeShiftDeleted, existing))

	return nil
}

// CancelShift implements shift.ShiftService.
func (s *ShiftServiceImpl) CancelShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	existing, err := s.ShiftRepository.GetByID(ctx, id)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	if err := existing.EnsureCancellable(); err != nil {
		return shift.ShiftResponse{}, err
	}

	if err := s.ShiftRepository.MarkCancelled(ctx, id); err != nil {
		return shift.ShiftResponse{}, err
	}

	cancelled := existing
	cancelled.Status = shift.StatusCancelled

	go func() {
		err := s.emailService.SendShiftCancelled(
			cancelled.WorkerEmail,
			cancelled.WorkerName,
			cancelled.Title,
			cancelled.Date.Format("2006-01-02"),
		)
		if err != nil {
			slog.Error("failed to send shift cancelled email", "shift_id", cancelled.ID, "error", err)
		}
	}()

	_ = s.publisher.Publish(ctx, shiftEvent(events.TypeShiftCancelled, cancelled))

	return mapShiftToResponse(cancelled), nil
}

// ClockIn implements shift.ShiftService. Only the assigned worker can
// clock in, and only inside the permitted window.
func (s *ShiftServiceImpl) ClockIn(ctx context.Context, shiftID, userID string) (shift.ClockActionResponse, error) {
	existing, err := s.ShiftRepository.GetByID(ctx, shiftID)
	if err != nil {
		return shift.ClockActionResponse{}, err
	}

	if !existing.IsAssignedTo(userID) {
		return shift.ClockActionResponse{}, shift.ErrWorkerNotAssigned
	}

	if err := existing.EnsureClockInAllowed(); err != nil {
		return shift.ClockActionResponse{}, err
	}

	now := time.Now()
	window := shift.Window{Start: existing.StartTime, Finish: existing.FinishTime}
	if err := window.ValidateClockIn(now, s.earlyClockInBuffer); err != nil {
		return shift.ClockActionResponse{}, err
	}

	if err := s.ShiftRepository.MarkClockedIn(ctx, shiftID, now); err != nil {
		return shift.ClockActionResponse{}, err
	}

	existing.Status = shift.StatusInProgress
	existing.ClockInTime = &now
	_ = s.publisher.Publish(ctx, shiftEvent(events.TypeShiftClockedIn, existing))

	return shift.ClockActionResponse{
		ID:          existing.ID,
		Status:      string(shift.StatusInProgress),
		ClockInTime: clockPtrToString(&now),
	}, nil
}

// ClockOut implements shift.ShiftService.
func (s *ShiftServiceImpl) ClockOut(ctx context.Context, shiftID, userID string) (shift.ClockActionResponse, error) {
	existing, err := s.ShiftRepository.GetByID(ctx, shiftID)
	if err != nil {
		return shift.ClockActionResponse{}, err
	}

	if !existing.IsAssignedTo(userID) {
		return shift.ClockActionResponse{}, shift.ErrWorkerNotAssigned
	}

	if err := existing.EnsureClockOutAllowed(); err != nil {
		return shift.ClockActionResponse{}, err
	}

	now := time.Now()
	window := shift.Window{Start: existing.StartTime, Finish: existing.FinishTime}
	if err := window.ValidateClockOut(now, s.minimumClockOutBuffer); err != nil {
		return shift.ClockActionResponse{}, err
	}

	if err := s.ShiftRepository.MarkClockedOut(ctx, shiftID, now); err != nil {
		return shift.ClockActionResponse{}, err
	}

	existing.Status = shift.StatusCompleted
	existing.ClockOutTime = &now
	_ = s.publisher.Publish(ctx, shiftEvent(events.TypeShiftClockedOut, existing))

	return shift.ClockActionResponse{
		ID:           existing.ID,
		Status:       string(shift.StatusCompleted),
		ClockOutTime: clockPtrToString(&now),
	}, nil
}

// BatchReconcile implements shift.ShiftService. Items with an id update
// the matching shift, items without create a new one. Each item stands
// alone: a failure is recorded and the rest of the batch continues.
func (s *ShiftServiceImpl) BatchReconcile(ctx context.Context, items []shift.BatchShiftItem) (shift.BatchReconcileResponse, error) {
	resp := shift.BatchReconcileResponse{
		Created: make([]shift.ShiftResponse, 0),
		Updated: make([]shift.ShiftResponse, 0),
		Errors:  make([]shift.BatchShiftError, 0),
	}

	for i, item := range items {
		if item.ID == nil || *item.ID == "" {
			created, err := s.CreateShift(ctx, item.AsCreate())
			if err != nil {
				resp.Errors = append(resp.Errors, batchError(i, item, err))
				continue
			}
			resp.Created = append(resp.Created, created)
		} else {
			updated, err := s.UpdateShift(ctx, item.AsUpdate())
			if err != nil {
				resp.Errors = append(resp.Errors, batchError(i, item, err))
				continue
			}
			resp.Updated = append(resp.Updated, updated)
		}
	}

	return resp, nil
}

func batchError(index int, item shift.BatchShiftItem, err error) shift.BatchShiftError {
	return shift.BatchShiftError{
		Index: index,
		Shift: item,
		Error: shift.BatchErrorDetail{
			Message:   err.Error(),
			ErrorCode: shift.ErrorCode(err),
		},
	}
}

func shiftEvent(eventType string, sh shift.Shift) events.ShiftEvent {
	return events.ShiftEvent{
		Type:       eventType,
		ShiftID:    sh.ID,
		UserID:     sh.UserID,
		Title:      sh.Title,
		Status:     string(sh.Status),
		Date:       sh.Date.Format("2006-01-02"),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
