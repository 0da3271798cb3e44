package shift

import "context"

type ShiftService interface {
	CreateShift(ctx context.Context, req CreateShiftRequest) (ShiftResponse, error)
	GetShift(ctx context.Context, id string) (ShiftResponse, error)
	UpdateShift(ctx context.Context, req UpdateShiftRequest) (ShiftResponse, error)
	DeleteShift(ctx context.Context, id string) error
	CancelShift(ctx context.Context, id string) (ShiftResponse, error)

	// ClockIn and ClockOut are worker actions: they refuse callers who
	// are not the assigned worker and return a minimal projection.
	ClockIn(ctx context.Context, shiftID, userID string) (ClockActionResponse, error)
	ClockOut(ctx context.Context, shiftID, userID string) (ClockActionResponse, error)

	// BatchReconcile applies an ordered list of create and update items
	// with per-item failure isolation.
	BatchReconcile(ctx context.Context, items []BatchShiftItem) (BatchReconcileResponse, error)

	ListShifts(ctx context.Context, filter ShiftFilter) (ListShiftsResponse, error)
	MyShifts(ctx context.Context, userID string, filter ShiftFilter) (ListShiftsResponse, error)
}
