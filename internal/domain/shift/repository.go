package shift

import (
	"context"
	"time"
)

type ShiftRepository interface {
	Create(ctx context.Context, newShift Shift) (Shift, error)
	GetByID(ctx context.Context, id string) (Shift, error)

	// Update persists the mutable fields of a shift that is still
	// Scheduled. ErrStatusConflict is returned when the row moved to
	// another status since it was read.
	Update(ctx context.Context, updated Shift) (Shift, error)

	Delete(ctx context.Context, id string) error

	// The Mark methods perform conditional status transitions: the row
	// is updated only while its status still permits the transition,
	// otherwise ErrStatusConflict is returned.
	MarkCancelled(ctx context.Context, id string) error
	MarkClockedIn(ctx context.Context, id string, at time.Time) error
	MarkClockedOut(ctx context.Context, id string, at time.Time) error

	List(ctx context.Context, filter ShiftFilter) ([]Shift, int64, error)

	// ListByDateRange returns every shift whose date falls inside the
	// inclusive range, ordered by date then start time. Used by exports.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]Shift, error)
}
