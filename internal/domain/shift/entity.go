package shift

import "time"

type ShiftStatus string

const (
	StatusScheduled  ShiftStatus = "Scheduled"
	StatusInProgress ShiftStatus = "In Progress"
	StatusCompleted  ShiftStatus = "Completed"
	StatusCancelled  ShiftStatus = "Cancelled"
)

var ShiftStatusValues = []ShiftStatus{
	StatusScheduled,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}

type ShiftType string

const (
	TypeWeekend ShiftType = "Weekend"
	TypeWeekday ShiftType = "Weekday"
	TypeEvening ShiftType = "Evening"
	TypeMorning ShiftType = "Morning"
	TypeNight   ShiftType = "Night"
)

var ShiftTypeValues = []ShiftType{
	TypeWeekend,
	TypeWeekday,
	TypeEvening,
	TypeMorning,
	TypeNight,
}

type Shift struct {
	ID                string
	Title             string
	Role              string
	TypeOfShift       []ShiftType
	UserID            string
	LocationID        string
	Date              time.Time
	StartTime         time.Time
	FinishTime        time.Time
	NumOfShiftsPerDay int
	Status            ShiftStatus
	ClockInTime       *time.Time
	ClockOutTime      *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO / Join
	WorkerName            string
	WorkerEmail           string
	WorkerRole            string
	LocationName          string
	LocationAddress       string
	LocationPostCode      string
	LocationDistance      *string
	LocationConstituency  *string
	LocationAdminDistrict *string
}

// CanEdit reports whether scheduling fields may still change.
// Once a worker has clocked in the shift is locked.
func (s *Shift) CanEdit() bool {
	return s.Status == StatusScheduled
}

// EnsureCancellable returns nil when the shift may move to Cancelled.
// Already-cancelled and completed shifts get their own refusals so the
// caller can tell the two apart.
func (s *Shift) EnsureCancellable() error {
	switch s.Status {
	case StatusScheduled:
		return nil
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusCompleted:
		return ErrCancelCompleted
	default:
		return &InvalidStatusError{Op: "cancel", Status: s.Status}
	}
}

// EnsureClockInAllowed returns nil when the shift status permits
// clocking in. The time window is checked separately.
func (s *Shift) EnsureClockInAllowed() error {
	if s.Status != StatusScheduled {
		return &InvalidStatusError{Op: "clock in to", Status: s.Status}
	}
	return nil
}

// EnsureClockOutAllowed returns nil when the shift status permits
// clocking out.
func (s *Shift) EnsureClockOutAllowed() error {
	if s.Status != StatusInProgress {
		return &InvalidStatusError{Op: "clock out of", Status: s.Status}
	}
	return nil
}

// IsAssignedTo reports whether the given user is the worker on this shift.
func (s *Shift) IsAssignedTo(userID string) bool {
	return s.UserID == userID
}
