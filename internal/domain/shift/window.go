package shift

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rotaworks/rota-backend-go/internal/pkg/validator"
)

// Default clock window buffers, overridable through configuration.
const (
	DefaultEarlyClockInBuffer    = 10 * time.Minute
	DefaultMinimumClockOutBuffer = 120 * time.Minute
)

// Window holds the concrete start and finish instants of a shift.
// Finish is always strictly after Start.
type Window struct {
	Start  time.Time
	Finish time.Time
}

// NewWindow anchors the "HH:MM" start and finish clocks on the shift's
// calendar day. A finish clock at or before the start clock belongs to
// the next day, so the finish rolls forward one calendar day; equal
// clocks therefore produce a full 24-hour shift.
func NewWindow(date time.Time, startClock, finishClock string) (Window, error) {
	startHour, startMinute, err := parseClock(startClock)
	if err != nil {
		return Window{}, fmt.Errorf("invalid start time: %w", err)
	}
	finishHour, finishMinute, err := parseClock(finishClock)
	if err != nil {
		return Window{}, fmt.Errorf("invalid finish time: %w", err)
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), startHour, startMinute, 0, 0, date.Location())
	finish := time.Date(date.Year(), date.Month(), date.Day(), finishHour, finishMinute, 0, 0, date.Location())
	if !finish.After(start) {
		finish = finish.AddDate(0, 0, 1)
	}

	return Window{Start: start, Finish: finish}, nil
}

func parseClock(clock string) (hour, minute int, err error) {
	if !validator.IsValidClockTime(clock) {
		return 0, 0, fmt.Errorf("%q is not a valid HH:MM clock time", clock)
	}
	hour, _ = strconv.Atoi(clock[:2])
	minute, _ = strconv.Atoi(clock[3:])
	return hour, minute, nil
}

// Codes carried by ClockWindowError.
const (
	CodeClockInTooEarly  = "CLOCK_IN_TOO_EARLY"
	CodeShiftTimeExpired = "SHIFT_TIME_EXPIRED"
	CodeClockOutTooEarly = "CLOCK_OUT_TOO_EARLY"
)

// ClockWindowError reports a clock action refused because the current
// time falls outside the permitted window.
type ClockWindowError struct {
	Code    string
	Message string
}

func (e *ClockWindowError) Error() string {
	return e.Message
}

// ValidateClockIn checks that now falls inside the clock-in window,
// which opens earlyBuffer before the shift starts and closes when the
// shift finishes. Both bounds are inclusive.
func (w Window) ValidateClockIn(now time.Time, earlyBuffer time.Duration) error {
	earliest := w.Start.Add(-earlyBuffer)
	if now.Before(earliest) {
		wait := earliest.Sub(now).Truncate(time.Second)
		return &ClockWindowError{
			Code: CodeClockInTooEarly,
			Message: fmt.Sprintf("too early to clock in: the shift starts at %s and clock-in opens at %s (%s from now)",
				w.Start.Format("15:04"), earliest.Format("15:04"), wait),
		}
	}
	if now.After(w.Finish) {
		overdue := now.Sub(w.Finish).Truncate(time.Second)
		return &ClockWindowError{
			Code: CodeShiftTimeExpired,
			Message: fmt.Sprintf("shift time has expired: the shift finished at %s (%s ago)",
				w.Finish.Format("15:04"), overdue),
		}
	}
	return nil
}

// ValidateClockOut checks that now is no earlier than minBuffer before
// the shift finishes. There is no upper bound: a worker may clock out
// any time after the shift has finished.
func (w Window) ValidateClockOut(now time.Time, minBuffer time.Duration) error {
	earliest := w.Finish.Add(-minBuffer)
	if now.Before(earliest) {
		return &ClockWindowError{
			Code: CodeClockOutTooEarly,
			Message: fmt.Sprintf("too early to clock out: clock-out opens at %s, %d minutes before the shift finishes at %s",
				earliest.Format("15:04"), int(minBuffer.Minutes()), w.Finish.Format("15:04")),
		}
	}
	return nil
}
