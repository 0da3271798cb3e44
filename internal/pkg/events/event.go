// Package events publishes shift lifecycle events to a message broker
// so downstream consumers (payroll, notifications, analytics) can react
// without querying the primary database.
package events

// Event types carried by ShiftEvent.
const (
	TypeShiftCreated    = "shift.created"
	TypeShiftUpdated    = "shift.updated"
	TypeShiftCancelled  = "shift.cancelled"
	TypeShiftDeleted    = "shift.deleted"
	TypeShiftClockedIn  = "shift.clocked_in"
	TypeShiftClockedOut = "shift.clocked_out"
)

// ShiftEvent is published on every shift lifecycle change.
type ShiftEvent struct {
	Type       string `json:"type"`
	ShiftID    string `json:"shift_id"`
	UserID     string `json:"user_id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	Date       string `json:"date"`
	OccurredAt string `json:"occurred_at"`
}
