package events

import (
	"strings"
	"time"
)

// Event types the engine publishes and consumes. Transition events are
// derived from the reservation status via TransitionType.
const (
	TypeRefundRequested  = "REFUND_REQUESTED"
	TypePaymentCompleted = "PAYMENT_COMPLETED"
)

// TransitionType names the bus event for a reservation status, e.g.
// "confirmed" -> "RESERVATION_CONFIRMED".
func TransitionType(status string) string {
	return "RESERVATION_" + strings.ToUpper(status)
}

// Event is the contract for everything that crosses the bus.
type Event interface {
	// EventType returns the code for this event, e.g. "RESERVATION_CONFIRMED".
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the concrete event the engine publishes; Data carries the
// reservation payload.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
