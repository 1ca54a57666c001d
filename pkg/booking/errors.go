package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"

	"github.com/google/uuid"
)

// ErrBusy signals that the per-resource scope could not be acquired within
// the bounded wait. Safe to retry with backoff.
var ErrBusy = errors.New("resource scope is busy, retry later")

// ErrNotFound signals a missing reservation.
var ErrNotFound = errors.New("reservation not found")

// ErrForbidden signals that the acting user may not perform the requested
// operation on this reservation.
var ErrForbidden = errors.New("actor is not allowed to perform this operation")

// ValidationError marks malformed or out-of-range input. Never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// ConflictError marks an overlapping time window on the same resource.
type ConflictError struct {
	ResourceId uuid.UUID
	StartAt    time.Time
	EndAt      time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("resource %s already reserved between %s and %s",
		e.ResourceId, e.StartAt.Format(time.RFC3339), e.EndAt.Format(time.RFC3339))
}

// InvalidTransitionError marks a state change outside the transition table.
type InvalidTransitionError struct {
	From entity.ReservationStatus
	To   entity.ReservationStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid reservation transition %s -> %s", e.From, e.To)
}

// PricingConfigError marks missing or invalid rate-card data. Fatal for the
// request; logged for operator attention.
type PricingConfigError struct {
	Field  string
	Reason string
}

func (e *PricingConfigError) Error() string {
	return fmt.Sprintf("rate card misconfigured (%s): %s", e.Field, e.Reason)
}
