package booking

import (
	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"
)

// Transition reasons recorded in the status history.
const (
	ReasonCreated            = "reservation_created"
	ReasonPaymentCompleted   = "payment_completed"
	ReasonGraceExpired       = "payment_grace_period_expired"
	ReasonRentalStarted      = "rental_period_started"
	ReasonRentalEnded        = "rental_period_ended"
	ReasonCancelledByUser    = "cancelled_by_user"
	ReasonForcedCancellation = "forced_cancellation"
	ReasonDisputeOpened      = "dispute_opened"
	ReasonDisputeResolved    = "dispute_resolved"
)

// transitions is the authoritative state machine table. Any pair not listed
// here is rejected; the engine never silently no-ops an illegal request.
var transitions = map[entity.ReservationStatus][]entity.ReservationStatus{
	entity.ReservationStatusPending: {
		entity.ReservationStatusConfirmed,
		entity.ReservationStatusCancelled,
	},
	entity.ReservationStatusConfirmed: {
		entity.ReservationStatusInProgress,
		entity.ReservationStatusCancelled,
	},
	entity.ReservationStatusInProgress: {
		entity.ReservationStatusCompleted,
		entity.ReservationStatusDisputed,
	},
	entity.ReservationStatusCompleted: {
		entity.ReservationStatusDisputed,
	},
	entity.ReservationStatusDisputed: {
		entity.ReservationStatusCompleted,
		entity.ReservationStatusCancelled,
	},
}

// CanTransition reports whether from -> to is in the transition table.
func CanTransition(from, to entity.ReservationStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// EnsureTransition returns an InvalidTransitionError when from -> to is not
// a legal state change.
func EnsureTransition(from, to entity.ReservationStatus) error {
	if !CanTransition(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}

// Terminal reports whether the status ends the lifecycle. Terminal
// reservations are retained indefinitely for audit and rebooking lineage.
func Terminal(status entity.ReservationStatus) bool {
	return status == entity.ReservationStatusCompleted || status == entity.ReservationStatusCancelled
}
