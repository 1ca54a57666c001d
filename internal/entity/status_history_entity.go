package entity

import (
	"time"

	"github.com/google/uuid"
)

// StatusHistory is an append-only audit entry for a single status change.
// Entries are written in the same transaction as the status update and are
// never mutated or deleted.
type StatusHistory struct {
	Id             uuid.UUID
	ReservationId  uuid.UUID
	PreviousStatus ReservationStatus
	NewStatus      ReservationStatus
	ActorId        uuid.UUID
	Reason         string
	CreatedAt      time.Time
}
