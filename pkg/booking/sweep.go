package booking

import (
	"time"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"

	"github.com/google/uuid"
)

// Change is one time-driven transition the sweep should apply.
type Change struct {
	ReservationId uuid.UUID
	ResourceId    uuid.UUID
	From          entity.ReservationStatus
	To            entity.ReservationStatus
	Reason        string
}

// DueTransitions computes the transitions owed to a snapshot of reservations
// at the given instant. It is pure so the sweep's decision logic can be
// tested without a real clock: the timer driver lives in the sweep service.
//
// Rules, in the order they are checked per reservation:
//   - pending past its expiry with payment not completed -> cancelled
//   - confirmed whose start instant has passed -> in_progress
//   - in_progress whose end instant has passed -> completed
//
// Running the computation twice over the resulting state yields no further
// changes, which is what makes the sweep idempotent.
func DueTransitions(snapshot []*entity.Reservation, now time.Time) []Change {
	var due []Change
	for _, r := range snapshot {
		switch r.Status {
		case entity.ReservationStatusPending:
			if !now.Before(r.ExpiresAt) && r.PaymentStatus != entity.PaymentStatusCompleted {
				due = append(due, Change{
					ReservationId: r.Id,
					ResourceId:    r.ResourceId,
					From:          entity.ReservationStatusPending,
					To:            entity.ReservationStatusCancelled,
					Reason:        ReasonGraceExpired,
				})
			}
		case entity.ReservationStatusConfirmed:
			if !now.Before(r.StartAt) {
				due = append(due, Change{
					ReservationId: r.Id,
					ResourceId:    r.ResourceId,
					From:          entity.ReservationStatusConfirmed,
					To:            entity.ReservationStatusInProgress,
					Reason:        ReasonRentalStarted,
				})
			}
		case entity.ReservationStatusInProgress:
			if !now.Before(r.EndAt) {
				due = append(due, Change{
					ReservationId: r.Id,
					ResourceId:    r.ResourceId,
					From:          entity.ReservationStatusInProgress,
					To:            entity.ReservationStatusCompleted,
					Reason:        ReasonRentalEnded,
				})
			}
		}
	}
	return due
}
