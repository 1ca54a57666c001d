package booking

import (
	"testing"
	"time"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeReservation(status entity.ReservationStatus, payment entity.PaymentStatus, start, end, expires time.Time) *entity.Reservation {
	return &entity.Reservation{
		Id:            uuid.New(),
		ResourceId:    uuid.New(),
		Status:        status,
		PaymentStatus: payment,
		StartAt:       start,
		EndAt:         end,
		ExpiresAt:     expires,
	}
}

func TestDueTransitions(t *testing.T) {
	now := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
	later := now.Add(48 * time.Hour)
	earlier := now.Add(-48 * time.Hour)

	tests := []struct {
		name        string
		reservation *entity.Reservation
		wantTo      entity.ReservationStatus
		wantReason  string
		wantNone    bool
	}{
		{
			name:        "expired unpaid pending is cancelled",
			reservation: makeReservation(entity.ReservationStatusPending, entity.PaymentStatusPending, later, later.Add(time.Hour), now.Add(-time.Minute)),
			wantTo:      entity.ReservationStatusCancelled,
			wantReason:  ReasonGraceExpired,
		},
		{
			name:        "expired but paid pending is left alone",
			reservation: makeReservation(entity.ReservationStatusPending, entity.PaymentStatusCompleted, later, later.Add(time.Hour), now.Add(-time.Minute)),
			wantNone:    true,
		},
		{
			name:        "pending inside grace period is left alone",
			reservation: makeReservation(entity.ReservationStatusPending, entity.PaymentStatusPending, later, later.Add(time.Hour), now.Add(time.Hour)),
			wantNone:    true,
		},
		{
			name:        "confirmed past start moves to in_progress",
			reservation: makeReservation(entity.ReservationStatusConfirmed, entity.PaymentStatusCompleted, earlier, later, earlier),
			wantTo:      entity.ReservationStatusInProgress,
			wantReason:  ReasonRentalStarted,
		},
		{
			name:        "confirmed exactly at start moves to in_progress",
			reservation: makeReservation(entity.ReservationStatusConfirmed, entity.PaymentStatusCompleted, now, later, earlier),
			wantTo:      entity.ReservationStatusInProgress,
			wantReason:  ReasonRentalStarted,
		},
		{
			name:        "confirmed before start is left alone",
			reservation: makeReservation(entity.ReservationStatusConfirmed, entity.PaymentStatusCompleted, later, later.Add(time.Hour), earlier),
			wantNone:    true,
		},
		{
			name:        "in_progress past end completes",
			reservation: makeReservation(entity.ReservationStatusInProgress, entity.PaymentStatusCompleted, earlier, now.Add(-time.Minute), earlier),
			wantTo:      entity.ReservationStatusCompleted,
			wantReason:  ReasonRentalEnded,
		},
		{
			name:        "in_progress before end is left alone",
			reservation: makeReservation(entity.ReservationStatusInProgress, entity.PaymentStatusCompleted, earlier, later, earlier),
			wantNone:    true,
		},
		{
			name:        "terminal states are never touched",
			reservation: makeReservation(entity.ReservationStatusCancelled, entity.PaymentStatusPending, earlier, earlier.Add(time.Hour), earlier),
			wantNone:    true,
		},
		{
			name:        "disputed is only resolved by explicit action",
			reservation: makeReservation(entity.ReservationStatusDisputed, entity.PaymentStatusCompleted, earlier, earlier.Add(time.Hour), earlier),
			wantNone:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			due := DueTransitions([]*entity.Reservation{tt.reservation}, now)
			if tt.wantNone {
				assert.Empty(t, due)
				return
			}
			require.Len(t, due, 1)
			assert.Equal(t, tt.reservation.Id, due[0].ReservationId)
			assert.Equal(t, tt.reservation.Status, due[0].From)
			assert.Equal(t, tt.wantTo, due[0].To)
			assert.Equal(t, tt.wantReason, due[0].Reason)
			assert.NoError(t, EnsureTransition(due[0].From, due[0].To))
		})
	}
}

func TestDueTransitionsIdempotent(t *testing.T) {
	now := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
	snapshot := []*entity.Reservation{
		makeReservation(entity.ReservationStatusPending, entity.PaymentStatusPending, now.Add(time.Hour), now.Add(2*time.Hour), now.Add(-time.Hour)),
		makeReservation(entity.ReservationStatusConfirmed, entity.PaymentStatusCompleted, now.Add(-time.Hour), now.Add(time.Hour), now.Add(-2*time.Hour)),
		makeReservation(entity.ReservationStatusInProgress, entity.PaymentStatusCompleted, now.Add(-2*time.Hour), now.Add(-time.Hour), now.Add(-3*time.Hour)),
	}

	first := DueTransitions(snapshot, now)
	require.Len(t, first, 3)

	// Apply the computed changes, then recompute: a second sweep over the
	// same snapshot must find nothing left to do.
	for i, c := range first {
		snapshot[i].Status = c.To
	}
	second := DueTransitions(snapshot, now)
	assert.Empty(t, second)
}
