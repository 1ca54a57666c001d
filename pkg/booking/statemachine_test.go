package booking

import (
	"testing"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct {
		from, to entity.ReservationStatus
	}{
		{entity.ReservationStatusPending, entity.ReservationStatusConfirmed},
		{entity.ReservationStatusPending, entity.ReservationStatusCancelled},
		{entity.ReservationStatusConfirmed, entity.ReservationStatusInProgress},
		{entity.ReservationStatusConfirmed, entity.ReservationStatusCancelled},
		{entity.ReservationStatusInProgress, entity.ReservationStatusCompleted},
		{entity.ReservationStatusInProgress, entity.ReservationStatusDisputed},
		{entity.ReservationStatusCompleted, entity.ReservationStatusDisputed},
		{entity.ReservationStatusDisputed, entity.ReservationStatusCompleted},
		{entity.ReservationStatusDisputed, entity.ReservationStatusCancelled},
	}

	allowedSet := make(map[[2]entity.ReservationStatus]bool)
	for _, tr := range allowed {
		allowedSet[[2]entity.ReservationStatus{tr.from, tr.to}] = true
		assert.True(t, CanTransition(tr.from, tr.to), "%s -> %s should be legal", tr.from, tr.to)
	}

	// Everything outside the table must be rejected with a typed error.
	statuses := []entity.ReservationStatus{
		entity.ReservationStatusPending,
		entity.ReservationStatusConfirmed,
		entity.ReservationStatusInProgress,
		entity.ReservationStatusCompleted,
		entity.ReservationStatusCancelled,
		entity.ReservationStatusDisputed,
	}
	for _, from := range statuses {
		for _, to := range statuses {
			if allowedSet[[2]entity.ReservationStatus{from, to}] {
				continue
			}
			assert.False(t, CanTransition(from, to), "%s -> %s should be illegal", from, to)

			err := EnsureTransition(from, to)
			if assert.Error(t, err) {
				var invalid *InvalidTransitionError
				assert.ErrorAs(t, err, &invalid)
				assert.Equal(t, from, invalid.From)
				assert.Equal(t, to, invalid.To)
			}
		}
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, Terminal(entity.ReservationStatusCompleted))
	assert.True(t, Terminal(entity.ReservationStatusCancelled))
	assert.False(t, Terminal(entity.ReservationStatusPending))
	assert.False(t, Terminal(entity.ReservationStatusConfirmed))
	assert.False(t, Terminal(entity.ReservationStatusInProgress))
	assert.False(t, Terminal(entity.ReservationStatusDisputed))
}

func TestCancelledIsDeadEnd(t *testing.T) {
	for _, to := range []entity.ReservationStatus{
		entity.ReservationStatusPending,
		entity.ReservationStatusConfirmed,
		entity.ReservationStatusInProgress,
		entity.ReservationStatusCompleted,
		entity.ReservationStatusDisputed,
	} {
		assert.False(t, CanTransition(entity.ReservationStatusCancelled, to))
	}
}
