package contract

import (
	"context"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"

	"github.com/google/uuid"
)

// StatusHistoryRepository appends audit entries. No update or delete: the
// history is immutable by contract.
type StatusHistoryRepository interface {
	Create(ctx context.Context, entry *entity.StatusHistory) error
	FindByReservation(ctx context.Context, reservationId uuid.UUID) ([]*entity.StatusHistory, error)
}
