package contract

import (
	"context"
	"time"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/repository/specification"

	"github.com/google/uuid"
)

// ReservationRepository is the durable record of reservations. The conflict
// count and due-set queries exist as first-class methods because the
// lifecycle engine and sweep depend on their exact predicates.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	Update(ctx context.Context, reservation *entity.Reservation) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Reservation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// CountOverlapping counts confirmed/in_progress reservations on the
	// resource strictly overlapping [start, end), excluding at most one id.
	// Must be called under the resource's serialization scope.
	CountOverlapping(ctx context.Context, resourceId uuid.UUID, start, end time.Time, exclude uuid.UUID) (int64, error)

	// Due sets for the sweep.
	FindDuePendingExpiry(ctx context.Context, now time.Time) ([]*entity.Reservation, error)
	FindDueToStart(ctx context.Context, now time.Time) ([]*entity.Reservation, error)
	FindDueToEnd(ctx context.Context, now time.Time) ([]*entity.Reservation, error)
}
