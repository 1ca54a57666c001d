package contract

import (
	"context"
	"time"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"

	"github.com/google/uuid"
)

// ResourceRepository reads the catalog's resource records.
type ResourceRepository interface {
	FindById(ctx context.Context, id uuid.UUID) (*entity.Resource, error)
}

// RateCardRepository reads pricing reference data.
type RateCardRepository interface {
	// FindActiveByResource returns the card effective at the given instant,
	// or nil when the resource has none.
	FindActiveByResource(ctx context.Context, resourceId uuid.UUID, at time.Time) (*entity.RateCard, error)
}

// CancellationPolicyRepository reads refund schedules by tier.
type CancellationPolicyRepository interface {
	FindByTier(ctx context.Context, tier entity.PolicyTier) (*entity.CancellationPolicy, error)
}
