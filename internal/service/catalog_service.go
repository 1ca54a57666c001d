package service

import (
	"context"
	"time"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ICatalogService serves the reference data the lifecycle engine consults on
// every request: resource records, active rate cards and refund policies.
// All three are slow-moving, so reads go through a short-lived cache.
type ICatalogService interface {
	GetResource(ctx context.Context, id uuid.UUID) (*entity.Resource, error)
	GetActiveRateCard(ctx context.Context, resourceId uuid.UUID, at time.Time) (*entity.RateCard, error)
	GetPolicy(ctx context.Context, tier entity.PolicyTier) (*entity.CancellationPolicy, error)
}

type catalogService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *cache.Cache
}

func NewCatalogService(uowFactory unitofwork.RepositoryFactory) ICatalogService {
	return &catalogService{
		uowFactory: uowFactory,
		cache:      cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *catalogService) GetResource(ctx context.Context, id uuid.UUID) (*entity.Resource, error) {
	key := "resource:" + id.String()
	if x, found := s.cache.Get(key); found {
		return x.(*entity.Resource), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	resource, err := uow.ResourceRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if resource != nil {
		s.cache.Set(key, resource, cache.DefaultExpiration)
	}
	return resource, nil
}

func (s *catalogService) GetActiveRateCard(ctx context.Context, resourceId uuid.UUID, at time.Time) (*entity.RateCard, error) {
	// Keyed by resource only: a card rotation takes up to one cache window
	// to become visible, which is acceptable for reference data.
	key := "ratecard:" + resourceId.String()
	if x, found := s.cache.Get(key); found {
		return x.(*entity.RateCard), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	card, err := uow.RateCardRepository().FindActiveByResource(ctx, resourceId, at)
	if err != nil {
		return nil, err
	}
	if card != nil {
		s.cache.Set(key, card, cache.DefaultExpiration)
	}
	return card, nil
}

func (s *catalogService) GetPolicy(ctx context.Context, tier entity.PolicyTier) (*entity.CancellationPolicy, error) {
	key := "policy:" + string(tier)
	if x, found := s.cache.Get(key); found {
		return x.(*entity.CancellationPolicy), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	policy, err := uow.CancellationPolicyRepository().FindByTier(ctx, tier)
	if err != nil {
		return nil, err
	}
	if policy != nil {
		s.cache.Set(key, policy, cache.DefaultExpiration)
	}
	return policy, nil
}

// IdentityVerifier gates reservation creation on the requester's verification
// standing. The engine only consumes the boolean outcome; verification flows
// live with the identity collaborator.
type IdentityVerifier interface {
	Verified(ctx context.Context, requesterId uuid.UUID) (bool, error)
}

// AllowAllVerifier accepts every requester. Default when no identity
// collaborator is configured.
type AllowAllVerifier struct{}

func (AllowAllVerifier) Verified(ctx context.Context, requesterId uuid.UUID) (bool, error) {
	return true, nil
}
