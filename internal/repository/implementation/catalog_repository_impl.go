package implementation

import (
	"context"
	"time"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/mapper"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/model"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type resourceRepositoryImpl struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) contract.ResourceRepository {
	return &resourceRepositoryImpl{db: db}
}

func (r *resourceRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Resource, error) {
	var m model.Resource
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapper.ResourceToEntity(&m), nil
}

type rateCardRepositoryImpl struct {
	db *gorm.DB
}

func NewRateCardRepository(db *gorm.DB) contract.RateCardRepository {
	return &rateCardRepositoryImpl{db: db}
}

func (r *rateCardRepositoryImpl) FindActiveByResource(ctx context.Context, resourceId uuid.UUID, at time.Time) (*entity.RateCard, error) {
	var m model.RateCard
	err := r.db.WithContext(ctx).
		Where("resource_id = ?", resourceId).
		Where("effective_from <= ?", at).
		Where("effective_to = ? OR effective_to > ?", time.Time{}, at).
		Order("effective_from DESC").
		First(&m).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapper.RateCardToEntity(&m)
}

type cancellationPolicyRepositoryImpl struct {
	db *gorm.DB
}

func NewCancellationPolicyRepository(db *gorm.DB) contract.CancellationPolicyRepository {
	return &cancellationPolicyRepositoryImpl{db: db}
}

func (r *cancellationPolicyRepositoryImpl) FindByTier(ctx context.Context, tier entity.PolicyTier) (*entity.CancellationPolicy, error) {
	var m model.CancellationPolicy
	if err := r.db.WithContext(ctx).First(&m, "tier = ?", string(tier)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapper.CancellationPolicyToEntity(&m)
}
