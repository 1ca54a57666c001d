package implementation

import (
	"context"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/mapper"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/model"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type statusHistoryRepositoryImpl struct {
	db *gorm.DB
}

func NewStatusHistoryRepository(db *gorm.DB) contract.StatusHistoryRepository {
	return &statusHistoryRepositoryImpl{db: db}
}

func (r *statusHistoryRepositoryImpl) Create(ctx context.Context, entry *entity.StatusHistory) error {
	return r.db.WithContext(ctx).Create(mapper.StatusHistoryToModel(entry)).Error
}

func (r *statusHistoryRepositoryImpl) FindByReservation(ctx context.Context, reservationId uuid.UUID) ([]*entity.StatusHistory, error) {
	var rows []*model.ReservationStatusHistory
	err := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationId).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*entity.StatusHistory, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, mapper.StatusHistoryToEntity(row))
	}
	return entries, nil
}
