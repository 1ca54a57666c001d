package implementation

import (
	"context"
	"time"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/mapper"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/model"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/repository/contract"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reservationRepositoryImpl struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) contract.ReservationRepository {
	return &reservationRepositoryImpl{db: db}
}

func (r *reservationRepositoryImpl) Create(ctx context.Context, reservation *entity.Reservation) error {
	m, err := mapper.ReservationToModel(reservation)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *reservationRepositoryImpl) Update(ctx context.Context, reservation *entity.Reservation) error {
	m, err := mapper.ReservationToModel(reservation)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&model.Reservation{}).
		Where("id = ?", reservation.Id).
		Updates(map[string]interface{}{
			"status":          m.Status,
			"payment_status":  m.PaymentStatus,
			"quote_breakdown": m.QuoteBreakdown,
			"quote_total":     m.QuoteTotal,
			"quote_currency":  m.QuoteCurrency,
			"cancellation":    m.Cancellation,
			"expires_at":      m.ExpiresAt,
		}).Error
}

func (r *reservationRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	var m model.Reservation
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapper.ReservationToEntity(&m)
}

func (r *reservationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Reservation, error) {
	var rows []*model.Reservation
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	reservations := make([]*entity.Reservation, 0, len(rows))
	for _, row := range rows {
		reservation, err := mapper.ReservationToEntity(row)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}
	return reservations, nil
}

func (r *reservationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Reservation{})
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *reservationRepositoryImpl) CountOverlapping(ctx context.Context, resourceId uuid.UUID, start, end time.Time, exclude uuid.UUID) (int64, error) {
	specs := []specification.Specification{
		specification.ByResource{ResourceID: resourceId},
		specification.ByStatuses{Statuses: []string{
			string(entity.ReservationStatusConfirmed),
			string(entity.ReservationStatusInProgress),
		}},
		specification.OverlappingWindow{StartAt: start, EndAt: end},
	}
	if exclude != uuid.Nil {
		specs = append(specs, specification.ExcludeID{ID: exclude})
	}
	return r.Count(ctx, specs...)
}

func (r *reservationRepositoryImpl) FindDuePendingExpiry(ctx context.Context, now time.Time) ([]*entity.Reservation, error) {
	return r.FindAll(ctx,
		specification.ByStatuses{Statuses: []string{string(entity.ReservationStatusPending)}},
		specification.ExpiredBefore{At: now},
		specification.PaymentStatusNot{Status: string(entity.PaymentStatusCompleted)},
	)
}

func (r *reservationRepositoryImpl) FindDueToStart(ctx context.Context, now time.Time) ([]*entity.Reservation, error) {
	return r.FindAll(ctx,
		specification.ByStatuses{Statuses: []string{string(entity.ReservationStatusConfirmed)}},
		specification.StartedBefore{At: now},
	)
}

func (r *reservationRepositoryImpl) FindDueToEnd(ctx context.Context, now time.Time) ([]*entity.Reservation, error) {
	return r.FindAll(ctx,
		specification.ByStatuses{Statuses: []string{string(entity.ReservationStatusInProgress)}},
		specification.EndedBefore{At: now},
	)
}
