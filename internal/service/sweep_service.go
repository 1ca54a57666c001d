package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/pkg/logger"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/repository/unitofwork"
	"github.com/Dushime20/urutibiz-backend-sub001/pkg/booking"
)

// ISweepService drives the time-based transitions: expiring unpaid holds,
// starting confirmed rentals and completing finished ones.
type ISweepService interface {
	Run(ctx context.Context) (processed, failed int)
	Start(ctx context.Context, interval time.Duration)
}

type sweepService struct {
	uowFactory   unitofwork.RepositoryFactory
	reservations IReservationService
	log          logger.ILogger

	// running guards against overlapping runs when a tick fires while the
	// previous run is still applying changes.
	running atomic.Bool
}

func NewSweepService(
	uowFactory unitofwork.RepositoryFactory,
	reservations IReservationService,
	log logger.ILogger,
) ISweepService {
	return &sweepService{
		uowFactory:   uowFactory,
		reservations: reservations,
		log:          log,
	}
}

// Run performs one sweep pass. Failures on individual reservations are
// logged and skipped so one bad row never stalls the rest; the failed row is
// retried naturally on the next pass.
func (s *sweepService) Run(ctx context.Context) (processed, failed int) {
	now := time.Now()
	snapshot, err := s.collect(ctx, now)
	if err != nil {
		s.log.Error("sweep", "failed to collect due reservations", map[string]interface{}{
			"error": err.Error(),
		})
		return 0, 0
	}

	changes := booking.DueTransitions(snapshot, now)
	for _, change := range changes {
		if err := s.reservations.ApplyChange(ctx, change); err != nil {
			failed++
			s.log.Error("sweep", "failed to apply transition", map[string]interface{}{
				"reservation_id": change.ReservationId,
				"from":           change.From,
				"to":             change.To,
				"error":          err.Error(),
			})
			continue
		}
		processed++
	}

	if processed > 0 || failed > 0 {
		s.log.Info("sweep", "sweep pass finished", map[string]interface{}{
			"due":       len(changes),
			"processed": processed,
			"failed":    failed,
		})
	}
	return processed, failed
}

// collect gathers the three due sets into one snapshot for the pure
// decision function.
func (s *sweepService) collect(ctx context.Context, now time.Time) ([]*entity.Reservation, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.ReservationRepository()

	expired, err := repo.FindDuePendingExpiry(ctx, now)
	if err != nil {
		return nil, err
	}
	starting, err := repo.FindDueToStart(ctx, now)
	if err != nil {
		return nil, err
	}
	ending, err := repo.FindDueToEnd(ctx, now)
	if err != nil {
		return nil, err
	}

	snapshot := make([]*entity.Reservation, 0, len(expired)+len(starting)+len(ending))
	snapshot = append(snapshot, expired...)
	snapshot = append(snapshot, starting...)
	snapshot = append(snapshot, ending...)
	return snapshot, nil
}

// Start blocks driving Run on a ticker until the context is cancelled.
// Callers run it in its own goroutine.
func (s *sweepService) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info("sweep", "sweep started", map[string]interface{}{
		"interval": interval.String(),
	})

	for {
		select {
		case <-ctx.Done():
			s.log.Info("sweep", "sweep stopped", nil)
			return
		case <-ticker.C:
			if !s.running.CompareAndSwap(false, true) {
				continue
			}
			s.Run(ctx)
			s.running.Store(false)
		}
	}
}
