package unitofwork

import (
	"context"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ReservationRepository() contract.ReservationRepository
	StatusHistoryRepository() contract.StatusHistoryRepository
	ResourceRepository() contract.ResourceRepository
	RateCardRepository() contract.RateCardRepository
	CancellationPolicyRepository() contract.CancellationPolicyRepository
}
