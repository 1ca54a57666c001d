package service

import (
	"context"
	"testing"
	"time"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/repository/memory"
	"github.com/Dushime20/urutibiz-backend-sub001/pkg/lock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sweepFixture struct {
	store      *memory.Store
	sweep      ISweepService
	service    IReservationService
	resourceId uuid.UUID
}

func newSweepFixture(t *testing.T) *sweepFixture {
	t.Helper()

	store := memory.NewStore()
	factory := memory.NewFactory(store)

	resource := &entity.Resource{
		Id:         uuid.New(),
		OwnerId:    uuid.New(),
		Status:     entity.ResourceStatusActive,
		PolicyTier: entity.PolicyTierModerate,
	}
	store.PutResource(resource)

	svc := NewReservationService(
		factory,
		lock.NewKeyedMutex(500*time.Millisecond),
		NewCatalogService(factory),
		AllowAllVerifier{},
		nil,
		nopLogger{},
		30*time.Minute,
		"USD",
	)

	return &sweepFixture{
		store:      store,
		sweep:      NewSweepService(factory, svc, nopLogger{}),
		service:    svc,
		resourceId: resource.Id,
	}
}

func (f *sweepFixture) seed(t *testing.T, status entity.ReservationStatus, payment entity.PaymentStatus, start, end, expires time.Time) uuid.UUID {
	t.Helper()
	r := &entity.Reservation{
		Id:            uuid.New(),
		Code:          "RSV-SWEEP" + uuid.NewString()[:4],
		RequesterId:   uuid.New(),
		OwnerId:       uuid.New(),
		ResourceId:    f.resourceId,
		StartAt:       start,
		EndAt:         end,
		Quantity:      1,
		Status:        status,
		PaymentStatus: payment,
		Quote:         &entity.Quote{Currency: "USD", Total: decimal.NewFromInt(100)},
		ExpiresAt:     expires,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	require.NoError(t, f.store.Create(context.Background(), r))
	return r.Id
}

func (f *sweepFixture) status(t *testing.T, id uuid.UUID) entity.ReservationStatus {
	t.Helper()
	r, err := f.store.FindById(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, r)
	return r.Status
}

func TestSweepCancelsExpiredUnpaidHolds(t *testing.T) {
	f := newSweepFixture(t)
	now := time.Now()

	expired := f.seed(t, entity.ReservationStatusPending, entity.PaymentStatusPending,
		now.Add(48*time.Hour), now.Add(72*time.Hour), now.Add(-time.Minute))
	fresh := f.seed(t, entity.ReservationStatusPending, entity.PaymentStatusPending,
		now.Add(48*time.Hour), now.Add(72*time.Hour), now.Add(30*time.Minute))

	processed, failed := f.sweep.Run(context.Background())
	assert.Equal(t, 1, processed)
	assert.Zero(t, failed)

	assert.Equal(t, entity.ReservationStatusCancelled, f.status(t, expired))
	assert.Equal(t, entity.ReservationStatusPending, f.status(t, fresh))
}

func TestSweepSparesPaidHoldPastExpiry(t *testing.T) {
	f := newSweepFixture(t)
	now := time.Now()

	// Payment landed but the confirm signal has not arrived yet; the hold
	// must not be cancelled out from under the payer.
	paid := f.seed(t, entity.ReservationStatusPending, entity.PaymentStatusCompleted,
		now.Add(48*time.Hour), now.Add(72*time.Hour), now.Add(-time.Minute))

	processed, _ := f.sweep.Run(context.Background())
	assert.Zero(t, processed)
	assert.Equal(t, entity.ReservationStatusPending, f.status(t, paid))
}

func TestSweepStartsConfirmedRentals(t *testing.T) {
	f := newSweepFixture(t)
	now := time.Now()

	started := f.seed(t, entity.ReservationStatusConfirmed, entity.PaymentStatusCompleted,
		now.Add(-time.Hour), now.Add(24*time.Hour), time.Time{})
	upcoming := f.seed(t, entity.ReservationStatusConfirmed, entity.PaymentStatusCompleted,
		now.Add(24*time.Hour), now.Add(48*time.Hour), time.Time{})

	processed, failed := f.sweep.Run(context.Background())
	assert.Equal(t, 1, processed)
	assert.Zero(t, failed)

	assert.Equal(t, entity.ReservationStatusInProgress, f.status(t, started))
	assert.Equal(t, entity.ReservationStatusConfirmed, f.status(t, upcoming))
}

func TestSweepCompletesEndedRentals(t *testing.T) {
	f := newSweepFixture(t)
	now := time.Now()

	ended := f.seed(t, entity.ReservationStatusInProgress, entity.PaymentStatusCompleted,
		now.Add(-48*time.Hour), now.Add(-time.Hour), time.Time{})

	processed, failed := f.sweep.Run(context.Background())
	assert.Equal(t, 1, processed)
	assert.Zero(t, failed)
	assert.Equal(t, entity.ReservationStatusCompleted, f.status(t, ended))
}

func TestSweepRunIsIdempotent(t *testing.T) {
	f := newSweepFixture(t)
	now := time.Now()

	f.seed(t, entity.ReservationStatusPending, entity.PaymentStatusPending,
		now.Add(48*time.Hour), now.Add(72*time.Hour), now.Add(-time.Minute))
	f.seed(t, entity.ReservationStatusConfirmed, entity.PaymentStatusCompleted,
		now.Add(-time.Hour), now.Add(24*time.Hour), time.Time{})

	processed, failed := f.sweep.Run(context.Background())
	assert.Equal(t, 2, processed)
	assert.Zero(t, failed)

	processed, failed = f.sweep.Run(context.Background())
	assert.Zero(t, processed, "second pass over settled state must be a no-op")
	assert.Zero(t, failed)
}

func TestSweepCarriesARentalThroughItsLifecycle(t *testing.T) {
	f := newSweepFixture(t)
	now := time.Now()

	// Already started and already ended: the first pass starts it, the
	// second completes it. One transition per pass keeps history faithful.
	id := f.seed(t, entity.ReservationStatusConfirmed, entity.PaymentStatusCompleted,
		now.Add(-48*time.Hour), now.Add(-time.Hour), time.Time{})

	f.sweep.Run(context.Background())
	assert.Equal(t, entity.ReservationStatusInProgress, f.status(t, id))

	f.sweep.Run(context.Background())
	assert.Equal(t, entity.ReservationStatusCompleted, f.status(t, id))

	history, err := f.service.GetStatusHistory(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, string(entity.ReservationStatusInProgress), history[0].NewStatus)
	assert.Equal(t, string(entity.ReservationStatusCompleted), history[1].NewStatus)
}
