package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/repository/unitofwork"
	"github.com/Dushime20/urutibiz-backend-sub001/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn, database.DefaultPoolConfig())
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.ReservationRepository())
	assert.NotNil(t, uow.CancellationPolicyRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Reservation Repository", func(t *testing.T) {
		count, err := uow.ReservationRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Reservation count: %d", count)
	})

	t.Run("Check Overlap Predicate", func(t *testing.T) {
		ctx := context.Background()
		resourceId := uuid.New()
		start := time.Now().Add(48 * time.Hour).Truncate(time.Second)
		end := start.Add(48 * time.Hour)

		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		reservation := &entity.Reservation{
			Id:            uuid.New(),
			Code:          "RSV-IT" + uuid.NewString()[:8],
			RequesterId:   uuid.New(),
			OwnerId:       uuid.New(),
			ResourceId:    resourceId,
			StartAt:       start,
			EndAt:         end,
			Quantity:      1,
			Status:        entity.ReservationStatusConfirmed,
			PaymentStatus: entity.PaymentStatusCompleted,
			Quote: &entity.Quote{
				Currency: "USD",
				Subtotal: decimal.NewFromInt(100),
				Total:    decimal.NewFromInt(100),
			},
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		err = uow.ReservationRepository().Create(ctx, reservation)
		assert.NoError(t, err)

		// Strict overlap inside the window.
		count, err := uow.ReservationRepository().CountOverlapping(ctx, resourceId, start.Add(time.Hour), end.Add(time.Hour), uuid.Nil)
		assert.NoError(t, err)
		assert.EqualValues(t, 1, count)

		// Touching the boundary is not an overlap.
		count, err = uow.ReservationRepository().CountOverlapping(ctx, resourceId, end, end.Add(24*time.Hour), uuid.Nil)
		assert.NoError(t, err)
		assert.EqualValues(t, 0, count)

		// Excluding the row itself finds no conflict.
		count, err = uow.ReservationRepository().CountOverlapping(ctx, resourceId, start, end, reservation.Id)
		assert.NoError(t, err)
		assert.EqualValues(t, 0, count)

		// Rolled back by the deferred Rollback; nothing persists.
	})

	t.Run("Check Transactional History Append", func(t *testing.T) {
		ctx := context.Background()
		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		reservationId := uuid.New()
		reservation := &entity.Reservation{
			Id:          reservationId,
			Code:        "RSV-IT" + uuid.NewString()[:8],
			RequesterId: uuid.New(),
			OwnerId:     uuid.New(),
			ResourceId:  uuid.New(),
			StartAt:     time.Now().Add(24 * time.Hour),
			EndAt:       time.Now().Add(48 * time.Hour),
			Quantity:    1,
			Status:      entity.ReservationStatusPending,
			ExpiresAt:   time.Now().Add(30 * time.Minute),
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		err = uow.ReservationRepository().Create(ctx, reservation)
		assert.NoError(t, err)

		err = uow.StatusHistoryRepository().Create(ctx, &entity.StatusHistory{
			Id:            uuid.New(),
			ReservationId: reservationId,
			NewStatus:     entity.ReservationStatusPending,
			Reason:        "reservation_created",
			CreatedAt:     time.Now(),
		})
		assert.NoError(t, err)

		entries, err := uow.StatusHistoryRepository().FindByReservation(ctx, reservationId)
		assert.NoError(t, err)
		assert.Len(t, entries, 1)

		t.Log("Successfully created Reservation with History in Transaction")
	})
}
