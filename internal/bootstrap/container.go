package bootstrap

import (
	"context"
	"log"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/config"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/controller"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/pkg/logger"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/repository/unitofwork"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/service"
	"github.com/Dushime20/urutibiz-backend-sub001/pkg/lock"
	pktNats "github.com/Dushime20/urutibiz-backend-sub001/pkg/nats"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ReservationController controller.IReservationController
	PaymentController     controller.IPaymentController

	// Background Services (Exposed for main.go to run)
	SweepService service.ISweepService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Per-resource serialization scope
	var locks lock.Manager
	if cfg.Booking.LockBackend == "redis" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		locks = lock.NewRedisLock(rdb, cfg.Booking.LockWaitTimeout, cfg.Booking.LockTTL)
		log.Printf("[INFO] Using lock backend: REDIS")
	} else {
		locks = lock.NewKeyedMutex(cfg.Booking.LockWaitTimeout)
		log.Printf("[INFO] Using lock backend: MEMORY")
	}

	// 3. Services
	catalogService := service.NewCatalogService(uowFactory)
	reservationService := service.NewReservationService(
		uowFactory,
		locks,
		catalogService,
		service.AllowAllVerifier{},
		natsPub,
		sysLogger,
		cfg.Booking.GracePeriod,
		cfg.Booking.DefaultCurrency,
	)
	paymentService := service.NewPaymentService(reservationService, sysLogger)
	sweepService := service.NewSweepService(uowFactory, reservationService, sysLogger)

	// Broker-delivered payment signals share the webhook's confirm path.
	if natsSub != nil {
		if err := paymentService.SubscribeBrokerSignals(natsSub); err != nil {
			log.Printf("[WARN] Failed to subscribe to payment events: %v", err)
		}
	}

	// 4. Controllers
	return &Container{
		ReservationController: controller.NewReservationController(reservationService),
		PaymentController:     controller.NewPaymentController(paymentService),
		SweepService:          sweepService,
		Logger:                sysLogger,
	}
}
