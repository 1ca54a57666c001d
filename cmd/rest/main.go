package main

import (
	"context"
	"log"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/bootstrap"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/config"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/server"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/tracer"
	"github.com/Dushime20/urutibiz-backend-sub001/pkg/database"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, database.PoolConfig{
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Sweep Service...")
		container.SweepService.Start(context.Background(), cfg.Booking.SweepInterval)
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
