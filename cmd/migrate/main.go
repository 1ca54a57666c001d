package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/model"
	"github.com/Dushime20/urutibiz-backend-sub001/pkg/database"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn, database.DefaultPoolConfig())
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions (gen_random_uuid needs pgcrypto)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.Resource{},
		&model.RateCard{},
		&model.CancellationPolicy{},
		&model.Reservation{},
		&model.ReservationStatusHistory{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Seed the refund schedules. Upsert by tier so re-running the
	// migration refreshes the reference data without duplicating rows.
	log.Println("Step 3: Seeding cancellation policies...")

	policies := []struct {
		tier                    entity.PolicyTier
		serviceFeeNonRefundable bool
		thresholds              []entity.RefundThreshold
	}{
		{
			tier: entity.PolicyTierFlexible,
			thresholds: []entity.RefundThreshold{
				{MinDaysBefore: 1, RefundPct: decimal.NewFromInt(1)},
				{MinDaysBefore: 0, RefundPct: decimal.NewFromFloat(0.5)},
			},
		},
		{
			tier: entity.PolicyTierModerate,
			thresholds: []entity.RefundThreshold{
				{MinDaysBefore: 5, RefundPct: decimal.NewFromInt(1)},
				{MinDaysBefore: 1, RefundPct: decimal.NewFromFloat(0.5)},
			},
		},
		{
			tier:                    entity.PolicyTierStrict,
			serviceFeeNonRefundable: true,
			thresholds: []entity.RefundThreshold{
				{MinDaysBefore: 14, RefundPct: decimal.NewFromInt(1)},
				{MinDaysBefore: 7, RefundPct: decimal.NewFromFloat(0.5)},
			},
		},
		{
			tier:                    entity.PolicyTierSuperStrict,
			serviceFeeNonRefundable: true,
			thresholds: []entity.RefundThreshold{
				{MinDaysBefore: 30, RefundPct: decimal.NewFromFloat(0.5)},
			},
		},
	}

	for _, p := range policies {
		raw, err := json.Marshal(p.thresholds)
		if err != nil {
			log.Fatalf("Error: Failed to marshal thresholds for %s: %v", p.tier, err)
		}
		row := model.CancellationPolicy{
			Tier:                    string(p.tier),
			Thresholds:              raw,
			ServiceFeeNonRefundable: p.serviceFeeNonRefundable,
		}
		err = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tier"}},
			DoUpdates: clause.AssignmentColumns([]string{"thresholds", "service_fee_non_refundable"}),
		}).Create(&row).Error
		if err != nil {
			log.Fatalf("Error: Failed to seed policy %s: %v", p.tier, err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
