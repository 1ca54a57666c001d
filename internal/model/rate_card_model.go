package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// RateCard GORM model. Reference data: read-only at request time, seeded and
// updated out of band by the catalog. Map-shaped fields (seasonal
// adjustments, insurance premiums, exchange rates) live in jsonb columns.
type RateCard struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ResourceID uuid.UUID `gorm:"type:uuid;not null;index"`
	Currency   string    `gorm:"type:varchar(3);not null"`

	HourlyRate  *decimal.Decimal `gorm:"type:numeric(14,3)"`
	DailyRate   *decimal.Decimal `gorm:"type:numeric(14,3)"`
	WeeklyRate  *decimal.Decimal `gorm:"type:numeric(14,3)"`
	MonthlyRate *decimal.Decimal `gorm:"type:numeric(14,3)"`

	MinDurationHours int `gorm:"not null;default:0"`
	MaxDurationHours int `gorm:"not null;default:0"`

	WeeklyDiscountPct  decimal.Decimal `gorm:"type:numeric(6,4)"`
	MonthlyDiscountPct decimal.Decimal `gorm:"type:numeric(6,4)"`
	BulkThreshold      int             `gorm:"not null;default:0"`
	BulkDiscountPct    decimal.Decimal `gorm:"type:numeric(6,4)"`

	DynamicPricing      bool            `gorm:"not null;default:false"`
	SeasonalAdjustments datatypes.JSON  `gorm:"type:jsonb"`
	PeakStartMonth      int             `gorm:"not null;default:0"`
	PeakEndMonth        int             `gorm:"not null;default:0"`
	PeakMultiplier      decimal.Decimal `gorm:"type:numeric(6,4)"`
	OffSeasonMultiplier decimal.Decimal `gorm:"type:numeric(6,4)"`

	MarketFactor decimal.Decimal `gorm:"type:numeric(6,4);not null"`

	DepositAmount     decimal.Decimal `gorm:"type:numeric(14,3)"`
	ServiceFeePct     decimal.Decimal `gorm:"type:numeric(6,4)"`
	TaxPct            decimal.Decimal `gorm:"type:numeric(6,4)"`
	DepositTaxable    bool            `gorm:"not null;default:false"`
	InsurancePremiums datatypes.JSON  `gorm:"type:jsonb"`

	EarlyReturnFeePct decimal.Decimal `gorm:"type:numeric(6,4)"`
	LateReturnHourly  decimal.Decimal `gorm:"type:numeric(14,3)"`

	ExchangeRates datatypes.JSON `gorm:"type:jsonb"`

	EffectiveFrom time.Time `gorm:"not null;index"`
	EffectiveTo   time.Time `gorm:"index"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (RateCard) TableName() string {
	return "rate_cards"
}
