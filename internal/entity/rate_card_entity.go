package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RateCard is the read-only pricing configuration for a resource. Cards are
// reference data supplied by the catalog; concurrent updates to a card do not
// retroactively affect already-created quotes.
type RateCard struct {
	Id         uuid.UUID
	ResourceId uuid.UUID
	Currency   string

	// Base rates per tier. A nil rate means the tier is not offered.
	HourlyRate  *decimal.Decimal
	DailyRate   *decimal.Decimal
	WeeklyRate  *decimal.Decimal
	MonthlyRate *decimal.Decimal

	// Duration bounds in hours. Zero max means unbounded.
	MinDurationHours int
	MaxDurationHours int

	// Discounts, each a fraction of the pre-discount subtotal.
	WeeklyDiscountPct  decimal.Decimal
	MonthlyDiscountPct decimal.Decimal
	BulkThreshold      int
	BulkDiscountPct    decimal.Decimal

	// Dynamic pricing: when enabled the per-month seasonal map applies,
	// otherwise the peak/off-season multipliers do.
	DynamicPricing      bool
	SeasonalAdjustments map[time.Month]decimal.Decimal
	PeakStartMonth      time.Month
	PeakEndMonth        time.Month
	PeakMultiplier      decimal.Decimal
	OffSeasonMultiplier decimal.Decimal

	// MarketFactor is a required multiplicative adjustment (1.0 = neutral).
	MarketFactor decimal.Decimal

	// Fees.
	DepositAmount     decimal.Decimal
	ServiceFeePct     decimal.Decimal
	TaxPct            decimal.Decimal
	DepositTaxable    bool
	InsurancePremiums map[string]decimal.Decimal

	// Return fee rules, consumed by the return-processing flow.
	EarlyReturnFeePct decimal.Decimal
	LateReturnHourly  decimal.Decimal

	// Exchange rates from the card's base currency, keyed by target currency.
	ExchangeRates map[string]decimal.Decimal

	EffectiveFrom time.Time
	EffectiveTo   time.Time
}
