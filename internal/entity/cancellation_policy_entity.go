package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PolicyTier names a cancellation policy tier.
type PolicyTier string

const (
	PolicyTierFlexible    PolicyTier = "flexible"
	PolicyTierModerate    PolicyTier = "moderate"
	PolicyTierStrict      PolicyTier = "strict"
	PolicyTierSuperStrict PolicyTier = "super_strict"
)

// RefundThreshold grants RefundPct when the cancellation happens at least
// MinDaysBefore whole days before the reservation starts.
type RefundThreshold struct {
	MinDaysBefore int             `json:"min_days_before"`
	RefundPct     decimal.Decimal `json:"refund_pct"`
}

// CancellationPolicy is an ordered refund schedule for a tier. Thresholds
// are evaluated highest MinDaysBefore first; the first match wins and no
// match means zero refund.
type CancellationPolicy struct {
	Id   uuid.UUID
	Tier PolicyTier

	Thresholds []RefundThreshold

	// ServiceFeeNonRefundable excludes the already-consumed service fee
	// from the refundable total.
	ServiceFeeNonRefundable bool
}
