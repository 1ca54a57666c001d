package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	ReservationStatusPending    ReservationStatus = "pending"
	ReservationStatusConfirmed  ReservationStatus = "confirmed"
	ReservationStatusInProgress ReservationStatus = "in_progress"
	ReservationStatusCompleted  ReservationStatus = "completed"
	ReservationStatusCancelled  ReservationStatus = "cancelled"
	ReservationStatusDisputed   ReservationStatus = "disputed"
)

// PaymentStatus mirrors the payment collaborator's view of a reservation.
// It is written only in reaction to payment signals, never polled.
type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "pending"
	PaymentStatusProcessing        PaymentStatus = "processing"
	PaymentStatusCompleted         PaymentStatus = "completed"
	PaymentStatusFailed            PaymentStatus = "failed"
	PaymentStatusRefunded          PaymentStatus = "refunded"
	PaymentStatusPartiallyRefunded PaymentStatus = "partially_refunded"
)

// RateTier identifies which base-rate unit a quote was priced with.
type RateTier string

const (
	RateTierHourly  RateTier = "hourly"
	RateTierDaily   RateTier = "daily"
	RateTierWeekly  RateTier = "weekly"
	RateTierMonthly RateTier = "monthly"
)

// Quote is the itemized pricing snapshot attached to a reservation.
// It is computed once at creation time and never recomputed after
// confirmation; every amount is already rounded to the currency's
// minor-unit precision and Total equals the sum of the components.
type Quote struct {
	Currency     string          `json:"currency"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	RateTier     RateTier        `json:"rate_tier"`
	Units        int64           `json:"units"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	Deposit      decimal.Decimal `json:"deposit"`
	ServiceFee   decimal.Decimal `json:"service_fee"`
	Tax          decimal.Decimal `json:"tax"`
	Insurance    decimal.Decimal `json:"insurance"`
	Total        decimal.Decimal `json:"total"`
}

// CancellationRecord captures the outcome of a cancellation workflow.
type CancellationRecord struct {
	RequestedBy  uuid.UUID       `json:"requested_by"`
	Reason       string          `json:"reason"`
	PolicyTier   PolicyTier      `json:"policy_tier"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	FeeAmount    decimal.Decimal `json:"fee_amount"`
	DecidedBy    uuid.UUID       `json:"decided_by"`
	DecidedAt    time.Time       `json:"decided_at"`
}

// Reservation is a time-bounded claim on a rentable resource.
type Reservation struct {
	Id            uuid.UUID
	Code          string
	RequesterId   uuid.UUID
	OwnerId       uuid.UUID
	ResourceId    uuid.UUID
	StartAt       time.Time
	EndAt         time.Time
	Quantity      int
	Status        ReservationStatus
	PaymentStatus PaymentStatus
	Quote         *Quote
	Cancellation  *CancellationRecord
	ExpiresAt     time.Time
	ParentId      *uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Overlaps reports whether the reservation's window strictly overlaps
// [start, end). Touching boundaries are not overlaps, so back-to-back
// bookings are allowed.
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartAt.Before(end) && r.EndAt.After(start)
}

// Blocking reports whether the reservation occupies its window for
// conflict purposes.
func (r *Reservation) Blocking() bool {
	return r.Status == ReservationStatusConfirmed || r.Status == ReservationStatusInProgress
}
