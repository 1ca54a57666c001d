package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateReservationRequest struct {
	ResourceId    uuid.UUID `json:"resource_id" validate:"required"`
	StartAt       time.Time `json:"start_at" validate:"required"`
	EndAt         time.Time `json:"end_at" validate:"required"`
	Quantity      int       `json:"quantity" validate:"omitempty,min=1"`
	Currency      string    `json:"currency" validate:"omitempty,len=3,uppercase"`
	InsuranceType string    `json:"insurance_type"`
	// ParentId links a rebooking to the reservation it replaces.
	ParentId *uuid.UUID `json:"parent_id" validate:"omitempty"`
}

type QuoteDTO struct {
	Currency     string          `json:"currency"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	RateTier     string          `json:"rate_tier"`
	Units        int64           `json:"units"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Discount     decimal.Decimal `json:"discount"`
	Deposit      decimal.Decimal `json:"deposit"`
	ServiceFee   decimal.Decimal `json:"service_fee"`
	Tax          decimal.Decimal `json:"tax"`
	Insurance    decimal.Decimal `json:"insurance"`
	Total        decimal.Decimal `json:"total"`
}

type CancellationDTO struct {
	Reason       string          `json:"reason"`
	PolicyTier   string          `json:"policy_tier"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	FeeAmount    decimal.Decimal `json:"fee_amount"`
	DecidedAt    time.Time       `json:"decided_at"`
}

type ReservationResponse struct {
	Id            uuid.UUID        `json:"id"`
	Code          string           `json:"code"`
	ResourceId    uuid.UUID        `json:"resource_id"`
	RequesterId   uuid.UUID        `json:"requester_id"`
	StartAt       time.Time        `json:"start_at"`
	EndAt         time.Time        `json:"end_at"`
	Quantity      int              `json:"quantity"`
	Status        string           `json:"status"`
	PaymentStatus string           `json:"payment_status"`
	Quote         *QuoteDTO        `json:"quote,omitempty"`
	Cancellation  *CancellationDTO `json:"cancellation,omitempty"`
	ExpiresAt     *time.Time       `json:"expires_at,omitempty"`
	ParentId      *uuid.UUID       `json:"parent_id,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

type PreviewQuoteRequest struct {
	ResourceId    uuid.UUID `json:"resource_id" validate:"required"`
	StartAt       time.Time `json:"start_at" validate:"required"`
	EndAt         time.Time `json:"end_at" validate:"required"`
	Quantity      int       `json:"quantity" validate:"omitempty,min=1"`
	Currency      string    `json:"currency" validate:"omitempty,len=3,uppercase"`
	InsuranceType string    `json:"insurance_type"`
}

type CancelReservationRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
	// Force bypasses the refund schedule and issues a full refund. Owner or
	// operator only.
	Force bool `json:"force"`
}

type CancelReservationResponse struct {
	Id           uuid.UUID       `json:"id"`
	Status       string          `json:"status"`
	RefundAmount decimal.Decimal `json:"refund_amount"`
	FeeAmount    decimal.Decimal `json:"fee_amount"`
	Currency     string          `json:"currency"`
}

type DisputeRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

type ResolveDisputeRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=completed cancelled"`
	Reason  string `json:"reason" validate:"required,min=3"`
}

type StatusHistoryResponse struct {
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	ActorId        uuid.UUID `json:"actor_id,omitempty"`
	Reason         string    `json:"reason"`
	CreatedAt      time.Time `json:"created_at"`
}

type AvailabilityWindow struct {
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
	Status  string    `json:"status"`
}

type ResourceAvailabilityResponse struct {
	ResourceId uuid.UUID            `json:"resource_id"`
	From       time.Time            `json:"from"`
	To         time.Time            `json:"to"`
	Booked     []AvailabilityWindow `json:"booked"`
}
