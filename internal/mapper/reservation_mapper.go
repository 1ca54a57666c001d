package mapper

import (
	"encoding/json"
	"fmt"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/model"
)

// ReservationToModel converts the domain reservation into its persistence
// shape, serializing the quote and cancellation snapshots to JSON.
func ReservationToModel(r *entity.Reservation) (*model.Reservation, error) {
	m := &model.Reservation{
		ID:            r.Id,
		Code:          r.Code,
		RequesterID:   r.RequesterId,
		OwnerID:       r.OwnerId,
		ResourceID:    r.ResourceId,
		StartAt:       r.StartAt,
		EndAt:         r.EndAt,
		Quantity:      r.Quantity,
		Status:        string(r.Status),
		PaymentStatus: string(r.PaymentStatus),
		ExpiresAt:     r.ExpiresAt,
		ParentID:      r.ParentId,
	}

	if r.Quote != nil {
		raw, err := json.Marshal(r.Quote)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize quote: %w", err)
		}
		m.QuoteBreakdown = raw
		m.QuoteTotal = r.Quote.Total
		m.QuoteCurrency = r.Quote.Currency
	}

	if r.Cancellation != nil {
		raw, err := json.Marshal(r.Cancellation)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize cancellation record: %w", err)
		}
		m.Cancellation = raw
	}

	return m, nil
}

// ReservationToEntity rehydrates the domain reservation from a row.
func ReservationToEntity(m *model.Reservation) (*entity.Reservation, error) {
	r := &entity.Reservation{
		Id:            m.ID,
		Code:          m.Code,
		RequesterId:   m.RequesterID,
		OwnerId:       m.OwnerID,
		ResourceId:    m.ResourceID,
		StartAt:       m.StartAt,
		EndAt:         m.EndAt,
		Quantity:      m.Quantity,
		Status:        entity.ReservationStatus(m.Status),
		PaymentStatus: entity.PaymentStatus(m.PaymentStatus),
		ExpiresAt:     m.ExpiresAt,
		ParentId:      m.ParentID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}

	if len(m.QuoteBreakdown) > 0 {
		var quote entity.Quote
		if err := json.Unmarshal(m.QuoteBreakdown, &quote); err != nil {
			return nil, fmt.Errorf("failed to parse quote snapshot: %w", err)
		}
		r.Quote = &quote
	}

	if len(m.Cancellation) > 0 {
		var record entity.CancellationRecord
		if err := json.Unmarshal(m.Cancellation, &record); err != nil {
			return nil, fmt.Errorf("failed to parse cancellation record: %w", err)
		}
		r.Cancellation = &record
	}

	return r, nil
}

func StatusHistoryToModel(h *entity.StatusHistory) *model.ReservationStatusHistory {
	return &model.ReservationStatusHistory{
		ID:             h.Id,
		ReservationID:  h.ReservationId,
		PreviousStatus: string(h.PreviousStatus),
		NewStatus:      string(h.NewStatus),
		ActorID:        h.ActorId,
		Reason:         h.Reason,
	}
}

func StatusHistoryToEntity(m *model.ReservationStatusHistory) *entity.StatusHistory {
	return &entity.StatusHistory{
		Id:             m.ID,
		ReservationId:  m.ReservationID,
		PreviousStatus: entity.ReservationStatus(m.PreviousStatus),
		NewStatus:      entity.ReservationStatus(m.NewStatus),
		ActorId:        m.ActorID,
		Reason:         m.Reason,
		CreatedAt:      m.CreatedAt,
	}
}
