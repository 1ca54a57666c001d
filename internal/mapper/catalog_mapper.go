package mapper

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"
	"github.com/Dushime20/urutibiz-backend-sub001/internal/model"

	"github.com/shopspring/decimal"
)

func ResourceToEntity(m *model.Resource) *entity.Resource {
	return &entity.Resource{
		Id:         m.ID,
		OwnerId:    m.OwnerID,
		Name:       m.Name,
		Status:     entity.ResourceStatus(m.Status),
		PolicyTier: entity.PolicyTier(m.PolicyTier),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// RateCardToEntity rehydrates the jsonb maps (seasonal adjustments keyed by
// month number, insurance premiums, exchange rates) into typed maps.
func RateCardToEntity(m *model.RateCard) (*entity.RateCard, error) {
	card := &entity.RateCard{
		Id:                  m.ID,
		ResourceId:          m.ResourceID,
		Currency:            m.Currency,
		HourlyRate:          m.HourlyRate,
		DailyRate:           m.DailyRate,
		WeeklyRate:          m.WeeklyRate,
		MonthlyRate:         m.MonthlyRate,
		MinDurationHours:    m.MinDurationHours,
		MaxDurationHours:    m.MaxDurationHours,
		WeeklyDiscountPct:   m.WeeklyDiscountPct,
		MonthlyDiscountPct:  m.MonthlyDiscountPct,
		BulkThreshold:       m.BulkThreshold,
		BulkDiscountPct:     m.BulkDiscountPct,
		DynamicPricing:      m.DynamicPricing,
		PeakStartMonth:      time.Month(m.PeakStartMonth),
		PeakEndMonth:        time.Month(m.PeakEndMonth),
		PeakMultiplier:      m.PeakMultiplier,
		OffSeasonMultiplier: m.OffSeasonMultiplier,
		MarketFactor:        m.MarketFactor,
		DepositAmount:       m.DepositAmount,
		ServiceFeePct:       m.ServiceFeePct,
		TaxPct:              m.TaxPct,
		DepositTaxable:      m.DepositTaxable,
		EarlyReturnFeePct:   m.EarlyReturnFeePct,
		LateReturnHourly:    m.LateReturnHourly,
		EffectiveFrom:       m.EffectiveFrom,
		EffectiveTo:         m.EffectiveTo,
	}

	if len(m.SeasonalAdjustments) > 0 {
		var byMonth map[string]decimal.Decimal
		if err := json.Unmarshal(m.SeasonalAdjustments, &byMonth); err != nil {
			return nil, fmt.Errorf("failed to parse seasonal adjustments: %w", err)
		}
		card.SeasonalAdjustments = make(map[time.Month]decimal.Decimal, len(byMonth))
		for key, multiplier := range byMonth {
			month, err := strconv.Atoi(key)
			if err != nil || month < 1 || month > 12 {
				return nil, fmt.Errorf("invalid seasonal adjustment month %q", key)
			}
			card.SeasonalAdjustments[time.Month(month)] = multiplier
		}
	}

	if len(m.InsurancePremiums) > 0 {
		if err := json.Unmarshal(m.InsurancePremiums, &card.InsurancePremiums); err != nil {
			return nil, fmt.Errorf("failed to parse insurance premiums: %w", err)
		}
	}

	if len(m.ExchangeRates) > 0 {
		if err := json.Unmarshal(m.ExchangeRates, &card.ExchangeRates); err != nil {
			return nil, fmt.Errorf("failed to parse exchange rates: %w", err)
		}
	}

	return card, nil
}

func CancellationPolicyToEntity(m *model.CancellationPolicy) (*entity.CancellationPolicy, error) {
	p := &entity.CancellationPolicy{
		Id:                      m.ID,
		Tier:                    entity.PolicyTier(m.Tier),
		ServiceFeeNonRefundable: m.ServiceFeeNonRefundable,
	}
	if len(m.Thresholds) > 0 {
		if err := json.Unmarshal(m.Thresholds, &p.Thresholds); err != nil {
			return nil, fmt.Errorf("failed to parse refund thresholds: %w", err)
		}
	}
	return p, nil
}
