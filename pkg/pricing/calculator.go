package pricing

import (
	"time"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"
	"github.com/Dushime20/urutibiz-backend-sub001/pkg/booking"

	"github.com/shopspring/decimal"
)

// Window is the half-open rental interval being priced.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Input carries everything the calculator needs. The calculator performs no
// I/O: identical inputs always produce identical quotes.
type Input struct {
	Card     *entity.RateCard
	Window   Window
	Quantity int

	// Currency is the requested quote currency. Empty means the card's
	// base currency.
	Currency string

	// InsuranceType selects a premium from the card's tiered insurance
	// table. Empty means no insurance.
	InsuranceType string
}

type tierCost struct {
	tier  entity.RateTier
	units int64
	cost  decimal.Decimal
}

// Calculate produces the itemized, immutable quote for a rental window.
// Missing required rate-card data yields a PricingConfigError rather than a
// silent default; the only defaulted values are the seasonal multiplier
// (1.0 when the start month is absent from the map) and deposit taxability
// (not taxable).
func Calculate(in Input) (*entity.Quote, error) {
	card := in.Card
	if card == nil {
		return nil, &booking.PricingConfigError{Field: "rate_card", Reason: "no rate card supplied"}
	}
	if !in.Window.End.After(in.Window.Start) {
		return nil, &booking.ValidationError{Field: "window", Reason: "end must be after start"}
	}
	if in.Quantity < 1 {
		return nil, &booking.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	if err := validateCard(card); err != nil {
		return nil, err
	}

	selected, err := selectTier(card, in.Window.Duration())
	if err != nil {
		return nil, err
	}

	qty := decimal.NewFromInt(int64(in.Quantity))
	subtotal := selected.cost.Mul(qty).Mul(card.MarketFactor)
	subtotal = applySeason(card, in.Window.Start, subtotal)

	discount := computeDiscount(card, selected.tier, in.Quantity, subtotal)

	deposit := card.DepositAmount.Mul(qty)
	serviceFee := subtotal.Sub(discount).Mul(card.ServiceFeePct)

	insurance := decimal.Zero
	if in.InsuranceType != "" {
		premium, ok := card.InsurancePremiums[in.InsuranceType]
		if !ok {
			return nil, &booking.PricingConfigError{Field: "insurance_premiums", Reason: "no premium configured for type " + in.InsuranceType}
		}
		insurance = premium
	}

	taxBase := subtotal.Sub(discount).Add(serviceFee).Add(insurance)
	if card.DepositTaxable {
		taxBase = taxBase.Add(deposit)
	}
	tax := taxBase.Mul(card.TaxPct)

	currency := in.Currency
	rate := decimal.NewFromInt(1)
	if currency == "" || currency == card.Currency {
		currency = card.Currency
	} else {
		fx, ok := card.ExchangeRates[currency]
		if !ok {
			return nil, &booking.PricingConfigError{Field: "exchange_rates", Reason: "no rate from " + card.Currency + " to " + currency}
		}
		rate = fx
	}

	// Convert then round every component independently; the total is the
	// sum of the rounded components so it reconciles without drift.
	subtotal = RoundComponent(subtotal.Mul(rate), currency)
	discount = RoundComponent(discount.Mul(rate), currency)
	deposit = RoundComponent(deposit.Mul(rate), currency)
	serviceFee = RoundComponent(serviceFee.Mul(rate), currency)
	tax = RoundComponent(tax.Mul(rate), currency)
	insurance = RoundComponent(insurance.Mul(rate), currency)

	total := subtotal.Sub(discount).Add(deposit).Add(serviceFee).Add(tax).Add(insurance)

	return &entity.Quote{
		Currency:     currency,
		ExchangeRate: rate,
		RateTier:     selected.tier,
		Units:        selected.units,
		Subtotal:     subtotal,
		Discount:     discount,
		Deposit:      deposit,
		ServiceFee:   serviceFee,
		Tax:          tax,
		Insurance:    insurance,
		Total:        total,
	}, nil
}

func validateCard(card *entity.RateCard) error {
	for field, rate := range map[string]*decimal.Decimal{
		"hourly_rate":  card.HourlyRate,
		"daily_rate":   card.DailyRate,
		"weekly_rate":  card.WeeklyRate,
		"monthly_rate": card.MonthlyRate,
	} {
		if rate != nil && rate.IsNegative() {
			return &booking.PricingConfigError{Field: field, Reason: "rate is negative"}
		}
	}
	if !card.MarketFactor.IsPositive() {
		return &booking.PricingConfigError{Field: "market_factor", Reason: "must be positive"}
	}
	if card.ServiceFeePct.IsNegative() || card.TaxPct.IsNegative() || card.DepositAmount.IsNegative() {
		return &booking.PricingConfigError{Field: "fees", Reason: "fee configuration is negative"}
	}
	return nil
}

// selectTier picks the cheapest applicable base-rate combination. Durations
// under 24 hours use the hourly rate when one is offered; otherwise whole
// days are priced daily, weekly (full weeks plus leftover days at the daily
// rate) and monthly (30-day months plus leftover priced weekly/daily), and
// the cheapest wins. Ties go to the longer unit for predictability.
func selectTier(card *entity.RateCard, duration time.Duration) (tierCost, error) {
	hours := ceilDiv(int64(duration), int64(time.Hour))
	days := ceilDiv(hours, 24)

	var candidates []tierCost

	if duration < 24*time.Hour && card.HourlyRate != nil {
		candidates = append(candidates, tierCost{
			tier:  entity.RateTierHourly,
			units: hours,
			cost:  card.HourlyRate.Mul(decimal.NewFromInt(hours)),
		})
	}
	if card.DailyRate != nil {
		candidates = append(candidates, tierCost{
			tier:  entity.RateTierDaily,
			units: days,
			cost:  card.DailyRate.Mul(decimal.NewFromInt(days)),
		})
	}
	if card.WeeklyRate != nil && days >= 7 {
		if cost, ok := weeklyCost(card, days); ok {
			candidates = append(candidates, tierCost{
				tier:  entity.RateTierWeekly,
				units: ceilDiv(days, 7),
				cost:  cost,
			})
		}
	}
	if card.MonthlyRate != nil && days >= 28 {
		if cost, ok := monthlyCost(card, days); ok {
			candidates = append(candidates, tierCost{
				tier:  entity.RateTierMonthly,
				units: ceilDiv(days, 30),
				cost:  cost,
			})
		}
	}

	if len(candidates) == 0 {
		return tierCost{}, &booking.PricingConfigError{Field: "rates", Reason: "no rate tier applicable to the requested duration"}
	}

	// Candidates are ordered shortest unit first, so <= prefers the
	// longer-unit tier on equal cost.
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.cost.LessThanOrEqual(best.cost) {
			best = c
		}
	}
	return best, nil
}

// weeklyCost prices full weeks at the weekly rate and leftover days at the
// daily rate; without a daily rate the leftover is charged as a full week.
func weeklyCost(card *entity.RateCard, days int64) (decimal.Decimal, bool) {
	weeks := days / 7
	leftover := days % 7
	cost := card.WeeklyRate.Mul(decimal.NewFromInt(weeks))
	if leftover == 0 {
		return cost, true
	}
	if card.DailyRate != nil {
		return cost.Add(card.DailyRate.Mul(decimal.NewFromInt(leftover))), true
	}
	return cost.Add(*card.WeeklyRate), true
}

// monthlyCost prices 30-day months at the monthly rate; a 28-29 day rental
// rounds up to a single month, and longer leftovers fall back to the weekly
// decomposition.
func monthlyCost(card *entity.RateCard, days int64) (decimal.Decimal, bool) {
	months := days / 30
	leftover := days % 30
	if months == 0 {
		return *card.MonthlyRate, true
	}
	cost := card.MonthlyRate.Mul(decimal.NewFromInt(months))
	if leftover == 0 {
		return cost, true
	}
	if card.WeeklyRate != nil && leftover >= 7 {
		if rest, ok := weeklyCost(card, leftover); ok {
			return cost.Add(rest), true
		}
	}
	if card.DailyRate != nil {
		return cost.Add(card.DailyRate.Mul(decimal.NewFromInt(leftover))), true
	}
	return cost.Add(*card.MonthlyRate), true
}

func applySeason(card *entity.RateCard, start time.Time, subtotal decimal.Decimal) decimal.Decimal {
	if card.DynamicPricing {
		if m, ok := card.SeasonalAdjustments[start.Month()]; ok {
			return subtotal.Mul(m)
		}
		return subtotal
	}
	if card.PeakStartMonth == 0 || card.PeakEndMonth == 0 {
		return subtotal
	}
	multiplier := card.OffSeasonMultiplier
	if monthInSeason(start.Month(), card.PeakStartMonth, card.PeakEndMonth) {
		multiplier = card.PeakMultiplier
	}
	if multiplier.IsZero() {
		return subtotal
	}
	return subtotal.Mul(multiplier)
}

// monthInSeason handles season windows that wrap the year boundary,
// e.g. November through February.
func monthInSeason(m, from, to time.Month) bool {
	if from <= to {
		return m >= from && m <= to
	}
	return m >= from || m <= to
}

// computeDiscount applies the tier discount and the bulk discount, each
// computed against the pre-discount subtotal, summed and capped so the total
// discount never exceeds the subtotal. Summation rather than sequential
// compounding keeps the result independent of stacking order.
func computeDiscount(card *entity.RateCard, tier entity.RateTier, quantity int, subtotal decimal.Decimal) decimal.Decimal {
	discount := decimal.Zero
	switch tier {
	case entity.RateTierWeekly:
		discount = discount.Add(subtotal.Mul(card.WeeklyDiscountPct))
	case entity.RateTierMonthly:
		discount = discount.Add(subtotal.Mul(card.MonthlyDiscountPct))
	}
	if card.BulkThreshold > 0 && quantity >= card.BulkThreshold {
		discount = discount.Add(subtotal.Mul(card.BulkDiscountPct))
	}
	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}
