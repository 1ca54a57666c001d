package pricing

import (
	"testing"
	"time"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"
	"github.com/Dushime20/urutibiz-backend-sub001/pkg/booking"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// baseCard is a $50/day card with no adjustments, matching the simplest
// rental scenario.
func baseCard() *entity.RateCard {
	return &entity.RateCard{
		Currency:     "USD",
		DailyRate:    decPtr("50"),
		MarketFactor: dec("1"),
	}
}

func TestCalculatePlainDaily(t *testing.T) {
	quote, err := Calculate(Input{
		Card:     baseCard(),
		Window:   Window{Start: day(2025, time.September, 1), End: day(2025, time.September, 5)},
		Quantity: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RateTierDaily, quote.RateTier)
	assert.EqualValues(t, 4, quote.Units)
	assert.True(t, quote.Subtotal.Equal(dec("200")), "subtotal = %s", quote.Subtotal)
	assert.True(t, quote.Total.Equal(dec("200")), "total = %s", quote.Total)
	assert.Equal(t, "USD", quote.Currency)
}

func TestCalculateHourlyUnderOneDay(t *testing.T) {
	card := baseCard()
	card.HourlyRate = decPtr("4")

	start := day(2025, time.September, 1)
	quote, err := Calculate(Input{
		Card:     card,
		Window:   Window{Start: start, End: start.Add(5 * time.Hour)},
		Quantity: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RateTierHourly, quote.RateTier)
	assert.EqualValues(t, 5, quote.Units)
	assert.True(t, quote.Total.Equal(dec("20")))
}

func TestCalculateHourlyLosesToCheaperDaily(t *testing.T) {
	// 20 hours at $4 would be $80; a $50 day is cheaper.
	card := baseCard()
	card.HourlyRate = decPtr("4")

	start := day(2025, time.September, 1)
	quote, err := Calculate(Input{
		Card:     card,
		Window:   Window{Start: start, End: start.Add(20 * time.Hour)},
		Quantity: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RateTierDaily, quote.RateTier)
	assert.True(t, quote.Total.Equal(dec("50")))
}

func TestCalculateTierMinimization(t *testing.T) {
	// 29 days: 29x$50=$1450 daily, 4x$280+1x$50=$1170 weekly, 1x$1000 monthly.
	card := baseCard()
	card.WeeklyRate = decPtr("280")
	card.MonthlyRate = decPtr("1000")

	quote, err := Calculate(Input{
		Card:     card,
		Window:   Window{Start: day(2025, time.June, 1), End: day(2025, time.June, 30)},
		Quantity: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RateTierMonthly, quote.RateTier)
	assert.True(t, quote.Total.Equal(dec("1000")), "total = %s", quote.Total)
}

func TestCalculateTieGoesToLongerUnit(t *testing.T) {
	// 7 days: 7x$50 = $350 = 1x$350 weekly. The longer unit wins the tie.
	card := baseCard()
	card.WeeklyRate = decPtr("350")

	quote, err := Calculate(Input{
		Card:     card,
		Window:   Window{Start: day(2025, time.June, 1), End: day(2025, time.June, 8)},
		Quantity: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RateTierWeekly, quote.RateTier)
}

func TestCalculateBulkAndTierDiscountsSum(t *testing.T) {
	// Weekly discount 10% + bulk 5%, both against the pre-discount subtotal.
	card := baseCard()
	card.WeeklyRate = decPtr("300")
	card.WeeklyDiscountPct = dec("0.10")
	card.BulkThreshold = 3
	card.BulkDiscountPct = dec("0.05")

	quote, err := Calculate(Input{
		Card:     card,
		Window:   Window{Start: day(2025, time.June, 1), End: day(2025, time.June, 15)},
		Quantity: 5,
	})
	require.NoError(t, err)

	// 2 weeks x $300 x 5 units = $3000; discount = 15% of 3000 = $450.
	assert.True(t, quote.Subtotal.Equal(dec("3000")), "subtotal = %s", quote.Subtotal)
	assert.True(t, quote.Discount.Equal(dec("450")), "discount = %s", quote.Discount)
	assert.True(t, quote.Total.Equal(dec("2550")))
}

func TestCalculateDiscountCappedAtSubtotal(t *testing.T) {
	card := baseCard()
	card.WeeklyRate = decPtr("300")
	card.WeeklyDiscountPct = dec("0.80")
	card.BulkThreshold = 2
	card.BulkDiscountPct = dec("0.40")

	quote, err := Calculate(Input{
		Card:     card,
		Window:   Window{Start: day(2025, time.June, 1), End: day(2025, time.June, 8)},
		Quantity: 2,
	})
	require.NoError(t, err)

	// 120% of subtotal is capped at the subtotal; the total floors at zero.
	assert.True(t, quote.Discount.Equal(quote.Subtotal))
	assert.True(t, quote.Total.IsZero())
}

func TestCalculateSeasonalMultiplier(t *testing.T) {
	card := baseCard()
	card.DynamicPricing = true
	card.SeasonalAdjustments = map[time.Month]decimal.Decimal{
		time.July: dec("1.5"),
	}

	july, err := Calculate(Input{
		Card:     card,
		Window:   Window{Start: day(2025, time.July, 1), End: day(2025, time.July, 3)},
		Quantity: 1,
	})
	require.NoError(t, err)
	assert.True(t, july.Total.Equal(dec("150")))

	// Months absent from the map default to a 1.0 multiplier.
	march, err := Calculate(Input{
		Card:     card,
		Window:   Window{Start: day(2025, time.March, 1), End: day(2025, time.March, 3)},
		Quantity: 1,
	})
	require.NoError(t, err)
	assert.True(t, march.Total.Equal(dec("100")))
}

func TestCalculatePeakSeasonWindow(t *testing.T) {
	card := baseCard()
	card.PeakStartMonth = time.November
	card.PeakEndMonth = time.February
	card.PeakMultiplier = dec("1.2")
	card.OffSeasonMultiplier = dec("0.9")

	// January sits inside the wrapped November-February window.
	peak, err := Calculate(Input{
		Card:     card,
		Window:   Window{Start: day(2025, time.January, 10), End: day(2025, time.January, 12)},
		Quantity: 1,
	})
	require.NoError(t, err)
	assert.True(t, peak.Total.Equal(dec("120")))

	off, err := Calculate(Input{
		Card:     card,
		Window:   Window{Start: day(2025, time.May, 10), End: day(2025, time.May, 12)},
		Quantity: 1,
	})
	require.NoError(t, err)
	assert.True(t, off.Total.Equal(dec("90")))
}

func TestCalculateFeesAndTax(t *testing.T) {
	card := baseCard()
	card.DepositAmount = dec("100")
	card.ServiceFeePct = dec("0.10")
	card.TaxPct = dec("0.18")
	card.InsurancePremiums = map[string]decimal.Decimal{"basic": dec("25")}

	quote, err := Calculate(Input{
		Card:          card,
		Window:        Window{Start: day(2025, time.September, 1), End: day(2025, time.September, 5)},
		Quantity:      1,
		InsuranceType: "basic",
	})
	require.NoError(t, err)

	// subtotal 200, fee 20, insurance 25; tax on 245 (deposit not taxable).
	assert.True(t, quote.ServiceFee.Equal(dec("20")))
	assert.True(t, quote.Insurance.Equal(dec("25")))
	assert.True(t, quote.Tax.Equal(dec("44.1")), "tax = %s", quote.Tax)
	assert.True(t, quote.Deposit.Equal(dec("100")))
	assert.True(t, quote.Total.Equal(dec("389.1")))
}

func TestCalculateCurrencyConversionReconciles(t *testing.T) {
	card := baseCard()
	card.DailyRate = decPtr("33.33")
	card.DepositAmount = dec("99.99")
	card.ServiceFeePct = dec("0.115")
	card.TaxPct = dec("0.0725")
	card.ExchangeRates = map[string]decimal.Decimal{"EUR": dec("0.91737")}

	quote, err := Calculate(Input{
		Card:     card,
		Window:   Window{Start: day(2025, time.September, 1), End: day(2025, time.September, 4)},
		Quantity: 3,
		Currency: "EUR",
	})
	require.NoError(t, err)

	assert.Equal(t, "EUR", quote.Currency)

	// Every component carries at most the currency's minor-unit precision
	// and the total is exactly the sum of the rounded components.
	for name, component := range map[string]decimal.Decimal{
		"subtotal":    quote.Subtotal,
		"discount":    quote.Discount,
		"deposit":     quote.Deposit,
		"service_fee": quote.ServiceFee,
		"tax":         quote.Tax,
		"insurance":   quote.Insurance,
		"total":       quote.Total,
	} {
		assert.LessOrEqual(t, int32(-component.Exponent()), MinorUnitExponent("EUR"), "%s has stray precision: %s", name, component)
	}
	sum := quote.Subtotal.Sub(quote.Discount).Add(quote.Deposit).Add(quote.ServiceFee).Add(quote.Tax).Add(quote.Insurance)
	assert.True(t, quote.Total.Equal(sum))
}

func TestCalculateZeroDecimalCurrency(t *testing.T) {
	card := baseCard()
	card.ExchangeRates = map[string]decimal.Decimal{"JPY": dec("147.61")}

	quote, err := Calculate(Input{
		Card:     card,
		Window:   Window{Start: day(2025, time.September, 1), End: day(2025, time.September, 2)},
		Quantity: 1,
		Currency: "JPY",
	})
	require.NoError(t, err)

	// 50 x 147.61 = 7380.5, rounded half up to whole yen.
	assert.True(t, quote.Total.Equal(dec("7381")), "total = %s", quote.Total)
}

func TestCalculateDeterministic(t *testing.T) {
	card := baseCard()
	card.WeeklyRate = decPtr("280")
	card.WeeklyDiscountPct = dec("0.07")
	card.ServiceFeePct = dec("0.12")
	card.TaxPct = dec("0.18")

	in := Input{
		Card:     card,
		Window:   Window{Start: day(2025, time.June, 1), End: day(2025, time.June, 15)},
		Quantity: 2,
	}

	first, err := Calculate(in)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Calculate(in)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCalculateConfigErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*entity.RateCard)
		input  func(Input) Input
	}{
		{
			name:   "no applicable tier",
			mutate: func(c *entity.RateCard) { c.DailyRate = nil },
		},
		{
			name:   "missing market factor",
			mutate: func(c *entity.RateCard) { c.MarketFactor = decimal.Zero },
		},
		{
			name:   "negative rate",
			mutate: func(c *entity.RateCard) { c.DailyRate = decPtr("-5") },
		},
		{
			name:   "missing exchange rate",
			mutate: func(c *entity.RateCard) {},
			input:  func(in Input) Input { in.Currency = "GBP"; return in },
		},
		{
			name:   "unknown insurance type",
			mutate: func(c *entity.RateCard) {},
			input:  func(in Input) Input { in.InsuranceType = "premium"; return in },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := baseCard()
			tt.mutate(card)
			in := Input{
				Card:     card,
				Window:   Window{Start: day(2025, time.September, 1), End: day(2025, time.September, 5)},
				Quantity: 1,
			}
			if tt.input != nil {
				in = tt.input(in)
			}

			_, err := Calculate(in)
			var cfgErr *booking.PricingConfigError
			assert.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestCalculateRejectsBadWindow(t *testing.T) {
	_, err := Calculate(Input{
		Card:     baseCard(),
		Window:   Window{Start: day(2025, time.September, 5), End: day(2025, time.September, 1)},
		Quantity: 1,
	})
	var vErr *booking.ValidationError
	assert.ErrorAs(t, err, &vErr)
}
