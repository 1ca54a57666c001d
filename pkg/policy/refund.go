package policy

import (
	"sort"
	"time"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"
	"github.com/Dushime20/urutibiz-backend-sub001/pkg/pricing"

	"github.com/shopspring/decimal"
)

// Breakdown is the outcome of a cancellation computation. RefundAmount and
// FeeAmount always sum exactly to the refundable total.
type Breakdown struct {
	PolicyTier   entity.PolicyTier
	RefundPct    decimal.Decimal
	RefundAmount decimal.Decimal
	FeeAmount    decimal.Decimal
	Currency     string
}

// DaysUntilStart is the number of whole days between now and the start
// instant, rounded down. Cancellations after the start yield negative
// values, which never match any threshold.
func DaysUntilStart(now, start time.Time) int {
	diff := start.Sub(now)
	if diff < 0 {
		return int(diff.Hours()/24) - 1
	}
	return int(diff.Hours() / 24)
}

// RefundableTotal derives the portion of a quote subject to the refund
// percentage. The deposit is always returned in full by the return flow, so
// it is excluded here, and the service fee is excluded when the policy marks
// it as consumed on booking.
func RefundableTotal(p *entity.CancellationPolicy, quote *entity.Quote) decimal.Decimal {
	refundable := quote.Total.Sub(quote.Deposit)
	if p.ServiceFeeNonRefundable {
		refundable = refundable.Sub(quote.ServiceFee)
	}
	if refundable.IsNegative() {
		return decimal.Zero
	}
	return refundable
}

// ComputeRefund walks the policy's thresholds from the largest minimum-days
// downward and applies the first matching refund percentage; no match means
// zero refund. Both amounts are rounded to the currency's minor unit, with
// the fee taken as the exact remainder so the pair reconciles.
func ComputeRefund(p *entity.CancellationPolicy, daysUntilStart int, refundable decimal.Decimal, currency string) Breakdown {
	thresholds := make([]entity.RefundThreshold, len(p.Thresholds))
	copy(thresholds, p.Thresholds)
	sort.Slice(thresholds, func(i, j int) bool {
		return thresholds[i].MinDaysBefore > thresholds[j].MinDaysBefore
	})

	pct := decimal.Zero
	for _, th := range thresholds {
		if daysUntilStart >= th.MinDaysBefore {
			pct = th.RefundPct
			break
		}
	}

	refundable = pricing.RoundComponent(refundable, currency)
	refund := pricing.RoundComponent(refundable.Mul(pct), currency)
	fee := refundable.Sub(refund)

	return Breakdown{
		PolicyTier:   p.Tier,
		RefundPct:    pct,
		RefundAmount: refund,
		FeeAmount:    fee,
		Currency:     currency,
	}
}
