package policy

import (
	"testing"
	"time"

	"github.com/Dushime20/urutibiz-backend-sub001/internal/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// flexiblePolicy grants 100% at 30+ days out and 50% at 7+ days out.
func flexiblePolicy() *entity.CancellationPolicy {
	return &entity.CancellationPolicy{
		Tier: entity.PolicyTierFlexible,
		Thresholds: []entity.RefundThreshold{
			{MinDaysBefore: 30, RefundPct: dec("1")},
			{MinDaysBefore: 7, RefundPct: dec("0.5")},
		},
	}
}

func TestDaysUntilStart(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start time.Time
		want  int
	}{
		{"ten and a half days out", now.Add(10*24*time.Hour + 12*time.Hour), 10},
		{"exactly seven days out", now.Add(7 * 24 * time.Hour), 7},
		{"just under one day out", now.Add(23 * time.Hour), 0},
		{"already started", now.Add(-2 * time.Hour), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntilStart(now, tt.start))
		})
	}
}

func TestComputeRefundThresholdWalk(t *testing.T) {
	p := flexiblePolicy()
	refundable := dec("400")

	tests := []struct {
		name       string
		days       int
		wantRefund string
		wantFee    string
	}{
		{"far out gets full refund", 45, "400", "0"},
		{"at the 30 day boundary", 30, "400", "0"},
		{"ten days out gets half", 10, "200", "200"},
		{"at the 7 day boundary", 7, "200", "200"},
		{"too close gets nothing", 3, "0", "400"},
		{"after start gets nothing", -1, "0", "400"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeRefund(p, tt.days, refundable, "USD")
			assert.True(t, got.RefundAmount.Equal(dec(tt.wantRefund)), "refund = %s", got.RefundAmount)
			assert.True(t, got.FeeAmount.Equal(dec(tt.wantFee)), "fee = %s", got.FeeAmount)
		})
	}
}

func TestComputeRefundUnsortedThresholds(t *testing.T) {
	// The walk must be highest-threshold-first regardless of storage order.
	p := &entity.CancellationPolicy{
		Tier: entity.PolicyTierModerate,
		Thresholds: []entity.RefundThreshold{
			{MinDaysBefore: 5, RefundPct: dec("0.25")},
			{MinDaysBefore: 30, RefundPct: dec("1")},
			{MinDaysBefore: 14, RefundPct: dec("0.5")},
		},
	}

	got := ComputeRefund(p, 40, dec("100"), "USD")
	assert.True(t, got.RefundAmount.Equal(dec("100")))
}

func TestComputeRefundPartitionsExactly(t *testing.T) {
	p := flexiblePolicy()
	// An odd amount whose half needs rounding: refund + fee must still equal
	// the refundable total exactly.
	refundable := dec("133.33")

	got := ComputeRefund(p, 10, refundable, "USD")
	assert.True(t, got.RefundAmount.Equal(dec("66.67")), "refund = %s", got.RefundAmount)
	assert.True(t, got.FeeAmount.Equal(dec("66.66")), "fee = %s", got.FeeAmount)
	assert.True(t, got.RefundAmount.Add(got.FeeAmount).Equal(refundable))
}

func TestComputeRefundMonotonicInDays(t *testing.T) {
	p := flexiblePolicy()
	refundable := dec("500")

	prev := decimal.Zero
	for days := -2; days <= 60; days++ {
		got := ComputeRefund(p, days, refundable, "USD")
		assert.True(t, got.RefundAmount.GreaterThanOrEqual(prev),
			"refund decreased as days-until-start grew: %d days -> %s", days, got.RefundAmount)
		prev = got.RefundAmount
	}
}

func TestRefundableTotalExclusions(t *testing.T) {
	quote := &entity.Quote{
		Total:      dec("389.10"),
		Deposit:    dec("100"),
		ServiceFee: dec("20"),
	}

	p := flexiblePolicy()
	assert.True(t, RefundableTotal(p, quote).Equal(dec("289.10")))

	p.ServiceFeeNonRefundable = true
	assert.True(t, RefundableTotal(p, quote).Equal(dec("269.10")))
}
