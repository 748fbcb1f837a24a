package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SubscriptionPeriod is the billing length of a subscription.
type SubscriptionPeriod string

// Subscription periods
const (
	PeriodOneMonth     SubscriptionPeriod = "ONE_MONTH"
	PeriodThreeMonths  SubscriptionPeriod = "THREE_MONTHS"
	PeriodSixMonths    SubscriptionPeriod = "SIX_MONTHS"
	PeriodTwelveMonths SubscriptionPeriod = "TWELVE_MONTHS"
)

// Periods lists every subscription period, shortest first.
var Periods = []SubscriptionPeriod{PeriodOneMonth, PeriodThreeMonths, PeriodSixMonths, PeriodTwelveMonths}

// Months returns the number of months covered by the period, or 0 if unknown.
func (p SubscriptionPeriod) Months() int {
	switch p {
	case PeriodOneMonth:
		return 1
	case PeriodThreeMonths:
		return 3
	case PeriodSixMonths:
		return 6
	case PeriodTwelveMonths:
		return 12
	}
	return 0
}

// Valid reports whether p is a known period.
func (p SubscriptionPeriod) Valid() bool {
	return p.Months() > 0
}

var hundred = decimal.NewFromInt(100)

// PeriodPrice is a list price and a percentage discount.
type PeriodPrice struct {
	Price    decimal.Decimal `json:"price"`
	Discount decimal.Decimal `json:"discount"`
}

// Final returns the discounted price rounded to cents. The discount is
// clamped to [0, 100].
func (pp PeriodPrice) Final() decimal.Decimal {
	discount := pp.Discount
	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(hundred) {
		discount = hundred
	}
	factor := hundred.Sub(discount).Div(hundred)
	return pp.Price.Mul(factor).Round(2)
}

// Pricing holds the price list of a pair for every subscription period.
type Pricing struct {
	OneMonth     PeriodPrice `json:"oneMonth"`
	ThreeMonths  PeriodPrice `json:"threeMonths"`
	SixMonths    PeriodPrice `json:"sixMonths"`
	TwelveMonths PeriodPrice `json:"twelveMonths"`
}

// For returns the price entry for period.
func (p Pricing) For(period SubscriptionPeriod) (PeriodPrice, error) {
	switch period {
	case PeriodOneMonth:
		return p.OneMonth, nil
	case PeriodThreeMonths:
		return p.ThreeMonths, nil
	case PeriodSixMonths:
		return p.SixMonths, nil
	case PeriodTwelveMonths:
		return p.TwelveMonths, nil
	}
	return PeriodPrice{}, fmt.Errorf("unknown subscription period %q", period)
}

// FinalPrices returns the discounted price for every period.
func (p Pricing) FinalPrices() map[SubscriptionPeriod]decimal.Decimal {
	out := make(map[SubscriptionPeriod]decimal.Decimal, len(Periods))
	for _, period := range Periods {
		pp, _ := p.For(period)
		out[period] = pp.Final()
	}
	return out
}
