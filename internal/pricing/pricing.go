// Package pricing computes field rental prices from a rate card.
package pricing

import "github.com/shopspring/decimal"

// RateCard is a field's rental pricing configuration.
type RateCard struct {
	HourlyRate        float64 `json:"hourlyRate"`
	MemberDiscount    float64 `json:"memberDiscount"`    // percent
	WeekendSurcharge  float64 `json:"weekendSurcharge"`  // percent
	LightingSurcharge float64 `json:"lightingSurcharge"` // fixed amount per hour
}

var hundred = decimal.NewFromInt(100)

// Quote prices a booking spanning [startMin, endMin) minutes of day.
//
// The order of operations is a business rule and must not be
// rearranged: the weekend surcharge applies to the base rate before
// the lighting addend, and the member discount reduces the
// weekend-adjusted total including lighting. The result is rounded
// half-up to the cent.
func Quote(rates RateCard, startMin, endMin int, weekend, lighting, member bool) float64 {
	hours := decimal.NewFromInt(int64(endMin - startMin)).Div(decimal.NewFromInt(60))

	price := decimal.NewFromFloat(rates.HourlyRate).Mul(hours)

	if weekend {
		surcharge := decimal.NewFromFloat(rates.WeekendSurcharge).Div(hundred)
		price = price.Mul(decimal.NewFromInt(1).Add(surcharge))
	}

	if lighting {
		price = price.Add(decimal.NewFromFloat(rates.LightingSurcharge).Mul(hours))
	}

	if member {
		discount := decimal.NewFromFloat(rates.MemberDiscount).Div(hundred)
		price = price.Mul(decimal.NewFromInt(1).Sub(discount))
	}

	out, _ := price.Round(2).Float64()
	return out
}

// LineTotal multiplies a unit price by a quantity, rounded to the cent.
func LineTotal(unitPrice float64, quantity int) float64 {
	total := decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(quantity)))
	out, _ := total.Round(2).Float64()
	return out
}

// Sum adds amounts without accumulating float error, rounded to the cent.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	out, _ := total.Round(2).Float64()
	return out
}

// DiscountedTotal applies a flat discount to a subtotal, floored at zero.
func DiscountedTotal(subtotal, discount float64) float64 {
	total := decimal.NewFromFloat(subtotal).Sub(decimal.NewFromFloat(discount))
	if total.IsNegative() {
		return 0
	}
	out, _ := total.Round(2).Float64()
	return out
}
