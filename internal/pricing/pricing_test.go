package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func hhmm(h, m int) int { return h*60 + m }

func TestQuote(t *testing.T) {
	rates := RateCard{
		HourlyRate:        20,
		MemberDiscount:    10,
		WeekendSurcharge:  20,
		LightingSurcharge: 5,
	}

	tests := []struct {
		name                      string
		weekend, lighting, member bool
		want                      float64
	}{
		{"weekday base", false, false, false, 40.00},
		{"weekend surcharge", true, false, false, 48.00},
		{"weekend with lighting", true, true, false, 58.00},
		{"member discount on full total", true, true, true, 52.20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Quote(rates, hhmm(18, 0), hhmm(20, 0), tt.weekend, tt.lighting, tt.member)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuote_FractionalHours(t *testing.T) {
	rates := RateCard{HourlyRate: 30}
	// 90 minutes at 30/h
	assert.Equal(t, 45.00, Quote(rates, hhmm(9, 0), hhmm(10, 30), false, false, false))
}

func TestQuote_RoundsHalfUpAtCent(t *testing.T) {
	// 1h at 10.005 lands exactly on a half cent.
	rates := RateCard{HourlyRate: 10.005}
	assert.Equal(t, 10.01, Quote(rates, hhmm(9, 0), hhmm(10, 0), false, false, false))
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, 74.85, LineTotal(24.95, 3))
}

func TestSum(t *testing.T) {
	// Classic float trap: 0.1+0.2 must come out as 0.30.
	assert.Equal(t, 0.30, Sum(0.1, 0.2))
	assert.Equal(t, 0.00, Sum())
}

func TestDiscountedTotal(t *testing.T) {
	assert.Equal(t, 80.00, DiscountedTotal(100, 20))
	assert.Equal(t, 0.00, DiscountedTotal(10, 25), "discount larger than subtotal floors at zero")
}
