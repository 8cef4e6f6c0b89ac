package timeslot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinutes(t *testing.T) {
	assert.Equal(t, 0, Minutes("00:00"))
	assert.Equal(t, 570, Minutes("09:30"))
	assert.Equal(t, 1439, Minutes("23:59"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "00:00", Format(0))
	assert.Equal(t, "09:30", Format(570))
	assert.Equal(t, "23:59", Format(1439))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint", New("09:00", "10:00"), New("11:00", "12:00"), false},
		{"adjacent boundary", New("09:00", "10:00"), New("10:00", "11:00"), false},
		{"partial overlap", New("09:00", "10:30"), New("10:00", "11:00"), true},
		{"contained", New("09:00", "12:00"), New("10:00", "11:00"), true},
		{"identical", New("09:00", "10:00"), New("09:00", "10:00"), true},
		{"touching at start", New("10:00", "11:00"), New("09:00", "10:00"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.a, tt.b))
			// overlap is symmetric
			assert.Equal(t, Overlaps(tt.a, tt.b), Overlaps(tt.b, tt.a))
		})
	}
}

func TestHourlySlots(t *testing.T) {
	slots := HourlySlots(New("09:00", "12:00"))
	assert.Len(t, slots, 3)
	assert.Equal(t, Interval{Start: 540, End: 600}, slots[0])
	assert.Equal(t, Interval{Start: 660, End: 720}, slots[2])
}

func TestHourlySlots_IgnoresWindowMinutes(t *testing.T) {
	// 09:30-11:30 publishes the same hourly grid as 09:00-11:00.
	slots := HourlySlots(New("09:30", "11:30"))
	assert.Len(t, slots, 2)
	assert.Equal(t, "09:00", Format(slots[0].Start))
	assert.Equal(t, "11:00", Format(slots[1].End))
}

func TestHourlySlots_EmptyWindow(t *testing.T) {
	assert.Empty(t, HourlySlots(New("10:00", "10:00")))
}
