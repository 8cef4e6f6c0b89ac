// Package timeslot provides minute-of-day interval arithmetic for field
// bookings. Times are "HH:mm" strings parsed to minutes from midnight;
// intervals are half-open, so a booking ending at 10:00 does not clash
// with one starting at 10:00.
package timeslot

import (
	"fmt"
	"strconv"
	"strings"
)

// SlotMinutes is the length of one bookable slot.
const SlotMinutes = 60

// Interval is a half-open [Start, End) range in minutes from midnight.
type Interval struct {
	Start int
	End   int
}

// Minutes converts an "HH:mm" time to minutes from midnight. Inputs are
// validated upstream; this does not defend against malformed strings.
func Minutes(hhmm string) int {
	hh, mm, _ := strings.Cut(hhmm, ":")
	h, _ := strconv.Atoi(hh)
	m, _ := strconv.Atoi(mm)
	return h*60 + m
}

// Format renders minutes from midnight back to "HH:mm".
func Format(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// New builds an interval from "HH:mm" start and end times.
func New(start, end string) Interval {
	return Interval{Start: Minutes(start), End: Minutes(end)}
}

// Overlaps reports whether a and b share any instant.
func Overlaps(a, b Interval) bool {
	return a.Start < b.End && b.Start < a.End
}

// HourlySlots partitions an operating window into one-hour candidate
// slots aligned to the hour. A window of 09:00-21:00 yields twelve
// slots; minutes in the window bounds are ignored, matching how the
// club publishes its opening hours.
func HourlySlots(window Interval) []Interval {
	startHour := window.Start / SlotMinutes
	endHour := window.End / SlotMinutes

	var slots []Interval
	for h := startHour; h < endHour; h++ {
		slots = append(slots, Interval{Start: h * SlotMinutes, End: (h + 1) * SlotMinutes})
	}
	return slots
}
