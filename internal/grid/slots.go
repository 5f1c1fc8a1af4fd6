// Package grid computes the festival grid layout: time slots, columns for
// concurrent sessions, drag highlight footprints, and drop rescheduling.
// Everything here is pure and recomputed by the renderer on every change.
package grid

import (
	"github.com/javiermolinar/festplan/internal/session"
)

// ZoomLevels are the supported minutes-per-row values, smallest first.
var ZoomLevels = []int{5, 15, 30, 60, 120}

// DefaultZoom is the zoom used when none is configured.
const DefaultZoom = 30

// GenerateTimeSlots returns slot start times every interval minutes from
// dayStart up to and including dayEnd.
func GenerateTimeSlots(interval int, dayStart, dayEnd string) []string {
	if interval <= 0 {
		interval = DefaultZoom
	}
	start := session.TimeToMinutes(dayStart)
	end := session.TimeToMinutes(dayEnd)

	var slots []string
	for m := start; m <= end; m += interval {
		slots = append(slots, session.MinutesToTime(m))
	}
	return slots
}

// SlotIndex returns the index of the slot containing t, or -1 if t is
// outside the slot range.
func SlotIndex(slots []string, interval int, t string) int {
	if len(slots) == 0 || interval <= 0 {
		return -1
	}
	first := session.TimeToMinutes(slots[0])
	m := session.TimeToMinutes(t)
	if m < first {
		return -1
	}
	idx := (m - first) / interval
	if idx >= len(slots) {
		return -1
	}
	return idx
}

// ZoomIn returns the next finer zoom level, or the current one at the limit.
func ZoomIn(current int) int {
	for i := len(ZoomLevels) - 1; i >= 0; i-- {
		if ZoomLevels[i] < current {
			return ZoomLevels[i]
		}
	}
	return current
}

// ZoomOut returns the next coarser zoom level, or the current one at the limit.
func ZoomOut(current int) int {
	for _, z := range ZoomLevels {
		if z > current {
			return z
		}
	}
	return current
}
