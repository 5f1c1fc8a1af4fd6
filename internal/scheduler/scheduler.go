// Package scheduler finds room for sessions inside the grid hours.
package scheduler

import (
	"slices"

	"github.com/javiermolinar/festplan/internal/session"
)

// DefaultStep is the start alignment in minutes when none is given.
const DefaultStep = 15

// Scheduler knows the festival days and the hours the grid shows.
type Scheduler struct {
	days     map[int]bool
	dayStart string // "HH:MM"
	dayEnd   string // "HH:MM"
	step     int
}

// New creates a Scheduler. Free starts are aligned to step minutes.
func New(days []int, dayStart, dayEnd string, step int) *Scheduler {
	d := make(map[int]bool, len(days))
	for _, n := range days {
		d[n] = true
	}
	if step <= 0 {
		step = DefaultStep
	}
	return &Scheduler{
		days:     d,
		dayStart: dayStart,
		dayEnd:   dayEnd,
		step:     step,
	}
}

// Slot is a stretch of time at one location on one day.
type Slot struct {
	Day   int
	Start string // "HH:MM"
	End   string // "HH:MM"
}

// Minutes returns the length of the slot.
func (s Slot) Minutes() int {
	return session.TimeToMinutes(s.End) - session.TimeToMinutes(s.Start)
}

// IsFestivalDay returns true if day is one of the configured days.
func (s *Scheduler) IsFestivalDay(day int) bool {
	return s.days[day]
}

// ValidateSlot checks that a session fits the festival days and grid hours.
// Returns an error message if invalid, empty string if valid.
func (s *Scheduler) ValidateSlot(day int, start, end string) string {
	if !s.IsFestivalDay(day) {
		return "not a festival day"
	}

	startMin := session.TimeToMinutes(start)
	endMin := session.TimeToMinutes(end)

	if startMin >= endMin {
		return "start time must be before end time"
	}
	if startMin < session.TimeToMinutes(s.dayStart) {
		return "start time is before the grid starts"
	}
	if endMin > session.TimeToMinutes(s.dayEnd) {
		return "end time is after the grid ends"
	}

	return ""
}

// Gaps returns the idle stretches at locationID on day inside the grid hours,
// earliest first. Overlapping sessions count as one busy stretch.
func (s *Scheduler) Gaps(sessions []session.Session, day int, locationID string) []Slot {
	type busy struct{ start, end int }

	var taken []busy
	for _, sess := range sessions {
		if sess.Day != day || sess.LocationID != locationID {
			continue
		}
		start := sess.StartMinutes()
		taken = append(taken, busy{start, start + sess.Duration()})
	}
	slices.SortFunc(taken, func(a, b busy) int { return a.start - b.start })

	dayStart := session.TimeToMinutes(s.dayStart)
	dayEnd := session.TimeToMinutes(s.dayEnd)

	var gaps []Slot
	cursor := dayStart
	for _, b := range taken {
		if b.start > cursor {
			gaps = append(gaps, s.slot(day, cursor, min(b.start, dayEnd)))
		}
		cursor = max(cursor, b.end)
		if cursor >= dayEnd {
			break
		}
	}
	if cursor < dayEnd {
		gaps = append(gaps, s.slot(day, cursor, dayEnd))
	}

	return slices.DeleteFunc(gaps, func(g Slot) bool { return g.Minutes() <= 0 })
}

// NextFree returns the first aligned start at or after after (or the grid
// start when empty) where a session of the given duration fits without
// overlapping anything at locationID.
func (s *Scheduler) NextFree(sessions []session.Session, day int, locationID, after string, durationMinutes int) (Slot, bool) {
	if durationMinutes <= 0 {
		return Slot{}, false
	}
	earliest := session.TimeToMinutes(s.dayStart)
	if after != "" {
		earliest = max(earliest, session.TimeToMinutes(after))
	}

	for _, gap := range s.Gaps(sessions, day, locationID) {
		start := roundUp(max(session.TimeToMinutes(gap.Start), earliest), s.step)
		if start+durationMinutes <= session.TimeToMinutes(gap.End) {
			return s.slot(day, start, start+durationMinutes), true
		}
	}
	return Slot{}, false
}

func (s *Scheduler) slot(day, start, end int) Slot {
	return Slot{Day: day, Start: session.MinutesToTime(start), End: session.MinutesToTime(end)}
}

// roundUp rounds minutes up to the next multiple of step.
func roundUp(minutes, step int) int {
	if rem := minutes % step; rem != 0 {
		return minutes + step - rem
	}
	return minutes
}
