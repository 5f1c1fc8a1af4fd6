package grid

import (
	"slices"
	"strings"

	"github.com/javiermolinar/festplan/internal/session"
)

// Placement is the horizontal position of a session inside its location column.
type Placement struct {
	Session      session.Session
	ColumnIndex  int
	TotalColumns int
	WidthPercent float64
	LeftPercent  float64
}

// OverlapSet returns every session at s's location (and day) whose interval
// intersects s, including s itself, ordered by start minute then id.
//
// The set is computed for s alone. Two sessions that each overlap a third
// but not each other can therefore report different column counts.
// Intervals with a missing or reversed end use the fallback duration, the
// same extent the block is drawn with.
func OverlapSet(sessions []session.Session, s session.Session) []session.Session {
	start, end := s.Span()

	set := make([]session.Session, 0, 4)
	self := false
	for _, t := range sessions {
		if t.LocationID != s.LocationID || t.Day != s.Day {
			continue
		}
		if t.ID == s.ID {
			set = append(set, t)
			self = true
			continue
		}
		if ts, te := t.Span(); ts < end && te > start {
			set = append(set, t)
		}
	}
	if !self {
		set = append(set, s)
	}

	slices.SortStableFunc(set, compareStartThenID)
	return set
}

func compareStartThenID(a, b session.Session) int {
	if c := a.StartMinutes() - b.StartMinutes(); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// ColumnFor assigns s its column among the sessions it overlaps.
func ColumnFor(sessions []session.Session, s session.Session) Placement {
	set := OverlapSet(sessions, s)
	total := len(set)
	index := slices.IndexFunc(set, func(t session.Session) bool { return t.ID == s.ID })

	width := 100 / float64(total)
	return Placement{
		Session:      s,
		ColumnIndex:  index,
		TotalColumns: total,
		WidthPercent: width,
		LeftPercent:  float64(index) * width,
	}
}

// Layout returns placements for every session at locationID, ordered by
// start minute then id. An empty location yields an empty layout.
// sessions must hold a single day; see session.ForDay.
func Layout(sessions []session.Session, locationID string) []Placement {
	var at []session.Session
	for _, s := range sessions {
		if s.LocationID == locationID {
			at = append(at, s)
		}
	}
	slices.SortStableFunc(at, compareStartThenID)

	out := make([]Placement, 0, len(at))
	for _, s := range at {
		out = append(out, ColumnFor(sessions, s))
	}
	return out
}
