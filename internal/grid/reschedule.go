package grid

import (
	"slices"

	"github.com/javiermolinar/festplan/internal/session"
)

// Reschedule moves the session with the given id to locationID starting at
// slot, keeping its duration. It returns a new slice; the input is not
// modified. Other sessions are left as they are, even if they now overlap.
//
// An unknown id, empty location, malformed slot, or a slot that would push
// the end past midnight leaves everything in place and reports false.
func Reschedule(sessions []session.Session, id, locationID, slot string) ([]session.Session, bool) {
	if locationID == "" {
		return sessions, false
	}
	start, err := session.ParseTime(slot)
	if err != nil {
		return sessions, false
	}
	idx := session.FindSession(sessions, id)
	if idx < 0 {
		return sessions, false
	}

	dur := sessions[idx].Duration()
	if start+dur >= 24*60 {
		return sessions, false
	}

	out := slices.Clone(sessions)
	s := out[idx]
	s.LocationID = locationID
	s.StartTime = slot
	s.EndTime = session.MinutesToTime(start + dur)
	out[idx] = s
	return out, true
}

// Drop commits a drag onto the cell identified by cellID.
func Drop(sessions []session.Session, id, cellID string) ([]session.Session, bool) {
	locationID, slot, ok := ParseCellID(cellID)
	if !ok {
		return sessions, false
	}
	return Reschedule(sessions, id, locationID, slot)
}
