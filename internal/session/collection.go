package session

import (
	"slices"
	"strings"
)

// ForDay returns the sessions scheduled on the given day, in input order.
func ForDay(sessions []Session, day int) []Session {
	var out []Session
	for _, s := range sessions {
		if s.Day == day {
			out = append(out, s)
		}
	}
	return out
}

// ForLocation returns the sessions at the given location, in input order.
func ForLocation(sessions []Session, locationID string) []Session {
	var out []Session
	for _, s := range sessions {
		if s.LocationID == locationID {
			out = append(out, s)
		}
	}
	return out
}

// SortByStart returns a copy sorted by start time, then id.
func SortByStart(sessions []Session) []Session {
	out := slices.Clone(sessions)
	slices.SortStableFunc(out, func(a, b Session) int {
		if c := a.StartMinutes() - b.StartMinutes(); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

// CountByDay returns the number of sessions per day number.
func CountByDay(sessions []Session) map[int]int {
	counts := make(map[int]int)
	for _, s := range sessions {
		counts[s.Day]++
	}
	return counts
}

// FindSession returns the index of the session with the given id, or -1.
func FindSession(sessions []Session, id string) int {
	return slices.IndexFunc(sessions, func(s Session) bool { return s.ID == id })
}

// FindLocation returns the index of the location with the given id, or -1.
func FindLocation(locations []Location, id string) int {
	return slices.IndexFunc(locations, func(l Location) bool { return l.ID == id })
}

// FindLocationByName does a case-insensitive name lookup.
func FindLocationByName(locations []Location, name string) (Location, bool) {
	name = strings.TrimSpace(name)
	for _, l := range locations {
		if strings.EqualFold(l.Name, name) {
			return l, true
		}
	}
	return Location{}, false
}

// LocationName resolves a location id to its name, or "" if unknown.
func LocationName(locations []Location, id string) string {
	if i := FindLocation(locations, id); i >= 0 {
		return locations[i].Name
	}
	return ""
}

// ResolveLocation accepts a location id or a name and returns the location.
func ResolveLocation(locations []Location, ref string) (Location, bool) {
	if i := FindLocation(locations, ref); i >= 0 {
		return locations[i], true
	}
	return FindLocationByName(locations, ref)
}
