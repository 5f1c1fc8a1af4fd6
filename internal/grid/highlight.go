package grid

import (
	"regexp"

	"github.com/javiermolinar/festplan/internal/session"
)

var cellIDPattern = regexp.MustCompile(`^cell-(.+)-(\d{2}:\d{2})$`)

// CellID returns the droppable identifier of a grid cell.
func CellID(locationID, slot string) string {
	return "cell-" + locationID + "-" + slot
}

// ParseCellID splits a cell identifier into location and slot.
// Anything that is not a well-formed cell id reports ok=false.
func ParseCellID(id string) (locationID, slot string, ok bool) {
	m := cellIDPattern.FindStringSubmatch(id)
	if m == nil {
		return "", "", false
	}
	if !session.IsValidTime(m[2]) {
		return "", "", false
	}
	return m[1], m[2], true
}

// Drag is the in-flight state of a session being moved.
// Over is the id of the hovered cell, empty when not over a cell.
type Drag struct {
	Session *session.Session
	Over    string
}

// Active reports whether a session is being dragged.
func (d Drag) Active() bool {
	return d.Session != nil
}

// Highlighted reports whether the cell would be covered if the dragged
// session were dropped on the hovered cell.
func (d Drag) Highlighted(locationID, slot string) bool {
	if d.Session == nil || d.Over == "" {
		return false
	}
	overLoc, overSlot, ok := ParseCellID(d.Over)
	if !ok || overLoc != locationID {
		return false
	}
	slotMin, err := session.ParseTime(slot)
	if err != nil {
		return false
	}
	start := session.TimeToMinutes(overSlot)
	end := start + d.Session.Duration()
	return slotMin >= start && slotMin < end
}

// Footprint returns the slots that would be highlighted at the hovered location.
func (d Drag) Footprint(slots []string) []string {
	overLoc, _, ok := ParseCellID(d.Over)
	if !ok {
		return nil
	}
	var out []string
	for _, slot := range slots {
		if d.Highlighted(overLoc, slot) {
			out = append(out, slot)
		}
	}
	return out
}
