package grid

import (
	"github.com/javiermolinar/festplan/internal/session"
)

// Block is a session as drawn in the cell whose slot contains its start.
// HeightSlots and OffsetSlots are measured in rows of the current zoom.
type Block struct {
	Placement
	HeightSlots float64
	OffsetSlots float64
}

// CellSessions returns the sessions at locationID that start inside
// [slot, slot+zoom). A session is only ever drawn in that one cell.
// sessions must hold a single day; see session.ForDay.
func CellSessions(sessions []session.Session, locationID, slot string, zoom int) []session.Session {
	slotStart := session.TimeToMinutes(slot)
	slotEnd := slotStart + zoom

	var out []session.Session
	for _, s := range sessions {
		if s.LocationID != locationID {
			continue
		}
		start := s.StartMinutes()
		if start >= slotStart && start < slotEnd {
			out = append(out, s)
		}
	}
	return out
}

// CellBlocks lays out the sessions that start in the given cell.
// Columns are computed against the full session list so overlaps with
// sessions that started in earlier rows are respected.
func CellBlocks(sessions []session.Session, locationID, slot string, zoom int) []Block {
	cell := CellSessions(sessions, locationID, slot, zoom)
	blocks := make([]Block, 0, len(cell))
	for _, s := range cell {
		blocks = append(blocks, BlockFor(sessions, s, slot, zoom))
	}
	return blocks
}

// BlockFor computes the geometry of s relative to the slot it starts in.
func BlockFor(sessions []session.Session, s session.Session, slot string, zoom int) Block {
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	return Block{
		Placement:   ColumnFor(sessions, s),
		HeightSlots: float64(s.Duration()) / float64(zoom),
		OffsetSlots: float64(s.StartMinutes()-session.TimeToMinutes(slot)) / float64(zoom),
	}
}

// SpanRows returns how many whole rows a block touches, at least one.
func (b Block) SpanRows() int {
	rows := int(b.OffsetSlots + b.HeightSlots)
	if float64(rows) < b.OffsetSlots+b.HeightSlots {
		rows++
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}
