package tui

import (
	"slices"

	"github.com/javiermolinar/festplan/internal/grid"
	"github.com/javiermolinar/festplan/internal/session"
)

const (
	headerHeight      = 1
	footerCompact     = 2 // status + help
	footerBaseLines   = 3 // stats + status + help
	promptBorderLines = 2
	promptMaxLines    = 4
	tableChromeLines  = 4 // top border, header row, header rule, bottom border
	minColWidth       = 8
)

// layout holds the sizes derived from the terminal and prompt state.
type layout struct {
	InnerW             int
	InnerH             int
	FooterH            int
	GridH              int
	PromptContentWidth int
	FullFooter         bool
}

func (m Model) layout() layout {
	appH, appV := m.styles.AppStyle.GetFrameSize()
	innerW := max(0, m.width-appH)
	innerH := max(0, m.height-appV)

	promptFrameW, _ := m.styles.PromptStyle.GetFrameSize()
	promptWidth := max(0, innerW-promptFrameW)

	l := layout{InnerW: innerW, InnerH: innerH, PromptContentWidth: promptWidth, FooterH: footerCompact}
	full := footerBaseLines + promptBorderLines + min(promptMaxLines, len(m.promptLines(promptWidth)))
	if innerH-headerHeight-full >= tableChromeLines+2 {
		l.FooterH = full
		l.FullFooter = true
	}
	l.GridH = max(0, innerH-headerHeight-l.FooterH)
	return l
}

// visibleRows returns how many slot rows fit in the table.
func (m Model) visibleRows() int {
	return max(1, m.layout().GridH-tableChromeLines)
}

// colWidth splits the width left of the time column across the locations.
func (m Model) colWidth() int {
	n := len(m.store.Locations())
	if n == 0 {
		return defaultColWidth
	}
	// One border per column plus the outer right border.
	avail := m.layout().InnerW - timeColWidth - n - 2
	return max(minColWidth, avail/n)
}

func (m Model) slots() []string {
	return grid.GenerateTimeSlots(m.zoom, m.config.Grid.DayStart, m.config.Grid.DayEnd)
}

func (m Model) daySessions() []session.Session {
	return session.ForDay(m.store.Sessions(), m.day)
}

func (m *Model) clampCursor() {
	locs := len(m.store.Locations())
	m.cursor.Loc = min(max(0, m.cursor.Loc), max(0, locs-1))
	m.cursor.Slot = min(max(0, m.cursor.Slot), max(0, len(m.slots())-1))
	if n := len(session.ForDay(m.store.Sessions(), m.day)); m.listCursor >= n {
		m.listCursor = max(0, n-1)
	}
}

func (m *Model) ensureCursorVisible() {
	visible := m.visibleRows()
	if m.cursor.Slot < m.scrollOffset {
		m.scrollOffset = m.cursor.Slot
	}
	if m.cursor.Slot >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor.Slot - visible + 1
	}
	m.scrollOffset = max(0, m.scrollOffset)
}

// cursorCell returns the location and slot under the cursor.
func (m Model) cursorCell() (session.Location, string, bool) {
	locs := m.store.Locations()
	slots := m.slots()
	if m.cursor.Loc < 0 || m.cursor.Loc >= len(locs) || m.cursor.Slot < 0 || m.cursor.Slot >= len(slots) {
		return session.Location{}, "", false
	}
	return locs[m.cursor.Loc], slots[m.cursor.Slot], true
}

// cellCandidates lists the sessions the cursor cell can select: those that
// start in it, in column order, or else the one running through it.
func (m Model) cellCandidates() []session.Session {
	loc, slot, ok := m.cursorCell()
	if !ok {
		return nil
	}
	day := m.daySessions()
	starting := grid.CellSessions(day, loc.ID, slot, m.zoom)
	if len(starting) > 0 {
		slices.SortStableFunc(starting, func(a, b session.Session) int {
			return grid.ColumnFor(day, a).ColumnIndex - grid.ColumnFor(day, b).ColumnIndex
		})
		return starting
	}
	return runningAt(day, loc.ID, slot)
}

// runningAt returns the sessions at a location that started before slot
// and are still running at it.
func runningAt(sessions []session.Session, locationID, slot string) []session.Session {
	at := session.TimeToMinutes(slot)
	var out []session.Session
	for _, s := range session.SortByStart(session.ForLocation(sessions, locationID)) {
		if start, end := s.Span(); start < at && end > at {
			out = append(out, s)
		}
	}
	return out
}

// selectedSession returns the session under the cursor, or in list view the
// highlighted row.
func (m Model) selectedSession() (session.Session, bool) {
	if m.view == viewList {
		day := session.SortByStart(m.daySessions())
		if m.listCursor < 0 || m.listCursor >= len(day) {
			return session.Session{}, false
		}
		return day[m.listCursor], true
	}
	candidates := m.cellCandidates()
	if len(candidates) == 0 {
		return session.Session{}, false
	}
	return candidates[m.cursor.Pick%len(candidates)], true
}

// focusSession puts the cursor on the cell a session starts in.
func (m *Model) focusSession(s session.Session) {
	m.day = s.Day
	if i := session.FindLocation(m.store.Locations(), s.LocationID); i >= 0 {
		m.cursor.Loc = i
	}
	if i := grid.SlotIndex(m.slots(), m.zoom, s.StartTime); i >= 0 {
		m.cursor.Slot = i
	}
	m.cursor.Pick = 0
	m.ensureCursorVisible()
}

// setZoom changes the rows per hour and keeps the cursor on the same time.
func (m *Model) setZoom(zoom int) {
	if zoom == m.zoom {
		return
	}
	var at string
	if slots := m.slots(); m.cursor.Slot < len(slots) {
		at = slots[m.cursor.Slot]
	}
	m.zoom = zoom
	if i := grid.SlotIndex(m.slots(), m.zoom, at); i >= 0 {
		m.cursor.Slot = i
	}
	m.cursor.Pick = 0
	m.clampCursor()
	m.ensureCursorVisible()
}

// shiftDay moves to the next or previous configured day.
func (m *Model) shiftDay(delta int) {
	days := m.config.DayNumbers()
	if len(days) == 0 {
		return
	}
	i := slices.Index(days, m.day)
	if i < 0 {
		i = 0
	}
	i = (i + delta + len(days)) % len(days)
	m.setDay(days[i])
}

func (m *Model) setDay(day int) {
	m.day = day
	m.cursor.Pick = 0
	m.listCursor = 0
}
