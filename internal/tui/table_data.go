package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/festplan/internal/grid"
	"github.com/javiermolinar/festplan/internal/session"
	"github.com/javiermolinar/festplan/internal/tui/view"
)

const (
	continuationMark = "┆"
	columnSeparator  = "│"
)

func (m Model) borderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(m.styles.colorAccent).
		Background(m.styles.colorBg)
}

// gridViewState builds the time x location table of the current day.
func (m Model) gridViewState(l layout) view.TableViewState {
	locations := m.store.Locations()
	if len(locations) == 0 {
		return view.TableViewState{
			InnerW:       l.InnerW,
			GridH:        l.GridH,
			Headers:      []string{"Time", "No locations yet"},
			HeaderStyles: []lipgloss.Style{m.styles.TimeColumnStyle, m.styles.MetaStyle},
			BorderStyle:  m.borderStyle(),
			VAlign:       lipgloss.Top,
			Bg:           m.styles.colorBg,
			Render:       true,
		}
	}

	colW := m.colWidth()
	slots := m.slots()
	day := m.daySessions()

	names := make([]string, len(locations))
	headerStyles := make([]lipgloss.Style, 0, len(locations)+1)
	headerStyles = append(headerStyles, m.styles.TimeColumnStyle)
	blockStyles := make(map[string]BlockStyles, len(locations))
	for i, loc := range locations {
		names[i] = loc.Name
		headerStyles = append(headerStyles, m.styles.LocationHeaderStyle.
			Width(colW).
			Foreground(m.styles.LocationAccent(loc.Color)))
		blockStyles[loc.ID] = m.styles.BlockStylesWidth(loc.Color, colW)
	}

	start := min(m.scrollOffset, max(0, len(slots)-1))
	end := min(len(slots), start+max(1, l.GridH-tableChromeLines))

	rows := make([][]string, 0, end-start)
	cellStyles := make([][]lipgloss.Style, 0, end-start)
	for i := start; i < end; i++ {
		slot := slots[i]
		row := make([]string, 0, len(locations)+1)
		styles := make([]lipgloss.Style, 0, len(locations)+1)

		row = append(row, slot)
		if i == m.cursor.Slot {
			styles = append(styles, m.styles.TimeCursorStyle)
		} else {
			styles = append(styles, m.styles.TimeColumnStyle)
		}

		for j, loc := range locations {
			isCursor := i == m.cursor.Slot && j == m.cursor.Loc
			content, style := m.gridCell(day, loc, slot, colW, blockStyles[loc.ID], isCursor)

			switch {
			case m.mode == ModeMove && m.drag.Highlighted(loc.ID, slot):
				style = m.styles.MovePreviewStyle.Width(colW)
				content = ""
				if m.drag.Over == grid.CellID(loc.ID, slot) {
					content = "▶ " + m.drag.Session.Title
				}
			case isCursor:
				style = m.styles.CursorStyle.Width(colW)
			}

			row = append(row, ansi.Truncate(content, colW, "…"))
			styles = append(styles, style)
		}
		rows = append(rows, row)
		cellStyles = append(cellStyles, styles)
	}

	return view.TableViewState{
		InnerW:       l.InnerW,
		GridH:        l.GridH,
		Headers:      view.ColumnHeaders("Time", names, colW),
		HeaderStyles: headerStyles,
		Content: view.TableContent{
			Rows:       rows,
			CellStyles: cellStyles,
		},
		BorderStyle: m.borderStyle(),
		VAlign:      lipgloss.Top,
		Bg:          m.styles.colorBg,
		Render:      true,
	}
}

// gridCell renders one location/slot cell. Sessions starting in the slot
// share the cell as equal columns; a session running through it from an
// earlier row shows a continuation mark.
func (m Model) gridCell(day []session.Session, loc session.Location, slot string, colW int, bs BlockStyles, isCursor bool) (string, lipgloss.Style) {
	blocks := grid.CellBlocks(day, loc.ID, slot, m.zoom)
	if len(blocks) > 0 {
		slices.SortStableFunc(blocks, func(a, b grid.Block) int {
			return a.ColumnIndex - b.ColumnIndex
		})
		return blockLabel(blocks, colW, isCursor, m.cursor.Pick), bs.Start
	}
	if len(runningAt(day, loc.ID, slot)) > 0 {
		return continuationMark, bs.Continue
	}
	return "", m.styles.EmptyCellStyle.Width(colW)
}

// blockLabel splits the cell width across the blocks. Blocks that overlap
// others are labelled with their column, e.g. "[2/3] Panel".
func blockLabel(blocks []grid.Block, colW int, isCursor bool, pick int) string {
	n := len(blocks)
	segW := max(1, (colW-(n-1))/n)

	parts := make([]string, n)
	for i, b := range blocks {
		label := b.Session.Title
		if b.TotalColumns > 1 {
			label = fmt.Sprintf("[%d/%d] %s", b.ColumnIndex+1, b.TotalColumns, label)
		}
		if isCursor && n > 1 && i == pick%n {
			label = "›" + label
		}
		label = ansi.Truncate(label, segW, "…")
		if i < n-1 {
			label += strings.Repeat(" ", max(0, segW-ansi.StringWidth(label)))
		}
		parts[i] = label
	}
	return strings.Join(parts, columnSeparator)
}

const (
	listTimeWidth     = 13
	listLocationWidth = 18
	listFormatWidth   = 12
	listSpeakersWidth = 18
)

// listViewState builds the chronological list of the current day.
func (m Model) listViewState(l layout) view.TableViewState {
	sessions := session.SortByStart(m.daySessions())
	locations := m.store.Locations()

	// Five columns: four separators plus the outer borders.
	titleW := max(10, l.InnerW-6-listTimeWidth-listLocationWidth-listFormatWidth-listSpeakersWidth)
	widths := []int{listTimeWidth, listLocationWidth, titleW, listFormatWidth, listSpeakersWidth}

	headers := []string{"Time", "Location", "Title", "Format", "Speakers"}
	headerStyles := make([]lipgloss.Style, len(headers))
	for i, w := range widths {
		headerStyles[i] = m.styles.LocationHeaderStyle.Width(w).Align(lipgloss.Left)
	}

	visible := max(1, l.GridH-tableChromeLines)
	start := max(0, m.listCursor-visible+1)
	end := min(len(sessions), start+visible)

	var rows [][]string
	var cellStyles [][]lipgloss.Style
	for i := start; i < end; i++ {
		s := sessions[i]
		values := []string{
			s.StartTime + " - " + s.EndTime,
			session.LocationName(locations, s.LocationID),
			s.Title,
			s.Format,
			s.Speakers,
		}
		base := m.styles.ListRowStyle
		if i == m.listCursor {
			base = m.styles.ListSelectedStyle
		}
		row := make([]string, len(values))
		styles := make([]lipgloss.Style, len(values))
		for c, v := range values {
			row[c] = ansi.Truncate(v, widths[c], "…")
			styles[c] = base.Width(widths[c])
		}
		rows = append(rows, row)
		cellStyles = append(cellStyles, styles)
	}
	if len(rows) == 0 {
		rows = [][]string{{"", "", "No sessions on this day", "", ""}}
		styles := make([]lipgloss.Style, len(widths))
		for c, w := range widths {
			styles[c] = m.styles.EmptyCellStyle.Width(w)
		}
		cellStyles = [][]lipgloss.Style{styles}
	}

	return view.TableViewState{
		InnerW:       l.InnerW,
		GridH:        l.GridH,
		Headers:      headers,
		HeaderStyles: headerStyles,
		Content: view.TableContent{
			Rows:       rows,
			CellStyles: cellStyles,
		},
		BorderStyle: m.borderStyle(),
		VAlign:      lipgloss.Top,
		Bg:          m.styles.colorBg,
		Render:      true,
	}
}
