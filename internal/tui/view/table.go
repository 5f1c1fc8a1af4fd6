package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TableContent is the visible window of grid or list rows. CellStyles is
// indexed like Rows; a missing entry renders unstyled.
type TableContent struct {
	Rows       [][]string
	CellStyles [][]lipgloss.Style
}

func (c TableContent) style(row, col int) lipgloss.Style {
	if row < 0 || row >= len(c.CellStyles) {
		return lipgloss.NewStyle()
	}
	return styleAt(c.CellStyles[row], col)
}

// TableViewState describes one frame of the festival table: the location
// headers, the slot rows that fit GridH, and where to place the result.
type TableViewState struct {
	InnerW       int
	GridH        int
	Headers      []string
	HeaderStyles []lipgloss.Style
	Content      TableContent
	BorderStyle  lipgloss.Style
	VAlign       lipgloss.Position
	Bg           lipgloss.Color
	Render       bool
}

// RenderTable draws the table with rounded borders and column rules but no
// rules between slot rows, then fills the rest of the area with Bg.
func RenderTable(state TableViewState) string {
	if !state.Render || state.GridH <= 0 {
		return ""
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(state.BorderStyle).
		BorderRow(false).
		Headers(state.Headers...).
		Rows(state.Content.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleAt(state.HeaderStyles, col)
			}
			return state.Content.style(row, col)
		})

	return box(state.InnerW, state.GridH, state.VAlign, t.Render(), state.Bg)
}

func styleAt(styles []lipgloss.Style, i int) lipgloss.Style {
	if i < 0 || i >= len(styles) {
		return lipgloss.NewStyle()
	}
	return styles[i]
}
