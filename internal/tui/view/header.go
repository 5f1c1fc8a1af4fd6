package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// DayTab is one festival day in the title bar.
type DayTab struct {
	Label  string
	Active bool
}

// HeaderStyles groups the styles of the title bar.
type HeaderStyles struct {
	Title     lipgloss.Style
	Tab       lipgloss.Style
	TabActive lipgloss.Style
	Meta      lipgloss.Style
}

// RenderHeader renders the festival name, the day tabs and a right-aligned
// meta text such as the zoom level.
func RenderHeader(width int, title string, tabs []DayTab, meta string, styles HeaderStyles, bg lipgloss.Color) string {
	parts := make([]string, 0, len(tabs)+1)
	parts = append(parts, styles.Title.Render(title))
	for _, tab := range tabs {
		style := styles.Tab
		if tab.Active {
			style = styles.TabActive
		}
		parts = append(parts, style.Render(tab.Label))
	}
	left := strings.Join(parts, " ")
	right := styles.Meta.Render(meta)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return box(width, 1, lipgloss.Top, truncate(left, width), bg)
	}
	spacer := lipgloss.NewStyle().Background(bg).Render(strings.Repeat(" ", gap))
	return left + spacer + right
}

// ColumnHeaders returns the time column label followed by one label per
// location, truncated to the column width.
func ColumnHeaders(timeLabel string, locations []string, colWidth int) []string {
	headers := make([]string, 0, len(locations)+1)
	headers = append(headers, timeLabel)
	for _, name := range locations {
		headers = append(headers, truncate(name, colWidth))
	}
	return headers
}
