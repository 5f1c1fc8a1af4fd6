package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/festplan/internal/session"
)

// renderStatsBar renders sessions per day, the total and the location count.
func (m Model) renderStatsBar(width int) string {
	sessions := m.store.Sessions()
	counts := session.CountByDay(sessions)

	bar := m.styles.StatsBarStyle
	active := m.styles.StatsActiveStyle

	parts := make([]string, 0, len(m.config.Festival.Days)+2)
	for _, d := range m.config.Festival.Days {
		label := d.Name
		if label == "" {
			label = fmt.Sprintf("Day %d", d.Number)
		}
		text := fmt.Sprintf("%s: %d", label, counts[d.Number])
		if d.Number == m.day {
			parts = append(parts, active.Render(text))
		} else {
			parts = append(parts, bar.Render(text))
		}
	}
	parts = append(parts,
		bar.Render(fmt.Sprintf("Total: %d", len(sessions))),
		bar.Render(fmt.Sprintf("Locations: %d", len(m.store.Locations()))),
	)

	content := strings.Join(parts, bar.Render(" | "))
	if width > 0 {
		content = ansi.Truncate(content, width, "")
	}
	return bar.Width(max(0, width)).Render(content)
}
