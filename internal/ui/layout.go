package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/festplan/internal/config"
	"github.com/javiermolinar/festplan/internal/grid"
	"github.com/javiermolinar/festplan/internal/scheduler"
	"github.com/javiermolinar/festplan/internal/session"
)

const (
	layoutTimeWidth   = 5
	layoutMinColWidth = 12
)

func (a *App) layoutCmd() *cobra.Command {
	var (
		day     int
		zoom    int
		columns bool
		gaps    bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the grid of one festival day",
		Long: `Print the grid of one festival day: one row per time slot and one
column per location. A session is written in the row where it starts and
marked with ┆ in the rows it continues into. Overlapping sessions at one
location share the cell and carry their column, e.g. [1/2].

With --columns the computed column placement of every session is listed
instead, and with --gaps the idle stretches of every location.`,
		Example: `  festplan layout --day=1
  festplan layout --day=2 --zoom=60
  festplan layout --day=1 --columns
  festplan layout --day=3 --gaps`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			if err := a.checkDay(day); err != nil {
				return err
			}
			if zoom == 0 {
				zoom = a.config.Grid.Zoom
			}
			if !config.IsZoomLevel(zoom) {
				return fmt.Errorf("zoom must be one of %v", grid.ZoomLevels)
			}

			out := cmd.OutOrStdout()
			sessions := session.ForDay(a.store.Sessions(), day)
			locations := a.store.Locations()

			fmt.Fprintf(out, "%s  %s  %s\n",
				formatHeader(a.config.Festival.Name),
				a.config.DayLabel(day),
				formatMuted(fmt.Sprintf("%d min", zoom)))

			if len(locations) == 0 {
				fmt.Fprintln(out, "No locations. Add one with: festplan location add <name>")
				return nil
			}
			if columns {
				printPlacements(out, sessions, locations)
				return nil
			}
			if gaps {
				printGaps(out, a.newScheduler(), sessions, day, locations)
				return nil
			}

			slots := grid.GenerateTimeSlots(zoom, a.config.Grid.DayStart, a.config.Grid.DayEnd)
			fmt.Fprintln(out, renderLayout(sessions, locations, slots, zoom, termWidth()))
			return nil
		},
	}

	cmd.Flags().IntVar(&day, "day", 1, "Festival day number")
	cmd.Flags().IntVar(&zoom, "zoom", 0, "Minutes per row (from config if not set)")
	cmd.Flags().BoolVar(&columns, "columns", false, "List column placements instead of the grid")
	cmd.Flags().BoolVar(&gaps, "gaps", false, "List idle stretches per location instead of the grid")
	cmd.MarkFlagsMutuallyExclusive("columns", "gaps")
	return cmd
}

// renderLayout draws the day as a table that fits width.
func renderLayout(sessions []session.Session, locations []session.Location, slots []string, zoom, width int) string {
	// time column, plus one border per column and the outer border
	colWidth := (width - layoutTimeWidth - len(locations) - 2) / len(locations)
	colWidth = max(colWidth-2, layoutMinColWidth)

	headers := make([]string, 0, len(locations)+1)
	headers = append(headers, "")
	for _, loc := range locations {
		headers = append(headers, ansi.Truncate(loc.Name, colWidth, "…"))
	}

	rows := make([][]string, 0, len(slots))
	for _, slot := range slots {
		row := make([]string, 0, len(locations)+1)
		row = append(row, slot)
		for _, loc := range locations {
			row = append(row, layoutCell(sessions, loc.ID, slot, zoom, colWidth))
		}
		rows = append(rows, row)
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	timeStyle := lipgloss.NewStyle().Faint(true).Padding(0, 1)

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return timeStyle
			default:
				return cellStyle
			}
		}).
		Render()
}

// layoutCell lists the sessions starting in the cell, or marks a session
// running through it.
func layoutCell(sessions []session.Session, locationID, slot string, zoom, width int) string {
	blocks := grid.CellBlocks(sessions, locationID, slot, zoom)
	if len(blocks) == 0 {
		slotStart := session.TimeToMinutes(slot)
		for _, s := range sessions {
			if start, end := s.Span(); s.LocationID == locationID && start < slotStart && end > slotStart {
				return "┆"
			}
		}
		return ""
	}

	labels := make([]string, 0, len(blocks))
	for _, b := range blocks {
		label := b.Session.Title
		if b.TotalColumns > 1 {
			label = fmt.Sprintf("[%d/%d] %s", b.ColumnIndex+1, b.TotalColumns, label)
		}
		labels = append(labels, label)
	}
	return ansi.Truncate(strings.Join(labels, " │ "), width, "…")
}

func printPlacements(w io.Writer, sessions []session.Session, locations []session.Location) {
	for _, loc := range locations {
		placements := grid.Layout(sessions, loc.ID)
		fmt.Fprintf(w, "\n%s\n", formatLocation(loc.Name))
		if len(placements) == 0 {
			fmt.Fprintln(w, formatMuted("  (empty)"))
			continue
		}
		for _, p := range placements {
			fmt.Fprintf(w, "  %s-%s  col %d/%d  left %5.1f%%  width %5.1f%%  %s\n",
				p.Session.StartTime, p.Session.EndTime,
				p.ColumnIndex+1, p.TotalColumns,
				p.LeftPercent, p.WidthPercent,
				formatTitle(p.Session.Title))
		}
	}
}

func printGaps(w io.Writer, sched *scheduler.Scheduler, sessions []session.Session, day int, locations []session.Location) {
	for _, loc := range locations {
		fmt.Fprintf(w, "\n%s\n", formatLocation(loc.Name))
		free := sched.Gaps(sessions, day, loc.ID)
		if len(free) == 0 {
			fmt.Fprintln(w, formatMuted("  (fully booked)"))
			continue
		}
		for _, g := range free {
			fmt.Fprintf(w, "  %s-%s  %s\n", g.Start, g.End, formatMuted(session.FormatDuration(g.Minutes())))
		}
	}
}
