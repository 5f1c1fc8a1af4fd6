package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/festplan/internal/config"
	"github.com/javiermolinar/festplan/internal/grid"
	"github.com/javiermolinar/festplan/internal/session"
)

// Stats holds session counts and scheduled minutes for the whole program.
type Stats struct {
	Sessions int
	Minutes  int
	Days     map[int]DayStats
}

// DayStats holds statistics for a single festival day.
type DayStats struct {
	Sessions   int
	Minutes    int
	Overlaps   int            // sessions sharing their location with another one
	ByLocation map[string]int // session count per location id
}

// ComputeStats aggregates sessions per day and location.
func ComputeStats(sessions []session.Session) Stats {
	stats := Stats{Days: make(map[int]DayStats)}
	for _, s := range sessions {
		minutes := s.Duration()
		stats.Sessions++
		stats.Minutes += minutes

		ds := stats.Days[s.Day]
		if ds.ByLocation == nil {
			ds.ByLocation = make(map[string]int)
		}
		ds.Sessions++
		ds.Minutes += minutes
		ds.ByLocation[s.LocationID]++
		if grid.ColumnFor(sessions, s).TotalColumns > 1 {
			ds.Overlaps++
		}
		stats.Days[s.Day] = ds
	}
	return stats
}

// PrintOpts configures session printing behavior.
type PrintOpts struct {
	Verbose       bool // Show full titles and the description
	ShowDay       bool // Prefix rows with the day label
	MaxTitleWidth int  // Maximum title width (0 = auto)
}

// CalcMaxTitleWidth calculates the maximum title width based on options.
func (o PrintOpts) CalcMaxTitleWidth(defaultWidth int) int {
	if o.MaxTitleWidth > 0 {
		return o.MaxTitleWidth
	}
	if !o.Verbose {
		return defaultWidth
	}
	// "  HH:MM-HH:MM  <location 18>  " plus the column marker
	available := termWidth() - 40
	if available > defaultWidth {
		return available
	}
	return defaultWidth
}

// PrintSessionRow prints a single session row with consistent formatting.
func PrintSessionRow(w io.Writer, cfg *config.Config, s session.Session, all []session.Session, locations []session.Location, opts PrintOpts) {
	title := ansi.Truncate(s.Title, opts.CalcMaxTitleWidth(40), "...")
	location := ansi.Truncate(session.LocationName(locations, s.LocationID), 18, "…")

	// Sessions that overlap another one at the same location show their column
	marker := "   "
	if p := grid.ColumnFor(all, s); p.TotalColumns > 1 {
		marker = formatWarn(fmt.Sprintf("%d/%d", p.ColumnIndex+1, p.TotalColumns))
	}

	prefix := "  "
	if opts.ShowDay {
		prefix = fmt.Sprintf("  %-8s", cfg.DayLabel(s.Day))
	}

	fmt.Fprintf(w, "%s%s  %s  %s  %s",
		prefix,
		formatTime(s.StartTime+"-"+s.EndTime),
		marker,
		formatLocation(fmt.Sprintf("%-18s", location)),
		formatTitle(title),
	)
	if s.Format != "" {
		fmt.Fprintf(w, " %s", formatMuted("["+s.Format+"]"))
	}
	fmt.Fprintf(w, "  %s\n", formatMuted(s.ID))

	if opts.Verbose {
		if s.Speakers != "" {
			fmt.Fprintf(w, "      %s\n", formatMuted("with "+s.Speakers))
		}
		if s.Description != "" {
			wrapAndPrint(w, s.Description, "      ", max(20, termWidth()-8), formatMuted)
		}
	}
}

// PrintSessionDetail prints every field of a session.
func PrintSessionDetail(w io.Writer, cfg *config.Config, s session.Session, all []session.Session, locations []session.Location) {
	fmt.Fprintln(w, formatHeader(s.Title))
	fmt.Fprintf(w, "  ID:        %s\n", s.ID)
	fmt.Fprintf(w, "  Day:       %s\n", cfg.DayLabel(s.Day))
	fmt.Fprintf(w, "  Time:      %s-%s (%s)\n", s.StartTime, s.EndTime, session.FormatDuration(s.Duration()))
	fmt.Fprintf(w, "  Location:  %s\n", session.LocationName(locations, s.LocationID))
	if p := grid.ColumnFor(all, s); p.TotalColumns > 1 {
		fmt.Fprintf(w, "  Column:    %d of %d overlapping\n", p.ColumnIndex+1, p.TotalColumns)
	}
	fields := []struct{ label, value string }{
		{"Speakers", s.Speakers},
		{"Format", s.Format},
		{"Language", s.LanguageOrDefault()},
		{"Tracks", s.Tracks},
	}
	for _, f := range fields {
		if f.value != "" {
			fmt.Fprintf(w, "  %-10s %s\n", f.label+":", f.value)
		}
	}
	if s.Description != "" {
		fmt.Fprintln(w)
		wrapAndPrint(w, s.Description, "  ", max(20, termWidth()-4), plain)
	}
}

// PrintStats prints the per-day summary lines.
func PrintStats(w io.Writer, cfg *config.Config, stats Stats, locations []session.Location) {
	for _, day := range cfg.DayNumbers() {
		ds := stats.Days[day]
		fmt.Fprintf(w, "  %-8s %s  %s",
			cfg.DayLabel(day),
			formatStats(fmt.Sprintf("%3d sessions", ds.Sessions)),
			formatMuted(session.FormatDuration(ds.Minutes)))
		if ds.Overlaps > 0 {
			fmt.Fprintf(w, "  %s", formatWarn(fmt.Sprintf("%d overlapping", ds.Overlaps)))
		}
		fmt.Fprintln(w)

		for _, loc := range locations {
			if n := ds.ByLocation[loc.ID]; n > 0 {
				fmt.Fprintf(w, "           %s %d\n", formatLocation(fmt.Sprintf("%-20s", loc.Name)), n)
			}
		}
	}
	fmt.Fprintf(w, "\n  Total: %s across %d locations (%s)\n",
		formatStats(fmt.Sprintf("%d sessions", stats.Sessions)),
		len(locations),
		session.FormatDuration(stats.Minutes))
}

// PrintInsightWrapped formats and prints review text preserving structure.
func PrintInsightWrapped(w io.Writer, text string, width int) {
	// Strip markdown code blocks
	text = stripMarkdownCodeBlocks(text)

	lines := strings.Split(text, "\n")
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			fmt.Fprintln(w)
			continue
		}

		// Detect and format special line types
		prefix, content, contentWidth, isHeader := parseInsightLine(trimmed, width)
		if isHeader {
			fmt.Fprintln(w)
			fmt.Fprintln(w, formatHeader("  "+content))
			continue
		}

		wrapAndPrint(w, content, prefix, contentWidth, formatInsight)
	}
}

// parseInsightLine parses a line and returns formatting info.
// Returns: prefix, content, contentWidth, isHeader
func parseInsightLine(trimmed string, width int) (prefix, content string, contentWidth int, isHeader bool) {
	prefix = "  "
	content = trimmed
	contentWidth = width - 2

	switch {
	case strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* "):
		// Bullet point
		prefix = "    • "
		content = strings.TrimPrefix(strings.TrimPrefix(trimmed, "- "), "* ")
		contentWidth = width - 6

	case strings.HasPrefix(trimmed, "#"):
		content = strings.TrimLeft(trimmed, "# ")
		isHeader = true

	case strings.HasSuffix(trimmed, ":") && strings.ToUpper(trimmed) == trimmed:
		// Section labels such as "THEME:" from the review template
		content = strings.TrimSuffix(trimmed, ":")
		isHeader = true

	case isNumberedItem(trimmed):
		// Numbered item (1. or 10.)
		idx := strings.Index(trimmed, ".")
		prefix = "  " + trimmed[:idx+1] + " "
		content = strings.TrimSpace(trimmed[idx+1:])
		contentWidth = width - len(prefix)
	}

	return prefix, content, contentWidth, isHeader
}

// isNumberedItem checks if a line starts with a number followed by a period.
func isNumberedItem(s string) bool {
	if len(s) < 3 {
		return false
	}
	if s[0] < '1' || s[0] > '9' {
		return false
	}
	if s[1] == '.' {
		return true
	}
	if s[1] >= '0' && s[1] <= '9' && len(s) > 3 && s[2] == '.' {
		return true
	}
	return false
}

// wrapAndPrint wraps text to width and prints it with the given prefix.
// Continuation lines are indented to the prefix width.
func wrapAndPrint(w io.Writer, text, prefix string, width int, style func(string) string) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return
	}

	continuation := strings.Repeat(" ", ansi.StringWidth(prefix))
	current := prefix
	line := ""
	for _, word := range words {
		switch {
		case line == "":
			line = word
		case ansi.StringWidth(line)+1+ansi.StringWidth(word) <= width:
			line += " " + word
		default:
			fmt.Fprintln(w, style(current+line))
			current = continuation
			line = word
		}
	}
	fmt.Fprintln(w, style(current+line))
}

func plain(s string) string { return s }

// stripMarkdownCodeBlocks removes ```...``` fences from text.
func stripMarkdownCodeBlocks(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inCodeBlock = !inCodeBlock
			continue // Skip the fence line
		}
		if !inCodeBlock {
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}
