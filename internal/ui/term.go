package ui

import (
	"os"
	"strconv"

	"github.com/fatih/color"
	"golang.org/x/term"
)

const defaultTermWidth = 80

// Output roles. Each maps to one color in palette.
const (
	roleTitle = iota
	roleTime
	roleLocation
	roleInsight
	roleWarn
	roleHeader
	roleStats
	roleMuted
)

var palette = [...]*color.Color{
	roleTitle:    color.New(color.FgCyan, color.Bold),
	roleTime:     color.New(color.FgWhite, color.Faint),
	roleLocation: color.New(color.FgMagenta),
	roleInsight:  color.New(color.FgYellow),
	roleWarn:     color.New(color.FgRed),
	roleHeader:   color.New(color.Bold),
	roleStats:    color.New(color.FgGreen),
	roleMuted:    color.New(color.FgWhite, color.Faint),
}

func paint(role int, s string) string {
	return palette[role].Sprint(s)
}

// termWidth returns the width of stdout. When stdout is not a terminal it
// falls back to $COLUMNS, then to 80.
func termWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	if w, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && w > 0 {
		return w
	}
	return defaultTermWidth
}

// DisableColor turns off colored output for every command.
func DisableColor() {
	color.NoColor = true
}

func formatTitle(s string) string    { return paint(roleTitle, s) }
func formatTime(s string) string     { return paint(roleTime, s) }
func formatLocation(s string) string { return paint(roleLocation, s) }
func formatInsight(s string) string  { return paint(roleInsight, s) }
func formatWarn(s string) string     { return paint(roleWarn, s) }
func formatHeader(s string) string   { return paint(roleHeader, s) }
func formatStats(s string) string    { return paint(roleStats, s) }
func formatMuted(s string) string    { return paint(roleMuted, s) }
