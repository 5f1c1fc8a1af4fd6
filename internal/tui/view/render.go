// Package view renders the pieces of the festplan TUI from plain state.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// ViewState contains pre-rendered content and the optional modal on top.
type ViewState struct {
	Width            int
	Height           int
	BaseContent      string
	ModalContent     string
	ShowModal        bool
	ModalBg          lipgloss.Color
	EmptyPlaceholder string
}

// Render composes the final view output.
func Render(state ViewState) string {
	if state.Width == 0 || state.Height == 0 {
		if state.EmptyPlaceholder != "" {
			return state.EmptyPlaceholder
		}
		return "Loading..."
	}

	if state.ShowModal && state.ModalContent != "" {
		return overlay(state.BaseContent, state.ModalContent, state.Width, state.Height, state.ModalBg)
	}
	return state.BaseContent
}

// box places content in a w×h area and paints the unused cells with bg.
func box(w, h int, vAlign lipgloss.Position, content string, bg lipgloss.Color) string {
	placed := lipgloss.Place(w, h, lipgloss.Left, vAlign, content, lipgloss.WithWhitespaceBackground(bg))
	return FillBackground(placed, w, h, bg)
}

// FillBackground pads or cuts content to exactly height lines and pads each
// line to width with bg. Lines wider than width are kept as they are.
func FillBackground(content string, width, height int, bg lipgloss.Color) string {
	if width <= 0 || height <= 0 {
		return content
	}
	pad := lipgloss.NewStyle().Background(bg)
	lines := strings.Split(content, "\n")

	out := make([]string, height)
	for i := range out {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		if gap := width - lipgloss.Width(line); gap > 0 {
			line += pad.Render(strings.Repeat(" ", gap))
		}
		out[i] = line
	}
	return strings.Join(out, "\n")
}

// overlay draws modal centered over base. Modal lines are padded to the
// widest one and keep bg across the resets their own styling emits.
func overlay(base, modal string, width, height int, bg lipgloss.Color) string {
	rows := strings.Split(modal, "\n")
	modalW := min(lipgloss.Width(modal), width)
	if modalW == 0 {
		return base
	}

	pad := lipgloss.NewStyle().Background(bg)
	for i, row := range rows {
		if w := lipgloss.Width(row); w > modalW {
			row = ansi.Cut(row, 0, modalW)
		} else if w < modalW {
			row += pad.Render(strings.Repeat(" ", modalW-w))
		}
		rows[i] = keepBackground(row, bg) + ansi.ResetStyle
	}

	top := max((height-len(rows))/2, 0)
	left := max((width-modalW)/2, 0)

	lines := strings.Split(FillBackground(base, width, height, ""), "\n")
	for i, row := range rows {
		y := top + i
		if y >= len(lines) {
			break
		}
		lines[y] = ansi.Cut(lines[y], 0, left) + row + ansi.Cut(lines[y], left+modalW, width)
	}
	return strings.Join(lines, "\n")
}

// keepBackground re-applies bg after every style or background reset in line.
func keepBackground(line string, bg lipgloss.Color) string {
	if bg == "" {
		return line
	}
	seq := ansi.Style{}.BackgroundColor(ansi.HexColor(string(bg))).String()
	return strings.NewReplacer(
		"\x1b[m", "\x1b[m"+seq,
		"\x1b[0m", "\x1b[0m"+seq,
		"\x1b[49m", "\x1b[49m"+seq,
	).Replace(line)
}
