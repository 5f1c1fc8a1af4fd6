package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FooterModel contains content and styles for rendering the footer.
type FooterModel struct {
	InnerW           int
	FooterH          int
	FullFooter       bool
	StatsLine        string
	StatusText       string
	HelpText         string
	PromptLines      []string
	PromptFocus      bool
	StatusStyle      lipgloss.Style
	HelpStyle        lipgloss.Style
	PromptStyle      lipgloss.Style
	PromptFocusStyle lipgloss.Style
	VAlign           lipgloss.Position
	Bg               lipgloss.Color
}

// RenderFooter renders the stats bar, prompt, status and help lines.
// A compact footer only keeps status and help.
func RenderFooter(model FooterModel) string {
	if model.FooterH <= 0 {
		return ""
	}

	statusLine := footerLine(model.InnerW, model.StatusStyle, model.StatusText)
	helpLine := footerLine(model.InnerW, model.HelpStyle, model.HelpText)

	var lines []string
	if model.FullFooter {
		promptStyle := model.PromptStyle
		if model.PromptFocus {
			promptStyle = model.PromptFocusStyle
		}
		lines = append(lines,
			model.StatsLine,
			RenderPrompt(model.InnerW, promptStyle, model.PromptLines),
		)
	}
	lines = append(lines, statusLine, helpLine)

	return box(model.InnerW, model.FooterH, model.VAlign, strings.Join(lines, "\n"), model.Bg)
}

func footerLine(width int, style lipgloss.Style, content string) string {
	frameW, _ := style.GetFrameSize()
	contentWidth := max(0, width-frameW)
	style = style.Width(contentWidth)
	if contentWidth > 0 {
		content = ansi.Truncate(content, contentWidth, "")
	}
	return style.Render(content)
}
