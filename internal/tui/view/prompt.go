package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PromptCommand is a command suggestion entry.
type PromptCommand struct {
	Name        string
	Description string
}

// PromptState captures prompt input state for rendering.
type PromptState struct {
	Value       string
	Cursor      string
	Placeholder string
	Focused     bool
}

// PromptLines builds the input line and, while typing a command name, the
// matching suggestions. Every line fits contentWidth.
func PromptLines(state PromptState, contentWidth int, commands []PromptCommand) []string {
	input := state.Value + state.Cursor
	if !state.Focused && state.Value == "" {
		input = state.Placeholder
	}
	lines := []string{truncate("> "+input, contentWidth)}
	if !state.Focused {
		return lines
	}
	for _, cmd := range MatchingCommands(state.Value, commands) {
		lines = append(lines, truncate("  "+cmd.Name+" "+cmd.Description, contentWidth))
	}
	return lines
}

// MatchingCommands returns the commands whose name starts with the typed
// prefix. Nothing matches once an argument is being typed.
func MatchingCommands(input string, commands []PromptCommand) []PromptCommand {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "/") || strings.Contains(input, " ") {
		return nil
	}

	prefix := strings.ToLower(trimmed)
	var matches []PromptCommand
	for _, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd.Name), prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// ClampPromptLines keeps at most maxLines lines and marks the cut with an ellipsis.
func ClampPromptLines(lines []string, maxLines, width int) []string {
	if maxLines <= 0 {
		return nil
	}
	if len(lines) <= maxLines {
		return lines
	}

	clamped := append([]string(nil), lines[:maxLines]...)
	clamped[maxLines-1] = ansi.Truncate(clamped[maxLines-1]+"...", width, "...")
	return clamped
}

// RenderPrompt renders the prompt box with the provided lines.
func RenderPrompt(width int, style lipgloss.Style, lines []string) string {
	frameW, _ := style.GetFrameSize()
	style = style.Width(max(0, width-frameW))
	if len(lines) == 0 {
		lines = []string{""}
	}
	return style.Render(strings.Join(lines, "\n"))
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
