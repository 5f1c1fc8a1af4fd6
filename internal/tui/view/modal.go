package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ModalStyles are the styles of a modal frame and its buttons.
type ModalStyles struct {
	Header       lipgloss.Style
	Title        lipgloss.Style
	Footer       lipgloss.Style
	Frame        lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
	Body         lipgloss.Style
}

// RenderModalFrame stacks title, body and footer inside the modal frame.
// Empty parts are left out.
func RenderModalFrame(title, body, footer string, styles ModalStyles) string {
	parts := []string{styles.Header.Render(styles.Title.Render(title))}
	if body != "" {
		parts = append(parts, body)
	}
	if footer != "" {
		parts = append(parts, styles.Footer.Render(footer))
	}
	return styles.Frame.Render(strings.Join(parts, "\n\n"))
}

// buttons renders key hints as a row; the first is the default action.
// Padded buttons are used when the row has room for them.
func buttons(styles ModalStyles, padded bool, labels ...string) string {
	button, active := styles.Button, styles.ButtonActive
	if padded {
		button, active = button.Padding(0, 1), active.Padding(0, 1)
	}
	row := make([]string, len(labels))
	for i, label := range labels {
		if i == 0 {
			row[i] = active.Render(label)
			continue
		}
		row[i] = button.Render(label)
	}
	return strings.Join(row, styles.Body.Render(" "))
}
