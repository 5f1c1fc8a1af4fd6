package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderTableIncludesHeader(t *testing.T) {
	state := TableViewState{
		InnerW:       20,
		GridH:        5,
		Headers:      []string{"Hdr"},
		HeaderStyles: []lipgloss.Style{lipgloss.NewStyle()},
		Content: TableContent{
			Rows:       [][]string{{"Cell"}},
			CellStyles: [][]lipgloss.Style{{lipgloss.NewStyle()}},
		},
		BorderStyle: lipgloss.NewStyle(),
		VAlign:      lipgloss.Top,
		Bg:          lipgloss.Color(""),
		Render:      true,
	}

	out := RenderTable(state)
	if !strings.Contains(out, "Hdr") {
		t.Fatalf("expected header in output: %q", out)
	}
}

func TestRenderTableSkipsWhenDisabled(t *testing.T) {
	if out := RenderTable(TableViewState{InnerW: 20, GridH: 5}); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestRenderTablePadsToBox(t *testing.T) {
	state := TableViewState{
		InnerW:  30,
		GridH:   8,
		Headers: []string{"Time", "Stage"},
		Content: TableContent{
			Rows: [][]string{{"10:00", "Opening"}, {"10:30", ""}},
		},
		VAlign: lipgloss.Top,
		Render: true,
	}

	out := RenderTable(state)
	lines := strings.Split(out, "\n")
	if len(lines) != 8 {
		t.Fatalf("expected 8 lines, got %d", len(lines))
	}
	if !strings.Contains(out, "Opening") || !strings.Contains(out, "10:30") {
		t.Fatalf("expected rows in output: %q", out)
	}
}
