package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/festplan/internal/transfer"
	"github.com/javiermolinar/festplan/internal/tui/commands"
	"github.com/javiermolinar/festplan/internal/tui/view"
)

var promptCommands = []view.PromptCommand{
	{Name: "/plan", Description: "Draft sessions from natural language input"},
	{Name: "/review", Description: "Review the current day"},
	{Name: "/export", Description: "Export the program as CSV [path]"},
	{Name: "/import", Description: "Append sessions from a CSV file <path>"},
	{Name: "/backup", Description: "Write a JSON or YAML backup [path]"},
	{Name: "/restore", Description: "Replace the program from a backup <path>"},
	{Name: "/help", Description: "Show available commands"},
}

func (m Model) promptLines(contentWidth int) []string {
	state := view.PromptState{
		Value:       m.prompt.Value(),
		Placeholder: m.prompt.Placeholder,
		Focused:     m.mode == ModePrompt,
	}
	if state.Focused {
		state.Cursor = "█"
	}
	if m.amending && !state.Focused {
		state.Placeholder = "feedback on the draft ..."
	}
	lines := view.PromptLines(state, contentWidth, promptCommands)
	return view.ClampPromptLines(lines, promptMaxLines, contentWidth)
}

// handlePromptSubmit runs a prompt command. Plain text drafts sessions, or
// refines the current draft when one is being amended.
func (m Model) handlePromptSubmit(value string) (tea.Model, tea.Cmd) {
	value = strings.TrimSpace(value)
	if value == "" {
		m.amending = false
		return m, nil
	}

	if !strings.HasPrefix(value, "/") {
		if m.amending && m.drafter != nil {
			m.amending = false
			m.statusMsg = "Drafting..."
			return m, commands.ContinueDraft(m.drafter, value)
		}
		return m.startDraft(value)
	}
	m.amending = false

	name, arg, _ := strings.Cut(value, " ")
	arg = strings.TrimSpace(arg)
	now := m.now()

	switch name {
	case "/plan":
		if arg == "" {
			cmd := m.setStatus("Plan requires input")
			return m, cmd
		}
		return m.startDraft(arg)
	case "/review":
		m.statusMsg = "Reviewing..."
		return m, commands.Review(m.day, m.config, m.store, m.newClient)
	case "/export":
		if arg == "" {
			arg = transfer.CSVFileName(m.config.Festival.Year, now)
		}
		return m, commands.ExportCSV(arg, m.store)
	case "/import":
		if arg == "" {
			cmd := m.setStatus("Import requires a file path")
			return m, cmd
		}
		return m, commands.ImportCSV(arg, m.store, now)
	case "/backup":
		if arg == "" {
			arg = transfer.BackupFileName(now, transfer.FormatJSON)
		}
		return m, commands.Backup(arg, m.store)
	case "/restore":
		if arg == "" {
			cmd := m.setStatus("Restore requires a file path")
			return m, cmd
		}
		return m, commands.Restore(arg, m.store)
	case "/help":
		names := make([]string, len(promptCommands))
		for i, c := range promptCommands {
			names[i] = c.Name
		}
		cmd := m.setStatus("Commands: " + strings.Join(names, ", "))
		return m, cmd
	default:
		cmd := m.setStatus(fmt.Sprintf("Unknown command: %s", name))
		return m, cmd
	}
}

func (m Model) startDraft(input string) (tea.Model, tea.Cmd) {
	m.statusMsg = "Drafting..."
	return m, commands.Draft(input, m.config, m.store, m.newClient)
}
