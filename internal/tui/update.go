package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/festplan/internal/tui/commands"
)

const (
	statusDuration = 3 * time.Second
	errorDuration  = 5 * time.Second
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampCursor()
		m.ensureCursorVisible()
		return m, nil

	case commands.ErrMsg:
		m.err = msg.Err
		m.logger.Error("command failed", "err", msg.Err)
		LogError("command", msg.Err)
		cmd := m.setStatusFor(fmt.Sprintf("Error: %v", msg.Err), errorDuration)
		return m, cmd

	case commands.StatusMsgCmd:
		cmd := m.setStatus(msg.Msg)
		return m, cmd

	case commands.ClearStatusMsg:
		if !time.Now().Before(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil

	case commands.DraftResultMsg:
		m.drafter = msg.Drafter
		m.draft = msg.Result
		m.statusMsg = ""
		m.openModal(ModalDraftResult)
		return m, nil

	case commands.DraftSavedMsg:
		m.draft = nil
		m.drafter = nil
		m.closeModal()
		m.clampCursor()
		cmd := m.setStatus(fmt.Sprintf("Saved %d sessions", msg.Count))
		return m, cmd

	case commands.ReviewMsg:
		m.reviewDay = msg.Day
		m.reviewText = msg.Text
		m.statusMsg = ""
		m.openModal(ModalReview)
		return m, nil

	case commands.ImportedMsg:
		m.logger.Info("imported sessions", "path", msg.Path, "count", msg.Count)
		m.clampCursor()
		cmd := m.setStatus(fmt.Sprintf("Imported %d sessions from %s", msg.Count, msg.Path))
		return m, cmd

	case commands.ExportedMsg:
		m.logger.Info("exported program", "path", msg.Path, "count", msg.Count)
		cmd := m.setStatus(fmt.Sprintf("Wrote %d sessions to %s", msg.Count, msg.Path))
		return m, cmd

	case commands.RestoredMsg:
		m.logger.Info("restored backup", "path", msg.Path, "sessions", msg.Sessions)
		m.cursor = Position{}
		m.scrollOffset = 0
		m.clampCursor()
		status := fmt.Sprintf("Restored %d sessions from %s", msg.Sessions, msg.Path)
		if msg.LocationsKept {
			status += " (locations kept)"
		}
		cmd := m.setStatus(status)
		return m, cmd
	}

	// Cursor blink and other component messages
	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	if m.mode == ModeModal && m.modalType == ModalSessionForm {
		if in := m.form.input(); in != nil {
			var cmd tea.Cmd
			*in, cmd = in.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// setStatus shows a status message and schedules clearing it.
func (m *Model) setStatus(msg string) tea.Cmd {
	return m.setStatusFor(msg, statusDuration)
}

func (m *Model) setStatusFor(msg string, d time.Duration) tea.Cmd {
	m.statusMsg = msg
	m.statusTime = time.Now().Add(d)
	return commands.ClearStatusAfter(d)
}
