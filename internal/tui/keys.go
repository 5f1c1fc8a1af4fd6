package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/festplan/internal/grid"
	"github.com/javiermolinar/festplan/internal/session"
	"github.com/javiermolinar/festplan/internal/tui/view"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Log keystroke
	LogKeyPress(msg)

	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	// Mode-specific handling
	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeMove:
		return m.handleMoveKeys(msg)
	case ModeModal:
		return m.handleModalKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "q":
		return m, tea.Quit

	// Navigation
	case "h", "left":
		if m.view == viewGrid && m.cursor.Loc > 0 {
			m.cursor.Loc--
			m.cursor.Pick = 0
		}
	case "l", "right":
		if m.view == viewGrid && m.cursor.Loc < len(m.store.Locations())-1 {
			m.cursor.Loc++
			m.cursor.Pick = 0
		}
	case "j", "down":
		if m.view == viewList {
			m.listCursor++
			m.clampCursor()
			return m, nil
		}
		m.cursor.Slot++
		m.cursor.Pick = 0
		m.clampCursor()
		m.ensureCursorVisible()
	case "k", "up":
		if m.view == viewList {
			m.listCursor = max(0, m.listCursor-1)
			return m, nil
		}
		m.cursor.Slot = max(0, m.cursor.Slot-1)
		m.cursor.Pick = 0
		m.ensureCursorVisible()

	// Page navigation
	case "pgdown", "ctrl+d":
		m.cursor.Slot += m.visibleRows()
		m.clampCursor()
		m.ensureCursorVisible()
	case "pgup", "ctrl+u":
		m.cursor.Slot = max(0, m.cursor.Slot-m.visibleRows())
		m.ensureCursorVisible()

	// Days
	case "tab":
		m.shiftDay(1)
	case "shift+tab":
		m.shiftDay(-1)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx, _ := strconv.Atoi(key)
		days := m.config.DayNumbers()
		if idx <= len(days) {
			m.setDay(days[idx-1])
		}

	// Zoom
	case "+", "=":
		m.setZoom(grid.ZoomIn(m.zoom))
		cmd := m.setStatus(fmt.Sprintf("Zoom: %d min", m.zoom))
		return m, cmd
	case "-", "_":
		m.setZoom(grid.ZoomOut(m.zoom))
		cmd := m.setStatus(fmt.Sprintf("Zoom: %d min", m.zoom))
		return m, cmd

	case "v":
		if m.view == viewGrid {
			m.view = viewList
		} else {
			m.view = viewGrid
		}

	// Cycle through sessions starting in the same cell
	case "c":
		if n := len(m.cellCandidates()); n > 1 {
			m.cursor.Pick = (m.cursor.Pick + 1) % n
		}

	// Actions
	case "/":
		m.openPrompt("/")
		return m, textinput.Blink
	case "p":
		m.openPrompt("/plan ")
		return m, textinput.Blink

	case "enter":
		if s, ok := m.selectedSession(); ok {
			return m.openDetail(s)
		}
		return m.openNewForm()
	case "n":
		return m.openNewForm()
	case "e":
		if s, ok := m.selectedSession(); ok {
			return m.openEditForm(s)
		}
		cmd := m.setStatus("No session here")
		return m, cmd
	case "m":
		if s, ok := m.selectedSession(); ok {
			return m.startMove(s)
		}
		cmd := m.setStatus("No session to move")
		return m, cmd
	case "d":
		if s, ok := m.selectedSession(); ok {
			return m.confirmDelete(s)
		}
		cmd := m.setStatus("No session to delete")
		return m, cmd
	case "y":
		return m.handleYank()
	}

	return m, nil
}

// handlePromptKeys handles keys in prompt mode.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		m.amending = false
		return m, nil

	case "enter":
		value := m.prompt.Value()
		m.closePrompt()
		return m.handlePromptSubmit(value)

	case "tab":
		if matches := view.MatchingCommands(m.prompt.Value(), promptCommands); len(matches) > 0 {
			m.prompt.SetValue(matches[0].Name + " ")
			m.prompt.CursorEnd()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) openPrompt(value string) {
	LogModeChange(m.mode, ModePrompt, "open_prompt")
	m.mode = ModePrompt
	m.prompt.SetValue(value)
	m.prompt.CursorEnd()
	m.prompt.Focus()
}

func (m *Model) closePrompt() {
	LogModeChange(m.mode, ModeNormal, "close_prompt")
	m.mode = ModeNormal
	m.prompt.Blur()
	m.prompt.SetValue("")
}

// startMove picks up a session. The hovered cell starts at its own position.
func (m Model) startMove(s session.Session) (tea.Model, tea.Cmd) {
	m.view = viewGrid
	m.focusSession(s)
	m.drag = grid.Drag{Session: &s}
	m.updateDragTarget()

	LogModeChange(m.mode, ModeMove, "start_move")
	m.mode = ModeMove
	m.statusMsg = fmt.Sprintf("Moving: %s (hjkl to move, Enter to drop, Esc to cancel)", s.Title)
	return m, nil
}

func (m *Model) updateDragTarget() {
	loc, slot, ok := m.cursorCell()
	if !ok {
		m.drag.Over = ""
		return
	}
	m.drag.Over = grid.CellID(loc.ID, slot)
	LogDrag(m.drag, "hover")
}

// handleMoveKeys handles keys in move mode.
func (m Model) handleMoveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.drag = grid.Drag{}
		LogModeChange(m.mode, ModeNormal, "cancel_move")
		m.mode = ModeNormal
		cmd := m.setStatus("Move cancelled")
		return m, cmd
	case "enter":
		return m.confirmMove()
	case "h", "left":
		m.cursor.Loc--
	case "l", "right":
		m.cursor.Loc++
	case "j", "down":
		m.cursor.Slot++
	case "k", "up":
		m.cursor.Slot--
	default:
		return m, nil
	}
	m.clampCursor()
	m.ensureCursorVisible()
	m.updateDragTarget()
	return m, nil
}

// confirmMove drops the dragged session on the hovered cell.
func (m Model) confirmMove() (tea.Model, tea.Cmd) {
	drag := m.drag
	m.drag = grid.Drag{}
	LogModeChange(m.mode, ModeNormal, "drop")
	m.mode = ModeNormal
	if !drag.Active() {
		return m, nil
	}

	moved, ok := m.store.Move(drag.Session.ID, drag.Over)
	if !ok {
		cmd := m.setStatus("Cannot drop here")
		return m, cmd
	}
	m.focusSession(moved)
	loc := session.LocationName(m.store.Locations(), moved.LocationID)
	cmd := m.setStatus(fmt.Sprintf("Moved %q to %s %s-%s", moved.Title, loc, moved.StartTime, moved.EndTime))
	return m, cmd
}

// handleYank copies the program of the current day as tab-separated rows.
func (m Model) handleYank() (tea.Model, tea.Cmd) {
	day := session.SortByStart(m.daySessions())
	if len(day) == 0 {
		cmd := m.setStatus("Nothing to copy")
		return m, cmd
	}
	locations := m.store.Locations()

	var b strings.Builder
	for _, s := range day {
		fmt.Fprintf(&b, "%s\t%s\t%s\t%s\t%s\n",
			s.StartTime, s.EndTime, session.LocationName(locations, s.LocationID), s.Title, s.Speakers)
	}
	if err := m.copy(b.String()); err != nil {
		cmd := m.setStatus(fmt.Sprintf("Clipboard error: %v", err))
		return m, cmd
	}
	cmd := m.setStatus(fmt.Sprintf("Copied %d sessions of %s", len(day), m.config.DayLabel(m.day)))
	return m, cmd
}
