package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/festplan/internal/grid"
	"github.com/javiermolinar/festplan/internal/session"
	"github.com/javiermolinar/festplan/internal/tui/commands"
	"github.com/javiermolinar/festplan/internal/tui/view"
)

func (m *Model) openModal(t ModalType) {
	LogModeChange(m.mode, ModeModal, fmt.Sprintf("modal_%d", t))
	m.mode = ModeModal
	m.modalType = t
}

func (m *Model) closeModal() {
	LogModeChange(m.mode, ModeNormal, "modal_closed")
	m.mode = ModeNormal
	m.modalType = ModalNone
	m.modalSession = nil
	m.form.setFocus(fieldLocation) // blurs the text inputs
}

// renderModal renders the current modal.
func (m Model) renderModal() string {
	switch m.modalType {
	case ModalSessionForm:
		return m.renderSessionFormModal()
	case ModalSessionDetail:
		return m.renderSessionDetailModal()
	case ModalConfirmDelete:
		return m.renderConfirmDeleteModal()
	case ModalDraftResult:
		return m.renderDraftResultModal()
	case ModalReview:
		return m.renderReviewModal()
	default:
		return ""
	}
}

// handleModalKeys handles keys in modal mode.
func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalSessionForm:
		return m.handleSessionFormKeys(msg)
	case ModalSessionDetail:
		return m.handleSessionDetailKeys(msg)
	case ModalConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	case ModalDraftResult:
		return m.handleDraftResultKeys(msg)
	case ModalReview:
		return m.handleReviewKeys(msg)
	default:
		if msg.String() == "esc" {
			m.closeModal()
		}
	}
	return m, nil
}

func (m Model) openDetail(s session.Session) (tea.Model, tea.Cmd) {
	m.modalSession = &s
	m.openModal(ModalSessionDetail)
	return m, nil
}

func (m Model) handleSessionDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.modalSession == nil {
		m.closeModal()
		return m, nil
	}
	s := *m.modalSession
	switch msg.String() {
	case "esc", "q", "enter":
		m.closeModal()
	case "e":
		return m.openEditForm(s)
	case "m":
		m.closeModal()
		return m.startMove(s)
	case "d":
		m.openModal(ModalConfirmDelete)
	}
	return m, nil
}

func (m Model) renderSessionDetailModal() string {
	if m.modalSession == nil {
		return ""
	}
	s := *m.modalSession
	day := m.daySessions()
	placement := grid.ColumnFor(day, s)

	fields := []view.Field{
		{Label: "Day", Value: m.config.DayLabel(s.Day)},
		{Label: "Time", Value: fmt.Sprintf("%s - %s (%s)", s.StartTime, s.EndTime, session.FormatDuration(s.Duration()))},
		{Label: "Location", Value: session.LocationName(m.store.Locations(), s.LocationID)},
	}
	if placement.TotalColumns > 1 {
		fields = append(fields, view.Field{
			Label: "Column",
			Value: fmt.Sprintf("%d of %d overlapping", placement.ColumnIndex+1, placement.TotalColumns),
		})
	}
	optional := []view.Field{
		{Label: "Speakers", Value: s.Speakers},
		{Label: "Format", Value: s.Format},
		{Label: "Language", Value: s.LanguageOrDefault()},
		{Label: "Tracks", Value: s.Tracks},
	}
	for _, f := range optional {
		if f.Value != "" {
			fields = append(fields, f)
		}
	}

	styles := m.bodyStyles()
	body := styles.Tag.Render(s.Title) + "\n\n" + view.RenderFields(fields, styles)
	if s.Description != "" {
		body += "\n\n" + styles.Body.Render(s.Description)
	}
	return view.RenderModalFrame("Session", body, view.SessionDetailFooter(m.modalStyles()), m.modalStyles())
}

func (m Model) confirmDelete(s session.Session) (tea.Model, tea.Cmd) {
	m.modalSession = &s
	m.openModal(ModalConfirmDelete)
	return m, nil
}

func (m Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		if m.modalSession == nil {
			m.closeModal()
			return m, nil
		}
		s := *m.modalSession
		m.closeModal()
		if err := m.store.DeleteSession(s.ID); err != nil {
			cmd := m.setStatus(fmt.Sprintf("Error: %v", err))
			return m, cmd
		}
		m.cursor.Pick = 0
		m.clampCursor()
		cmd := m.setStatus(fmt.Sprintf("Deleted %q", s.Title))
		return m, cmd
	case "n", "esc":
		m.closeModal()
	}
	return m, nil
}

func (m Model) renderConfirmDeleteModal() string {
	if m.modalSession == nil {
		return ""
	}
	s := *m.modalSession
	styles := m.bodyStyles()
	body := styles.Body.Render("Delete this session?") + "\n\n" +
		styles.Tag.Render(s.Title) + "\n" +
		styles.Meta.Render(fmt.Sprintf("%s, %s-%s, %s",
			m.config.DayLabel(s.Day), s.StartTime, s.EndTime,
			session.LocationName(m.store.Locations(), s.LocationID)))
	return view.RenderModalFrame("Confirm Delete", body, view.ConfirmDeleteFooter(m.modalStyles()), m.modalStyles())
}

func (m Model) handleDraftResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "c":
		m.closeModal()
		m.draft = nil
		m.drafter = nil
		m.amending = false
		cmd := m.setStatus("Draft cancelled")
		return m, cmd

	case "enter", "a":
		if m.draft == nil {
			return m, nil
		}
		if m.draft.HasValidationErrors() {
			cmd := m.setStatus("Cannot save: validation errors present")
			return m, cmd
		}
		return m, commands.SaveDraft(m.drafter, m.draft)

	case "m":
		// Ask for feedback on the draft
		m.closeModal()
		m.amending = true
		m.openPrompt("")
		m.statusMsg = "What would you like to change?"
		return m, nil
	}
	return m, nil
}

func (m Model) renderDraftResultModal() string {
	if m.draft == nil {
		return ""
	}
	r := m.draft
	model := view.DraftModel{
		Intro:    fmt.Sprintf("%d session(s) drafted for %s.", len(r.Sessions), m.config.Festival.Name),
		Warnings: r.Warnings,
		Clashes:  r.Clashes,
	}
	for _, e := range r.ValidationErrors {
		model.Issues = append(model.Issues, e.String())
	}

	groups, days := r.ByDay()
	for _, d := range days {
		dd := view.DraftDay{Label: m.config.DayLabel(d)}
		for _, s := range groups[d] {
			line := fmt.Sprintf("%s-%s  %s  @ %s", s.StartTime, s.EndTime, s.Title, s.Location)
			if s.Format != "" {
				line += "  [" + s.Format + "]"
			}
			dd.Lines = append(dd.Lines, line)
		}
		model.Days = append(model.Days, dd)
	}

	if r.HasValidationErrors() {
		model.Summary = "The draft still has errors. Modify it or cancel."
	} else {
		model.Summary = "Accept to add these sessions to the program."
	}

	body := view.RenderDraftBody(model, m.bodyStyles())
	footer := view.DraftResultFooter(r.HasValidationErrors(), m.modalStyles())
	return view.RenderModalFrame("LLM Draft", body, footer, m.modalStyles())
}

func (m Model) handleReviewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.closeModal()
	case "y":
		if err := m.copy(m.reviewText); err != nil {
			cmd := m.setStatus(fmt.Sprintf("Clipboard error: %v", err))
			return m, cmd
		}
		cmd := m.setStatus("Review copied to clipboard")
		return m, cmd
	}
	return m, nil
}

func (m Model) renderReviewModal() string {
	styles := m.bodyStyles()
	lines := strings.Split(strings.TrimSpace(m.reviewText), "\n")
	for i, line := range lines {
		lines[i] = styles.Body.Render(line)
	}
	body := styles.Meta.Render(m.config.DayLabel(m.reviewDay)) + "\n\n" + strings.Join(lines, "\n")
	return view.RenderModalFrame("Day Review", body, view.ReviewFooter(m.modalStyles()), m.modalStyles())
}
