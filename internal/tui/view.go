package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/festplan/internal/tui/view"
)

// View renders the TUI using a boxed, parent-controlled layout.
func (m Model) View() string {
	return view.Render(m.viewState())
}

func (m Model) viewState() view.ViewState {
	showModal := m.mode == ModeModal && m.modalType != ModalNone
	modal := ""
	if showModal {
		modal = m.renderModal()
	}

	return view.ViewState{
		Width:            m.width,
		Height:           m.height,
		BaseContent:      m.renderAppContent(),
		ModalContent:     modal,
		ShowModal:        showModal,
		ModalBg:          m.styles.ModalBgColor,
		EmptyPlaceholder: "Loading...",
	}
}

func (m Model) renderAppContent() string {
	l := m.layout()
	if l.InnerW <= 0 || l.GridH <= 0 {
		return "Terminal too small"
	}

	header := m.renderHeader(l.InnerW)
	var body string
	if m.view == viewList {
		body = view.RenderTable(m.listViewState(l))
	} else {
		body = view.RenderTable(m.gridViewState(l))
	}
	footer := view.RenderFooter(m.footerViewState(l))

	content := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	app := m.styles.AppStyle.Render(content)
	return view.FillBackground(app, m.width, m.height, m.styles.colorBg)
}

func (m Model) renderHeader(width int) string {
	days := m.config.DayNumbers()
	tabs := make([]view.DayTab, 0, len(days))
	for _, d := range days {
		label := m.dayName(d)
		if label == "" {
			label = m.config.DayLabel(d)
		}
		tabs = append(tabs, view.DayTab{Label: label, Active: d == m.day})
	}

	meta := fmt.Sprintf("%d min", m.zoom)
	if m.view == viewList {
		meta = "list"
	}
	styles := view.HeaderStyles{
		Title:     m.styles.TitleStyle,
		Tab:       m.styles.TabStyle,
		TabActive: m.styles.TabActiveStyle,
		Meta:      m.styles.MetaStyle,
	}
	return view.RenderHeader(width, m.config.Festival.Name, tabs, meta, styles, m.styles.colorBg)
}

// dayName returns the short configured name of a day, such as "Tag 1".
func (m Model) dayName(day int) string {
	for _, d := range m.config.Festival.Days {
		if d.Number == day {
			return d.Name
		}
	}
	return ""
}

func (m Model) footerViewState(l layout) view.FooterModel {
	status := m.statusMsg
	if status == "" {
		status = " "
	}
	return view.FooterModel{
		InnerW:           l.InnerW,
		FooterH:          l.FooterH,
		FullFooter:       l.FullFooter,
		StatsLine:        m.renderStatsBar(l.InnerW),
		StatusText:       status,
		HelpText:         m.renderHelp(),
		PromptLines:      m.promptLines(l.PromptContentWidth),
		PromptFocus:      m.mode == ModePrompt,
		StatusStyle:      m.styles.StatusStyle,
		HelpStyle:        m.styles.HelpStyle,
		PromptStyle:      m.styles.PromptStyle,
		PromptFocusStyle: m.styles.PromptFocusedStyle,
		VAlign:           lipgloss.Bottom,
		Bg:               m.styles.colorBg,
	}
}

func (m Model) renderHelp() string {
	switch m.mode {
	case ModeMove:
		return "hjkl: move  enter: drop  esc: cancel"
	case ModePrompt:
		return "enter: run  tab: complete  esc: cancel"
	}
	if m.view == viewList {
		return "jk: select  enter: open  e: edit  d: delete  v: grid  tab: day  /: command  q: quit"
	}
	return "hjkl: navigate  enter: open  n: new  m: move  c: cycle  +/-: zoom  v: list  tab: day  y: copy  /: command  q: quit"
}
