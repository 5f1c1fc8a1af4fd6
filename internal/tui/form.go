package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/festplan/internal/session"
	"github.com/javiermolinar/festplan/internal/tui/view"
)

// Form fields in tab order.
const (
	fieldTitle = iota
	fieldSpeakers
	fieldStart
	fieldLocation
	fieldDuration
	fieldFormat
	fieldLanguage
	formFieldCount
)

const defaultDuration = 60

// sessionForm is the state of the new/edit session modal.
type sessionForm struct {
	title    textinput.Model
	speakers textinput.Model
	start    textinput.Model

	location  int
	durations []int
	duration  int
	format    int // 0 is no format, then session.Formats
	language  int

	focus   int
	errText string
}

func newFormInput(styles *Styles, placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 50
	ti.Prompt = ""
	ti.PlaceholderStyle = styles.ModalPlaceholderStyle
	ti.TextStyle = styles.ModalInputTextStyle
	ti.PromptStyle = styles.ModalInputTextStyle
	ti.Cursor.Style = styles.ModalInputCursorStyle
	ti.Cursor.TextStyle = styles.ModalInputTextStyle
	return ti
}

func newSessionForm(styles *Styles) sessionForm {
	return sessionForm{
		title:     newFormInput(styles, "Session title", 256),
		speakers:  newFormInput(styles, "Speakers", 256),
		start:     newFormInput(styles, "HH:MM", 5),
		durations: session.DurationOptions,
		duration:  slices.Index(session.DurationOptions, defaultDuration),
	}
}

// reset prepares the form for a new session in the given cell.
func (f *sessionForm) reset(locIdx int, start string) {
	f.title.SetValue("")
	f.speakers.SetValue("")
	f.start.SetValue(start)
	f.location = locIdx
	f.durations = session.DurationOptions
	f.duration = slices.Index(f.durations, defaultDuration)
	f.format = 0
	f.language = 0
	f.errText = ""
	f.setFocus(fieldTitle)
}

// load fills the form from an existing session. A duration that is not one
// of the options is added so editing never changes it by accident.
func (f *sessionForm) load(s session.Session, locations []session.Location) {
	f.title.SetValue(s.Title)
	f.speakers.SetValue(s.Speakers)
	f.start.SetValue(s.StartTime)
	f.location = max(0, session.FindLocation(locations, s.LocationID))

	f.durations = session.DurationOptions
	if !slices.Contains(f.durations, s.Duration()) {
		f.durations = append(slices.Clone(f.durations), s.Duration())
		slices.Sort(f.durations)
	}
	f.duration = slices.Index(f.durations, s.Duration())

	f.format = slices.Index(session.Formats, s.Format) + 1
	f.language = max(0, slices.Index(session.Languages, s.LanguageOrDefault()))
	f.errText = ""
	f.setFocus(fieldTitle)
}

func (f *sessionForm) setFocus(field int) {
	f.focus = (field + formFieldCount) % formFieldCount
	for i, in := range []*textinput.Model{&f.title, &f.speakers, &f.start} {
		if i == f.focus {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

func (f *sessionForm) input() *textinput.Model {
	switch f.focus {
	case fieldTitle:
		return &f.title
	case fieldSpeakers:
		return &f.speakers
	case fieldStart:
		return &f.start
	}
	return nil
}

// cycle moves the focused option field by delta, wrapping around.
func (f *sessionForm) cycle(delta, locations int) {
	wrap := func(v, n int) int {
		if n == 0 {
			return 0
		}
		return (v + delta + n) % n
	}
	switch f.focus {
	case fieldLocation:
		f.location = wrap(f.location, locations)
	case fieldDuration:
		f.duration = wrap(f.duration, len(f.durations))
	case fieldFormat:
		f.format = wrap(f.format, len(session.Formats)+1)
	case fieldLanguage:
		f.language = wrap(f.language, len(session.Languages))
	}
}

func (f sessionForm) formatValue() string {
	if f.format <= 0 || f.format > len(session.Formats) {
		return ""
	}
	return session.Formats[f.format-1]
}

// openNewForm opens the form for a session in the cursor cell.
func (m Model) openNewForm() (tea.Model, tea.Cmd) {
	if len(m.store.Locations()) == 0 {
		cmd := m.setStatus("Add a location first")
		return m, cmd
	}
	start := m.config.Grid.DayStart
	if _, slot, ok := m.cursorCell(); ok {
		start = slot
	}
	m.form.reset(m.cursor.Loc, start)
	m.modalSession = nil
	m.openModal(ModalSessionForm)
	return m, textinput.Blink
}

func (m Model) openEditForm(s session.Session) (tea.Model, tea.Cmd) {
	m.form.load(s, m.store.Locations())
	m.modalSession = &s
	m.openModal(ModalSessionForm)
	return m, textinput.Blink
}

// handleSessionFormKeys handles keys in the session form modal.
func (m Model) handleSessionFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil
	case "tab", "down":
		m.form.setFocus(m.form.focus + 1)
		return m, nil
	case "shift+tab", "up":
		m.form.setFocus(m.form.focus - 1)
		return m, nil
	case "enter":
		return m.saveSessionFromForm()
	case "left", "right":
		if m.form.input() == nil {
			delta := 1
			if msg.String() == "left" {
				delta = -1
			}
			m.form.cycle(delta, len(m.store.Locations()))
			return m, nil
		}
	}

	in := m.form.input()
	if in == nil {
		return m, nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return m, cmd
}

// saveSessionFromForm validates the form and adds or updates the session.
func (m Model) saveSessionFromForm() (tea.Model, tea.Cmd) {
	locations := m.store.Locations()
	if m.form.location < 0 || m.form.location >= len(locations) {
		m.form.errText = "Pick a location"
		return m, nil
	}

	day := m.day
	if m.modalSession != nil {
		day = m.modalSession.Day
	}
	s, err := session.New(
		m.form.title.Value(),
		locations[m.form.location].ID,
		day,
		strings.TrimSpace(m.form.start.Value()),
		m.form.durations[m.form.duration],
	)
	if err != nil {
		m.form.errText = err.Error()
		return m, nil
	}
	s.Speakers = strings.TrimSpace(m.form.speakers.Value())
	s.Format = m.form.formatValue()
	s.Language = session.Languages[m.form.language]

	var status string
	if m.modalSession != nil {
		s.ID = m.modalSession.ID
		s.Description = m.modalSession.Description
		s.Tracks = m.modalSession.Tracks
		if err := m.store.UpdateSession(*s); err != nil {
			m.form.errText = err.Error()
			return m, nil
		}
		status = fmt.Sprintf("Updated %q", s.Title)
	} else {
		if _, err := m.store.AddSession(*s); err != nil {
			m.form.errText = err.Error()
			return m, nil
		}
		status = fmt.Sprintf("Added %q", s.Title)
	}

	m.closeModal()
	m.focusSession(*s)
	cmd := m.setStatus(status)
	return m, cmd
}

func (m Model) renderSessionFormModal() string {
	f := m.form
	locNames := make([]string, 0)
	for _, l := range m.store.Locations() {
		locNames = append(locNames, l.Name)
	}
	durations := make([]string, len(f.durations))
	for i, d := range f.durations {
		durations[i] = session.FormatDuration(d)
	}
	formats := append([]string{"-"}, session.Formats...)

	inputs := []string{f.title.View(), f.speakers.View(), f.start.View()}
	fields := []view.FormField{
		{Label: "Title", Value: inputs[0]},
		{Label: "Speakers", Value: inputs[1]},
		{Label: "Start", Value: inputs[2]},
		{Label: "Location", Options: locNames, Selected: f.location},
		{Label: "Duration", Options: durations, Selected: f.duration},
		{Label: "Format", Options: formats, Selected: f.format},
		{Label: "Language", Options: session.Languages, Selected: f.language},
	}
	fields[f.focus].Focused = true

	title := "New Session"
	day := m.day
	if m.modalSession != nil {
		title = "Edit Session"
		day = m.modalSession.Day
	}
	styles := view.FormStyles{
		BodyStyles:     m.bodyStyles(),
		Input:          m.styles.ModalInputStyle,
		InputFocused:   m.styles.ModalInputFocusedStyle,
		OptionActive:   m.styles.OptionActiveStyle,
		OptionInactive: m.styles.OptionInactiveStyle,
	}
	body := view.RenderForm(m.config.DayLabel(day), fields, f.errText, styles)
	return view.RenderModalFrame(title, body, view.SessionFormFooter(m.modalStyles()), m.modalStyles())
}
