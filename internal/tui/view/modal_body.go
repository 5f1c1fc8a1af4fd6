package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BodyStyles groups the styles used inside modal bodies.
type BodyStyles struct {
	Body         lipgloss.Style
	Meta         lipgloss.Style
	SectionTitle lipgloss.Style
	Label        lipgloss.Style
	Tag          lipgloss.Style
	Hint         lipgloss.Style
	Error        lipgloss.Style
}

// Field is one labelled value of a modal body.
type Field struct {
	Label string
	Value string
}

// RenderFields renders label/value rows with the labels padded to one width.
func RenderFields(fields []Field, styles BodyStyles) string {
	width := 0
	for _, f := range fields {
		width = max(width, lipgloss.Width(f.Label))
	}

	var b strings.Builder
	for _, f := range fields {
		label := f.Label + strings.Repeat(" ", width-lipgloss.Width(f.Label))
		b.WriteString(styles.Label.Render(label) + styles.Body.Render("  "+f.Value) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// FormField is one input of the session form. Options, when set, are picked
// with left/right and Selected marks the current one.
type FormField struct {
	Label    string
	Value    string
	Options  []string
	Selected int
	Focused  bool
}

// FormStyles groups the styles of the session form.
type FormStyles struct {
	BodyStyles
	Input          lipgloss.Style
	InputFocused   lipgloss.Style
	OptionActive   lipgloss.Style
	OptionInactive lipgloss.Style
}

// RenderForm renders the form fields, an error line and a hint.
func RenderForm(meta string, fields []FormField, errText string, styles FormStyles) string {
	var b strings.Builder
	sep := styles.Body.Render(" ")

	b.WriteString(styles.Tag.Render(meta) + "\n\n")
	for _, f := range fields {
		b.WriteString(styles.SectionTitle.Render(strings.ToUpper(f.Label)) + "\n")
		if f.Options == nil {
			style := styles.Input
			if f.Focused {
				style = styles.InputFocused
			}
			b.WriteString(style.Render(f.Value) + "\n")
			continue
		}

		parts := make([]string, 0, len(f.Options))
		for i, opt := range f.Options {
			if i == f.Selected {
				parts = append(parts, styles.OptionActive.Render(opt))
			} else {
				parts = append(parts, styles.OptionInactive.Render(opt))
			}
		}
		line := strings.Join(parts, sep)
		if f.Focused {
			line += sep + styles.Hint.Render("←/→")
		}
		b.WriteString(line + "\n")
	}
	if errText != "" {
		b.WriteString("\n" + styles.Error.Render(errText) + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// DraftDay is one festival day of a draft.
type DraftDay struct {
	Label string
	Lines []string
}

// DraftModel contains the fields needed to render a draft result.
type DraftModel struct {
	Intro    string
	Issues   []string
	Warnings []string
	Clashes  []string
	Days     []DraftDay
	Summary  string
}

// RenderDraftBody renders the modal body for an LLM draft.
func RenderDraftBody(model DraftModel, styles BodyStyles) string {
	var b strings.Builder

	b.WriteString(styles.Meta.Render(model.Intro) + "\n\n")

	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		b.WriteString(styles.SectionTitle.Render(title) + "\n")
		for _, item := range items {
			b.WriteString(styles.Body.Render("- "+item) + "\n")
		}
		b.WriteString("\n")
	}
	section("ISSUES", model.Issues)
	section("WARNINGS", model.Warnings)
	section("CLASHES", model.Clashes)

	b.WriteString(styles.SectionTitle.Render("DRAFT PROGRAM") + "\n")
	if len(model.Days) == 0 {
		b.WriteString(styles.Meta.Render("No sessions drafted.") + "\n")
	}
	for _, day := range model.Days {
		b.WriteString(styles.Body.Render(day.Label) + "\n")
		for _, line := range day.Lines {
			b.WriteString(styles.Body.Render("  "+line) + "\n")
		}
	}

	b.WriteString("\n" + styles.Meta.Render(model.Summary))
	return b.String()
}
