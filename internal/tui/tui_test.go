package tui

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/festplan/internal/config"
	"github.com/javiermolinar/festplan/internal/llm"
	"github.com/javiermolinar/festplan/internal/session"
	"github.com/javiermolinar/festplan/internal/store"
)

var testNow = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

type fakeClient struct {
	reply string
	err   error
}

func (f fakeClient) Chat(context.Context, []llm.Message) (string, error) {
	return f.reply, f.err
}

func (f fakeClient) ChatJSON(_ context.Context, _ []llm.Message, result any) error {
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.reply), result)
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Grid.DayStart = "09:00"
	cfg.Grid.DayEnd = "13:00"
	cfg.Grid.Zoom = 30
	return cfg
}

func sess(id, loc, start, end, title string) session.Session {
	return session.Session{ID: id, Day: 1, LocationID: loc, StartTime: start, EndTime: end, Title: title}
}

// newTestModel returns a sized model over the default locations.
func newTestModel(t *testing.T, sessions ...session.Session) (Model, *store.Store, *[]string) {
	t.Helper()
	st := store.New(store.WithSnapshot(store.Snapshot{
		Sessions:  sessions,
		Locations: session.DefaultLocations(),
	}))
	var copied []string
	m := New(st, testConfig(),
		WithClock(func() time.Time { return testNow }),
		WithClipboard(func(s string) error {
			copied = append(copied, s)
			return nil
		}),
	)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model), st, &copied
}

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press feeds keys through Update and returns the last command.
func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(key(k))
		m = updated.(Model)
	}
	return m, cmd
}

// plainView renders without colors and strips the remaining escape codes.
func plainView(t *testing.T, m Model) string {
	t.Helper()
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(prev)
	})
	return ansi.Strip(m.View())
}
