package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/festplan/internal/llm"
	"github.com/javiermolinar/festplan/internal/session"
	"github.com/javiermolinar/festplan/internal/tui/commands"
)

func submit(t *testing.T, m Model, value string) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.handlePromptSubmit(value)
	return updated.(Model), cmd
}

// run executes a command and feeds its message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	m, _ = update(t, m, cmd())
	return m
}

func TestPromptStatusCommands(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "/frobnicate", want: "Unknown command: /frobnicate"},
		{input: "/plan", want: "Plan requires input"},
		{input: "/import", want: "Import requires a file path"},
		{input: "/restore  ", want: "Restore requires a file path"},
		{input: "/help", want: "Commands: /plan, /review, /export, /import, /backup, /restore, /help"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, _, _ := newTestModel(t)
			m, _ = submit(t, m, tt.input)
			if m.statusMsg != tt.want {
				t.Errorf("status = %q, want %q", m.statusMsg, tt.want)
			}
		})
	}
}

func TestPromptEmptySubmit(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, cmd := submit(t, m, "   ")
	if cmd != nil || m.statusMsg != "" {
		t.Errorf("empty submit did something: status=%q", m.statusMsg)
	}
}

func TestPromptExportAndImport(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "program.csv")

	m, _, _ := newTestModel(t,
		sess("a", "loc-1", "09:00", "10:00", "Opening"),
		sess("b", "loc-2", "11:00", "12:00", "Workshop"),
	)
	m, cmd := submit(t, m, "/export "+path)
	m = run(t, m, cmd)

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	if m.statusMsg != "Wrote 2 sessions to "+path {
		t.Errorf("status = %q", m.statusMsg)
	}

	other, st, _ := newTestModel(t)
	other, cmd = submit(t, other, "/import "+path)
	other = run(t, other, cmd)
	if got := len(st.Sessions()); got != 2 {
		t.Errorf("imported sessions = %d, want 2", got)
	}
	if !strings.HasPrefix(other.statusMsg, "Imported 2 sessions") {
		t.Errorf("status = %q", other.statusMsg)
	}
}

func TestPromptBackupAndRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "festplan.yaml")

	m, _, _ := newTestModel(t, sess("a", "loc-1", "09:00", "10:00", "Opening"))
	m, cmd := submit(t, m, "/backup "+path)
	run(t, m, cmd)

	other, st, _ := newTestModel(t,
		sess("x", "loc-1", "09:00", "10:00", "Old"),
		sess("y", "loc-1", "10:00", "11:00", "Older"),
	)
	other, cmd = submit(t, other, "/restore "+path)
	other = run(t, other, cmd)

	sessions := st.Sessions()
	if len(sessions) != 1 || sessions[0].Title != "Opening" {
		t.Errorf("restored sessions = %+v", sessions)
	}
	if other.statusMsg != "Restored 1 sessions from "+path {
		t.Errorf("status = %q", other.statusMsg)
	}
}

func TestPromptRestoreMissingFile(t *testing.T) {
	m, st, _ := newTestModel(t, sess("a", "loc-1", "09:00", "10:00", "Opening"))
	m, cmd := submit(t, m, "/restore "+filepath.Join(t.TempDir(), "missing.json"))
	m = run(t, m, cmd)

	if !strings.HasPrefix(m.statusMsg, "Error: restoring") {
		t.Errorf("status = %q", m.statusMsg)
	}
	if len(st.Sessions()) != 1 {
		t.Error("failed restore changed the program")
	}
}

func TestPromptDraftAccept(t *testing.T) {
	reply := `{"sessions":[{"title":"Panel","day":2,"location":"Hauptbühne","start_time":"10:00","end_time":"11:00"}],"warnings":[]}`
	m, st, _ := newTestModel(t)
	m.newClient = func() (llm.Client, error) { return fakeClient{reply: reply}, nil }

	m, _ = press(t, m, "p", "a panel on day 2")
	if got := m.prompt.Value(); got != "/plan a panel on day 2" {
		t.Fatalf("prompt = %q", got)
	}
	m, cmd := press(t, m, "enter")
	if m.statusMsg != "Drafting..." {
		t.Errorf("status = %q", m.statusMsg)
	}
	m = run(t, m, cmd)
	if m.modalType != ModalDraftResult {
		t.Fatalf("modal = %d, want draft result (status %q)", m.modalType, m.statusMsg)
	}
	if out := plainView(t, m); !strings.Contains(out, "Panel") {
		t.Error("draft modal does not list the drafted session")
	}

	m, cmd = press(t, m, "a")
	m = run(t, m, cmd)
	if m.statusMsg != "Saved 1 sessions" {
		t.Errorf("status = %q", m.statusMsg)
	}

	day2 := session.ForDay(st.Sessions(), 2)
	if len(day2) != 1 {
		t.Fatalf("day 2 sessions = %d, want 1", len(day2))
	}
	if day2[0].LocationID != "loc-1" || day2[0].StartTime != "10:00" {
		t.Errorf("saved session = %+v", day2[0])
	}
}

func TestPromptDraftClientError(t *testing.T) {
	m, st, _ := newTestModel(t)
	m.newClient = func() (llm.Client, error) { return nil, errors.New("no api key") }

	m, cmd := submit(t, m, "a keynote")
	m = run(t, m, cmd)
	if !strings.Contains(m.statusMsg, "no api key") {
		t.Errorf("status = %q", m.statusMsg)
	}
	if len(st.Sessions()) != 0 {
		t.Error("failed draft stored sessions")
	}
}

func TestPromptReview(t *testing.T) {
	m, _, _ := newTestModel(t, sess("a", "loc-1", "09:00", "10:00", "Opening"))
	m.newClient = func() (llm.Client, error) { return fakeClient{reply: "A calm morning."}, nil }

	m, cmd := submit(t, m, "/review")
	msg := cmd()
	review, ok := msg.(commands.ReviewMsg)
	if !ok {
		t.Fatalf("msg = %T, want ReviewMsg", msg)
	}
	if review.Day != 1 {
		t.Errorf("review day = %d, want 1", review.Day)
	}
	m, _ = update(t, m, review)
	if m.modalType != ModalReview || m.reviewText == "" {
		t.Errorf("review modal not open")
	}
}
