// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/festplan/internal/config"
	"github.com/javiermolinar/festplan/internal/drafter"
	"github.com/javiermolinar/festplan/internal/llm"
	"github.com/javiermolinar/festplan/internal/session"
	"github.com/javiermolinar/festplan/internal/store"
	"github.com/javiermolinar/festplan/internal/transfer"
)

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// DraftResultMsg is sent when the LLM returns a validated draft.
type DraftResultMsg struct {
	Result  *drafter.Result
	Drafter *drafter.Drafter
}

// DraftSavedMsg is sent when an accepted draft was added to the program.
type DraftSavedMsg struct {
	Count int
}

// ReviewMsg is sent when the LLM review of a day is ready.
type ReviewMsg struct {
	Day  int
	Text string
}

// ImportedMsg is sent after CSV rows were appended to the program.
type ImportedMsg struct {
	Path  string
	Count int
}

// ExportedMsg is sent after the program was written to a file.
type ExportedMsg struct {
	Path  string
	Count int
}

// RestoredMsg is sent after a backup replaced the program.
type RestoredMsg struct {
	Path          string
	Sessions      int
	LocationsKept bool
}

// ClientFactory creates the LLM client used for drafting and reviews.
type ClientFactory func() (llm.Client, error)

// ConfigClientFactory builds clients from the [llm] config section.
func ConfigClientFactory(cfg *config.Config) ClientFactory {
	return func() (llm.Client, error) {
		return llm.NewClient(cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.BaseURL)
	}
}

// ClearStatusAfter clears the status line once d has passed.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

// Draft creates a command that drafts sessions from natural language input.
func Draft(input string, cfg *config.Config, program drafter.Program, newClient ClientFactory) tea.Cmd {
	return func() tea.Msg {
		client, err := newClient()
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("creating LLM client: %w", err)}
		}

		d := drafter.New(client, cfg, program)
		result, err := d.DraftWithRetry(context.Background(), input, drafter.DefaultMaxRetries)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("drafting: %w", err)}
		}

		return DraftResultMsg{Result: result, Drafter: d}
	}
}

// ContinueDraft sends feedback on the previous draft and drafts again.
func ContinueDraft(d *drafter.Drafter, feedback string) tea.Cmd {
	return func() tea.Msg {
		if d == nil {
			return ErrMsg{Err: drafter.ErrNoConversation}
		}
		result, err := d.Continue(context.Background(), feedback, drafter.DefaultMaxRetries)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("drafting: %w", err)}
		}
		return DraftResultMsg{Result: result, Drafter: d}
	}
}

// SaveDraft creates a command to save the current draft.
func SaveDraft(d *drafter.Drafter, result *drafter.Result) tea.Cmd {
	return func() tea.Msg {
		if d == nil || result == nil {
			return ErrMsg{Err: fmt.Errorf("no draft to save")}
		}

		saved, err := d.Save(context.Background(), result)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("saving draft: %w", err)}
		}

		return DraftSavedMsg{Count: len(saved)}
	}
}

// Review asks the LLM for an editorial review of one festival day.
func Review(day int, cfg *config.Config, st *store.Store, newClient ClientFactory) tea.Cmd {
	return func() tea.Msg {
		client, err := newClient()
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("creating LLM client: %w", err)}
		}

		text, err := llm.NewReviewer(client).ReviewDay(context.Background(), llm.ReviewRequest{
			DayLabel:  cfg.DayLabel(day),
			DayStart:  cfg.Grid.DayStart,
			DayEnd:    cfg.Grid.DayEnd,
			Sessions:  session.ForDay(st.Sessions(), day),
			Locations: st.Locations(),
		})
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("reviewing: %w", err)}
		}
		return ReviewMsg{Day: day, Text: text}
	}
}

// ExportCSV writes the whole program to a CSV file.
func ExportCSV(path string, st *store.Store) tea.Cmd {
	return func() tea.Msg {
		snap := st.Snapshot()
		if err := transfer.ExportCSVFile(path, snap.Sessions, snap.Locations); err != nil {
			return ErrMsg{Err: fmt.Errorf("exporting: %w", err)}
		}
		return ExportedMsg{Path: path, Count: len(snap.Sessions)}
	}
}

// ImportCSV appends the sessions of a CSV file to the program.
// A malformed file leaves the program unchanged.
func ImportCSV(path string, st *store.Store, now time.Time) tea.Cmd {
	return func() tea.Msg {
		imported, err := transfer.ImportCSVFile(path, st.Locations(), now)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("importing: %w", err)}
		}
		return ImportedMsg{Path: path, Count: st.Import(imported)}
	}
}

// Backup writes sessions and locations to a JSON or YAML file.
func Backup(path string, st *store.Store) tea.Cmd {
	return func() tea.Msg {
		snap := st.Snapshot()
		if err := transfer.WriteBackupFile(path, transfer.Backup{Sessions: snap.Sessions, Locations: snap.Locations}); err != nil {
			return ErrMsg{Err: fmt.Errorf("writing backup: %w", err)}
		}
		return ExportedMsg{Path: path, Count: len(snap.Sessions)}
	}
}

// Restore replaces the program with the contents of a backup file.
// A bare session list keeps the current locations.
func Restore(path string, st *store.Store) tea.Cmd {
	return func() tea.Msg {
		r, err := transfer.ReadBackupFile(path)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("restoring: %w", err)}
		}
		st.Replace(r.Sessions, r.Locations)
		return RestoredMsg{Path: path, Sessions: len(r.Sessions), LocationsKept: r.Locations == nil}
	}
}
