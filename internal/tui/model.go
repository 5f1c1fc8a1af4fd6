// Package tui provides the terminal user interface for festplan.
package tui

import (
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/festplan/internal/config"
	"github.com/javiermolinar/festplan/internal/drafter"
	"github.com/javiermolinar/festplan/internal/grid"
	"github.com/javiermolinar/festplan/internal/session"
	"github.com/javiermolinar/festplan/internal/store"
	"github.com/javiermolinar/festplan/internal/tui/commands"
	"github.com/javiermolinar/festplan/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeMove        // Dragging a session to another cell
	ModePrompt
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone          ModalType = iota
	ModalSessionForm             // New or edited session
	ModalSessionDetail           // View existing session
	ModalConfirmDelete
	ModalDraftResult // LLM draft waiting for accept/modify/cancel
	ModalReview      // LLM review of a day
)

type viewKind int

const (
	viewGrid viewKind = iota
	viewList
)

// Position represents a cursor position in the grid.
type Position struct {
	Loc  int // Index into the location list
	Slot int // Row index into the time slots of the current zoom
	Pick int // Which of the sessions starting in the cell is selected
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	store     *store.Store
	config    *config.Config
	logger    *slog.Logger
	now       func() time.Time
	copy      func(string) error
	newClient commands.ClientFactory

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// State
	day        int // Festival day number
	zoom       int // Minutes per row
	view       viewKind
	cursor     Position
	listCursor int
	mode       Mode

	// Move mode
	drag grid.Drag

	// Modal state
	modalType    ModalType
	modalSession *session.Session // Session being viewed, edited or deleted
	form         sessionForm

	// Drafting state
	drafter  *drafter.Drafter
	draft    *drafter.Result
	amending bool // Next prompt submit is feedback on the draft

	// Review state
	reviewDay  int
	reviewText string

	// Components
	prompt textinput.Model

	// Terminal dimensions
	width        int
	height       int
	scrollOffset int

	// Messages
	statusMsg  string    // Temporary status/error message
	statusTime time.Time // When to clear message

	// Error state
	err error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithClock overrides the clock used for file names and imported ids.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) { m.now = now }
}

// WithClipboard overrides the clipboard writer.
func WithClipboard(fn func(string) error) ModelOption {
	return func(m *Model) { m.copy = fn }
}

// WithClientFactory overrides how LLM clients are created.
func WithClientFactory(f commands.ClientFactory) ModelOption {
	return func(m *Model) { m.newClient = f }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) ModelOption {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a new TUI model.
func New(st *store.Store, cfg *config.Config, opts ...ModelOption) *Model {
	if st == nil {
		st = store.New()
	}

	// Load theme from config; a nil theme makes the palette use the default
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t = nil
	}
	styles := NewStyles(t)

	ti := textinput.New()
	ti.Placeholder = "/plan a keynote on day 1 at 10:00 ..."
	ti.Prompt = ""

	zoom := cfg.Grid.Zoom
	if zoom <= 0 {
		zoom = grid.DefaultZoom
	}
	day := 1
	if days := cfg.DayNumbers(); len(days) > 0 {
		day = days[0]
	}

	m := &Model{
		store:     st,
		config:    cfg,
		logger:    config.DiscardLogger(),
		now:       time.Now,
		copy:      clipboard.WriteAll,
		newClient: commands.ConfigClientFactory(cfg),
		theme:     t,
		styles:    styles,
		day:       day,
		zoom:      zoom,
		mode:      ModeNormal,
		prompt:    ti,
		form:      newSessionForm(styles),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Run starts the TUI.
func Run(st *store.Store, cfg *config.Config, logger *slog.Logger) error {
	return RunWithDebug(st, cfg, logger, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(st *store.Store, cfg *config.Config, logger *slog.Logger, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	model := New(st, cfg, WithLogger(logger))
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
