// Package ui implements the festplan command line.
package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/festplan/internal/config"
	"github.com/javiermolinar/festplan/internal/db"
	"github.com/javiermolinar/festplan/internal/llm"
	"github.com/javiermolinar/festplan/internal/store"
	"github.com/javiermolinar/festplan/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// ClientFactory creates an LLM client for the given model.
type ClientFactory func(model string) (llm.Client, error)

// App holds the CLI application state.
type App struct {
	config    *config.Config
	kv        *db.SQLite
	store     *store.Store
	persister *store.Persister
	logger    *slog.Logger
	logFile   *os.File
	newClient ClientFactory
	root      *cobra.Command
	debug     bool // Enable debug logging
	noColor   bool
}

// NewApp creates the CLI application. A nil store is opened lazily from the
// configured database the first time a command needs it.
func NewApp(st *store.Store, cfg *config.Config) *App {
	a := &App{store: st, config: cfg, logger: config.DiscardLogger()}
	a.newClient = func(model string) (llm.Client, error) {
		return llm.NewClient(cfg.LLM.Provider, model, cfg.LLM.BaseURL)
	}

	a.root = &cobra.Command{
		Use:   "festplan",
		Short: "Plan a festival program on a time grid",
		Long: `Festplan plans a multi-day festival program.

Sessions are placed on a grid of time slots and locations. Sessions that
overlap at one location share the cell side by side, and can be moved to
another location or time while keeping their duration.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.noColor {
				DisableColor()
			}
			// The TUI owns the terminal, so it only logs to a file.
			var w io.Writer = cmd.ErrOrStderr()
			if cmd == a.root {
				w = io.Discard
			}
			return a.setupLogger(w)
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			return tui.RunWithDebug(a.store, a.config, a.logger, a.debug)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Write a JSON-lines event log to "+tui.DebugLogPath)
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.sessionCmd())
	a.root.AddCommand(a.locationCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.backupCmd())
	a.root.AddCommand(a.restoreCmd())
	a.root.AddCommand(a.layoutCmd())
	a.root.AddCommand(a.statsCmd())
	a.root.AddCommand(a.planCmd())
	a.root.AddCommand(a.reviewCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "festplan %s (commit: %s)\n", Version, Commit)
		},
	}
}

// setupLogger sends logs to the configured file, or to fallback.
func (a *App) setupLogger(fallback io.Writer) error {
	w := fallback
	if path := a.config.Log.File; path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		a.logFile = f
		w = f
	}
	a.logger = config.NewLogger(a.config.Log, w)
	return nil
}

// ensureStore opens the database and loads the program on first use.
// Every later change is written back through the persister hook.
func (a *App) ensureStore() error {
	if a.store != nil {
		return nil
	}

	kv, err := db.New(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.kv = kv
	a.persister = store.NewPersister(kv, store.KeysForYear(a.config.Festival.Year), a.logger)

	snap := a.persister.Load(context.Background())
	a.store = store.New(store.WithSnapshot(snap), store.WithOnChange(a.persister.Hook()))
	a.logger.Debug("program loaded",
		"db", a.config.Storage.DBPath,
		"sessions", len(snap.Sessions),
		"locations", len(snap.Locations))
	return nil
}

// Close releases the database and the log file.
func (a *App) Close() error {
	var err error
	if a.kv != nil {
		err = a.kv.Close()
		a.kv = nil
	}
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
	return err
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}
