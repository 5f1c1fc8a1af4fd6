package ui

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/festplan/internal/db"
	"github.com/javiermolinar/festplan/internal/session"
	"github.com/javiermolinar/festplan/internal/store"
	"github.com/javiermolinar/festplan/internal/transfer"
)

func (a *App) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export the program as CSV",
		Long: `Write every session to a CSV file with the columns
Name, Event Days, Start Time, End Time, Description, Format, Location,
Speakers, Language, Tracks.

Without a path the file is named after the festival year and today's
date, e.g. festival-programm-2026-2026-03-01.csv.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			name := transfer.CSVFileName(a.config.Festival.Year, time.Now())
			if len(args) == 1 {
				name = args[0]
			}
			path, err := resolvePath(name)
			if err != nil {
				return err
			}

			snap := a.store.Snapshot()
			if err := transfer.ExportCSVFile(path, snap.Sessions, snap.Locations); err != nil {
				return fmt.Errorf("exporting: %w", err)
			}
			a.logger.Info("exported csv", "path", path, "sessions", len(snap.Sessions))

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d sessions to %s\n", len(snap.Sessions), path)
			return nil
		},
	}
}

func (a *App) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [path]",
		Short: "Import sessions from CSV or another festplan database",
		Long: `Append sessions to the program.

A .csv file is read with the export columns. Rows whose location is
unknown are put on the first location. A .db or .sqlite file is merged
from another festplan database: its sessions get new ids and locations
missing here are added.

Examples:
  festplan import program.csv
  festplan import ~/backup/festplan.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			sourcePath, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			info, err := os.Stat(sourcePath)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("source does not exist: %s", sourcePath)
				}
				return fmt.Errorf("checking source: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("source path is a directory: %s", sourcePath)
			}

			var count int
			switch strings.ToLower(filepath.Ext(sourcePath)) {
			case ".db", ".sqlite", ".sqlite3":
				destPath, err := resolvePath(a.config.Storage.DBPath)
				if err != nil {
					return err
				}
				if sourcePath == destPath {
					return fmt.Errorf("source database matches current database")
				}
				count, err = mergeProgram(context.Background(), a.store, sourcePath, a.config.Festival.Year, a.logger)
				if err != nil {
					return err
				}
			default:
				imported, err := transfer.ImportCSVFile(sourcePath, a.store.Locations(), time.Now())
				if err != nil {
					return fmt.Errorf("importing: %w", err)
				}
				count = a.store.Import(imported)
			}
			a.logger.Info("imported", "path", sourcePath, "sessions", count)

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d sessions from %s\n", count, sourcePath)
			return nil
		},
	}
}

// mergeProgram appends the program stored in another database for the same
// festival year. Locations are matched by name; unknown ones are added.
func mergeProgram(ctx context.Context, dest *store.Store, sourcePath string, year int, logger *slog.Logger) (int, error) {
	source, err := db.New(sourcePath)
	if err != nil {
		return 0, fmt.Errorf("opening source database: %w", err)
	}
	defer func() { _ = source.Close() }()

	keys := store.KeysForYear(year)
	stored, err := source.Keys(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading source database: %w", err)
	}
	if !slices.Contains(stored, keys.Sessions) {
		return 0, fmt.Errorf("%s has no %d program", sourcePath, year)
	}

	snap := store.NewPersister(source, keys, logger).Load(ctx)

	locationIDs := make(map[string]string, len(snap.Locations))
	for _, loc := range snap.Locations {
		if existing, ok := session.FindLocationByName(dest.Locations(), loc.Name); ok {
			locationIDs[loc.ID] = existing.ID
			continue
		}
		added, err := dest.AddLocation(session.Location{Name: loc.Name, Color: loc.Color})
		if err != nil {
			return 0, fmt.Errorf("adding location %q: %w", loc.Name, err)
		}
		locationIDs[loc.ID] = added.ID
	}

	batch := make([]session.Session, 0, len(snap.Sessions))
	for _, s := range snap.Sessions {
		id, ok := locationIDs[s.LocationID]
		if !ok {
			return 0, fmt.Errorf("session %q: %w: %s", s.Title, session.ErrUnknownLocation, s.LocationID)
		}
		s.ID = ""
		s.LocationID = id
		batch = append(batch, s)
	}

	added, err := dest.AddSessions(batch)
	if err != nil {
		return 0, fmt.Errorf("importing sessions: %w", err)
	}
	return len(added), nil
}

func (a *App) backupCmd() *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "backup [path]",
		Short: "Write sessions and locations to a JSON or YAML file",
		Long: `Write the whole program to a backup file that restore can read.

Without a path the file is named after today's date, e.g.
festival-backup-2026-03-01.json. With a path the format follows the
file extension.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			format, err := transfer.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			name := transfer.BackupFileName(time.Now(), format)
			if len(args) == 1 {
				name = args[0]
			}
			path, err := resolvePath(name)
			if err != nil {
				return err
			}

			snap := a.store.Snapshot()
			if err := transfer.WriteBackupFile(path, transfer.Backup{Sessions: snap.Sessions, Locations: snap.Locations}); err != nil {
				return fmt.Errorf("writing backup: %w", err)
			}
			a.logger.Info("backup written", "path", path, "sessions", len(snap.Sessions), "locations", len(snap.Locations))

			fmt.Fprintf(cmd.OutOrStdout(), "Backed up %d sessions and %d locations to %s\n",
				len(snap.Sessions), len(snap.Locations), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "json", "Backup format when no path is given: json or yaml")
	return cmd
}

func (a *App) restoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore [path]",
		Short: "Replace the program with a backup file",
		Long: `Replace all sessions, and the locations if the file has them, with the
contents of a backup. A file holding only a list of sessions keeps the
current locations.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			r, err := transfer.ReadBackupFile(path)
			if err != nil {
				return fmt.Errorf("restoring: %w", err)
			}
			a.store.Replace(r.Sessions, r.Locations)
			a.logger.Info("restored", "path", path, "sessions", len(r.Sessions), "locations_kept", r.Locations == nil)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Restored %d sessions from %s", len(r.Sessions), path)
			if r.Locations == nil {
				fmt.Fprint(out, " (locations kept)")
			}
			fmt.Fprintln(out)
			return nil
		},
	}
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
