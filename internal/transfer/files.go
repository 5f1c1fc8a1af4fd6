package transfer

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/javiermolinar/festplan/internal/session"
)

// ExportCSVFile writes the program as CSV to path.
func ExportCSVFile(path string, sessions []session.Session, locations []session.Location) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return ExportCSV(f, sessions, locations)
}

// ImportCSVFile reads sessions from the CSV file at path.
func ImportCSVFile(path string, locations []session.Location, now time.Time) ([]session.Session, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ImportCSV(f, locations, now)
}

// WriteBackupFile writes b to path in the format implied by its extension.
func WriteBackupFile(path string, b Backup) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return WriteBackup(f, b, FormatFromPath(path))
}

// ReadBackupFile reads the backup at path in the format implied by its extension.
func ReadBackupFile(path string) (Restore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Restore{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return ReadBackup(data, FormatFromPath(path))
}
