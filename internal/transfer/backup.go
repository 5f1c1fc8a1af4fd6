package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/festplan/internal/session"
)

// ErrUnrecognizedBackup is returned when a backup is neither a full
// document nor a bare session list.
var ErrUnrecognizedBackup = errors.New("unrecognized backup document")

// Format is a backup encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown backup format %q (use json or yaml)", s)
	}
}

// FormatFromPath picks the format from a file extension. Anything that is
// not .yaml or .yml is treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// BackupFileName returns e.g. festival-backup-2026-03-01.json.
func BackupFileName(now time.Time, f Format) string {
	return fmt.Sprintf("festival-backup-%s.%s", now.Format(time.DateOnly), f)
}

// Backup is the full program document.
type Backup struct {
	Sessions  []session.Session  `json:"sessions" yaml:"sessions"`
	Locations []session.Location `json:"locations" yaml:"locations"`
}

// Restore is what a backup file yields. Locations is nil when the file held
// only a session list, in which case existing locations are kept.
type Restore struct {
	Sessions  []session.Session
	Locations []session.Location
}

// WriteBackup encodes b with two-space indentation.
func WriteBackup(w io.Writer, b Backup, f Format) error {
	if b.Sessions == nil {
		b.Sessions = []session.Session{}
	}
	if b.Locations == nil {
		b.Locations = []session.Location{}
	}

	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(b); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown backup format %q", f)
	}
}

// ReadBackup decodes a backup. A document must hold both sessions and
// locations; a bare list is read as sessions only.
func ReadBackup(data []byte, f Format) (Restore, error) {
	switch f {
	case FormatJSON:
		return readJSON(data)
	case FormatYAML:
		return readYAML(data)
	default:
		return Restore{}, fmt.Errorf("unknown backup format %q", f)
	}
}

func readJSON(data []byte) (Restore, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Restore{}, fmt.Errorf("%w: empty input", ErrUnrecognizedBackup)
	}

	if trimmed[0] == '[' {
		var sessions []session.Session
		if err := json.Unmarshal(trimmed, &sessions); err != nil {
			return Restore{}, fmt.Errorf("decoding session list: %w", err)
		}
		return Restore{Sessions: nonNilSessions(sessions)}, nil
	}

	var doc struct {
		Sessions  *[]session.Session  `json:"sessions"`
		Locations *[]session.Location `json:"locations"`
	}
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return Restore{}, fmt.Errorf("decoding backup: %w", err)
	}
	if doc.Sessions == nil || doc.Locations == nil {
		return Restore{}, ErrUnrecognizedBackup
	}
	return Restore{Sessions: nonNilSessions(*doc.Sessions), Locations: nonNilLocations(*doc.Locations)}, nil
}

func readYAML(data []byte) (Restore, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Restore{}, fmt.Errorf("decoding backup: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return Restore{}, fmt.Errorf("%w: empty input", ErrUnrecognizedBackup)
	}

	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		var sessions []session.Session
		if err := node.Decode(&sessions); err != nil {
			return Restore{}, fmt.Errorf("decoding session list: %w", err)
		}
		return Restore{Sessions: nonNilSessions(sessions)}, nil
	case yaml.MappingNode:
		var doc struct {
			Sessions  *[]session.Session  `yaml:"sessions"`
			Locations *[]session.Location `yaml:"locations"`
		}
		if err := node.Decode(&doc); err != nil {
			return Restore{}, fmt.Errorf("decoding backup: %w", err)
		}
		if doc.Sessions == nil || doc.Locations == nil {
			return Restore{}, ErrUnrecognizedBackup
		}
		return Restore{Sessions: nonNilSessions(*doc.Sessions), Locations: nonNilLocations(*doc.Locations)}, nil
	default:
		return Restore{}, ErrUnrecognizedBackup
	}
}

func nonNilSessions(s []session.Session) []session.Session {
	if s == nil {
		return []session.Session{}
	}
	return s
}

func nonNilLocations(l []session.Location) []session.Location {
	if l == nil {
		return []session.Location{}
	}
	return l
}
