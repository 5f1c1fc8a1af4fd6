package transfer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/javiermolinar/festplan/internal/session"
)

func sampleBackup() Backup {
	return Backup{
		Sessions: []session.Session{
			{ID: "s1", Day: 1, LocationID: "loc-1", StartTime: "10:00", EndTime: "11:00", Title: "Opening", Speakers: "Ada"},
			{ID: "s2", Day: 2, LocationID: "loc-2", StartTime: "13:30", EndTime: "15:00", Title: "Workshop", Format: "Workshop"},
		},
		Locations: session.DefaultLocations(),
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"json", FormatJSON, false},
		{"YAML", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"backup.json":     FormatJSON,
		"backup.YAML":     FormatYAML,
		"dir/backup.yml":  FormatYAML,
		"no-extension":    FormatJSON,
		"festival.backup": FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestBackupFileName(t *testing.T) {
	if got := BackupFileName(fixedNow, FormatJSON); got != "festival-backup-2026-03-01.json" {
		t.Errorf("got %q", got)
	}
	if got := BackupFileName(fixedNow, FormatYAML); got != "festival-backup-2026-03-01.yaml" {
		t.Errorf("got %q", got)
	}
}

func TestWriteBackup_JSONIndent(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBackup(&buf, Backup{}, FormatJSON); err != nil {
		t.Fatalf("WriteBackup failed: %v", err)
	}
	want := "{\n  \"sessions\": [],\n  \"locations\": []\n}\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestBackupRoundTrip(t *testing.T) {
	for _, f := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(f), func(t *testing.T) {
			b := sampleBackup()

			var buf bytes.Buffer
			if err := WriteBackup(&buf, b, f); err != nil {
				t.Fatalf("WriteBackup failed: %v", err)
			}
			got, err := ReadBackup(buf.Bytes(), f)
			if err != nil {
				t.Fatalf("ReadBackup failed: %v", err)
			}

			if len(got.Sessions) != len(b.Sessions) || len(got.Locations) != len(b.Locations) {
				t.Fatalf("got %d sessions and %d locations", len(got.Sessions), len(got.Locations))
			}
			for i := range b.Sessions {
				if got.Sessions[i] != b.Sessions[i] {
					t.Errorf("session %d: got %+v, want %+v", i, got.Sessions[i], b.Sessions[i])
				}
			}
			for i := range b.Locations {
				if got.Locations[i] != b.Locations[i] {
					t.Errorf("location %d: got %+v, want %+v", i, got.Locations[i], b.Locations[i])
				}
			}
		})
	}
}

func TestReadBackup_BareSessionList(t *testing.T) {
	tests := []struct {
		name string
		data string
		f    Format
	}{
		{"json", `[{"id":"s1","day":1,"locationId":"loc-1","startTime":"10:00","endTime":"11:00","title":"A"}]`, FormatJSON},
		{"yaml", "- id: s1\n  day: 1\n  locationId: loc-1\n  startTime: \"10:00\"\n  endTime: \"11:00\"\n  title: A\n", FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadBackup([]byte(tt.data), tt.f)
			if err != nil {
				t.Fatalf("ReadBackup failed: %v", err)
			}
			if got.Locations != nil {
				t.Error("a bare list must not replace locations")
			}
			if len(got.Sessions) != 1 || got.Sessions[0].StartTime != "10:00" {
				t.Errorf("unexpected sessions %+v", got.Sessions)
			}
		})
	}
}

func TestReadBackup_Errors(t *testing.T) {
	tests := []struct {
		name         string
		data         string
		f            Format
		unrecognized bool
	}{
		{"malformed json", `{"sessions": [`, FormatJSON, false},
		{"json missing locations", `{"sessions": []}`, FormatJSON, true},
		{"json scalar", `42`, FormatJSON, false},
		{"empty", "  ", FormatJSON, true},
		{"yaml missing sessions", "locations: []\n", FormatYAML, true},
		{"yaml scalar", "hello\n", FormatYAML, true},
		{"malformed yaml", "sessions: [\n", FormatYAML, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadBackup([]byte(tt.data), tt.f)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.unrecognized && !errors.Is(err, ErrUnrecognizedBackup) {
				t.Errorf("expected ErrUnrecognizedBackup, got %v", err)
			}
		})
	}
}

func TestWriteBackup_YAMLKeys(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBackup(&buf, sampleBackup(), FormatYAML); err != nil {
		t.Fatalf("WriteBackup failed: %v", err)
	}
	out := buf.String()
	for _, key := range []string{"sessions:", "locations:", "locationId: loc-1", "title: Opening"} {
		if !strings.Contains(out, key) {
			t.Errorf("expected %q in output:\n%s", key, out)
		}
	}
}
