// Package transfer moves the festival program in and out of files:
// CSV for spreadsheets and JSON or YAML backups.
package transfer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/javiermolinar/festplan/internal/session"
)

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrNoLocations   = errors.New("no locations to assign imported sessions to")
)

const bom = "\ufeff"

// CSVHeader is the column order written by ExportCSV.
var CSVHeader = []string{
	"Name", "Event Days", "Start Time", "End Time", "Description",
	"Format", "Location", "Speakers", "Language", "Tracks",
}

const (
	defaultImportStart = "10:00"
	defaultImportEnd   = "11:00"
	minImportFields    = 3
)

// CSVFileName returns the export file name, e.g. festival-programm-2026-2026-03-01.csv.
func CSVFileName(year int, now time.Time) string {
	return fmt.Sprintf("festival-programm-%d-%s.csv", year, now.Format(time.DateOnly))
}

// ExportCSV writes one row per session, prefixed with a UTF-8 byte order mark.
// Locations are written by name.
func ExportCSV(w io.Writer, sessions []session.Session, locations []session.Location) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, s := range sessions {
		row := []string{
			s.Title,
			strconv.Itoa(s.Day),
			s.StartTime,
			s.EndTime,
			s.Description,
			s.Format,
			session.LocationName(locations, s.LocationID),
			s.Speakers,
			s.LanguageOrDefault(),
			s.Tracks,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// columns maps header names to field indexes; -1 means absent.
type columns struct {
	name, start, end, location                       int
	day, description, format, speakers, lang, tracks int
}

func findColumns(header []string) columns {
	find := func(sub string) int {
		for i, h := range header {
			if strings.Contains(strings.ToLower(h), sub) {
				return i
			}
		}
		return -1
	}
	return columns{
		name:        find("name"),
		start:       find("start"),
		end:         find("end"),
		location:    find("location"),
		day:         find("day"),
		description: find("description"),
		format:      find("format"),
		speakers:    find("speaker"),
		lang:        find("language"),
		tracks:      find("track"),
	}
}

// ImportCSV parses sessions from r. Columns are matched by case-insensitive
// substring of the header, so "Start Time" and "start" both work.
// Start and end columns are required. Unknown locations fall back to the
// first location. The returned sessions are not yet part of any program.
func ImportCSV(r io.Reader, locations []session.Location, now time.Time) ([]session.Session, error) {
	if len(locations) == 0 {
		return nil, ErrNoLocations
	}

	br := bufio.NewReader(r)
	if head, err := br.Peek(len(bom)); err == nil && string(head) == bom {
		_, _ = br.Discard(len(bom))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.Trim(header[i], `"`))
	}

	cols := findColumns(header)
	if cols.start < 0 {
		return nil, fmt.Errorf("%w: start", ErrMissingColumn)
	}
	if cols.end < 0 {
		return nil, fmt.Errorf("%w: end", ErrMissingColumn)
	}

	stamp := now.UnixMilli()
	var sessions []session.Session
	for row := 1; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", row, err)
		}
		if len(record) < minImportFields {
			continue
		}

		field := func(idx int) string {
			if idx < 0 || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		loc, ok := session.FindLocationByName(locations, field(cols.location))
		if !ok {
			loc = locations[0]
		}

		title := field(cols.name)
		if title == "" {
			title = fmt.Sprintf("Session %d", row)
		}

		lang := field(cols.lang)
		if lang == "" {
			lang = session.DefaultLanguage
		}

		sessions = append(sessions, session.Session{
			ID:          fmt.Sprintf("session-%d-%d", stamp, row),
			Day:         parseDay(field(cols.day)),
			LocationID:  loc.ID,
			StartTime:   parseImportTime(field(cols.start), defaultImportStart),
			EndTime:     parseImportTime(field(cols.end), defaultImportEnd),
			Title:       title,
			Description: field(cols.description),
			Format:      field(cols.format),
			Speakers:    field(cols.speakers),
			Language:    lang,
			Tracks:      field(cols.tracks),
		})
	}
	return sessions, nil
}

// parseImportTime accepts "HH:MM" or an ISO datetime such as
// "2026-06-11T10:30:00", falling back to def.
func parseImportTime(v, def string) string {
	if m, err := session.ParseTime(v); err == nil {
		return session.MinutesToTime(m)
	}
	if len(v) >= 16 {
		if m, err := session.ParseTime(v[11:16]); err == nil {
			return session.MinutesToTime(m)
		}
	}
	return def
}

func parseDay(v string) int {
	// "Event Days" may hold a list like "1, 2"; the first day wins.
	if i := strings.IndexAny(v, ",;/ "); i >= 0 {
		v = v[:i]
	}
	day, err := strconv.Atoi(v)
	if err != nil || day < 1 {
		return 1
	}
	return day
}
