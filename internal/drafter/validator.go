package drafter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/javiermolinar/festplan/internal/llm"
	"github.com/javiermolinar/festplan/internal/session"
)

// ValidationError is a single problem with a drafted session.
type ValidationError struct {
	SessionIndex int    // index in the drafted slice
	Field        string // "title", "day", "location", "start_time", "end_time"
	Message      string
}

// String returns a formatted error message.
func (e ValidationError) String() string {
	return fmt.Sprintf("Session %d: %s - %s", e.SessionIndex, e.Field, e.Message)
}

// ValidationResult is the outcome of validating a draft. Clashes are
// informational: the grid allows parallel sessions at one location.
type ValidationResult struct {
	Valid   bool
	Errors  []ValidationError
	Clashes []string
}

// FormatErrors renders the errors as feedback for the next LLM attempt.
func (r ValidationResult) FormatErrors() string {
	if len(r.Errors) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Your response had these errors:\n")
	for _, e := range r.Errors {
		fmt.Fprintf(&sb, "- %s\n", e)
	}
	sb.WriteString("\nPlease correct these issues and respond again with valid JSON.")
	return sb.String()
}

// Validator checks drafted sessions against the festival configuration.
type Validator struct {
	days      []int
	dayStart  int
	dayEnd    int
	locations []session.Location
	existing  []session.Session
}

// NewValidator creates a validator for the given days, grid bounds and
// locations. Existing sessions are only used to report clashes.
func NewValidator(days []int, dayStart, dayEnd string, locations []session.Location, existing []session.Session) *Validator {
	return &Validator{
		days:      days,
		dayStart:  session.TimeToMinutes(dayStart),
		dayEnd:    session.TimeToMinutes(dayEnd),
		locations: locations,
		existing:  existing,
	}
}

// Validate checks every drafted session:
// - title is not empty
// - day is a festival day
// - location names a known location
// - start and end are HH:MM, end after start
// - the session lies within the grid hours
func (v *Validator) Validate(drafted []llm.DraftedSession) ValidationResult {
	result := ValidationResult{}
	var placed []session.Session

	for i, d := range drafted {
		errs := v.check(i, d)
		result.Errors = append(result.Errors, errs...)
		if len(errs) > 0 {
			continue
		}

		loc, _ := session.ResolveLocation(v.locations, d.Location)
		s := session.Session{
			ID:         fmt.Sprintf("draft-%d", i),
			Day:        d.Day,
			LocationID: loc.ID,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			Title:      d.Title,
		}
		result.Clashes = append(result.Clashes, v.clashes(s, loc.Name, placed)...)
		placed = append(placed, s)
	}

	result.Valid = len(result.Errors) == 0
	return result
}

func (v *Validator) check(i int, d llm.DraftedSession) []ValidationError {
	var errs []ValidationError
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{SessionIndex: i, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(d.Title) == "" {
		add("title", "must not be empty")
	}
	if !slices.Contains(v.days, d.Day) {
		add("day", "%d is not a festival day (use one of %v)", d.Day, v.days)
	}
	if _, ok := session.ResolveLocation(v.locations, d.Location); !ok {
		add("location", "'%s' is not a known location", d.Location)
	}

	start, startErr := session.ParseTime(d.StartTime)
	if startErr != nil {
		add("start_time", "'%s' is invalid (must be HH:MM format, 00:00-23:59)", d.StartTime)
	}
	end, endErr := session.ParseTime(d.EndTime)
	if endErr != nil {
		add("end_time", "'%s' is invalid (must be HH:MM format, 00:00-23:59)", d.EndTime)
	}
	if startErr != nil || endErr != nil {
		return errs
	}

	if end <= start {
		add("end_time", "end time '%s' must be after start time '%s'", d.EndTime, d.StartTime)
	}
	if start < v.dayStart {
		add("start_time", "'%s' is before the grid opens at %s", d.StartTime, session.MinutesToTime(v.dayStart))
	}
	if end > v.dayEnd {
		add("end_time", "'%s' is after the grid closes at %s", d.EndTime, session.MinutesToTime(v.dayEnd))
	}
	return errs
}

func (v *Validator) clashes(s session.Session, locName string, placed []session.Session) []string {
	var out []string
	for _, o := range v.existing {
		if o.Day == s.Day && s.Overlaps(o) {
			out = append(out, fmt.Sprintf("'%s' overlaps existing '%s' (%s-%s) at %s on day %d",
				s.Title, o.Title, o.StartTime, o.EndTime, locName, s.Day))
		}
	}
	for _, o := range placed {
		if o.Day == s.Day && s.Overlaps(o) {
			out = append(out, fmt.Sprintf("'%s' overlaps drafted '%s' (%s-%s) at %s on day %d",
				s.Title, o.Title, o.StartTime, o.EndTime, locName, s.Day))
		}
	}
	return out
}
