// Package session defines the core domain types for festplan.
package session

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
var (
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format")
	ErrEndBeforeStart    = errors.New("end time must be after start time")
	ErrInvalidDay        = errors.New("day must be a positive number")
	ErrInvalidDuration   = errors.New("duration must be positive")
	ErrEmptyLocationName = errors.New("location name cannot be empty")
)

// Domain errors.
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrUnknownLocation  = errors.New("session references an unknown location")
)

// Formats offered when creating a session.
var Formats = []string{"Keynote", "Workshop", "Panel", "Performance", "Networking", "Pause"}

// Languages offered when creating a session.
var Languages = []string{"DE", "EN", "DE/EN"}

// DefaultLanguage is used when a session has no language set.
const DefaultLanguage = "DE"

// DurationOptions are the durations (minutes) offered by the session form.
var DurationOptions = []int{5, 10, 15, 20, 30, 45, 60, 75, 90, 105, 120, 150, 180, 240}

// Session is a scheduled program entry.
// StartTime and EndTime are "HH:MM"; the session occupies [StartTime, EndTime).
type Session struct {
	ID          string `json:"id" yaml:"id"`
	Day         int    `json:"day" yaml:"day"`
	LocationID  string `json:"locationId" yaml:"locationId"`
	StartTime   string `json:"startTime" yaml:"startTime"`
	EndTime     string `json:"endTime" yaml:"endTime"`
	Title       string `json:"title" yaml:"title"`
	Speakers    string `json:"speakers,omitempty" yaml:"speakers,omitempty"`
	Format      string `json:"format,omitempty" yaml:"format,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Language    string `json:"language,omitempty" yaml:"language,omitempty"`
	Tracks      string `json:"tracks,omitempty" yaml:"tracks,omitempty"`
}

// New creates a new Session with validation.
// The end time is derived from start and the duration in minutes.
func New(title, locationID string, day int, start string, duration int) (*Session, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if day <= 0 {
		return nil, ErrInvalidDay
	}
	startMin, err := ParseTime(start)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}
	if startMin+duration >= 24*60 {
		return nil, fmt.Errorf("session would end after midnight: %w", ErrEndBeforeStart)
	}

	return &Session{
		ID:         NewSessionID(),
		Day:        day,
		LocationID: locationID,
		StartTime:  start,
		EndTime:    MinutesToTime(startMin + duration),
		Title:      title,
		Language:   DefaultLanguage,
	}, nil
}

// Validate checks the fields the grid depends on.
func (s Session) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return ErrEmptyTitle
	}
	if s.Day <= 0 {
		return ErrInvalidDay
	}
	start, err := ParseTime(s.StartTime)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	end, err := ParseTime(s.EndTime)
	if err != nil {
		return fmt.Errorf("end: %w", err)
	}
	if end <= start {
		return ErrEndBeforeStart
	}
	return nil
}

// StartMinutes returns the start as minutes since midnight.
func (s Session) StartMinutes() int {
	return TimeToMinutes(s.StartTime)
}

// Duration returns the session length in minutes, with the fallback applied.
func (s Session) Duration() int {
	return DurationMinutes(s.StartTime, s.EndTime)
}

// Span returns the minutes the session occupies: its start, and the start
// plus Duration. A missing or reversed end therefore spans the fallback.
func (s Session) Span() (start, end int) {
	start = s.StartMinutes()
	return start, start + s.Duration()
}

// LanguageOrDefault returns the language, or DE when unset.
func (s Session) LanguageOrDefault() string {
	if s.Language == "" {
		return DefaultLanguage
	}
	return s.Language
}

// Overlaps reports whether two sessions share a location and intersect in time.
func (s Session) Overlaps(o Session) bool {
	if s.LocationID != o.LocationID {
		return false
	}
	sStart, sEnd := s.Span()
	oStart, oEnd := o.Span()
	return sStart < oEnd && oStart < sEnd
}

// String returns a one-line representation.
func (s Session) String() string {
	return fmt.Sprintf("%s-%s %s", s.StartTime, s.EndTime, s.Title)
}
