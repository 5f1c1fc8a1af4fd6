package session

import (
	"strings"

	"github.com/google/uuid"
)

// DefaultLocationColor is used when a location is created without a color.
const DefaultLocationColor = "#6366f1"

// Location is a named stage or room that sessions are assigned to.
type Location struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// DefaultLocations returns the locations a fresh program starts with.
func DefaultLocations() []Location {
	return []Location{
		{ID: "loc-1", Name: "Hauptbühne", Color: "#6366f1"},
		{ID: "loc-2", Name: "Workshop-Raum 1", Color: "#10b981"},
		{ID: "loc-3", Name: "Experience Area", Color: "#f59e0b"},
	}
}

// NewLocation creates a location with a generated id.
func NewLocation(name, color string) (*Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyLocationName
	}
	if color == "" {
		color = DefaultLocationColor
	}
	return &Location{ID: NewLocationID(), Name: name, Color: color}, nil
}

// NewSessionID returns a fresh session id.
func NewSessionID() string {
	return "session-" + uuid.NewString()
}

// NewLocationID returns a fresh location id.
func NewLocationID() string {
	return "loc-" + uuid.NewString()
}
