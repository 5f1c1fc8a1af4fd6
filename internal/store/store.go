// Package store holds the in-memory festival program and notifies a hook on
// every change so it can be persisted.
package store

import (
	"fmt"
	"slices"
	"sync"

	"github.com/javiermolinar/festplan/internal/grid"
	"github.com/javiermolinar/festplan/internal/session"
)

// Change identifies which collection was modified.
type Change int

const (
	ChangeSessions Change = iota + 1
	ChangeLocations
	// ChangeAll is fired when both collections are swapped together.
	ChangeAll
)

// String returns the collection name.
func (c Change) String() string {
	switch c {
	case ChangeSessions:
		return "sessions"
	case ChangeLocations:
		return "locations"
	case ChangeAll:
		return "program"
	default:
		return "unknown"
	}
}

// Snapshot is a copy of the store contents handed to the change hook.
type Snapshot struct {
	Sessions  []session.Session  `json:"sessions" yaml:"sessions"`
	Locations []session.Location `json:"locations" yaml:"locations"`
}

// OnChangeFunc is called after each mutation, once per changed collection,
// while the store's write lock is held. It must not call back into the store.
type OnChangeFunc func(Change, Snapshot)

// Store is the single owner of the session and location collections.
type Store struct {
	mu        sync.RWMutex
	sessions  []session.Session
	locations []session.Location
	onChange  OnChangeFunc
}

// Option configures a Store.
type Option func(*Store)

// WithOnChange sets the change hook.
func WithOnChange(fn OnChangeFunc) Option {
	return func(s *Store) { s.onChange = fn }
}

// WithSnapshot seeds the store without firing the hook.
func WithSnapshot(snap Snapshot) Option {
	return func(s *Store) {
		s.sessions = slices.Clone(snap.Sessions)
		s.locations = slices.Clone(snap.Locations)
	}
}

// New creates a store. Without a snapshot it starts with the default locations.
func New(opts ...Option) *Store {
	s := &Store{locations: session.DefaultLocations()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetOnChange replaces the change hook.
func (s *Store) SetOnChange(fn OnChangeFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Sessions returns a copy of all sessions.
func (s *Store) Sessions() []session.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.sessions)
}

// Locations returns a copy of all locations.
func (s *Store) Locations() []session.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.locations)
}

// Snapshot returns a copy of both collections.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// SetSessions replaces all sessions.
func (s *Store) SetSessions(sessions []session.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = slices.Clone(sessions)
	s.notify(ChangeSessions)
}

// SetLocations replaces all locations.
func (s *Store) SetLocations(locations []session.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations = slices.Clone(locations)
	s.notify(ChangeLocations)
}

// Replace swaps both collections at once. A nil locations slice keeps the
// current locations.
func (s *Store) Replace(sessions []session.Session, locations []session.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = slices.Clone(sessions)
	if locations == nil {
		s.notify(ChangeSessions)
		return
	}
	s.locations = slices.Clone(locations)
	s.notify(ChangeAll)
}

// Session returns the session with the given id.
func (s *Store) Session(id string) (session.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := session.FindSession(s.sessions, id)
	if idx < 0 {
		return session.Session{}, fmt.Errorf("%w: %s", session.ErrSessionNotFound, id)
	}
	return s.sessions[idx], nil
}

// AddSession validates and appends a session. An empty id is generated.
func (s *Store) AddSession(sess session.Session) (session.Session, error) {
	added, err := s.AddSessions([]session.Session{sess})
	if err != nil {
		return session.Session{}, err
	}
	return added[0], nil
}

// AddSessions validates every session first and appends them all, or none.
func (s *Store) AddSessions(batch []session.Session) ([]session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]session.Session, 0, len(batch))
	for i, sess := range batch {
		if sess.ID == "" {
			sess.ID = session.NewSessionID()
		}
		if err := s.checkSessionLocked(sess); err != nil {
			return nil, fmt.Errorf("session %d (%s): %w", i+1, sess.Title, err)
		}
		if session.FindSession(s.sessions, sess.ID) >= 0 || session.FindSession(out, sess.ID) >= 0 {
			return nil, fmt.Errorf("session %d: duplicate id %s", i+1, sess.ID)
		}
		out = append(out, sess)
	}
	if len(out) == 0 {
		return out, nil
	}

	s.sessions = append(s.sessions, out...)
	s.notify(ChangeSessions)
	return out, nil
}

// Import appends sessions without validating them. Imported rows may hold
// degenerate intervals, which the grid draws with the fallback duration.
// It returns the number of sessions appended.
func (s *Store) Import(batch []session.Session) int {
	if len(batch) == 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append(s.sessions, batch...)
	s.notify(ChangeSessions)
	return len(batch)
}

// UpdateSession replaces the session with the same id.
func (s *Store) UpdateSession(sess session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := session.FindSession(s.sessions, sess.ID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", session.ErrSessionNotFound, sess.ID)
	}
	if err := s.checkSessionLocked(sess); err != nil {
		return err
	}
	s.sessions[idx] = sess
	s.notify(ChangeSessions)
	return nil
}

// DeleteSession removes the session with the given id.
func (s *Store) DeleteSession(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := session.FindSession(s.sessions, id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", session.ErrSessionNotFound, id)
	}
	s.sessions = slices.Delete(s.sessions, idx, idx+1)
	s.notify(ChangeSessions)
	return nil
}

// Move drops a session onto a grid cell, keeping its duration.
// Unknown sessions, unknown locations and malformed cells are a no-op.
func (s *Store) Move(id, cellID string) (session.Session, bool) {
	loc, slot, ok := grid.ParseCellID(cellID)
	if !ok {
		return session.Session{}, false
	}
	return s.Reschedule(id, loc, slot)
}

// Reschedule moves a session to a location and start time, keeping its duration.
func (s *Store) Reschedule(id, locationID, slot string) (session.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if session.FindLocation(s.locations, locationID) < 0 {
		return session.Session{}, false
	}
	next, ok := grid.Reschedule(s.sessions, id, locationID, slot)
	if !ok {
		return session.Session{}, false
	}
	s.sessions = next
	s.notify(ChangeSessions)
	return next[session.FindSession(next, id)], true
}

// AddLocation appends a location. An empty id is generated.
func (s *Store) AddLocation(loc session.Location) (session.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if loc.Name == "" {
		return session.Location{}, session.ErrEmptyLocationName
	}
	if loc.ID == "" {
		loc.ID = session.NewLocationID()
	}
	if loc.Color == "" {
		loc.Color = session.DefaultLocationColor
	}
	if session.FindLocation(s.locations, loc.ID) >= 0 {
		return session.Location{}, fmt.Errorf("location %s already exists", loc.ID)
	}
	s.locations = append(s.locations, loc)
	s.notify(ChangeLocations)
	return loc, nil
}

// UpdateLocation replaces the location with the same id.
func (s *Store) UpdateLocation(loc session.Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if loc.Name == "" {
		return session.ErrEmptyLocationName
	}
	idx := session.FindLocation(s.locations, loc.ID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", session.ErrLocationNotFound, loc.ID)
	}
	s.locations[idx] = loc
	s.notify(ChangeLocations)
	return nil
}

// DeleteLocation removes a location together with all of its sessions.
// It returns the number of sessions removed.
func (s *Store) DeleteLocation(id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := session.FindLocation(s.locations, id)
	if idx < 0 {
		return 0, fmt.Errorf("%w: %s", session.ErrLocationNotFound, id)
	}
	s.locations = slices.Delete(s.locations, idx, idx+1)
	s.notify(ChangeLocations)

	before := len(s.sessions)
	s.sessions = slices.DeleteFunc(s.sessions, func(sess session.Session) bool {
		return sess.LocationID == id
	})
	removed := before - len(s.sessions)
	if removed > 0 {
		s.notify(ChangeSessions)
	}
	return removed, nil
}

func (s *Store) checkSessionLocked(sess session.Session) error {
	if err := sess.Validate(); err != nil {
		return err
	}
	if session.FindLocation(s.locations, sess.LocationID) < 0 {
		return fmt.Errorf("%w: %s", session.ErrUnknownLocation, sess.LocationID)
	}
	return nil
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Sessions:  slices.Clone(s.sessions),
		Locations: slices.Clone(s.locations),
	}
}

func (s *Store) notify(c Change) {
	if s.onChange == nil {
		return
	}
	s.onChange(c, s.snapshotLocked())
}
