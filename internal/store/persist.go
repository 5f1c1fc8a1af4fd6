package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/javiermolinar/festplan/internal/session"
)

// KV is the durable key-value storage the program is mirrored into.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// BatchKV is a KV that can write several keys in one transaction.
type BatchKV interface {
	KV
	SetMany(ctx context.Context, values map[string]string) error
}

// Keys names the storage keys of the two collections.
type Keys struct {
	Sessions  string
	Locations string
}

// KeysForYear returns the keys used for a festival year,
// e.g. "festival-sessions-2026" and "festival-locations-2026".
func KeysForYear(year int) Keys {
	return Keys{
		Sessions:  fmt.Sprintf("festival-sessions-%d", year),
		Locations: fmt.Sprintf("festival-locations-%d", year),
	}
}

const persistTimeout = 5 * time.Second

// Persister mirrors store changes into a KV and rehydrates them at startup.
// Failures are logged and never returned to the store.
type Persister struct {
	kv     KV
	keys   Keys
	logger *slog.Logger
}

// NewPersister creates a persister writing to kv under keys.
func NewPersister(kv KV, keys Keys, logger *slog.Logger) *Persister {
	if logger == nil {
		logger = slog.Default()
	}
	return &Persister{kv: kv, keys: keys, logger: logger}
}

// Hook returns the OnChangeFunc that writes the changed collection.
func (p *Persister) Hook() OnChangeFunc {
	return func(c Change, snap Snapshot) {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := p.Save(ctx, c, snap); err != nil {
			p.logger.Error("persisting festival program",
				"collection", c.String(),
				"key", p.keyFor(c),
				"err", err,
			)
		}
	}
}

// Save writes one collection of the snapshot.
func (p *Persister) Save(ctx context.Context, c Change, snap Snapshot) error {
	var value any
	switch c {
	case ChangeSessions:
		value = nonNil(snap.Sessions)
	case ChangeLocations:
		value = nonNil(snap.Locations)
	case ChangeAll:
		return p.saveAll(ctx, snap)
	default:
		return fmt.Errorf("unknown change %d", c)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c, err)
	}
	if err := p.kv.Set(ctx, p.keyFor(c), string(data)); err != nil {
		return err
	}
	p.logger.Debug("persisted festival program", "collection", c.String(), "bytes", len(data))
	return nil
}

// Load reads both collections. Missing keys fall back to defaults: no
// sessions and the default locations. Unreadable values are logged and
// also fall back to defaults.
func (p *Persister) Load(ctx context.Context) Snapshot {
	snap := Snapshot{
		Sessions:  []session.Session{},
		Locations: session.DefaultLocations(),
	}

	var sessions []session.Session
	if p.read(ctx, p.keys.Sessions, &sessions) {
		snap.Sessions = sessions
	}
	var locations []session.Location
	if p.read(ctx, p.keys.Locations, &locations) {
		snap.Locations = locations
	}
	return snap
}

// saveAll writes both collections, atomically when the KV supports it.
func (p *Persister) saveAll(ctx context.Context, snap Snapshot) error {
	sessions, err := json.Marshal(nonNil(snap.Sessions))
	if err != nil {
		return fmt.Errorf("encoding sessions: %w", err)
	}
	locations, err := json.Marshal(nonNil(snap.Locations))
	if err != nil {
		return fmt.Errorf("encoding locations: %w", err)
	}

	if batch, ok := p.kv.(BatchKV); ok {
		return batch.SetMany(ctx, map[string]string{
			p.keys.Sessions:  string(sessions),
			p.keys.Locations: string(locations),
		})
	}
	if err := p.kv.Set(ctx, p.keys.Sessions, string(sessions)); err != nil {
		return err
	}
	return p.kv.Set(ctx, p.keys.Locations, string(locations))
}

func (p *Persister) read(ctx context.Context, key string, dst any) bool {
	raw, ok, err := p.kv.Get(ctx, key)
	if err != nil {
		p.logger.Error("reading festival program", "key", key, "err", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		p.logger.Error("decoding festival program", "key", key, "err", err)
		return false
	}
	return true
}

func (p *Persister) keyFor(c Change) string {
	switch c {
	case ChangeLocations:
		return p.keys.Locations
	case ChangeAll:
		return p.keys.Sessions + "," + p.keys.Locations
	default:
		return p.keys.Sessions
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
