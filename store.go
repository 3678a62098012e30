package tripbook

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// storeFile is the single keyed entry holding every trip plus the active
// pointer, rewritten in full on every change.
const storeFile = "trips.json"

// legacyFile is the pre-collection single-trip entry, read once as a
// fallback when the store file does not exist yet.
const legacyFile = "trip.json"

// Store owns the collection of trips and the active-trip pointer. All
// nested state belongs to the trips themselves; the store only reads
// documents out and replaces them wholesale.
type Store struct {
	dir string

	Active string `json:"active,omitempty"`
	Trips  []Trip `json:"trips"`
}

// OpenStore loads the store from dir. A missing store file yields an empty
// store, after a one-time attempt to migrate a legacy single-trip file.
func OpenStore(dir string) (*Store, error) {
	s := &Store{dir: dir}

	data, err := os.ReadFile(filepath.Join(dir, storeFile))
	if errors.Is(err, fs.ErrNotExist) {
		return s.loadLegacy()
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open store in %q: %w", dir, err)
	}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("cannot parse store file in %q: %w", dir, err)
	}
	return s, nil
}

// loadLegacy reads the single-trip legacy entry if present. Its trip becomes
// the active one; the next Save writes the collection format.
func (s *Store) loadLegacy() (*Store, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, legacyFile))
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open legacy trip file in %q: %w", s.dir, err)
	}
	var t Trip
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("cannot parse legacy trip file in %q: %w", s.dir, err)
	}
	Log.Infow("migrating legacy single-trip file", "trip", t.ID)
	s.Trips = []Trip{t}
	s.Active = t.ID
	return s, nil
}

// Save rewrites the whole store file.
func (s *Store) Save() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("cannot create store directory %q: %w", s.dir, err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal store: %w", err)
	}
	file := filepath.Join(s.dir, storeFile)
	if err := os.WriteFile(file, data, 0644); err != nil {
		return fmt.Errorf("cannot write store file %q: %w", file, err)
	}
	return nil
}

// ActiveTrip returns a copy of the currently selected trip.
func (s *Store) ActiveTrip() (Trip, bool) {
	return s.Get(s.Active)
}

// Get returns a copy of the trip with the given identity.
func (s *Store) Get(id string) (Trip, bool) {
	for _, t := range s.Trips {
		if t.ID == id {
			return t.Clone(), true
		}
	}
	return Trip{}, false
}

// Find resolves a trip by identity prefix or case-insensitive destination
// substring. It fails when the query is ambiguous.
func (s *Store) Find(query string) (Trip, error) {
	var matches []Trip
	q := strings.ToLower(query)
	for _, t := range s.Trips {
		if strings.HasPrefix(t.ID, query) ||
			strings.Contains(strings.ToLower(t.Destination), q) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return Trip{}, fmt.Errorf("no trip matches %q", query)
	case 1:
		return matches[0].Clone(), nil
	default:
		return Trip{}, fmt.Errorf("multiple trips match %q", query)
	}
}

// Add inserts a trip and selects it as active.
func (s *Store) Add(t Trip) {
	s.Trips = append(s.Trips, t)
	s.Active = t.ID
}

// Replace swaps the stored document with the same identity for the given
// one. This is the only mutation path into a stored trip.
func (s *Store) Replace(t Trip) error {
	for i, existing := range s.Trips {
		if existing.ID == t.ID {
			s.Trips[i] = t
			return nil
		}
	}
	return fmt.Errorf("trip %q not in store", t.ID)
}

// Select makes the trip with the given identity the active one.
func (s *Store) Select(id string) error {
	for _, t := range s.Trips {
		if t.ID == id {
			s.Active = id
			return nil
		}
	}
	return fmt.Errorf("trip %q not in store", id)
}

// Remove deletes a trip. Removing the active trip moves the pointer to the
// first remaining one.
func (s *Store) Remove(id string) error {
	for i, t := range s.Trips {
		if t.ID == id {
			s.Trips = append(s.Trips[:i], s.Trips[i+1:]...)
			if s.Active == id {
				s.Active = ""
				if len(s.Trips) > 0 {
					s.Active = s.Trips[0].ID
				}
			}
			return nil
		}
	}
	return fmt.Errorf("trip %q not in store", id)
}

// ImportShared decodes a share token and, on success, inserts the imported
// trip and selects it. A bad token is silently ignored, mirroring the
// fall-through load behavior of share links.
func (s *Store) ImportShared(token string) (Trip, bool) {
	t, ok := DecodeShareToken(token)
	if !ok {
		return Trip{}, false
	}
	s.Add(t)
	return t, true
}
