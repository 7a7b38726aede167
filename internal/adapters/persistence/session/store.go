// Package session is the server-side stand-in for the browser tab's
// session storage: a per-session key/value cache of string-serialized JSON
// documents shared by the profile components.
package session

import (
	"encoding/json"
	"sync"
	"time"
)

// Well-known session keys.
const (
	KeyProfileCompletion = "profile_completion"
	KeyDeputationDetails = "central_deputation_details"
	KeyProfileData       = "profileData"
)

type entry struct {
	values  map[string]string
	touched time.Time
}

// Store keeps session-scoped state in memory. Values never survive a process
// restart, matching the session (not cross-device) persistence contract.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*entry)}
}

// Get returns the raw string value for a key in one session.
func (s *Store) Get(sessionID, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[sessionID]
	if !ok {
		return "", false
	}
	v, ok := e.values[key]
	return v, ok
}

// Set stores a raw string value for a key in one session.
func (s *Store) Set(sessionID, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[sessionID]
	if !ok {
		e = &entry{values: make(map[string]string)}
		s.sessions[sessionID] = e
	}
	e.values[key] = value
	e.touched = time.Now()
}

// SetJSON marshals v and stores it under key.
func (s *Store) SetJSON(sessionID, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.Set(sessionID, key, string(raw))
	return nil
}

// GetJSON unmarshals the stored value for key into out. It returns false
// when the key is absent.
func (s *Store) GetJSON(sessionID, key string, out interface{}) (bool, error) {
	raw, ok := s.Get(sessionID, key)
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal([]byte(raw), out)
}

// Delete removes one key from a session.
func (s *Store) Delete(sessionID, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.sessions[sessionID]; ok {
		delete(e.values, key)
		e.touched = time.Now()
	}
}

// Reset drops a whole session (logout / profile switch).
func (s *Store) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// PruneIdle drops sessions untouched for longer than maxIdle and returns how
// many were removed.
func (s *Store) PruneIdle(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-maxIdle)
	removed := 0
	for id, e := range s.sessions {
		if e.touched.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}
