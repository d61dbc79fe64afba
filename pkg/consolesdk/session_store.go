package consolesdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// SessionStore holds the current session record in a single durable slot: an
// in-memory copy plus a JSON file that survives restarts. Writes update both
// inside one critical section so the two can never diverge within one
// operation. An empty record means anonymous.
type SessionStore struct {
	mu      sync.Mutex
	path    string
	current User
	nextSub int
	subs    map[int]func(User)
}

// NewSessionStore opens (or creates) the slot at path. An existing file is
// read once at startup; content is trusted as-is, matching whatever the last
// successful remote call wrote.
func NewSessionStore(path string) (*SessionStore, error) {
	s := &SessionStore{
		path: path,
		subs: make(map[int]func(User)),
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session slot: %w", err)
	}
	if err := json.Unmarshal(raw, &s.current); err != nil {
		return nil, fmt.Errorf("failed to parse session slot: %w", err)
	}
	return s, nil
}

// Get returns the current session record. A zero User means anonymous.
func (s *SessionStore) Get() User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Set overwrites the session wholesale, persists it, and notifies
// subscribers. Sessions are never field-patched.
func (s *SessionStore) Set(user User) error {
	s.mu.Lock()
	if err := s.persist(user); err != nil {
		s.mu.Unlock()
		return err
	}
	s.current = user
	subs := s.snapshotSubs()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(user)
	}
	return nil
}

// Clear empties the slot, returning the store to anonymous.
func (s *SessionStore) Clear() error {
	return s.Set(User{})
}

// Subscribe registers a callback invoked after every Set. The returned
// function cancels the subscription.
func (s *SessionStore) Subscribe(fn func(User)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// persist writes the record to a temp file and renames it over the slot, so
// a crash mid-write never leaves a torn file. Caller holds the lock.
func (s *SessionStore) persist(user User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write session slot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace session slot: %w", err)
	}
	return nil
}

func (s *SessionStore) snapshotSubs() []func(User) {
	subs := make([]func(User), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs
}
