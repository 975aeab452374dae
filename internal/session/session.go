// Package session keeps the signed-in user's token and profile.
//
// A Store is created when a front end starts, read before every API call
// and cleared on logout or on the first unauthorized response. A Store
// opened with Open also persists its state to a file so a later process
// can restore the session.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"expense-dashboard/internal/models"
)

// State is a snapshot of the session.
type State struct {
	Token string       `json:"token"`
	User  *models.User `json:"user,omitempty"`
}

// SignedIn reports whether the state carries a token.
func (s State) SignedIn() bool {
	return s.Token != ""
}

// Store holds the session and notifies subscribers on change.
type Store struct {
	mu     sync.RWMutex
	state  State
	path   string
	nextID int
	subs   map[int]func(State)
}

// New returns an in-memory Store seeded with state.
func New(state State) *Store {
	return &Store{state: state, subs: make(map[int]func(State))}
}

// Open restores a Store from path. A missing file yields a signed-out
// Store; every later change is written back to path.
func Open(path string) (*Store, error) {
	s := New(State{})
	s.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}
	return s, nil
}

// DefaultPath is the session file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "expense-dashboard", "session.json"), nil
}

// Token returns the current bearer token, or "" when signed out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// User returns a copy of the cached user, or nil when signed out.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return nil
	}
	u := *s.state.User
	return &u
}

// State returns a snapshot of the session.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	if st.User != nil {
		u := *st.User
		st.User = &u
	}
	return st
}

// Save signs in with token and user.
func (s *Store) Save(token string, user models.User) error {
	s.mu.Lock()
	s.state = State{Token: token, User: &user}
	err := s.persist()
	st, subs := s.state, s.subscribers()
	s.mu.Unlock()

	notify(subs, st)
	return err
}

// Clear signs out. It reports whether there was a session to clear, so
// concurrent callers can tell which one actually ended it; subscribers
// are only notified by that caller.
func (s *Store) Clear() (bool, error) {
	s.mu.Lock()
	if !s.state.SignedIn() && s.state.User == nil {
		s.mu.Unlock()
		return false, nil
	}
	s.state = State{}
	err := s.persist()
	subs := s.subscribers()
	s.mu.Unlock()

	notify(subs, State{})
	return true, err
}

// Subscribe registers fn for every change and returns a function that
// removes it.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) subscribers() []func(State) {
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	return subs
}

func notify(subs []func(State), st State) {
	for _, fn := range subs {
		fn(st)
	}
}

// persist must be called with mu held.
func (s *Store) persist() error {
	if s.path == "" {
		return nil
	}
	if !s.state.SignedIn() {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove session file: %w", err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
