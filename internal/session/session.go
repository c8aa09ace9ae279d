// Package session holds authentication state and the live editors.
package session

import (
	"sort"
	"sync"

	"github.com/frudas24/zoomkit/internal/editor"
)

// Snapshot represents a read-only view of the current session state.
type Snapshot struct {
	Authenticated bool     `json:"authenticated"`
	InputEnabled  bool     `json:"inputEnabled"`
	Editors       []string `json:"editors"`
}

// Session holds runtime state for the active client.
type Session struct {
	mu            sync.RWMutex
	password      string
	authenticated bool
	inputEnabled  bool
	editors       map[string]*editor.Editor
}

// New returns an initialized session with the given password.
func New(password string) *Session {
	return &Session{
		password:     password,
		inputEnabled: true,
		editors:      make(map[string]*editor.Editor),
	}
}

// Authenticate validates the password and marks the session as authenticated.
func (s *Session) Authenticate(pass string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pass != "" && pass == s.password {
		s.authenticated = true
		return true
	}
	s.authenticated = false
	return false
}

// Logout clears authentication state.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = false
}

// IsAuthenticated reports whether the session is authenticated.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// SetInputEnabled toggles whether gesture commands reach the editors.
func (s *Session) SetInputEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputEnabled = enabled
}

// InputEnabled reports whether gesture commands reach the editors.
func (s *Session) InputEnabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inputEnabled
}

// AddEditor registers e under its id.
func (s *Session) AddEditor(e *editor.Editor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editors[e.ID()] = e
}

// Editor returns the editor with id.
func (s *Session) Editor(id string) (*editor.Editor, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.editors[id]
	return e, ok
}

// RemoveEditor drops the editor with id and reports whether it existed.
func (s *Session) RemoveEditor(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.editors[id]; !ok {
		return false
	}
	delete(s.editors, id)
	return true
}

// Editors returns every editor ordered by id.
func (s *Session) Editors() []*editor.Editor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*editor.Editor, 0, len(s.editors))
	for _, e := range s.editors {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.editors))
	for id := range s.editors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return Snapshot{
		Authenticated: s.authenticated,
		InputEnabled:  s.inputEnabled,
		Editors:       ids,
	}
}
