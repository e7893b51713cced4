package session

import (
	"sync"
)

// A Manager owns the view states of all live sessions.
type Manager struct {
	mu     sync.Mutex
	states map[string]*State
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{
		states: map[string]*State{},
	}
}

// State returns a copy of the state bound to token, creating it on first use.
func (m *Manager) State(token string) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return *m.state(token)
}

// Select moves the session to the single-list view for the given list.
func (m *Manager) Select(token, listID string) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.state(token)
	s.SelectedListID = listID
	s.View = ViewSingleList
	return *s
}

// Back moves the session to the all-lists view and clears the selection.
func (m *Manager) Back(token string) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.state(token)
	s.SelectedListID = ""
	s.View = ViewAllLists
	return *s
}

// OpenExtraction moves the session to the extraction helper.
// Selection and pending items are kept so the user can come back.
func (m *Manager) OpenExtraction(token string) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.state(token)
	s.View = ViewExtraction
	return *s
}

// SetPending replaces the pending extraction result.
func (m *Manager) SetPending(token string, items []string) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.state(token)
	s.PendingItems = append([]string(nil), items...)
	return *s
}

// Pending returns the pending extraction result.
func (m *Manager) Pending(token string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]string(nil), m.state(token).PendingItems...)
}

// ClearPending drops the pending extraction result, on confirmed addition.
func (m *Manager) ClearPending(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state(token).PendingItems = nil
}

// state returns the live state for token. Callers must hold the lock.
func (m *Manager) state(token string) *State {
	s, ok := m.states[token]
	if !ok {
		s = &State{View: ViewAllLists}
		m.states[token] = s
	}
	return s
}
