package usecase

import (
	"strings"
	"sync"

	"goldenPalmDash/internal/modules/dashboard/application/port"
	"goldenPalmDash/internal/modules/dashboard/domain"
)

// PageStates owns the live page state of every session and dashboard.
// A page stays in memory only while a socket watches it; otherwise it is dropped
// when the request that used it ends. Only UI state is written through to the store.
type PageStates struct {
	mu      sync.Mutex
	live    map[string]*domain.PageState
	watched map[string]int
	store   port.PageStateStore
}

func NewPageStates(store port.PageStateStore) *PageStates {
	return &PageStates{
		live:    make(map[string]*domain.PageState),
		watched: make(map[string]int),
		store:   store,
	}
}

// Get returns the session's page, restoring tab and selection from the store on first use.
func (s *PageStates) Get(session domain.Session, dashboard string) *domain.PageState {
	key := domain.PageStateKey(session.ID, dashboard)
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.live[key]; ok {
		return state
	}
	state := domain.NewPageState(session.ID, strings.TrimSpace(dashboard), session.Role)
	if s.store != nil {
		if ui, ok := s.store.Load(key); ok {
			state.Restore(ui)
		}
	}
	s.live[key] = state
	return state
}

func (s *PageStates) Save(state *domain.PageState) {
	if state == nil || s.store == nil {
		return
	}
	s.store.Save(domain.PageStateKey(state.SessionID(), state.Dashboard()), state.UI())
}

// Release ends a request's use of state. Unwatched pages leave memory; the
// stored UI state brings tab and selection back on the next request.
func (s *PageStates) Release(state *domain.PageState) {
	if state == nil {
		return
	}
	key := domain.PageStateKey(state.SessionID(), state.Dashboard())
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watched[key] > 0 {
		return
	}
	if current, ok := s.live[key]; ok && current == state {
		delete(s.live, key)
	}
}

// Watch pins the page in memory for an open socket.
func (s *PageStates) Watch(sessionID, dashboard string) {
	key := domain.PageStateKey(sessionID, dashboard)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watched[key]++
}

// Unwatch undoes one Watch. The page is dropped with its last watcher.
func (s *PageStates) Unwatch(sessionID, dashboard string) {
	key := domain.PageStateKey(sessionID, dashboard)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watched[key] > 1 {
		s.watched[key]--
		return
	}
	delete(s.watched, key)
	delete(s.live, key)
}

// Live returns the number of pages held in memory.
func (s *PageStates) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}
