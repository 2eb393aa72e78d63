package usecase

import (
	"context"
	"net/url"
	"sync"
	"time"

	"goldenPalmDash/internal/modules/dashboard/application/port"
	"goldenPalmDash/internal/modules/dashboard/domain"
)

type fakeBackend struct {
	mu        sync.Mutex
	payloads  map[string]any
	fetchErrs map[string]error
	fetched   []string
	result    port.MutationResult
	sendErr   error
	sent      []port.MutationRequest
	tokens    []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		payloads:  map[string]any{},
		fetchErrs: map[string]error{},
		result:    port.MutationResult{Status: 200, Payload: map[string]any{}},
	}
}

func (f *fakeBackend) Fetch(_ context.Context, token, path string, _ url.Values) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, path)
	f.tokens = append(f.tokens, token)
	if err := f.fetchErrs[path]; err != nil {
		return nil, err
	}
	if payload, ok := f.payloads[path]; ok {
		return payload, nil
	}
	return []any{}, nil
}

func (f *fakeBackend) Send(_ context.Context, token string, req port.MutationRequest) (port.MutationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, req)
	f.tokens = append(f.tokens, token)
	if f.sendErr != nil {
		return port.MutationResult{}, f.sendErr
	}
	return f.result, nil
}

func (f *fakeBackend) fetchedPaths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.fetched...)
}

func (f *fakeBackend) sentRequests() []port.MutationRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]port.MutationRequest(nil), f.sent...)
}

type fakeBroadcaster struct {
	mu   sync.Mutex
	msgs []*domain.Message
}

func (f *fakeBroadcaster) Broadcast(_ context.Context, msg *domain.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msg)
}

func (f *fakeBroadcaster) topics() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.msgs))
	for _, m := range f.msgs {
		out = append(out, m.Topic)
	}
	return out
}

type memoryStore struct {
	mu    sync.Mutex
	items map[string]domain.UIState
}

func newMemoryStore() *memoryStore { return &memoryStore{items: map[string]domain.UIState{}} }

func (s *memoryStore) Load(key string) (domain.UIState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ui, ok := s.items[key]
	return ui, ok
}

func (s *memoryStore) Save(key string, ui domain.UIState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = ui
}

func (s *memoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
}

type fakeAudit struct {
	mu     sync.Mutex
	events []domain.ActionAuditEvent
}

func (a *fakeAudit) PublishAction(_ context.Context, event domain.ActionAuditEvent) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
	return nil
}

// manualTimer never fires on its own; tests call fire.
type manualTimer struct {
	fire    func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	t.stopped = true
	return true
}

func newTestNoticeBoard(b port.Broadcaster) (*NoticeBoard, *[]*manualTimer) {
	board := NewNoticeBoard(time.Second, b)
	timers := []*manualTimer{}
	board.afterFunc = func(_ time.Duration, f func()) stopper {
		t := &manualTimer{fire: f}
		timers = append(timers, t)
		return t
	}
	return board, &timers
}

func testSession(role domain.Role) domain.Session {
	return domain.Session{
		ID:      "sess-" + string(role),
		Token:   "tok-" + string(role),
		Role:    role,
		Profile: domain.Profile{ID: "42", FirstName: "Ana", LastName: "Perera", Role: string(role)},
	}
}

type testRig struct {
	backend    *fakeBackend
	broadcast  *fakeBroadcaster
	audit      *fakeAudit
	catalog    *Catalog
	notices    *NoticeBoard
	pages      *PageStates
	dispatcher *ActionDispatcher
	dashboards *DashboardUseCase
}

func newTestRig() *testRig {
	r := &testRig{
		backend:   newFakeBackend(),
		broadcast: &fakeBroadcaster{},
		audit:     &fakeAudit{},
		catalog:   NewCatalog(),
	}
	r.notices, _ = newTestNoticeBoard(r.broadcast)
	r.pages = NewPageStates(newMemoryStore())
	r.dispatcher = NewActionDispatcher(r.backend, r.notices, r.pages, r.audit)
	r.dashboards = NewDashboardUseCase(r.catalog, NewSessionGuard(nil), r.backend, r.pages, r.notices, r.dispatcher)
	return r
}

func (r *testRig) dashboard(key string) *Dashboard {
	d, ok := r.catalog.Dashboard(key)
	if !ok {
		panic("missing dashboard " + key)
	}
	return d
}
