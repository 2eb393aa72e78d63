package usecase

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"goldenPalmDash/internal/modules/dashboard/application/port"
	"goldenPalmDash/internal/modules/dashboard/domain"
	"goldenPalmDash/internal/shared/normalization"
)

type watcher struct {
	session   domain.Session
	dashboard string
	refs      int
}

// LiveRefresh tracks which sessions have a dashboard socket open and re-fetches
// their panels when a backend entity changes.
type LiveRefresh struct {
	mu        sync.Mutex
	watchers  map[string]*watcher
	catalog   *Catalog
	fetcher   port.ResourceFetcher
	pages     *PageStates
	broadcast *BroadcastUseCase
	now       func() time.Time
}

func NewLiveRefresh(catalog *Catalog, fetcher port.ResourceFetcher, pages *PageStates, broadcast *BroadcastUseCase) *LiveRefresh {
	return &LiveRefresh{
		watchers:  make(map[string]*watcher),
		catalog:   catalog,
		fetcher:   fetcher,
		pages:     pages,
		broadcast: broadcast,
		now:       time.Now,
	}
}

// Attach registers one open socket and pins its page. The returned func releases it; the
// session stops being refreshed, and its live page is dropped, once its last socket is gone.
func (r *LiveRefresh) Attach(session domain.Session, dashboard string) func() {
	key := domain.PageStateKey(session.ID, dashboard)
	r.mu.Lock()
	w, ok := r.watchers[key]
	if !ok {
		w = &watcher{session: session, dashboard: strings.TrimSpace(dashboard)}
		r.watchers[key] = w
	}
	w.session = session
	w.refs++
	r.mu.Unlock()
	if r.pages != nil {
		r.pages.Watch(session.ID, dashboard)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			if current, ok := r.watchers[key]; ok {
				current.refs--
				if current.refs <= 0 {
					delete(r.watchers, key)
				}
			}
			r.mu.Unlock()
			if r.pages != nil {
				r.pages.Unwatch(session.ID, dashboard)
			}
		})
	}
}

// Watching returns the number of attached session/dashboard pairs.
func (r *LiveRefresh) Watching() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.watchers)
}

// RefreshEntity re-fetches every panel bound to entity for every attached session,
// each with that session's own token, and pushes the new views.
func (r *LiveRefresh) RefreshEntity(ctx context.Context, entity string) int {
	entity = normalization.NormalizeEntity(entity)
	if entity == "" {
		return 0
	}

	pushed := 0
	for _, w := range r.snapshot() {
		dash, ok := r.catalog.Dashboard(w.dashboard)
		if !ok {
			continue
		}
		for _, panel := range dash.PanelsFor(entity) {
			if panel.Endpoint().RequiresTarget {
				continue
			}
			if ctx.Err() != nil {
				return pushed
			}
			view, err := panel.Load(ctx, r.fetcher, w.session, PanelRequest{})
			if err != nil {
				slog.Warn("live refresh panel failed", slog.String("dashboard", dash.Key), slog.String("panel", panel.Key()), slog.Any("error", err))
			}
			if r.pages != nil {
				state := r.pages.Get(w.session, dash.Key)
				state.SetTable(view)
				r.pages.Release(state)
			}
			r.broadcast.Execute(ctx, &domain.Message{
				Topic:      domain.TopicPanelsRefresh,
				Entity:     domain.PanelsEntity,
				Action:     domain.ActionRefresh,
				ResourceID: panel.Key(),
				Metadata: map[string]string{
					domain.MetaSessionID: w.session.ID,
					domain.MetaDashboard: dash.Key,
					domain.MetaPanel:     panel.Key(),
				},
				Data:      view,
				Timestamp: r.now().UTC(),
			})
			pushed++
		}
	}
	return pushed
}

func (r *LiveRefresh) snapshot() []watcher {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.watchers))
	for key := range r.watchers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]watcher, 0, len(keys))
	for _, key := range keys {
		out = append(out, *r.watchers[key])
	}
	return out
}
