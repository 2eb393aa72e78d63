package domain

import (
	"strings"
	"sync"
	"time"
)

// PageState is the per-session, per-dashboard UI state. Views are replaced whole.
type PageState struct {
	mu        sync.RWMutex
	sessionID string
	dashboard string
	role      Role
	activeTab string
	selection map[string]string
	tables    map[string]TableView
	stats     *StatsView
	charts    map[string]ChartView
	updatedAt time.Time
}

// UIState is the cacheable part of a PageState.
type UIState struct {
	ActiveTab string            `json:"activeTab"`
	Selection map[string]string `json:"selection,omitempty"`
}

func NewPageState(sessionID, dashboard string, role Role) *PageState {
	return &PageState{
		sessionID: sessionID,
		dashboard: dashboard,
		role:      role,
		selection: map[string]string{},
		tables:    map[string]TableView{},
		charts:    map[string]ChartView{},
	}
}

func (p *PageState) SessionID() string { return p.sessionID }
func (p *PageState) Dashboard() string { return p.dashboard }
func (p *PageState) Role() Role        { return p.role }

// SetTable drops whatever the panel showed before and stores view.
func (p *PageState) SetTable(view TableView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	rows := make([]Row, len(view.Rows))
	copy(rows, view.Rows)
	view.Rows = rows
	p.tables[view.Panel] = view
	p.touch()
}

func (p *PageState) Table(panel string) (TableView, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	view, ok := p.tables[panel]
	return view, ok
}

func (p *PageState) SetStats(view StatsView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stats = &view
	p.touch()
}

func (p *PageState) Stats() (StatsView, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stats == nil {
		return StatsView{}, false
	}
	return *p.stats, true
}

func (p *PageState) SetChart(view ChartView) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.charts[view.Chart] = view
	p.touch()
}

func (p *PageState) Chart(chart string) (ChartView, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	view, ok := p.charts[chart]
	return view, ok
}

// Panels lists the panels that have been rendered at least once.
func (p *PageState) Panels() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	panels := make([]string, 0, len(p.tables))
	for panel := range p.tables {
		panels = append(panels, panel)
	}
	return panels
}

func (p *PageState) SetActiveTab(tab string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.activeTab = strings.TrimSpace(tab)
	p.touch()
}

// Select records the entity an action is about to act on. A blank id clears it.
func (p *PageState) Select(action, id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	action = strings.TrimSpace(action)
	id = strings.TrimSpace(id)
	if action == "" {
		return
	}
	if id == "" {
		delete(p.selection, action)
	} else {
		p.selection[action] = id
	}
	p.touch()
}

func (p *PageState) Selected(action string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.selection[action]
}

// UI returns a copy of the cacheable state.
func (p *PageState) UI() UIState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	selection := make(map[string]string, len(p.selection))
	for key, value := range p.selection {
		selection[key] = value
	}
	return UIState{ActiveTab: p.activeTab, Selection: selection}
}

// Restore applies cached UI state. Views are never restored.
func (p *PageState) Restore(ui UIState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.activeTab = ui.ActiveTab
	p.selection = map[string]string{}
	for key, value := range ui.Selection {
		if key = strings.TrimSpace(key); key != "" && strings.TrimSpace(value) != "" {
			p.selection[key] = value
		}
	}
}

func (p *PageState) UpdatedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.updatedAt
}

func (p *PageState) touch() {
	p.updatedAt = time.Now().UTC()
}

// PageStateKey names the cache entry for a session's dashboard.
func PageStateKey(sessionID, dashboard string) string {
	return "pagestate:" + strings.TrimSpace(dashboard) + ":" + strings.TrimSpace(sessionID)
}
