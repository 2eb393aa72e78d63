package usecase

import (
	"sort"
	"strings"
	"time"

	"goldenPalmDash/internal/modules/dashboard/domain"
	"goldenPalmDash/internal/shared/normalization"
)

// Dashboard is one role page: its guard policy and the panels, charts, reports and actions it offers.
type Dashboard struct {
	Key     string
	Policy  GuardPolicy
	Stats   *StatsPanel
	panels  []Panel
	charts  []*ChartPanel
	reports []*StatsPanel
	actions map[string]ActionSpec
}

func newDashboard(key, name string, redirectAfter time.Duration, roles ...domain.Role) *Dashboard {
	return &Dashboard{
		Key: key,
		Policy: GuardPolicy{
			Name:          name,
			Roles:         domain.NewRoleSet(roles...),
			LoginPath:     DefaultLoginPath,
			RedirectAfter: redirectAfter,
		},
		actions: make(map[string]ActionSpec),
	}
}

func (d *Dashboard) addPanels(panels ...Panel) { d.panels = append(d.panels, panels...) }
func (d *Dashboard) addCharts(charts ...*ChartPanel) { d.charts = append(d.charts, charts...) }
func (d *Dashboard) addReports(reports ...*StatsPanel) { d.reports = append(d.reports, reports...) }

func (d *Dashboard) addActions(specs ...ActionSpec) {
	for _, spec := range specs {
		d.actions[spec.Key] = spec
	}
}

// Panels returns the panels in display order.
func (d *Dashboard) Panels() []Panel { return d.panels }

func (d *Dashboard) Panel(key string) (Panel, bool) {
	key = strings.TrimSpace(key)
	for _, panel := range d.panels {
		if panel.Key() == key {
			return panel, true
		}
	}
	return nil, false
}

func (d *Dashboard) Charts() []*ChartPanel { return d.charts }

func (d *Dashboard) Chart(key string) (*ChartPanel, bool) {
	key = strings.TrimSpace(key)
	for _, chart := range d.charts {
		if chart.Key() == key {
			return chart, true
		}
	}
	return nil, false
}

func (d *Dashboard) Report(key string) (*StatsPanel, bool) {
	key = strings.TrimSpace(key)
	for _, report := range d.reports {
		if report.Key() == key {
			return report, true
		}
	}
	return nil, false
}

func (d *Dashboard) Action(key string) (ActionSpec, bool) {
	spec, ok := d.actions[strings.TrimSpace(key)]
	return spec, ok
}

// ActionKeys lists the dashboard's actions sorted by key.
func (d *Dashboard) ActionKeys() []string {
	keys := make([]string, 0, len(d.actions))
	for key := range d.actions {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Entities lists the canonical backend entities the dashboard's panels display.
func (d *Dashboard) Entities() []string {
	seen := map[string]struct{}{}
	var entities []string
	for _, panel := range d.panels {
		entity := normalization.NormalizeEntity(panel.Entity())
		if entity == "" {
			continue
		}
		if _, ok := seen[entity]; ok {
			continue
		}
		seen[entity] = struct{}{}
		entities = append(entities, entity)
	}
	sort.Strings(entities)
	return entities
}

// PanelsFor returns the panels bound to entity.
func (d *Dashboard) PanelsFor(entity string) []Panel {
	entity = normalization.NormalizeEntity(entity)
	var panels []Panel
	for _, panel := range d.panels {
		if normalization.NormalizeEntity(panel.Entity()) == entity {
			panels = append(panels, panel)
		}
	}
	return panels
}

// Catalog holds every dashboard by key.
type Catalog struct {
	dashboards map[string]*Dashboard
	booking    GuardPolicy
}

// NewCatalog builds the five role dashboards and the booking form policy.
func NewCatalog() *Catalog {
	c := &Catalog{dashboards: make(map[string]*Dashboard)}
	for _, d := range []*Dashboard{
		frontDeskDashboard(),
		managerDashboard(),
		paymentOfficerDashboard(),
		backOfficeDashboard(),
		adminDashboard(),
	} {
		c.dashboards[d.Key] = d
	}
	c.booking = GuardPolicy{
		Name:          "Guest",
		Roles:         domain.NewRoleSet(),
		LoginPath:     DefaultLoginPath,
		RedirectAfter: 2 * time.Second,
	}
	return c
}

func (c *Catalog) Dashboard(key string) (*Dashboard, bool) {
	d, ok := c.dashboards[strings.ToLower(strings.TrimSpace(key))]
	return d, ok
}

func (c *Catalog) Dashboards() []*Dashboard {
	keys := make([]string, 0, len(c.dashboards))
	for key := range c.dashboards {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]*Dashboard, 0, len(keys))
	for _, key := range keys {
		out = append(out, c.dashboards[key])
	}
	return out
}

// BookingPolicy admits any known role holding a token.
func (c *Catalog) BookingPolicy() GuardPolicy { return c.booking }

// WithLoginPath points every denial at path.
func (c *Catalog) WithLoginPath(path string) *Catalog {
	path = strings.TrimSpace(path)
	if path == "" {
		return c
	}
	for _, d := range c.dashboards {
		d.Policy.LoginPath = path
	}
	c.booking.LoginPath = path
	return c
}
