package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"goldenPalmDash/internal/modules/dashboard/application/port"
	"goldenPalmDash/internal/modules/dashboard/domain"
)

// ErrAccessDenied is wrapped by DeniedError.
var ErrAccessDenied = errors.New("access denied")

// DeniedError carries the guard decision to the transport layer.
type DeniedError struct {
	Decision Decision
}

func (e *DeniedError) Error() string {
	if e.Decision.Notice != nil {
		return fmt.Sprintf("%s: %s", ErrAccessDenied, e.Decision.Notice.Text)
	}
	return ErrAccessDenied.Error()
}

func (e *DeniedError) Unwrap() error { return ErrAccessDenied }

// DashboardView is the full first paint of a dashboard.
type DashboardView struct {
	Dashboard string             `json:"dashboard"`
	Title     string             `json:"title"`
	Role      domain.Role        `json:"role"`
	Stats     *domain.StatsView  `json:"stats,omitempty"`
	Panels    []domain.TableView `json:"panels"`
	Charts    []domain.ChartView `json:"charts,omitempty"`
	Actions   []string           `json:"actions"`
	UI        domain.UIState     `json:"ui"`
	Notices   []domain.Notice    `json:"notices"`
	Redirect  *Decision          `json:"redirect,omitempty"`
}

// Loaded wraps a single view with the redirect a backend auth failure calls for.
type Loaded[V any] struct {
	View     V         `json:"view"`
	Redirect *Decision `json:"redirect,omitempty"`
}

type DashboardUseCase struct {
	catalog    *Catalog
	guard      *SessionGuard
	fetcher    port.ResourceFetcher
	pages      *PageStates
	notices    *NoticeBoard
	dispatcher *ActionDispatcher
}

func NewDashboardUseCase(catalog *Catalog, guard *SessionGuard, fetcher port.ResourceFetcher, pages *PageStates, notices *NoticeBoard, dispatcher *ActionDispatcher) *DashboardUseCase {
	return &DashboardUseCase{
		catalog:    catalog,
		guard:      guard,
		fetcher:    fetcher,
		pages:      pages,
		notices:    notices,
		dispatcher: dispatcher,
	}
}

func (uc *DashboardUseCase) Catalog() *Catalog { return uc.catalog }

// Authorize resolves the dashboard and runs the guard. A denial is a *DeniedError.
func (uc *DashboardUseCase) Authorize(session domain.Session, key string) (*Dashboard, error) {
	dash, ok := uc.catalog.Dashboard(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDashboard, key)
	}
	if decision := uc.guard.Check(session, dash.Policy); !decision.Allowed {
		return nil, &DeniedError{Decision: decision}
	}
	return dash, nil
}

// Load fetches stats, every untargeted panel and every chart, one after another.
// Each failure is rendered in place; the first auth failure becomes the redirect.
func (uc *DashboardUseCase) Load(ctx context.Context, dash *Dashboard, session domain.Session) DashboardView {
	state := uc.pages.Get(session, dash.Key)
	defer uc.pages.Release(state)
	view := DashboardView{
		Dashboard: dash.Key,
		Title:     dash.Policy.Name,
		Role:      session.Role,
		Actions:   dash.ActionKeys(),
	}
	var authErr error
	note := func(err error) {
		if authErr == nil && isAuthFailure(err) {
			authErr = err
		}
	}

	if dash.Stats != nil {
		stats, err := dash.Stats.Load(ctx, uc.fetcher, session, nil)
		note(err)
		state.SetStats(stats)
		view.Stats = &stats
	}
	for _, panel := range dash.Panels() {
		if panel.Endpoint().RequiresTarget {
			continue
		}
		table, err := panel.Load(ctx, uc.fetcher, session, PanelRequest{})
		note(err)
		state.SetTable(table)
		view.Panels = append(view.Panels, table)
	}
	for _, chart := range dash.Charts() {
		series, err := chart.Load(ctx, uc.fetcher, session, nil)
		note(err)
		state.SetChart(series)
		view.Charts = append(view.Charts, series)
	}

	view.UI = state.UI()
	view.Notices = uc.notices.List(session.ID)
	view.Redirect = redirectFor(dash, authErr)
	slog.Info("dashboard loaded", slog.String("dashboard", dash.Key), slog.String("role", string(session.Role)), slog.Int("panels", len(view.Panels)), slog.Bool("redirect", view.Redirect != nil))
	return view
}

// Panel loads one panel. Unknown panels and missing targets fail before any fetch.
func (uc *DashboardUseCase) Panel(ctx context.Context, dash *Dashboard, session domain.Session, key, target string, query url.Values) (Loaded[domain.TableView], error) {
	panel, ok := dash.Panel(key)
	if !ok {
		return Loaded[domain.TableView]{}, fmt.Errorf("%w: %s", ErrUnknownPanel, key)
	}
	target = strings.TrimSpace(target)
	if panel.Endpoint().RequiresTarget && target == "" {
		return Loaded[domain.TableView]{}, ErrMissingTarget
	}
	table, err := panel.Load(ctx, uc.fetcher, session, PanelRequest{Target: target, Query: query})
	state := uc.pages.Get(session, dash.Key)
	state.SetTable(table)
	uc.pages.Release(state)
	return Loaded[domain.TableView]{View: table, Redirect: redirectFor(dash, err)}, nil
}

func (uc *DashboardUseCase) Chart(ctx context.Context, dash *Dashboard, session domain.Session, key string, query url.Values) (Loaded[domain.ChartView], error) {
	chart, ok := dash.Chart(key)
	if !ok {
		return Loaded[domain.ChartView]{}, fmt.Errorf("%w: %s", ErrUnknownChart, key)
	}
	series, err := chart.Load(ctx, uc.fetcher, session, query)
	state := uc.pages.Get(session, dash.Key)
	state.SetChart(series)
	uc.pages.Release(state)
	return Loaded[domain.ChartView]{View: series, Redirect: redirectFor(dash, err)}, nil
}

func (uc *DashboardUseCase) Report(ctx context.Context, dash *Dashboard, session domain.Session, key string, query url.Values) (Loaded[domain.StatsView], error) {
	report, ok := dash.Report(key)
	if !ok {
		return Loaded[domain.StatsView]{}, fmt.Errorf("%w: %s", ErrUnknownReport, key)
	}
	stats, err := report.Load(ctx, uc.fetcher, session, query)
	return Loaded[domain.StatsView]{View: stats, Redirect: redirectFor(dash, err)}, nil
}

// UpdateState applies the page's tab and selection and persists them.
func (uc *DashboardUseCase) UpdateState(dash *Dashboard, session domain.Session, ui domain.UIState) domain.UIState {
	state := uc.pages.Get(session, dash.Key)
	defer uc.pages.Release(state)
	if tab := strings.TrimSpace(ui.ActiveTab); tab != "" {
		state.SetActiveTab(tab)
	}
	for action, id := range ui.Selection {
		if _, ok := dash.Action(action); ok {
			state.Select(action, id)
		}
	}
	uc.pages.Save(state)
	return state.UI()
}

func (uc *DashboardUseCase) Dispatch(ctx context.Context, dash *Dashboard, session domain.Session, req ActionRequest) (ActionOutcome, error) {
	return uc.dispatcher.Dispatch(ctx, dash, session, req)
}

// DismissNotice removes one of the session's notices.
func (uc *DashboardUseCase) DismissNotice(ctx context.Context, session domain.Session, id string) bool {
	return uc.notices.Dismiss(ctx, session.ID, id)
}

func (uc *DashboardUseCase) Notices(session domain.Session) []domain.Notice {
	return uc.notices.List(session.ID)
}

func isAuthFailure(err error) bool {
	return errors.Is(err, port.ErrUnauthorized) || errors.Is(err, port.ErrForbidden)
}

// redirectFor turns a backend 401/403 into the same decision the guard would give.
func redirectFor(dash *Dashboard, err error) *Decision {
	var decision Decision
	switch {
	case errors.Is(err, port.ErrUnauthorized):
		decision = dash.Policy.Deny(loginPromptText)
	case errors.Is(err, port.ErrForbidden):
		decision = dash.Policy.Deny(dash.Policy.RoleDenied())
	default:
		return nil
	}
	return &decision
}
