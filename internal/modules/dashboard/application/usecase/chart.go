package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"goldenPalmDash/internal/modules/dashboard/application/port"
	"goldenPalmDash/internal/modules/dashboard/domain"
	"goldenPalmDash/internal/shared/normalization"
)

// ChartPanel fetches one {labels, data} series.
type ChartPanel struct {
	key       string
	title     string
	endpoint  Endpoint
	errorText string
	now       func() time.Time
}

func NewChartPanel(key, title string, endpoint Endpoint) *ChartPanel {
	return &ChartPanel{key: key, title: title, endpoint: endpoint, errorText: "Failed to load " + title, now: time.Now}
}

func (p *ChartPanel) Key() string        { return p.key }
func (p *ChartPanel) Endpoint() Endpoint { return p.endpoint }

// Render returns a ready or empty view, or ErrMalformedChart.
func (p *ChartPanel) Render(payload any) (domain.ChartView, error) {
	var series domain.ChartPayload
	raw, err := json.Marshal(normalization.MapFromPayload(payload))
	if err != nil {
		return domain.ChartView{}, fmt.Errorf("%w: %v", domain.ErrMalformedChart, err)
	}
	if err := json.Unmarshal(raw, &series); err != nil {
		return domain.ChartView{}, fmt.Errorf("%w: %v", domain.ErrMalformedChart, err)
	}
	if err := series.Check(); err != nil {
		return domain.ChartView{}, err
	}
	view := domain.ChartView{
		Chart:          p.key,
		Title:          p.title,
		Labels:         series.Labels,
		Data:           series.Data,
		TotalRevenue:   series.TotalRevenue,
		AverageRevenue: series.AverageRevenue,
		State:          domain.PanelReady,
	}
	if len(series.Labels) == 0 {
		view.State = domain.PanelEmpty
	}
	return view, nil
}

func (p *ChartPanel) ErrorView() domain.ChartView {
	return domain.ChartView{
		Chart:      p.key,
		Title:      p.title,
		Labels:     []string{},
		Data:       []float64{},
		State:      domain.PanelError,
		Notice:     domain.NewNotice(domain.NoticeWarning, p.errorText),
		RenderedAt: p.now().UTC(),
	}
}

func (p *ChartPanel) Load(ctx context.Context, fetcher port.ResourceFetcher, session domain.Session, query url.Values) (domain.ChartView, error) {
	path, err := p.endpoint.BuildPath("")
	if err != nil {
		return p.ErrorView(), err
	}
	payload, err := fetcher.Fetch(ctx, session.Token, path, p.endpoint.Query(query))
	if err != nil {
		slog.Warn("chart fetch failed", slog.String("chart", p.key), slog.String("path", path), slog.Any("error", err))
		return p.ErrorView(), err
	}
	view, err := p.Render(payload)
	if err != nil {
		slog.Warn("chart payload rejected", slog.String("chart", p.key), slog.Any("error", err))
		return p.ErrorView(), err
	}
	view.RenderedAt = p.now().UTC()
	return view, nil
}
