package usecase

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"goldenPalmDash/internal/modules/dashboard/application/port"
	"goldenPalmDash/internal/modules/dashboard/domain"
	"goldenPalmDash/internal/shared/normalization"
)

// StatsPanel projects named numeric fields of one endpoint into stat cards.
type StatsPanel struct {
	key       string
	title     string
	endpoint  Endpoint
	fields    []domain.StatField
	errorText string
	now       func() time.Time
}

func NewStatsPanel(key, title string, endpoint Endpoint, fields ...domain.StatField) *StatsPanel {
	return &StatsPanel{
		key:       key,
		title:     title,
		endpoint:  endpoint,
		fields:    fields,
		errorText: "Failed to load " + title,
		now:       time.Now,
	}
}

func (p *StatsPanel) Key() string        { return p.key }
func (p *StatsPanel) Endpoint() Endpoint { return p.endpoint }

// Render never invents a value: anything missing or non-numeric is N/A.
func (p *StatsPanel) Render(payload any) domain.StatsView {
	values := normalization.MapFromPayload(payload)
	view := domain.StatsView{Panel: p.key, State: domain.PanelReady, Cards: make([]domain.StatCard, 0, len(p.fields))}
	for _, field := range p.fields {
		card := domain.StatCard{Key: field.Key, Label: field.Label, Value: domain.NotAvailable}
		if n, ok := normalization.AsFloat64(values[field.Key]); ok {
			card.Value = domain.FormatStat(n, field.Format)
		}
		view.Cards = append(view.Cards, card)
	}
	return view
}

func (p *StatsPanel) ErrorView() domain.StatsView {
	view := p.Render(nil)
	view.State = domain.PanelError
	view.Notice = domain.NewNotice(domain.NoticeWarning, p.errorText)
	view.RenderedAt = p.now().UTC()
	return view
}

func (p *StatsPanel) Load(ctx context.Context, fetcher port.ResourceFetcher, session domain.Session, query url.Values) (domain.StatsView, error) {
	path, err := p.endpoint.BuildPath("")
	if err != nil {
		return p.ErrorView(), err
	}
	payload, err := fetcher.Fetch(ctx, session.Token, path, p.endpoint.Query(query))
	if err != nil {
		slog.Warn("stats fetch failed", slog.String("stats", p.key), slog.String("path", path), slog.Any("error", err))
		return p.ErrorView(), err
	}
	view := p.Render(payload)
	view.RenderedAt = p.now().UTC()
	return view, nil
}
