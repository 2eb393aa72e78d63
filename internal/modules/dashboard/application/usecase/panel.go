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

// PanelRequest narrows a panel load to a target and query.
type PanelRequest struct {
	Target string
	Query  url.Values
}

// Panel is a table the page shows. Implementations are ResourcePanel instances.
type Panel interface {
	Key() string
	Title() string
	Entity() string
	Endpoint() Endpoint
	Load(ctx context.Context, fetcher port.ResourceFetcher, session domain.Session, req PanelRequest) (domain.TableView, error)
}

// PanelConfig declares one table panel over records of type T.
type PanelConfig[T any] struct {
	Key       string
	Title     string
	Entity    string
	Endpoint  Endpoint
	Columns   []string
	EmptyText string
	ErrorText string
	MapRow    func(item T, viewer domain.Role) domain.Row
}

type ResourcePanel[T any] struct {
	cfg PanelConfig[T]
	now func() time.Time
}

func NewResourcePanel[T any](cfg PanelConfig[T]) *ResourcePanel[T] {
	if cfg.ErrorText == "" {
		cfg.ErrorText = "Failed to load " + cfg.Title
	}
	if cfg.EmptyText == "" {
		cfg.EmptyText = "No records found"
	}
	return &ResourcePanel[T]{cfg: cfg, now: time.Now}
}

func (p *ResourcePanel[T]) Key() string        { return p.cfg.Key }
func (p *ResourcePanel[T]) Title() string      { return p.cfg.Title }
func (p *ResourcePanel[T]) Entity() string     { return p.cfg.Entity }
func (p *ResourcePanel[T]) Endpoint() Endpoint { return p.cfg.Endpoint }

// Render maps items to rows. Zero items give the single empty placeholder row.
func (p *ResourcePanel[T]) Render(items []T, viewer domain.Role) domain.TableView {
	view := domain.TableView{
		Panel:   p.cfg.Key,
		Title:   p.cfg.Title,
		Columns: p.cfg.Columns,
	}
	if len(items) == 0 {
		view.State = domain.PanelEmpty
		view.Rows = []domain.Row{domain.PlaceholderRow(p.cfg.EmptyText, len(p.cfg.Columns))}
		return view
	}
	view.State = domain.PanelReady
	view.Rows = make([]domain.Row, 0, len(items))
	for _, item := range items {
		view.Rows = append(view.Rows, p.cfg.MapRow(item, viewer))
	}
	return view
}

// Decode accepts a bare array or a data/items/content envelope.
func (p *ResourcePanel[T]) Decode(payload any) ([]T, error) {
	list, ok := normalization.ListFromPayload(payload)
	if !ok {
		return nil, fmt.Errorf("%w: %s expected a list", ErrMalformedPayload, p.cfg.Key)
	}
	if len(list) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedPayload, p.cfg.Key, err)
	}
	return items, nil
}

// ErrorView is the explicit failure display: one row with the error text and a warning notice.
func (p *ResourcePanel[T]) ErrorView() domain.TableView {
	return domain.TableView{
		Panel:      p.cfg.Key,
		Title:      p.cfg.Title,
		Columns:    p.cfg.Columns,
		Rows:       []domain.Row{domain.PlaceholderRow(p.cfg.ErrorText, len(p.cfg.Columns))},
		State:      domain.PanelError,
		Notice:     domain.NewNotice(domain.NoticeWarning, p.cfg.ErrorText),
		RenderedAt: p.now().UTC(),
	}
}

// Load fetches, decodes and renders. On failure the returned view is the error view.
func (p *ResourcePanel[T]) Load(ctx context.Context, fetcher port.ResourceFetcher, session domain.Session, req PanelRequest) (domain.TableView, error) {
	path, err := p.cfg.Endpoint.BuildPath(req.Target)
	if err != nil {
		return p.ErrorView(), err
	}
	payload, err := fetcher.Fetch(ctx, session.Token, path, p.cfg.Endpoint.Query(req.Query))
	if err != nil {
		slog.Warn("panel fetch failed", slog.String("panel", p.cfg.Key), slog.String("path", path), slog.Any("error", err))
		return p.ErrorView(), err
	}
	items, err := p.Decode(payload)
	if err != nil {
		slog.Warn("panel decode failed", slog.String("panel", p.cfg.Key), slog.Any("error", err))
		return p.ErrorView(), err
	}
	view := p.Render(items, session.Role)
	view.RenderedAt = p.now().UTC()
	return view, nil
}

var _ Panel = (*ResourcePanel[domain.Booking])(nil)
