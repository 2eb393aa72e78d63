package usecase

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"goldenPalmDash/internal/modules/dashboard/application/port"
	"goldenPalmDash/internal/modules/dashboard/domain"
	"goldenPalmDash/internal/shared/normalization"
)

type BodyKind int

const (
	BodyNone BodyKind = iota
	BodyJSON
	BodyMultipart
)

const selectTargetText = "Please select a record first"

// ActionSpec declares one mutation a dashboard offers.
type ActionSpec struct {
	Key             string
	Method          string
	Endpoint        Endpoint
	Body            BodyKind
	RequiresConfirm bool
	ConfirmPrompt   string
	SuccessText     string
	FailureText     string
	Refresh         []string
	RefreshStats    bool
	// QueryFromBody moves these body fields to the query string.
	QueryFromBody []string
	Validate      func(body map[string]any) domain.FieldErrors
	ValidateFiles func(files []domain.FileMeta) domain.FieldErrors
	// Prepare shapes the outgoing JSON body.
	Prepare func(body map[string]any, target string, session domain.Session) map[string]any
}

type ActionRequest struct {
	Action    string
	Target    string
	Confirmed bool
	Body      map[string]any
	Files     []port.FilePart
}

type OutcomeKind string

const (
	OutcomeDone              OutcomeKind = "done"
	OutcomeNeedsConfirmation OutcomeKind = "needs_confirmation"
	OutcomeInvalid           OutcomeKind = "invalid"
	OutcomeFailed            OutcomeKind = "failed"
)

// ActionOutcome is what the page gets back from one dispatch.
type ActionOutcome struct {
	Kind     OutcomeKind        `json:"outcome"`
	Action   string             `json:"action"`
	Target   string             `json:"target,omitempty"`
	Prompt   string             `json:"prompt,omitempty"`
	Errors   domain.FieldErrors `json:"errors,omitempty"`
	Notice   *domain.Notice     `json:"notice,omitempty"`
	Status   int                `json:"status,omitempty"`
	Result   any                `json:"result,omitempty"`
	Tables   []domain.TableView `json:"tables,omitempty"`
	Stats    *domain.StatsView  `json:"stats,omitempty"`
	Redirect *Decision          `json:"redirect,omitempty"`
}

// ActionDispatcher runs validate, confirm, send once, then refresh.
type ActionDispatcher struct {
	backend      port.Backend
	notices      *NoticeBoard
	pages        *PageStates
	audit        port.AuditPublisher
	auditTimeout time.Duration
	now          func() time.Time
}

func NewActionDispatcher(backend port.Backend, notices *NoticeBoard, pages *PageStates, audit port.AuditPublisher) *ActionDispatcher {
	return &ActionDispatcher{
		backend:      backend,
		notices:      notices,
		pages:        pages,
		audit:        audit,
		auditTimeout: 5 * time.Second,
		now:          time.Now,
	}
}

func (d *ActionDispatcher) Dispatch(ctx context.Context, dash *Dashboard, session domain.Session, req ActionRequest) (ActionOutcome, error) {
	spec, ok := dash.Action(req.Action)
	if !ok {
		return ActionOutcome{}, ErrUnknownAction
	}
	state := d.pages.Get(session, dash.Key)
	defer d.pages.Release(state)

	target := strings.TrimSpace(req.Target)
	if target == "" {
		target = state.Selected(spec.Key)
	}
	outcome := ActionOutcome{Action: spec.Key, Target: target}

	if spec.Endpoint.RequiresTarget && target == "" {
		outcome.Kind = OutcomeInvalid
		outcome.Errors = domain.FieldErrors{"target": selectTargetText}
		return outcome, nil
	}
	body := prepareBody(spec, target, session, req.Body)
	if errs := validateAction(spec, body, req.Files); len(errs) > 0 {
		outcome.Kind = OutcomeInvalid
		outcome.Errors = errs
		return outcome, nil
	}
	if spec.RequiresConfirm && !req.Confirmed {
		state.Select(spec.Key, target)
		d.pages.Save(state)
		outcome.Kind = OutcomeNeedsConfirmation
		outcome.Prompt = spec.ConfirmPrompt
		return outcome, nil
	}

	mutation, err := buildMutation(spec, target, body, req.Files)
	if err != nil {
		return ActionOutcome{}, err
	}

	result, err := d.backend.Send(ctx, session.Token, mutation)
	if err != nil {
		d.fail(ctx, dash, spec, session, &outcome, err)
		d.publishAudit(ctx, dash, spec, session, target, false, outcome.Status)
		return outcome, nil
	}

	state.Select(spec.Key, "")
	notice := d.notices.Push(ctx, session.ID, domain.NoticeSuccess, successText(spec, result.Payload))
	outcome.Kind = OutcomeDone
	outcome.Notice = &notice
	outcome.Status = result.Status
	outcome.Result = result.Payload

	d.refresh(ctx, dash, spec, session, target, state, &outcome)
	d.pages.Save(state)
	d.publishAudit(ctx, dash, spec, session, target, true, result.Status)
	return outcome, nil
}

func (d *ActionDispatcher) fail(ctx context.Context, dash *Dashboard, spec ActionSpec, session domain.Session, outcome *ActionOutcome, err error) {
	text := port.ServerMessage(err)
	if text == "" {
		text = spec.FailureText
	}
	notice := d.notices.Push(ctx, session.ID, domain.NoticeDanger, text)
	outcome.Kind = OutcomeFailed
	outcome.Notice = &notice
	outcome.Status = http.StatusBadGateway
	var backendErr *port.BackendError
	if errors.As(err, &backendErr) && backendErr.Status >= http.StatusBadRequest {
		outcome.Status = backendErr.Status
	}
	outcome.Redirect = redirectFor(dash, err)
	slog.Warn("action failed", slog.String("dashboard", dash.Key), slog.String("action", spec.Key), slog.Int("status", outcome.Status), slog.Any("error", err))
}

// refresh re-fetches the affected panels one after another. Nothing is patched locally.
func (d *ActionDispatcher) refresh(ctx context.Context, dash *Dashboard, spec ActionSpec, session domain.Session, target string, state *domain.PageState, outcome *ActionOutcome) {
	for _, key := range spec.Refresh {
		panel, ok := dash.Panel(key)
		if !ok {
			continue
		}
		req := PanelRequest{}
		if panel.Endpoint().RequiresTarget {
			req.Target = target
		}
		view, err := panel.Load(ctx, d.backend, session, req)
		if err != nil {
			slog.Warn("post-action refresh failed", slog.String("dashboard", dash.Key), slog.String("panel", key), slog.Any("error", err))
		}
		state.SetTable(view)
		outcome.Tables = append(outcome.Tables, view)
	}
	if spec.RefreshStats && dash.Stats != nil {
		view, err := dash.Stats.Load(ctx, d.backend, session, nil)
		if err != nil {
			slog.Warn("post-action stats refresh failed", slog.String("dashboard", dash.Key), slog.Any("error", err))
		}
		state.SetStats(view)
		outcome.Stats = &view
	}
}

func (d *ActionDispatcher) publishAudit(ctx context.Context, dash *Dashboard, spec ActionSpec, session domain.Session, target string, succeeded bool, status int) {
	if d.audit == nil {
		return
	}
	auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.auditTimeout)
	defer cancel()
	event := domain.ActionAuditEvent{
		Dashboard: dash.Key,
		Action:    spec.Key,
		Target:    target,
		UserID:    session.Profile.ID.String(),
		Role:      string(session.Role),
		Succeeded: succeeded,
		Status:    status,
		At:        d.now().UTC(),
	}
	if err := d.audit.PublishAction(auditCtx, event); err != nil {
		slog.Warn("audit publish failed", slog.String("action", spec.Key), slog.Any("error", err))
	}
}

// successText prefers the backend's own message.
func successText(spec ActionSpec, payload any) string {
	switch typed := payload.(type) {
	case map[string]any:
		if message := normalization.AsString(typed["message"]); message != "" {
			return message
		}
	case string:
		if message := strings.TrimSpace(typed); message != "" && len(message) <= maxTextMessage && !strings.HasPrefix(message, "<") {
			return message
		}
	}
	return spec.SuccessText
}

// maxTextMessage bounds a plain-text success body shown as the notice.
const maxTextMessage = 200

// prepareBody copies the submitted body and lets the action shape it.
func prepareBody(spec ActionSpec, target string, session domain.Session, submitted map[string]any) map[string]any {
	body := make(map[string]any, len(submitted)+1)
	for key, value := range submitted {
		body[key] = value
	}
	if spec.Prepare != nil {
		body = spec.Prepare(body, target, session)
	}
	return body
}

func validateAction(spec ActionSpec, body map[string]any, parts []port.FilePart) domain.FieldErrors {
	errs := domain.FieldErrors{}
	if spec.Validate != nil {
		for field, message := range spec.Validate(body) {
			errs.Add(field, message)
		}
	}
	if spec.ValidateFiles != nil {
		files := make([]domain.FileMeta, 0, len(parts))
		for _, f := range parts {
			files = append(files, domain.FileMeta{Name: f.Name, ContentType: f.ContentType, Size: f.Size})
		}
		for field, message := range spec.ValidateFiles(files) {
			errs.Add(field, message)
		}
	}
	return errs
}

func buildMutation(spec ActionSpec, target string, body map[string]any, files []port.FilePart) (port.MutationRequest, error) {
	path, err := spec.Endpoint.BuildPath(target)
	if err != nil {
		return port.MutationRequest{}, err
	}
	mutation := port.MutationRequest{Method: spec.Method, Path: path}

	if len(spec.QueryFromBody) > 0 {
		mutation.Query = url.Values{}
		for _, key := range spec.QueryFromBody {
			if value := normalization.AsString(body[key]); value != "" {
				mutation.Query.Set(key, value)
			}
			delete(body, key)
		}
	}

	switch spec.Body {
	case BodyJSON:
		mutation.Body = body
	case BodyMultipart:
		mutation.Files = files
	}
	return mutation, nil
}
