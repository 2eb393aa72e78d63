package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"goldenPalmDash/internal/modules/dashboard/application/port"
	"goldenPalmDash/internal/modules/dashboard/application/usecase"
	"goldenPalmDash/internal/modules/dashboard/domain"
)

const maxUploadMemory = 32 << 20

// DashboardHandler serves the page-facing dashboard endpoints.
type DashboardHandler struct {
	uc     *usecase.DashboardUseCase
	errors *ErrorMapper
}

func NewDashboardHandler(uc *usecase.DashboardUseCase, mapper *ErrorMapper) *DashboardHandler {
	if mapper == nil {
		mapper = NewErrorMapper()
	}
	return &DashboardHandler{uc: uc, errors: mapper}
}

type dashboardSummary struct {
	Key   string   `json:"key"`
	Title string   `json:"title"`
	Roles []string `json:"roles"`
}

// List names the dashboards this gateway serves.
func (h *DashboardHandler) List(c echo.Context) error {
	dashboards := h.uc.Catalog().Dashboards()
	out := make([]dashboardSummary, 0, len(dashboards))
	for _, d := range dashboards {
		roles := make([]string, 0, len(d.Policy.Roles))
		for r := range d.Policy.Roles {
			roles = append(roles, string(r))
		}
		sort.Strings(roles)
		out = append(out, dashboardSummary{Key: d.Key, Title: d.Policy.Name, Roles: roles})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DashboardHandler) Load(c echo.Context) error {
	view := h.uc.Load(c.Request().Context(), dashboardOf(c), sessionOf(c))
	return c.JSON(http.StatusOK, view)
}

func (h *DashboardHandler) Panel(c echo.Context) error {
	query := c.QueryParams()
	target := strings.TrimSpace(query.Get("target"))
	loaded, err := h.uc.Panel(c.Request().Context(), dashboardOf(c), sessionOf(c), c.Param("panel"), target, query)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, loaded)
}

func (h *DashboardHandler) Chart(c echo.Context) error {
	loaded, err := h.uc.Chart(c.Request().Context(), dashboardOf(c), sessionOf(c), c.Param("chart"), c.QueryParams())
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, loaded)
}

func (h *DashboardHandler) Report(c echo.Context) error {
	loaded, err := h.uc.Report(c.Request().Context(), dashboardOf(c), sessionOf(c), c.Param("report"), c.QueryParams())
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(http.StatusOK, loaded)
}

func (h *DashboardHandler) UpdateState(c echo.Context) error {
	var ui domain.UIState
	if err := c.Bind(&ui); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid page state")
	}
	return c.JSON(http.StatusOK, h.uc.UpdateState(dashboardOf(c), sessionOf(c), ui))
}

func (h *DashboardHandler) DismissNotice(c echo.Context) error {
	if !h.uc.DismissNotice(c.Request().Context(), sessionOf(c), c.Param("id")) {
		return echo.NewHTTPError(http.StatusNotFound, "notice not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *DashboardHandler) Notices(c echo.Context) error {
	return c.JSON(http.StatusOK, h.uc.Notices(sessionOf(c)))
}

type actionPayload struct {
	Target    string         `json:"target"`
	Confirmed bool           `json:"confirmed"`
	Body      map[string]any `json:"body"`
}

// Action dispatches one mutation. Forms with files arrive as multipart; the rest as JSON.
func (h *DashboardHandler) Action(c echo.Context) error {
	req, err := readActionRequest(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.Action = c.Param("action")

	outcome, err := h.uc.Dispatch(c.Request().Context(), dashboardOf(c), sessionOf(c), req)
	if err != nil {
		return h.errors.Respond(c, err)
	}
	return c.JSON(outcomeStatus(outcome), outcome)
}

func outcomeStatus(outcome usecase.ActionOutcome) int {
	switch outcome.Kind {
	case usecase.OutcomeDone:
		return http.StatusOK
	case usecase.OutcomeNeedsConfirmation:
		return http.StatusAccepted
	case usecase.OutcomeInvalid:
		return http.StatusUnprocessableEntity
	}
	if outcome.Status >= http.StatusBadRequest {
		return outcome.Status
	}
	return http.StatusBadGateway
}

func readActionRequest(c echo.Context) (usecase.ActionRequest, error) {
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(ctype, echo.MIMEMultipartForm) {
		return readMultipartAction(c)
	}

	var payload actionPayload
	if c.Request().ContentLength != 0 {
		if err := json.NewDecoder(c.Request().Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
			return usecase.ActionRequest{}, errors.New("invalid action body")
		}
	}
	if payload.Target == "" {
		payload.Target = c.QueryParam("target")
	}
	return usecase.ActionRequest{
		Target:    strings.TrimSpace(payload.Target),
		Confirmed: payload.Confirmed,
		Body:      payload.Body,
	}, nil
}

// readMultipartAction turns form values into the body and files into parts the
// backend client streams on send.
func readMultipartAction(c echo.Context) (usecase.ActionRequest, error) {
	if err := c.Request().ParseMultipartForm(maxUploadMemory); err != nil {
		return usecase.ActionRequest{}, errors.New("invalid upload form")
	}
	form := c.Request().MultipartForm
	req := usecase.ActionRequest{Body: map[string]any{}}
	for name, values := range form.Value {
		if len(values) == 0 {
			continue
		}
		switch name {
		case "target":
			req.Target = strings.TrimSpace(values[0])
		case "confirmed":
			req.Confirmed, _ = strconv.ParseBool(values[0])
		default:
			req.Body[name] = values[0]
		}
	}
	for field, headers := range form.File {
		for _, fh := range headers {
			fh := fh
			req.Files = append(req.Files, port.FilePart{
				Field:       field,
				Name:        fh.Filename,
				ContentType: fh.Header.Get(echo.HeaderContentType),
				Size:        fh.Size,
				Open:        func() (io.ReadCloser, error) { return fh.Open() },
			})
		}
	}
	return req, nil
}
