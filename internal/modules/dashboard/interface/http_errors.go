package transport

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"goldenPalmDash/internal/modules/dashboard/application/port"
	"goldenPalmDash/internal/modules/dashboard/application/usecase"
	"goldenPalmDash/internal/modules/dashboard/domain"
	"goldenPalmDash/internal/shared/httputil"
)

// ErrorMapper turns use case errors into HTTP responses.
type ErrorMapper struct {
	mapper *httputil.ErrorMapper
}

func NewErrorMapper() *ErrorMapper {
	m := httputil.NewErrorMapper().
		WithMapping(usecase.ErrUnknownDashboard, http.StatusNotFound, "unknown dashboard").
		WithMapping(usecase.ErrUnknownPanel, http.StatusNotFound, "unknown panel").
		WithMapping(usecase.ErrUnknownChart, http.StatusNotFound, "unknown chart").
		WithMapping(usecase.ErrUnknownReport, http.StatusNotFound, "unknown report").
		WithMapping(usecase.ErrUnknownAction, http.StatusNotFound, "unknown action").
		WithMapping(usecase.ErrMissingTarget, http.StatusBadRequest, "please select a record first").
		WithMapping(port.ErrUnauthorized, http.StatusUnauthorized, "please log in to continue").
		WithMapping(port.ErrForbidden, http.StatusForbidden, "forbidden").
		WithMapping(port.ErrNotFound, http.StatusNotFound, "not found").
		WithMapping(port.ErrRejected, http.StatusBadGateway, "backend rejected the request").
		WithMapping(port.ErrUnavailable, http.StatusBadGateway, "backend unavailable").
		WithMapping(usecase.ErrMalformedPayload, http.StatusBadGateway, "unexpected backend response").
		WithUpstreamPassThrough()
	return &ErrorMapper{mapper: m}
}

type errorBody struct {
	Error  string             `json:"error"`
	Errors domain.FieldErrors `json:"errors,omitempty"`
}

// Respond writes err. Guard denials and validation failures keep their own shapes.
func (m *ErrorMapper) Respond(c echo.Context, err error) error {
	var deniedErr *usecase.DeniedError
	if errors.As(err, &deniedErr) {
		return denied(c, deniedErr.Decision)
	}
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusUnprocessableEntity, errorBody{Error: "validation failed", Errors: validationErr.Fields})
	}

	info := m.mapper.Map(err)
	if info.Status >= http.StatusInternalServerError {
		slog.Error("request failed", slog.String("path", c.Path()), slog.Int("status", info.Status), slog.Any("error", err))
	} else {
		slog.Warn("request rejected", slog.String("path", c.Path()), slog.Int("status", info.Status), slog.Any("error", err))
	}
	return c.JSON(info.Status, errorBody{Error: info.Message})
}
