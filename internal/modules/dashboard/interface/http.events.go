package transport

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"goldenPalmDash/internal/modules/dashboard/domain"
)

const eventsKeyHeader = "X-Api-Key"

// EventSink receives pushed entity events. *infrastructure.HandlerRegistry satisfies it.
type EventSink interface {
	Handles(topic string) bool
	Dispatch(ctx context.Context, source string, msg *domain.Message) error
}

// EventRequest is an entity event pushed by the backend or a workflow tool.
// Topic is the stream name the event would have been published on.
type EventRequest struct {
	Topic      string         `json:"topic"`
	Entity     string         `json:"entity,omitempty"`
	Action     string         `json:"action"`
	ResourceID string         `json:"resourceId,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
}

type EventResponse struct {
	Accepted bool   `json:"accepted"`
	Topic    string `json:"topic"`
	Action   string `json:"action"`
}

// NewEventsHTTPHandler feeds pushed events through the same handlers the Kafka consumers use.
func NewEventsHTTPHandler(sink EventSink, key string) echo.HandlerFunc {
	return func(c echo.Context) error {
		given := c.Request().Header.Get(eventsKeyHeader)
		if subtle.ConstantTimeCompare([]byte(given), []byte(key)) != 1 {
			slog.Warn("events http: bad api key", slog.String("ip", c.RealIP()))
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid api key")
		}

		var req EventRequest
		if err := c.Bind(&req); err != nil {
			slog.Warn("events http: invalid request body", slog.Any("error", err))
			return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
		req.Topic = strings.TrimSpace(req.Topic)
		req.Action = strings.ToLower(strings.TrimSpace(req.Action))
		if req.Topic == "" || req.Action == "" {
			return echo.NewHTTPError(http.StatusBadRequest, "topic and action are required")
		}
		if !sink.Handles(req.Topic) {
			return echo.NewHTTPError(http.StatusNotFound, "no handler for topic")
		}

		msg := &domain.Message{
			Entity:     req.Entity,
			Action:     req.Action,
			ResourceID: req.ResourceID,
			Data:       req.Data,
			Timestamp:  time.Now().UTC(),
		}
		if err := sink.Dispatch(c.Request().Context(), req.Topic, msg); err != nil {
			slog.Error("events http: dispatch failed", slog.String("topic", req.Topic), slog.Any("error", err))
			return echo.NewHTTPError(http.StatusInternalServerError, "event not delivered")
		}

		slog.Info("events http: event accepted", slog.String("topic", req.Topic), slog.String("action", req.Action), slog.String("resourceId", req.ResourceID))
		return c.JSON(http.StatusAccepted, EventResponse{Accepted: true, Topic: req.Topic, Action: req.Action})
	}
}
