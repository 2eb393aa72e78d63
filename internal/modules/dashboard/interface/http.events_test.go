package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldenPalmDash/internal/modules/dashboard/domain"
)

type recordingSink struct {
	topics  map[string]bool
	err     error
	sources []string
	msgs    []*domain.Message
}

func (s *recordingSink) Handles(topic string) bool { return s.topics[topic] }

func (s *recordingSink) Dispatch(_ context.Context, source string, msg *domain.Message) error {
	s.sources = append(s.sources, source)
	s.msgs = append(s.msgs, msg)
	return s.err
}

func postEvent(h echo.HandlerFunc, key, body string) *httptest.ResponseRecorder {
	e := echo.New()
	e.POST("/events", h)
	req := httptest.NewRequest(http.MethodPost, "/events", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if key != "" {
		req.Header.Set(eventsKeyHeader, key)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestEventsHandlerStatuses(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		key    string
		body   string
		err    error
		status int
	}{
		"missing key":     {body: `{"topic":"hotel.bookings","action":"created"}`, status: http.StatusUnauthorized},
		"wrong key":       {key: "nope", body: `{"topic":"hotel.bookings","action":"created"}`, status: http.StatusUnauthorized},
		"missing action":  {key: "k", body: `{"topic":"hotel.bookings"}`, status: http.StatusBadRequest},
		"unknown topic":   {key: "k", body: `{"topic":"hotel.spa","action":"created"}`, status: http.StatusNotFound},
		"dispatch failed": {key: "k", body: `{"topic":"hotel.bookings","action":"created"}`, err: errors.New("boom"), status: http.StatusInternalServerError},
		"accepted":        {key: "k", body: `{"topic":"hotel.bookings","action":"created"}`, status: http.StatusAccepted},
	}

	for name, tc := range tests {
		sink := &recordingSink{topics: map[string]bool{"hotel.bookings": true}, err: tc.err}
		rec := postEvent(NewEventsHTTPHandler(sink, "k"), tc.key, tc.body)
		if rec.Code != tc.status {
			t.Fatalf("%s: expected %d, got %d (%s)", name, tc.status, rec.Code, rec.Body.String())
		}
	}
}

func TestEventsHandlerBuildsMessage(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{topics: map[string]bool{"hotel.payments": true}}
	rec := postEvent(NewEventsHTTPHandler(sink, "k"), "k",
		`{"topic":" hotel.payments ","entity":"payment","action":"Refunded","resourceId":"91","data":{"amount":120}}`)
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, sink.msgs, 1)

	assert.Equal(t, []string{"hotel.payments"}, sink.sources)
	msg := sink.msgs[0]
	assert.Equal(t, "payment", msg.Entity)
	assert.Equal(t, "refunded", msg.Action)
	assert.Equal(t, "91", msg.ResourceID)
	assert.Empty(t, msg.Topic)
	assert.False(t, msg.Timestamp.IsZero())
	assert.Contains(t, rec.Body.String(), `"accepted":true`)
}
