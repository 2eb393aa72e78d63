package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldenPalmDash/internal/modules/dashboard/application/port"
)

func TestBackendClientFetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("unexpected auth header %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("unexpected accept header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"path": r.URL.Path, "status": r.URL.Query().Get("status")})
	}))
	defer srv.Close()

	client := NewBackendClient(srv.URL, time.Second, srv.Client())
	payload, err := client.Fetch(context.Background(), " tok ", "/api/admin/bookings", url.Values{"status": {"PENDING"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"path": "/api/admin/bookings", "status": "PENDING"}, payload)
}

func TestBackendClientErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		status  int
		body    string
		kind    error
		message string
	}{
		"json message":  {status: http.StatusBadRequest, body: `{"message":"Room is occupied"}`, kind: port.ErrRejected, message: "Room is occupied"},
		"json error":    {status: http.StatusConflict, body: `{"error":"Duplicate username"}`, kind: port.ErrRejected, message: "Duplicate username"},
		"plain text":    {status: http.StatusInternalServerError, body: "database down", kind: port.ErrRejected, message: "database down"},
		"html page":     {status: http.StatusBadGateway, body: "<html>bad gateway</html>", kind: port.ErrRejected},
		"unauthorized":  {status: http.StatusUnauthorized, kind: port.ErrUnauthorized},
		"forbidden":     {status: http.StatusForbidden, body: `{"message":"Admins only"}`, kind: port.ErrForbidden, message: "Admins only"},
		"not found":     {status: http.StatusNotFound, kind: port.ErrNotFound},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			}))
			defer srv.Close()

			client := NewBackendClient(srv.URL, time.Second, srv.Client())
			_, err := client.Fetch(context.Background(), "tok", "/x", nil)
			if !errors.Is(err, tc.kind) {
				t.Fatalf("expected %v, got %v", tc.kind, err)
			}
			var backendErr *port.BackendError
			if !errors.As(err, &backendErr) {
				t.Fatalf("expected BackendError, got %T", err)
			}
			if backendErr.Status != tc.status || backendErr.Message != tc.message {
				t.Fatalf("expected %d %q, got %d %q", tc.status, tc.message, backendErr.Status, backendErr.Message)
			}
		})
	}
}

func TestBackendClientUnavailable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client := NewBackendClient(base, 200*time.Millisecond, nil)
	_, err := client.Fetch(context.Background(), "tok", "/api/frontdesk/statistics", nil)
	require.ErrorIs(t, err, port.ErrUnavailable)
}

func TestBackendClientSendJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "event", r.URL.Query().Get("type"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "duplicate", body["reason"])
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewBackendClient(srv.URL, time.Second, srv.Client())
	result, err := client.Send(context.Background(), "tok", port.MutationRequest{
		Method: "delete",
		Path:   "/api/admin/bookings/9",
		Query:  url.Values{"type": {"event"}},
		Body:   map[string]any{"reason": "duplicate"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, result.Status)
	assert.Nil(t, result.Payload)
}

func TestBackendClientSendMultipart(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		files := r.MultipartForm.File["files"]
		if !assert.Len(t, files, 2) {
			return
		}
		assert.Equal(t, "pool.jpg", files[0].Filename)
		assert.Equal(t, "image/jpeg", files[0].Header.Get("Content-Type"))
		f, err := files[1].Open()
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		raw, _ := io.ReadAll(f)
		assert.Equal(t, "second", string(raw))
		_, _ = io.WriteString(w, `{"message":"2 photos uploaded"}`)
	}))
	defer srv.Close()

	part := func(name, content string) port.FilePart {
		return port.FilePart{
			Name:        name,
			ContentType: "image/jpeg",
			Open:        func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(content)), nil },
		}
	}
	client := NewBackendClient(srv.URL, time.Second, srv.Client())
	result, err := client.Send(context.Background(), "tok", port.MutationRequest{
		Method: http.MethodPost,
		Path:   "/api/photos/rooms/3/upload",
		Files:  []port.FilePart{part("pool.jpg", "first"), part("spa.jpg", "second")},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"message": "2 photos uploaded"}, result.Payload)
}

func TestBackendClientSendPlainTextSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, "User registered successfully\n")
	}))
	defer srv.Close()

	client := NewBackendClient(srv.URL, time.Second, srv.Client())
	result, err := client.Send(context.Background(), "tok", port.MutationRequest{
		Method: http.MethodPost,
		Path:   "/api/auth/register",
		Body:   map[string]any{"username": "ana"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.Status)
	assert.Equal(t, "User registered successfully", result.Payload)
}
