package port

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
)

var (
	// ErrUnauthorized is a backend 401: the token is missing, expired or revoked.
	ErrUnauthorized = errors.New("backend unauthorized")
	// ErrForbidden is a backend 403: the caller's role may not use the endpoint.
	ErrForbidden = errors.New("backend forbidden")
	ErrNotFound  = errors.New("backend resource not found")
	// ErrRejected covers every other non-2xx status.
	ErrRejected = errors.New("backend rejected request")
	// ErrUnavailable means the backend could not be reached.
	ErrUnavailable = errors.New("backend unavailable")
)

// BackendError carries the status and server message of a failed backend call.
type BackendError struct {
	Status  int
	Message string
	Kind    error
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s (status %d)", e.Kind, e.Status)
	}
	return fmt.Sprintf("%s (status %d): %s", e.Kind, e.Status, e.Message)
}

func (e *BackendError) Unwrap() error { return e.Kind }

func (e *BackendError) StatusCode() int { return e.Status }

func (e *BackendError) PublicMessage() string { return e.Message }

// ServerMessage returns the backend's own message for err, or "".
func ServerMessage(err error) string {
	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		return backendErr.Message
	}
	return ""
}

// ResourceFetcher performs authenticated GETs against the backend REST API.
type ResourceFetcher interface {
	Fetch(ctx context.Context, token, path string, query url.Values) (any, error)
}

// FilePart is one file of a multipart mutation.
type FilePart struct {
	Field       string
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// MutationRequest is a single non-GET call. Files switches the body to multipart.
type MutationRequest struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Files  []FilePart
}

// MutationResult is the decoded 2xx response of a mutation.
type MutationResult struct {
	Status  int
	Payload any
}

// Mutator sends mutations to the backend. Implementations never retry.
type Mutator interface {
	Send(ctx context.Context, token string, req MutationRequest) (MutationResult, error)
}

// Backend is what the dashboards need from the REST API.
type Backend interface {
	ResourceFetcher
	Mutator
}
