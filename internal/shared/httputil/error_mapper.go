package httputil

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// HTTPErrorInfo contains the HTTP status code and message for an error.
type HTTPErrorInfo struct {
	Status  int
	Message string
}

// ErrorMapping represents a single error to HTTP status/message mapping.
type ErrorMapping struct {
	Error   error
	Status  int
	Message string
}

// StatusCarrier is implemented by errors that already know the upstream status.
type StatusCarrier interface {
	StatusCode() int
}

// MessageCarrier is implemented by errors that carry a message safe to show to users.
type MessageCarrier interface {
	PublicMessage() string
}

// ErrorMapper maps domain errors to HTTP status codes and messages.
type ErrorMapper struct {
	mappings       []ErrorMapping
	defaultStatus  int
	defaultMessage string
	passThrough    bool
}

// NewErrorMapper creates a new ErrorMapper with default settings.
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{
		mappings:       make([]ErrorMapping, 0),
		defaultStatus:  http.StatusInternalServerError,
		defaultMessage: "internal server error",
	}
}

// WithMapping adds an error mapping to the mapper.
func (m *ErrorMapper) WithMapping(err error, status int, message string) *ErrorMapper {
	m.mappings = append(m.mappings, ErrorMapping{
		Error:   err,
		Status:  status,
		Message: message,
	})
	return m
}

// WithDefault sets the default status and message for unmatched errors.
func (m *ErrorMapper) WithDefault(status int, message string) *ErrorMapper {
	m.defaultStatus = status
	m.defaultMessage = message
	return m
}

// WithUpstreamPassThrough makes matched mappings keep the upstream status and message
// when the error carries them.
func (m *ErrorMapper) WithUpstreamPassThrough() *ErrorMapper {
	m.passThrough = true
	return m
}

// Map converts an error to HTTP status and message.
func (m *ErrorMapper) Map(err error) HTTPErrorInfo {
	if err == nil {
		return HTTPErrorInfo{Status: http.StatusOK, Message: ""}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return HTTPErrorInfo{Status: http.StatusGatewayTimeout, Message: "request timeout"}
	}
	if errors.Is(err, context.Canceled) {
		return HTTPErrorInfo{Status: http.StatusServiceUnavailable, Message: "request cancelled"}
	}

	for _, mapping := range m.mappings {
		if errors.Is(err, mapping.Error) {
			info := HTTPErrorInfo{Status: mapping.Status, Message: mapping.Message}
			if m.passThrough {
				info = upstream(err, info)
			}
			return info
		}
	}

	info := HTTPErrorInfo{Status: m.defaultStatus, Message: m.defaultMessage}
	if m.passThrough {
		info = upstream(err, info)
	}
	return info
}

func upstream(err error, fallback HTTPErrorInfo) HTTPErrorInfo {
	info := fallback
	var sc StatusCarrier
	if errors.As(err, &sc) && sc.StatusCode() >= http.StatusBadRequest {
		info.Status = sc.StatusCode()
	}
	var mc MessageCarrier
	if errors.As(err, &mc) {
		if msg := strings.TrimSpace(mc.PublicMessage()); msg != "" {
			info.Message = msg
		}
	}
	return info
}
