package usecase

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrMissingTarget    = errors.New("missing target")
	ErrUnknownDashboard = errors.New("unknown dashboard")
	ErrUnknownPanel     = errors.New("unknown panel")
	ErrUnknownChart     = errors.New("unknown chart")
	ErrUnknownReport    = errors.New("unknown report")
	ErrUnknownAction    = errors.New("unknown action")
	ErrMalformedPayload = errors.New("malformed backend payload")
)

// Endpoint describes how to reach one backend resource.
type Endpoint struct {
	// PathTemplate may hold one %s for the target id.
	PathTemplate   string
	RequiresTarget bool
	QueryParams    []string
}

// BuildPath resolves the path for target.
func (e Endpoint) BuildPath(target string) (string, error) {
	path := strings.TrimSpace(e.PathTemplate)
	if path == "" {
		return "", fmt.Errorf("endpoint missing path")
	}
	if !e.RequiresTarget {
		return path, nil
	}
	trimmed := strings.TrimSpace(target)
	if trimmed == "" {
		return "", ErrMissingTarget
	}
	return fmt.Sprintf(path, url.PathEscape(trimmed)), nil
}

// Query keeps only the declared parameters of raw.
func (e Endpoint) Query(raw url.Values) url.Values {
	values := url.Values{}
	for _, key := range e.QueryParams {
		if value := strings.TrimSpace(raw.Get(key)); value != "" {
			values.Set(key, value)
		}
	}
	return values
}
