package domain

import (
	"net/url"
	"sort"
	"strings"
)

// ListQuery carries the query parameters a panel forwards to its endpoint.
// Only names the endpoint declares are kept.
type ListQuery struct {
	Params map[string]string
}

// NewListQuery keeps the allowed, non-blank values from raw.
func NewListQuery(raw url.Values, allowed []string) ListQuery {
	q := ListQuery{Params: map[string]string{}}
	for _, name := range allowed {
		if value := strings.TrimSpace(raw.Get(name)); value != "" {
			q.Params[name] = value
		}
	}
	return q
}

func (q ListQuery) Get(name string) string {
	return q.Params[name]
}

func (q ListQuery) Values() url.Values {
	values := url.Values{}
	for key, value := range q.Params {
		values.Set(key, value)
	}
	return values
}

// CanonicalKey is stable regardless of map order.
func (q ListQuery) CanonicalKey() string {
	if len(q.Params) == 0 {
		return ""
	}
	keys := make([]string, 0, len(q.Params))
	for key := range q.Params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	var builder strings.Builder
	for i, key := range keys {
		if i > 0 {
			builder.WriteByte('&')
		}
		builder.WriteString(strings.ToLower(key))
		builder.WriteByte('=')
		builder.WriteString(q.Params[key])
	}
	return builder.String()
}
