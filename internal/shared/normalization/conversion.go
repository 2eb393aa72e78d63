package normalization

import (
	"encoding/json"
	"strconv"
	"strings"
)

// AsString trims and returns the string representation of value when possible.
// Numbers are formatted without exponent so backend ids survive the trip.
func AsString(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case json.Number:
		return typed.String()
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return ""
	}
}

// AsInt coerces numeric values supported by the REST layer into Go ints.
func AsInt(value any) int {
	switch typed := value.(type) {
	case float64:
		return int(typed)
	case float32:
		return int(typed)
	case int:
		return typed
	case int32:
		return int(typed)
	case int64:
		return int(typed)
	case json.Number:
		if n, err := typed.Int64(); err == nil {
			return int(n)
		}
	}
	return 0
}

// AsFloat64 coerces numeric values (including numeric strings) into float64.
// ok is false when value holds nothing numeric.
func AsFloat64(value any) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case json.Number:
		f, err := typed.Float64()
		return f, err == nil
	case string:
		if trimmed := strings.TrimSpace(typed); trimmed != "" {
			if parsed, err := strconv.ParseFloat(trimmed, 64); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}

// AsBool accepts booleans and the usual textual spellings.
func AsBool(value any) bool {
	switch typed := value.(type) {
	case bool:
		return typed
	case string:
		switch strings.ToLower(strings.TrimSpace(typed)) {
		case "1", "true", "yes", "on":
			return true
		}
	}
	return false
}

// AsInterfaceSlice normalizes different collection types into a []any.
func AsInterfaceSlice(value any) []any {
	switch typed := value.(type) {
	case []any:
		return typed
	case []map[string]any:
		items := make([]any, 0, len(typed))
		for _, entry := range typed {
			items = append(items, entry)
		}
		return items
	default:
		return nil
	}
}

// MapFromPayload unwraps common envelope structures (e.g. {"data": {...}})
// into a plain map.
func MapFromPayload(value any) map[string]any {
	if value == nil {
		return nil
	}
	if typed, ok := value.(map[string]any); ok {
		if data, ok := typed["data"].(map[string]any); ok {
			return data
		}
		return typed
	}
	return nil
}

// ListFromPayload unwraps a list that is either bare or nested under data, items or content.
// ok is false when no list shape is found.
func ListFromPayload(value any) ([]any, bool) {
	if value == nil {
		return nil, true
	}
	if items := AsInterfaceSlice(value); items != nil {
		return items, true
	}
	typed, isMap := value.(map[string]any)
	if !isMap {
		return nil, false
	}
	for _, key := range []string{"data", "items", "content"} {
		raw, present := typed[key]
		if !present {
			continue
		}
		if raw == nil {
			return nil, true
		}
		if items := AsInterfaceSlice(raw); items != nil {
			return items, true
		}
	}
	return nil, false
}
