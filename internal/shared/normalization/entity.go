package normalization

import "strings"

// entityAliases maps the entity names used by backend events and routes to their canonical form.
var entityAliases = map[string]string{
	"":        "",
	"-":       "",
	"default": "",

	"booking":       "bookings",
	"bookings":      "bookings",
	"room-booking":  "bookings",
	"event-booking": "event-bookings",
	"eventbooking":  "event-bookings",

	"event-bookings": "event-bookings",
	"eventbookings":  "event-bookings",

	"payment":  "payments",
	"payments": "payments",

	"refund":          "refund-requests",
	"refunds":         "refund-requests",
	"refund-request":  "refund-requests",
	"refund-requests": "refund-requests",
	"refundrequest":   "refund-requests",
	"refundrequests":  "refund-requests",

	"room":  "rooms",
	"rooms": "rooms",

	"event-space":  "event-spaces",
	"event-spaces": "event-spaces",
	"eventspace":   "event-spaces",
	"eventspaces":  "event-spaces",

	"user":  "users",
	"users": "users",
	"staff": "users",

	"notification":  "notifications",
	"notifications": "notifications",

	"photo":  "photos",
	"photos": "photos",
}

// NormalizeEntity converts entity spellings (singular, plural, snake or kebab case) into the canonical name.
//
// Example:
//
//	NormalizeEntity("Booking") => "bookings"
//	NormalizeEntity("EVENT_SPACE") => "event-spaces"
func NormalizeEntity(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	normalized := strings.ReplaceAll(trimmed, "_", "-")
	if canonical, found := entityAliases[normalized]; found {
		return canonical
	}
	return normalized
}

// IsValidEntity reports whether raw names an entity the dashboards display.
func IsValidEntity(raw string) bool {
	normalized := NormalizeEntity(raw)
	if normalized == "" {
		return false
	}
	for _, canonical := range entityAliases {
		if canonical == normalized {
			return true
		}
	}
	return false
}
