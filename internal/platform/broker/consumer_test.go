package broker

import (
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

func TestDecodeMessage(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tests := map[string]struct {
		msg        kafka.Message
		topic      string
		entity     string
		action     string
		resourceID string
	}{
		"envelope with numeric id": {
			msg:        kafka.Message{Topic: "hotel.bookings", Time: at, Value: []byte(`{"entity":"Booking","action":"UPDATED","resourceId":281}`)},
			topic:      "bookings.updated",
			entity:     "bookings",
			action:     "updated",
			resourceID: "281",
		},
		"entity taken from kafka topic": {
			msg:        kafka.Message{Topic: "hotel.refunds", Value: []byte(`{"action":"approved","resourceId":"RR-4"}`)},
			topic:      "refund-requests.approved",
			entity:     "refund-requests",
			action:     "approved",
			resourceID: "RR-4",
		},
		"explicit topic is kept": {
			msg:    kafka.Message{Topic: "hotel.rooms", Value: []byte(`{"entity":"room","action":"created","topic":"rooms.custom"}`)},
			topic:  "rooms.custom",
			entity: "rooms",
			action: "created",
		},
		"non json infers from three part topic": {
			msg:    kafka.Message{Topic: "hotel.payment.refunded", Value: []byte("not json")},
			topic:  "payments.refunded",
			entity: "payments",
			action: "refunded",
		},
		"non json with short topic": {
			msg:    kafka.Message{Topic: "hotel.users", Value: []byte("???")},
			topic:  "users.unknown",
			entity: "users",
			action: "unknown",
		},
	}

	for name, tc := range tests {
		got := decodeMessage(tc.msg)
		if got.Topic != tc.topic || got.Entity != tc.entity || got.Action != tc.action || got.ResourceID != tc.resourceID {
			t.Fatalf("%s: got topic=%q entity=%q action=%q id=%q", name, got.Topic, got.Entity, got.Action, got.ResourceID)
		}
		if !tc.msg.Time.IsZero() && !got.Timestamp.Equal(at) {
			t.Fatalf("%s: expected kafka timestamp, got %s", name, got.Timestamp)
		}
	}
}
