package usecase

import (
	"testing"

	"goldenPalmDash/internal/modules/dashboard/domain"
)

func TestBookingTypeIsUpperCase(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		booking domain.Booking
		want    string
	}{
		"room booking":      {booking: domain.Booking{CheckInDate: "2026-11-01"}, want: "ROOM"},
		"typed event":       {booking: domain.Booking{Type: "event"}, want: "EVENT"},
		"event by its date": {booking: domain.Booking{EventDate: "2026-12-24"}, want: "EVENT"},
	}
	for name, tc := range tests {
		if got := bookingType(tc.booking); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", name, tc.want, got)
		}
	}
}
