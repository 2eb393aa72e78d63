package handler

import (
	"context"
	"net/url"
	"sync"
	"testing"

	"goldenPalmDash/internal/modules/dashboard/application/usecase"
	"goldenPalmDash/internal/modules/dashboard/domain"
)

type captureBroadcaster struct {
	mu   sync.Mutex
	msgs []*domain.Message
}

func (c *captureBroadcaster) Broadcast(_ context.Context, msg *domain.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msg)
}

func TestEntityStreamHandlerFiltersActions(t *testing.T) {
	t.Parallel()

	capture := &captureBroadcaster{}
	h := NewEntityStreamHandler("Booking", "hotel.bookings", []string{"created", "UPDATED"}, usecase.NewBroadcastUseCase(capture), nil)
	if h.Topic() != "hotel.bookings" {
		t.Fatalf("unexpected topic %q", h.Topic())
	}

	tests := map[string]struct {
		msg       *domain.Message
		delivered bool
		topic     string
	}{
		"allowed action gets a canonical topic": {
			msg:       &domain.Message{Action: "updated", ResourceID: "7"},
			delivered: true,
			topic:     "bookings.updated",
		},
		"existing topic is kept": {
			msg:       &domain.Message{Topic: "bookings.custom", Action: "created"},
			delivered: true,
			topic:     "bookings.custom",
		},
		"topic of another entity is replaced": {
			msg:       &domain.Message{Topic: "users.updated", Action: "created"},
			delivered: true,
			topic:     "bookings.created",
		},
		"filtered action": {
			msg: &domain.Message{Action: "snapshot"},
		},
	}

	for name, tc := range tests {
		before := len(capture.msgs)
		if err := h.Handle(context.Background(), tc.msg); err != nil {
			t.Fatalf("%s: unexpected error %v", name, err)
		}
		delivered := len(capture.msgs) > before
		if delivered != tc.delivered {
			t.Fatalf("%s: expected delivered=%v", name, tc.delivered)
		}
		if !delivered {
			continue
		}
		got := capture.msgs[len(capture.msgs)-1]
		if got.Topic != tc.topic || got.Entity != "bookings" {
			t.Fatalf("%s: unexpected message %+v", name, got)
		}
	}

	if err := h.Handle(context.Background(), nil); err != nil {
		t.Fatalf("nil message: %v", err)
	}
}

func TestEntityStreamHandlerRefreshesWatchers(t *testing.T) {
	t.Parallel()

	capture := &captureBroadcaster{}
	broadcast := usecase.NewBroadcastUseCase(capture)
	fetcher := fetcherFunc(func(context.Context, string, string) (any, error) {
		return []any{map[string]any{"id": 1, "bookingReference": "BK-1", "status": "PENDING"}}, nil
	})
	live := usecase.NewLiveRefresh(usecase.NewCatalog(), fetcher, usecase.NewPageStates(nil), broadcast)
	release := live.Attach(domain.Session{ID: "s1", Token: "t", Role: domain.RoleManager}, "manager")
	defer release()

	h := NewEntityStreamHandler("bookings", "hotel.bookings", nil, broadcast, live)
	if err := h.Handle(context.Background(), &domain.Message{Action: "created"}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	refreshed := 0
	for _, m := range capture.msgs {
		if m.Topic == domain.TopicPanelsRefresh {
			refreshed++
		}
	}
	// The manager's bookings and pending-bookings panels both carry bookings.
	if refreshed != 2 {
		t.Fatalf("expected 2 panel refreshes, got %d", refreshed)
	}
}

type fetcherFunc func(ctx context.Context, token, path string) (any, error)

func (f fetcherFunc) Fetch(ctx context.Context, token, path string, _ url.Values) (any, error) {
	return f(ctx, token, path)
}
