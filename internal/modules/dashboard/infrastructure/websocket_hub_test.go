package infrastructure

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goldenPalmDash/internal/modules/dashboard/domain"
)

func drain(c *Client) []domain.Message {
	var out []domain.Message
	for {
		select {
		case raw, ok := <-c.send:
			if !ok {
				return out
			}
			var msg domain.Message
			if err := json.Unmarshal(raw, &msg); err == nil {
				out = append(out, msg)
			}
		default:
			return out
		}
	}
}

func TestHubBroadcastTargetsSessionAndDashboard(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	a1 := NewClient(hub, nil, "u1", "sess-a", "manager", 4, nil)
	a2 := NewClient(hub, nil, "u1", "sess-a", "manager", 4, nil) // second tab
	aOther := NewClient(hub, nil, "u1", "sess-a", "admin", 4, nil)
	b := NewClient(hub, nil, "u2", "sess-b", "manager", 4, nil)
	for _, c := range []*Client{a1, a2, aOther, b} {
		hub.AttachClient(c, domain.ClientTopics())
	}
	require.Equal(t, 4, hub.Clients())

	hub.Broadcast(context.Background(), &domain.Message{
		Topic:    domain.TopicPanelsRefresh,
		Metadata: map[string]string{domain.MetaSessionID: "sess-a", domain.MetaDashboard: "manager"},
	})
	hub.Broadcast(context.Background(), &domain.Message{
		Topic:    domain.NoticeTopic(domain.ActionPushed),
		Metadata: map[string]string{domain.MetaSessionID: "sess-a"},
	})
	hub.Broadcast(context.Background(), &domain.Message{Topic: "bookings.updated"})

	tests := map[string]struct {
		client *Client
		topics []string
	}{
		"first tab":       {client: a1, topics: []string{"panels.refresh", "notices.pushed"}},
		"second tab":      {client: a2, topics: []string{"panels.refresh", "notices.pushed"}},
		"other dashboard": {client: aOther, topics: []string{"notices.pushed"}},
		"other session":   {client: b, topics: nil},
	}
	for name, tc := range tests {
		var got []string
		for _, m := range drain(tc.client) {
			got = append(got, m.Topic)
		}
		if len(got) != len(tc.topics) {
			t.Fatalf("%s: expected %v, got %v", name, tc.topics, got)
		}
		for i := range got {
			if got[i] != tc.topics[i] {
				t.Fatalf("%s: expected %v, got %v", name, tc.topics, got)
			}
		}
	}
}

func TestHubDetachesSlowClient(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	slow := NewClient(hub, nil, "u1", "sess-a", "manager", 1, nil)
	hooks := 0
	slow.AddCloseHook(func(*Client) { hooks++ })
	hub.AttachClient(slow, []string{domain.TopicPanelsRefresh})

	msg := &domain.Message{Topic: domain.TopicPanelsRefresh}
	hub.Broadcast(context.Background(), msg)
	hub.Broadcast(context.Background(), msg)

	require.Eventually(t, func() bool { return hub.Clients() == 0 }, time.Second, 10*time.Millisecond)
	slow.close()
	assert.Equal(t, 1, hooks)

	// Sends after close are dropped without panicking.
	assert.True(t, slow.enqueue([]byte("late")))
}

func TestCommandProcessorPingAndUnknown(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	processor := NewCommandProcessor(hub, nil, "booking")
	client := NewClient(hub, nil, "u1", "sess-a", "manager", 8, processor)
	hub.AttachClient(client, nil)

	processor.Process(client, Command{Action: "PING"})
	processor.Process(client, Command{Action: "subscribe", Topic: "bookings.updated"})
	processor.Process(client, Command{Action: "launch"})

	msgs := drain(client)
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.TopicSystemPong, msgs[0].Topic)
	assert.Equal(t, domain.TopicSystemError, msgs[1].Topic)

	hub.Broadcast(context.Background(), &domain.Message{Topic: "bookings.updated"})
	msgs = drain(client)
	require.Len(t, msgs, 1)
	assert.Equal(t, "bookings.updated", msgs[0].Topic)
}

func TestCommandProcessorRefusesTopicsOutsideDashboardEntities(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	processor := NewCommandProcessor(hub, nil, "bookings", "rooms")
	client := NewClient(hub, nil, "u1", "sess-fd", "frontdesk", 8, processor)
	hub.AttachClient(client, nil)

	tests := map[string]struct {
		topic   string
		allowed bool
	}{
		"own entity":        {topic: "bookings.updated", allowed: true},
		"alias of own":      {topic: "room.status_changed", allowed: true},
		"users":             {topic: "users.updated"},
		"payments":          {topic: "payments.refunded"},
		"no action segment": {topic: "bookings"},
	}

	for name, tc := range tests {
		processor.Process(client, Command{Action: "subscribe", Topic: tc.topic})
		msgs := drain(client)
		if tc.allowed && len(msgs) != 0 {
			t.Fatalf("%s: expected silent subscribe, got %+v", name, msgs)
		}
		if !tc.allowed && (len(msgs) != 1 || msgs[0].Topic != domain.TopicSystemError) {
			t.Fatalf("%s: expected a system.error reply, got %+v", name, msgs)
		}
	}

	hub.Broadcast(context.Background(), &domain.Message{Topic: "users.updated", Entity: "users", Data: map[string]any{"email": "admin@x", "role": "ADMIN"}})
	hub.Broadcast(context.Background(), &domain.Message{Topic: "payments.refunded", Entity: "payments", Data: map[string]any{"amount": 900}})
	hub.Broadcast(context.Background(), &domain.Message{Topic: "bookings.updated", Entity: "bookings"})

	msgs := drain(client)
	require.Len(t, msgs, 1)
	assert.Equal(t, "bookings.updated", msgs[0].Topic)
}
