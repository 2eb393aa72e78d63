package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"goldenPalmDash/internal/modules/dashboard/domain"
	"goldenPalmDash/internal/shared/normalization"
)

// Command is what the page sends over the socket: {"action":"ping"} or
// {"action":"dismiss","payload":{"id":"..."}}.
type Command struct {
	Action  string          `json:"action"`
	Topic   string          `json:"topic,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

func (c Command) actionKey() string {
	return normalizeAction(c.Action)
}

type CommandHandler func(ctx context.Context, client *Client, cmd Command)

type CommandProcessor struct {
	hub             *Hub
	handlers        map[string]CommandHandler
	fallback        CommandHandler
	fallbackTimeout time.Duration
	now             func() time.Time
	// entities limits subscribe to <entity>.<action> topics of these entities.
	entities map[string]struct{}
}

// NewCommandProcessor builds the command set of one socket. entities are the backend
// entities the socket's dashboard displays; subscribing to any other topic is refused.
func NewCommandProcessor(hub *Hub, fallback CommandHandler, entities ...string) *CommandProcessor {
	processor := &CommandProcessor{
		hub:             hub,
		handlers:        make(map[string]CommandHandler),
		fallback:        fallback,
		fallbackTimeout: 10 * time.Second,
		now:             time.Now,
		entities:        make(map[string]struct{}, len(entities)),
	}
	for _, entity := range entities {
		if e := normalization.NormalizeEntity(entity); e != "" {
			processor.entities[e] = struct{}{}
		}
	}
	processor.Register("subscribe", processor.handleSubscribe)
	processor.Register("unsubscribe", processor.handleUnsubscribe)
	processor.Register("ping", processor.handlePing)
	return processor
}

func (p *CommandProcessor) Register(action string, handler CommandHandler) {
	if handler == nil {
		return
	}
	key := normalizeAction(action)
	if key == "" {
		return
	}
	p.handlers[key] = handler
}

func (p *CommandProcessor) Process(client *Client, cmd Command) {
	if client == nil {
		return
	}

	action := cmd.actionKey()
	if action == "" {
		return
	}

	if handler, ok := p.handlers[action]; ok {
		handler(context.Background(), client, cmd)
		return
	}

	if p.fallback == nil {
		slog.Debug("ws command ignored", slog.String("sessionId", client.sessionID), slog.String("dashboard", client.dashboard), slog.String("action", action))
		p.SendError(client, "unknown command: "+action)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.fallbackTimeout)
	go func() {
		defer cancel()
		p.fallback(ctx, client, cmd)
	}()
}

func (p *CommandProcessor) handleSubscribe(_ context.Context, client *Client, cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	if topic == "" {
		return
	}
	if !p.allows(topic) {
		slog.Warn("ws subscribe refused", slog.String("sessionId", client.sessionID), slog.String("dashboard", client.dashboard), slog.String("topic", topic))
		p.SendError(client, "topic not allowed: "+topic)
		return
	}
	p.hub.subscribe(client, topic)
	slog.Debug("ws subscribe", slog.String("sessionId", client.sessionID), slog.String("topic", topic))
}

// allows reports whether topic belongs to one of the socket's entities.
func (p *CommandProcessor) allows(topic string) bool {
	entity, _, ok := strings.Cut(topic, ".")
	if !ok {
		return false
	}
	_, allowed := p.entities[normalization.NormalizeEntity(entity)]
	return allowed
}

func (p *CommandProcessor) handleUnsubscribe(_ context.Context, client *Client, cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	if topic == "" {
		return
	}
	p.hub.unsubscribe(client, topic)
}

func (p *CommandProcessor) handlePing(_ context.Context, client *Client, _ Command) {
	client.SendDomainMessage(&domain.Message{
		Topic:     domain.TopicSystemPong,
		Entity:    domain.SystemEntity,
		Action:    domain.ActionPong,
		Timestamp: p.now().UTC(),
	})
}

// SendError replies to one client on system.error.
func (p *CommandProcessor) SendError(client *Client, text string) {
	client.SendDomainMessage(&domain.Message{
		Topic:     domain.TopicSystemError,
		Entity:    domain.SystemEntity,
		Action:    domain.ActionError,
		Data:      map[string]string{"error": text},
		Timestamp: p.now().UTC(),
	})
}

func normalizeAction(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}
