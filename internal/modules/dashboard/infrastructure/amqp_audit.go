package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"goldenPalmDash/internal/modules/dashboard/application/port"
	"goldenPalmDash/internal/modules/dashboard/domain"
)

const DefaultAuditQueue = "dashboard.actions"

// AMQPAuditPublisher publishes one persistent JSON message per dispatched action to a
// durable queue on the default exchange. The connection is opened on first use and
// reopened after the broker drops it.
type AMQPAuditPublisher struct {
	url   string
	queue string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
	dial func(url string) (*amqp.Connection, error)
}

func NewAMQPAuditPublisher(url, queue string) *AMQPAuditPublisher {
	if strings.TrimSpace(queue) == "" {
		queue = DefaultAuditQueue
	}
	return &AMQPAuditPublisher{url: strings.TrimSpace(url), queue: queue, dial: amqp.Dial}
}

func (p *AMQPAuditPublisher) PublishAction(ctx context.Context, event domain.ActionAuditEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channelLocked()
	if err != nil {
		return err
	}
	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         "dashboard.action",
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		p.resetLocked()
		return fmt.Errorf("rabbitmq publish: %w", err)
	}
	slog.Debug("audit event published", slog.String("queue", p.queue), slog.String("action", event.Action), slog.Bool("succeeded", event.Succeeded))
	return nil
}

func (p *AMQPAuditPublisher) channelLocked() (*amqp.Channel, error) {
	if p.ch != nil && p.conn != nil && !p.conn.IsClosed() {
		return p.ch, nil
	}
	p.resetLocked()

	conn, err := p.dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *AMQPAuditPublisher) resetLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch = nil, nil
}

func (p *AMQPAuditPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked()
	return nil
}

// LogAuditPublisher is used when no broker URL is configured.
type LogAuditPublisher struct{}

func (LogAuditPublisher) PublishAction(_ context.Context, event domain.ActionAuditEvent) error {
	slog.Info("dashboard action",
		slog.String("dashboard", event.Dashboard),
		slog.String("action", event.Action),
		slog.String("target", event.Target),
		slog.String("userId", event.UserID),
		slog.Bool("succeeded", event.Succeeded),
		slog.Int("status", event.Status),
	)
	return nil
}

var (
	_ port.AuditPublisher = (*AMQPAuditPublisher)(nil)
	_ port.AuditPublisher = LogAuditPublisher{}
)
