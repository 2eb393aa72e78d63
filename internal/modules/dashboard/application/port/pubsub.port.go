package port

import (
	"context"

	"goldenPalmDash/internal/modules/dashboard/domain"
)

// Broadcaster pushes messages to websocket clients.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}

// TopicHandler handles messages consumed from one Kafka topic.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, msg *domain.Message) error
}

// AuditPublisher records dispatched actions.
type AuditPublisher interface {
	PublishAction(ctx context.Context, event domain.ActionAuditEvent) error
}
