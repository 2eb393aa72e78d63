package infrastructure

import (
	"context"
	"sync"

	"goldenPalmDash/internal/modules/dashboard/application/port"
	"goldenPalmDash/internal/modules/dashboard/domain"
)

// HandlerRegistry routes consumed messages to the handler registered for their Kafka topic.
type HandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[string]port.TopicHandler
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[string]port.TopicHandler)}
}

func (r *HandlerRegistry) Register(h port.TopicHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[h.Topic()] = h
}

// Topics lists the Kafka topics that have a handler.
func (r *HandlerRegistry) Topics() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	topics := make([]string, 0, len(r.handlers))
	for topic := range r.handlers {
		topics = append(topics, topic)
	}
	return topics
}

// Dispatch looks the handler up by the source Kafka topic, then by the event's own topic.
func (r *HandlerRegistry) Dispatch(ctx context.Context, source string, msg *domain.Message) error {
	r.mu.RLock()
	handler, ok := r.handlers[source]
	if !ok && msg != nil {
		handler, ok = r.handlers[msg.Topic]
	}
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	return handler.Handle(ctx, msg)
}

// Handles reports whether a handler is registered for topic.
func (r *HandlerRegistry) Handles(topic string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.handlers[topic]
	return ok
}
