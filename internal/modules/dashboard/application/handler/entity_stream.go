package handler

import (
	"context"
	"log/slog"
	"strings"

	"goldenPalmDash/internal/modules/dashboard/application/port"
	"goldenPalmDash/internal/modules/dashboard/application/usecase"
	"goldenPalmDash/internal/modules/dashboard/domain"
	"goldenPalmDash/internal/shared/normalization"
)

// EntityStreamHandler forwards backend entity events from one Kafka topic to the
// websocket clients and re-fetches the panels bound to that entity.
// Allowed actions filter out noise.
type EntityStreamHandler struct {
	entity         string
	kafkaTopic     string
	allowedActions map[string]struct{}
	broadcastUC    *usecase.BroadcastUseCase
	refresher      *usecase.LiveRefresh
}

func NewEntityStreamHandler(entity, kafkaTopic string, allowedActions []string, broadcastUC *usecase.BroadcastUseCase, refresher *usecase.LiveRefresh) *EntityStreamHandler {
	actionSet := make(map[string]struct{}, len(allowedActions))
	for _, a := range allowedActions {
		if v := strings.TrimSpace(strings.ToLower(a)); v != "" {
			actionSet[v] = struct{}{}
		}
	}
	return &EntityStreamHandler{
		entity:         normalization.NormalizeEntity(entity),
		kafkaTopic:     kafkaTopic,
		allowedActions: actionSet,
		broadcastUC:    broadcastUC,
		refresher:      refresher,
	}
}

func (h *EntityStreamHandler) Topic() string { return h.kafkaTopic }

func (h *EntityStreamHandler) Handle(ctx context.Context, msg *domain.Message) error {
	if msg == nil {
		return nil
	}
	if len(h.allowedActions) > 0 {
		if _, ok := h.allowedActions[strings.ToLower(msg.Action)]; !ok {
			return nil
		}
	}
	entityName := h.entity
	if entityName == "" {
		entityName = normalization.NormalizeEntity(msg.Entity)
	}
	if msg.Entity == "" {
		msg.Entity = entityName
	}
	if !topicOf(msg.Topic, entityName) {
		msg.Topic = domain.CustomTopic(entityName, msg.Action)
	}
	h.broadcastUC.Execute(ctx, msg)
	h.refresh(ctx, entityName, msg)
	return nil
}

func (h *EntityStreamHandler) refresh(ctx context.Context, entityName string, msg *domain.Message) {
	if h.refresher == nil || entityName == "" {
		return
	}
	pushed := h.refresher.RefreshEntity(ctx, entityName)
	slog.Info("entity-stream refresh", slog.String("entity", entityName), slog.String("action", msg.Action), slog.String("resourceId", msg.ResourceID), slog.Int("panels", pushed))
}

// topicOf reports whether topic is an <entity>.<action> topic of entity. Sockets
// subscribe per entity, so any other topic would reach the wrong dashboards.
func topicOf(topic, entity string) bool {
	prefix, _, ok := strings.Cut(strings.TrimSpace(topic), ".")
	return ok && entity != "" && normalization.NormalizeEntity(prefix) == entity
}

var _ port.TopicHandler = (*EntityStreamHandler)(nil)
