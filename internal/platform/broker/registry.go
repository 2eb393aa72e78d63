package broker

import (
	"context"
	"log/slog"

	"goldenPalmDash/internal/modules/dashboard/domain"
	"goldenPalmDash/internal/modules/dashboard/infrastructure"
)

// StartKafkaConsumers starts one reader per topic. With no brokers configured it does nothing,
// since kafka.NewReader must not be given an empty broker list.
func StartKafkaConsumers(
	ctx context.Context,
	registry *infrastructure.HandlerRegistry,
	brokers []string,
	groupID string,
	topics []string,
) {
	if len(brokers) == 0 {
		slog.Info("kafka disabled: no brokers configured")
		return
	}
	for _, topic := range topics {
		go func(tp string) {
			consumer := NewKafkaConsumer(brokers, groupID, tp)
			err := consumer.Consume(ctx, func(source string, msg *domain.Message) error {
				return registry.Dispatch(ctx, source, msg)
			})
			slog.Info("kafka consumer stopped", slog.String("topic", tp), slog.Any("reason", err))
		}(topic)
	}
}
