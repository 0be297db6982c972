package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gearshop/backend/internal/domain/order"
	"github.com/gearshop/backend/internal/domain/shared"
	"github.com/gearshop/backend/internal/infrastructure/config"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// OrderNotification is the wire format published for order lifecycle
// events. Consumers (mail, SMS, fulfilment) key off EventType.
type OrderNotification struct {
	EventID      string    `json:"event_id"`
	EventType    string    `json:"event_type"`
	OrderID      string    `json:"order_id"`
	TrackingCode string    `json:"tracking_code,omitempty"`
	CustomerID   string    `json:"customer_id,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// KafkaOrderNotifier forwards order lifecycle events to a Kafka topic.
// It implements shared.EventHandler so it can be subscribed to the
// event bus like any other handler.
type KafkaOrderNotifier struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewKafkaOrderNotifier creates a notifier writing to the configured
// topic. Messages are keyed by order ID so one order's notifications
// stay in a single partition, preserving their relative order.
func NewKafkaOrderNotifier(cfg config.KafkaConfig, logger *zap.Logger) *KafkaOrderNotifier {
	return &KafkaOrderNotifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			MaxAttempts:  5,
			WriteTimeout: 5 * time.Second,
			ReadTimeout:  5 * time.Second,
			BatchTimeout: 50 * time.Millisecond,
		},
		logger: logger,
	}
}

// EventTypes lists the order events worth notifying about
func (n *KafkaOrderNotifier) EventTypes() []string {
	return []string{
		order.EventTypeOrderCreated,
		order.EventTypeOrderPaid,
		order.EventTypeOrderCancelled,
		order.EventTypeOrderCompleted,
	}
}

// Handle publishes the event as an OrderNotification
func (n *KafkaOrderNotifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	notification := buildNotification(event)

	value, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	if err := n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(notification.OrderID),
		Value: value,
	}); err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	n.logger.Debug("order notification published",
		zap.String("event_type", notification.EventType),
		zap.String("order_id", notification.OrderID),
	)
	return nil
}

// Close flushes and closes the underlying writer
func (n *KafkaOrderNotifier) Close() error {
	return n.writer.Close()
}

func buildNotification(event shared.DomainEvent) OrderNotification {
	notification := OrderNotification{
		EventID:    event.EventID().String(),
		EventType:  event.EventType(),
		OrderID:    event.AggregateID().String(),
		OccurredAt: event.OccurredAt(),
	}

	switch e := event.(type) {
	case *order.OrderCreatedEvent:
		notification.TrackingCode = e.TrackingCode
	case *order.OrderPaidEvent:
		notification.TrackingCode = e.TrackingCode
	case *order.OrderCancelledEvent:
		notification.TrackingCode = e.TrackingCode
	case *order.OrderCompletedEvent:
		notification.TrackingCode = e.TrackingCode
		notification.CustomerID = e.CustomerID
	}

	return notification
}

var _ shared.EventHandler = (*KafkaOrderNotifier)(nil)
