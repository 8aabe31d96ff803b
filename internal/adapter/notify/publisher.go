package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/virebo/lanthandel/internal/domain/model"
)

const producerName = "lanthandel"

// Publisher dispatches best-effort order confirmations. Callers must treat a
// publish failure as non-fatal.
type Publisher interface {
	PublishOrderConfirmation(ctx context.Context, order *model.Order) error
}

// KafkaPublisher implements Publisher on a kafka topic. The writer is async:
// a publish enqueues and returns, delivery errors surface in the writer's
// error logger only.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

// NewKafkaPublisher creates a publisher for the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
			ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
				logger.Error("confirmation publish failed", slog.String("detail", msg))
			}),
		},
		logger: logger,
	}
}

// PublishOrderConfirmation emits an OrderConfirmation event keyed by order id,
// so redeliveries for one order stay ordered within a partition.
func (p *KafkaPublisher) PublishOrderConfirmation(ctx context.Context, order *model.Order) error {
	items := make([]ConfirmationItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, ConfirmationItem{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	payload := OrderConfirmationPayload{
		OrderID:      order.ID.String(),
		UserID:       order.UserID.String(),
		AddressID:    order.AddressID.String(),
		Amount:       order.Amount,
		PaymentType:  string(order.PaymentType),
		DeliveryDate: order.DeliveryDate,
		Items:        items,
	}
	if order.COD != nil {
		payload.TrackingNumber = order.COD.TrackingNumber
	}

	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(Envelope{
		EventID:    uuid.NewString(),
		EventType:  EventOrderConfirmation,
		OccurredAt: time.Now().UTC(),
		Producer:   producerName,
		Payload:    rawPayload,
	})
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.ID.String()),
		Value: raw,
	})
}

// Close flushes outstanding messages.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops confirmations. Used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderConfirmation(context.Context, *model.Order) error { return nil }
