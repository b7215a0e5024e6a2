package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"github.com/google/uuid"

	"github.com/antojo-app/backend/pkg/enums"
	"github.com/antojo-app/backend/pkg/logger"
	"github.com/antojo-app/backend/pkg/outbox"
	"github.com/antojo-app/backend/pkg/outbox/payloads"
)

const consumerName = "realtime"

type updatePublisher interface {
	Publish(update Update)
}

type idempotencyChecker interface {
	CheckAndMarkProcessed(ctx context.Context, consumer string, eventID uuid.UUID) (bool, error)
	Delete(ctx context.Context, consumer string, eventID uuid.UUID) error
}

// Consumer turns order outbox envelopes into hub updates, honoring Redis
// idempotency so redelivered messages do not repeat updates.
type Consumer struct {
	hub     updatePublisher
	manager idempotencyChecker
	logg    *logger.Logger
}

// NewConsumer builds the realtime consumer.
func NewConsumer(hub updatePublisher, manager idempotencyChecker, logg *logger.Logger) (*Consumer, error) {
	if hub == nil {
		return nil, fmt.Errorf("hub required")
	}
	if manager == nil {
		return nil, fmt.Errorf("idempotency manager required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Consumer{hub: hub, manager: manager, logg: logg}, nil
}

// Process handles one decoded outbox envelope.
func (c *Consumer) Process(ctx context.Context, eventType enums.OutboxEventType, envelope outbox.PayloadEnvelope) error {
	logCtx := c.logg.WithFields(ctx, map[string]any{
		"event_id":   envelope.EventID,
		"event_type": eventType,
	})

	update, ok, err := buildUpdate(eventType, envelope)
	if err != nil {
		c.logg.Error(logCtx, "failed to decode order event", err)
		return err
	}
	if !ok {
		c.logg.Info(logCtx, "event not handled by realtime consumer")
		return nil
	}

	eventID, err := uuid.Parse(envelope.EventID)
	if err != nil {
		return fmt.Errorf("parse event id: %w", err)
	}

	already, err := c.manager.CheckAndMarkProcessed(ctx, consumerName, eventID)
	if err != nil {
		return fmt.Errorf("idempotency check: %w", err)
	}
	if already {
		c.logg.Info(logCtx, "event already processed")
		return nil
	}

	c.hub.Publish(update)
	return nil
}

func buildUpdate(eventType enums.OutboxEventType, envelope outbox.PayloadEnvelope) (Update, bool, error) {
	switch eventType {
	case enums.EventOrderCreated:
		var payload payloads.OrderCreatedEvent
		if err := json.Unmarshal(envelope.Data, &payload); err != nil {
			return Update{}, false, fmt.Errorf("decode order created payload: %w", err)
		}
		status := payload.Status
		return Update{
			OrderID:    payload.OrderID,
			EventID:    envelope.EventID,
			Status:     &status,
			OccurredAt: envelope.OccurredAt,
		}, true, nil

	case enums.EventOrderStatusChanged:
		var payload payloads.OrderStatusChangedEvent
		if err := json.Unmarshal(envelope.Data, &payload); err != nil {
			return Update{}, false, fmt.Errorf("decode status changed payload: %w", err)
		}
		status := payload.Status
		previous := payload.PreviousStatus
		occurredAt := payload.ChangedAt
		if occurredAt.IsZero() {
			occurredAt = envelope.OccurredAt
		}
		return Update{
			OrderID:        payload.OrderID,
			EventID:        envelope.EventID,
			Status:         &status,
			PreviousStatus: &previous,
			OccurredAt:     occurredAt,
		}, true, nil

	default:
		return Update{}, false, nil
	}
}

// Service drives the consumer from a Pub/Sub subscription until the context
// is canceled.
type Service struct {
	subscription *gcppubsub.Subscriber
	consumer     *Consumer
	logg         *logger.Logger
}

// NewService builds the receive loop for the realtime consumer.
func NewService(subscription *gcppubsub.Subscriber, consumer *Consumer, logg *logger.Logger) (*Service, error) {
	if subscription == nil {
		return nil, errors.New("orders subscription is required")
	}
	if consumer == nil {
		return nil, errors.New("realtime consumer is required")
	}
	if logg == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{subscription: subscription, consumer: consumer, logg: logg}, nil
}

// Run consumes messages until the context ends.
func (s *Service) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.subscription.Receive(ctx, func(innerCtx context.Context, msg *gcppubsub.Message) {
		if s.process(innerCtx, msg) {
			msg.Nack()
			return
		}
		msg.Ack()
	})
}

// process returns true when the message should be nacked for redelivery.
func (s *Service) process(ctx context.Context, msg *gcppubsub.Message) bool {
	fields := map[string]any{
		"message_id": msg.ID,
		"event_type": msg.Attributes["event_type"],
	}
	logCtx := s.logg.WithFields(ctx, fields)

	var envelope outbox.PayloadEnvelope
	if err := json.Unmarshal(msg.Data, &envelope); err != nil {
		fields["error"] = err.Error()
		s.logg.Warn(s.logg.WithFields(ctx, fields), "invalid order event envelope")
		return false
	}
	fields["event_id"] = envelope.EventID
	fields["occurred_at"] = envelope.OccurredAt.Format(time.RFC3339Nano)
	logCtx = s.logg.WithFields(ctx, fields)

	eventType := enums.OutboxEventType(msg.Attributes["event_type"])
	if err := s.consumer.Process(logCtx, eventType, envelope); err != nil {
		s.logg.Error(logCtx, "realtime consumer error", err)
		return true
	}
	return false
}
