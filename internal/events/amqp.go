package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AMQPForwarder republishes domain events to a RabbitMQ topic exchange
// using "eventhub.<event type>" routing keys.
type AMQPForwarder struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	logger   *zap.Logger
}

// NewAMQPForwarder dials the broker and declares a durable topic exchange.
func NewAMQPForwarder(url, exchange string, logger *zap.Logger) (*AMQPForwarder, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPForwarder{conn: conn, ch: ch, exchange: exchange, logger: logger}, nil
}

// RoutingKey is the topic an event is published under.
func RoutingKey(t EventType) string {
	return "eventhub." + string(t)
}

// Forward publishes event as persistent JSON.
func (f *AMQPForwarder) Forward(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	err = f.ch.PublishWithContext(ctx, f.exchange, RoutingKey(event.Type), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		f.logger.Warn("rabbitmq publish failed", zap.String("event_type", string(event.Type)), zap.Error(err))
		return err
	}
	return nil
}

// Subscribe forwards every listed event type from d.
func (f *AMQPForwarder) Subscribe(d Dispatcher, types ...EventType) {
	for _, t := range types {
		d.Subscribe(t, f.Forward)
	}
}

// Close shuts the channel and connection.
func (f *AMQPForwarder) Close() error {
	if f.ch != nil {
		_ = f.ch.Close()
	}
	if f.conn != nil {
		return f.conn.Close()
	}
	return nil
}

// AllEventTypes lists every event the service emits.
func AllEventTypes() []EventType {
	return []EventType{
		EventRegistrationCreated,
		EventRegistrationStatusChanged,
		EventOTPRequested,
		EventUserLoggedIn,
		EventUserLoggedOut,
		EventAdminLoggedIn,
		EventTileOpened,
		EventFeedbackSubmitted,
	}
}
