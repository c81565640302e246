package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/club_finance_app/internal/core/domain"
	"github.com/SscSPs/club_finance_app/internal/core/ports/notifications"
	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// AMQPPublisher publishes club events to a durable topic exchange. Consumers
// bind their own queues with the routing keys they care about.
type AMQPPublisher struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
}

var _ notifications.EventPublisher = (*AMQPPublisher)(nil)

// NewAMQPPublisher dials the broker and declares the exchange.
func NewAMQPPublisher(url, exchangeName string) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p := &AMQPPublisher{conn: conn, channel: channel, exchangeName: exchangeName}
	err = channel.ExchangeDeclare(
		exchangeName, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return p, nil
}

func (p *AMQPPublisher) PublishPaymentStatusChanged(ctx context.Context, event domain.PaymentStatusChanged) error {
	return p.publish(ctx, RoutingKeyPaymentStatus, event.OccurredAt, event)
}

func (p *AMQPPublisher) PublishFinancialSummaryChanged(ctx context.Context, event domain.FinancialSummaryChanged) error {
	return p.publish(ctx, RoutingKeyFinancialSummary, event.OccurredAt, event)
}

func (p *AMQPPublisher) publish(ctx context.Context, routingKey string, occurredAt time.Time, payload any) error {
	body, err := NewEnvelope(routingKey, occurredAt, payload)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchangeName, // exchange
		routingKey,     // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    occurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}

	slog.DebugContext(ctx, "Published event",
		"routing_key", routingKey,
		"exchange", p.exchangeName)
	return nil
}

func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
