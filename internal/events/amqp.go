package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ExchangeName is the durable topic exchange settings events go to
const ExchangeName = "fitcoach.settings"

// amqpChannel is the subset of *amqp.Channel the publisher needs
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes events to RabbitMQ
type AMQPPublisher struct {
	conn *amqp.Connection
	mu   sync.Mutex // amqp channels are not safe for concurrent publishes
	ch   amqpChannel
}

// DialAMQP connects to url and declares the settings exchange
func DialAMQP(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(ExchangeName, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	return &AMQPPublisher{conn: conn, ch: ch}, nil
}

func (p *AMQPPublisher) PublishSettingsChanged(ctx context.Context, event SettingsChanged) error {
	msg, err := newPublishing(event)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ch.PublishWithContext(ctx, ExchangeName, event.RoutingKey(), false, false, msg); err != nil {
		return fmt.Errorf("failed to publish settings event: %w", err)
	}
	return nil
}

// Close closes the channel and the connection
func (p *AMQPPublisher) Close() error {
	_ = p.ch.Close()
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}

func newPublishing(event SettingsChanged) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to encode settings event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.UpdatedAt,
		Type:         "settings.updated",
		Body:         body,
	}, nil
}
