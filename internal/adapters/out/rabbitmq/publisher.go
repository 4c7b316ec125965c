// Package rabbitmq publishes channel notifications to a RabbitMQ topic exchange. The routing
// key is the channel name, so consumers bind with patterns such as "orders.*" or "customer.#".
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// amqpChannel is the part of *amqp.Channel the publisher uses.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	conn     *amqp.Connection
	ch       amqpChannel
	exchange string
	clock    ports.Clock
}

// Dial connects to url and declares a durable topic exchange.
func Dial(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}

	p := NewPublisher(ch, exchange, ports.SystemClock)
	p.conn = conn
	return p, nil
}

func NewPublisher(ch amqpChannel, exchange string, clock ports.Clock) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, clock: clock}
}

func (p *Publisher) Publish(ctx context.Context, channel string, n ports.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(publishCtx, p.exchange, channel, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Type:         n.Event,
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    p.clock.Now(),
	})
	if err != nil {
		return fmt.Errorf("publish to %s/%s: %w", p.exchange, channel, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	var err error
	if p.ch != nil {
		err = p.ch.Close()
	}
	if p.conn != nil {
		err = errors.Join(err, p.conn.Close())
	}
	return err
}
