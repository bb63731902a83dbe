package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Config holds RabbitMQ configuration
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	VHost    string
	Exchange string
}

// URL builds the amqp connection URL.
func (c Config) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/%s",
		c.User, c.Password, c.Host, c.Port, strings.TrimPrefix(c.VHost, "/"))
}

// Broker publishes JSON messages to a single durable topic exchange.
type Broker struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	mu       sync.Mutex
}

// NewBroker dials RabbitMQ and declares the exchange.
func NewBroker(cfg Config) (*Broker, error) {
	conn, err := amqp.Dial(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	return &Broker{conn: conn, ch: ch, exchange: cfg.Exchange}, nil
}

// PublishJSON marshals msg and publishes it as a persistent message.
// amqp channels are not safe for concurrent publishing, hence the mutex.
func (b *Broker) PublishJSON(ctx context.Context, routingKey string, msg any) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	err = b.ch.PublishWithContext(ctx,
		b.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// IsAlive reports whether the underlying connection is open.
func (b *Broker) IsAlive() bool {
	return b.conn != nil && !b.conn.IsClosed()
}

// Close closes the channel and the connection.
func (b *Broker) Close() error {
	if b.ch != nil {
		b.ch.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}
