package amqp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	"github.com/rabbitmq/amqp091-go"
	"github.com/sony/gobreaker"
)

const publishTimeout = 5 * time.Second

// ErrCircuitOpen is returned while the notifier is refusing to publish after repeated failures.
var ErrCircuitOpen = errors.New("amqp: circuit breaker is open")

// channel is the part of *amqp091.Channel the notifier publishes through.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	IsClosed() bool
	Close() error
}

// dialer opens a connection and a channel on which the exchange and queue are declared.
type dialer func() (channel, io.Closer, error)

// Notifier publishes ledger events to a durable direct exchange.
// A closed channel is reopened by the next publish that the breaker lets through.
type Notifier struct {
	mu           sync.Mutex
	dial         dialer
	conn         io.Closer
	channel      channel
	exchangeName string
	routingKey   string
	breaker      *gobreaker.CircuitBreaker
}

// NewNotifier dials url and declares the exchange, and the queue bound to it under routingKey.
func NewNotifier(url, exchangeName, routingKey string) (*Notifier, error) {
	n := newNotifier(exchangeName, routingKey, func() (channel, io.Closer, error) {
		return dialAndDeclare(url, exchangeName, routingKey)
	})

	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.connectLocked(); err != nil {
		return nil, err
	}
	return n, nil
}

func newNotifier(exchangeName, routingKey string, dial dialer) *Notifier {
	return &Notifier{
		dial:         dial,
		exchangeName: exchangeName,
		routingKey:   routingKey,
		breaker:      newBreaker("amqp-"+exchangeName, openTimeout),
	}
}

func dialAndDeclare(url, exchangeName, routingKey string) (channel, io.Closer, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declare(ch, exchangeName, routingKey); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("setup exchange and queue: %w", err)
	}
	return ch, conn, nil
}

func declare(ch *amqp091.Channel, exchangeName, routingKey string) error {
	err := ch.ExchangeDeclare(
		exchangeName, // name
		"direct",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = ch.QueueDeclare(
		routingKey, // name
		true,       // durable
		false,      // delete when unused
		false,      // exclusive
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(routingKey, routingKey, exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

func (n *Notifier) connectLocked() error {
	ch, conn, err := n.dial()
	if err != nil {
		return err
	}
	n.channel = ch
	n.conn = conn
	return nil
}

// dropLocked discards the current connection so the next publish dials again.
func (n *Notifier) dropLocked() {
	if n.channel != nil {
		n.channel.Close()
		n.channel = nil
	}
	if n.conn != nil {
		n.conn.Close()
		n.conn = nil
	}
}

// PublishLedgerEvent publishes event as a persistent JSON message.
func (n *Notifier) PublishLedgerEvent(ctx context.Context, event domain.LedgerEvent) error {
	if n == nil {
		return nil
	}
	body, err := NewLedgerMessage(event).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	_, err = n.breaker.Execute(func() (any, error) {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.channel == nil || n.channel.IsClosed() {
			n.dropLocked()
			if err := n.connectLocked(); err != nil {
				return nil, err
			}
			slog.InfoContext(ctx, "Reconnected to AMQP broker", "exchange", n.exchangeName)
		}
		err := n.channel.PublishWithContext(
			ctx,
			n.exchangeName, // exchange
			n.routingKey,   // routing key
			false,          // mandatory
			false,          // immediate
			amqp091.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp091.Persistent,
				Timestamp:    time.Now(),
				Type:         string(event.Type),
				Body:         body,
			},
		)
		if err != nil && n.channel.IsClosed() {
			n.dropLocked()
		}
		return nil, err
	})
	if err != nil {
		if isBreakerRejection(err) {
			return ErrCircuitOpen
		}
		return fmt.Errorf("publish message: %w", err)
	}

	slog.DebugContext(ctx, "Published ledger event",
		"type", event.Type,
		"entity_id", event.EntityID,
		"exchange", n.exchangeName)
	return nil
}

func (n *Notifier) Close() error {
	if n == nil {
		return nil
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	var err error
	if n.channel != nil {
		n.channel.Close()
		n.channel = nil
	}
	if n.conn != nil {
		err = n.conn.Close()
		n.conn = nil
	}
	return err
}
