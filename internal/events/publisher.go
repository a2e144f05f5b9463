package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/AgustinVitali/Frontend-Cafeteria/internal/order"
)

// Publisher announces confirmed order changes. Callers publish after the
// local model was updated; a failed publish never undoes that.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, o *order.Order, meta EnvelopeMetadata) error
	PublishOrderStatusChanged(ctx context.Context, orderID string, from, to order.Status, actor string, meta EnvelopeMetadata) error
	Close() error
}

type RabbitPublisher struct {
	mu      sync.Mutex
	ch      *amqp.Channel
	counter *prometheus.CounterVec
	now     func() time.Time
}

type PublisherOption func(*RabbitPublisher)

// WithCounter counts publishes by event name and result.
func WithCounter(c *prometheus.CounterVec) PublisherOption {
	return func(p *RabbitPublisher) { p.counter = c }
}

func NewRabbitPublisher(conn *amqp.Connection, opts ...PublisherOption) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// Declare the exchange so publish never fails due to missing infra
	if err := declareEventsExchange(ch); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare %s: %w", EventsExchange, err)
	}

	p := &RabbitPublisher{ch: ch, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *RabbitPublisher) Close() error {
	return p.ch.Close()
}

func (p *RabbitPublisher) PublishOrderPlaced(ctx context.Context, o *order.Order, meta EnvelopeMetadata) error {
	env := NewOrderPlaced(o, meta, p.now())
	return p.publish(ctx, OrderPlacedEvent, OrderPlacedRoutingKey, env.EventID, env.CorrelationID, env)
}

func (p *RabbitPublisher) PublishOrderStatusChanged(ctx context.Context, orderID string, from, to order.Status, actor string, meta EnvelopeMetadata) error {
	env := NewOrderStatusChanged(orderID, from, to, actor, meta, p.now())
	return p.publish(ctx, OrderStatusChangedEvent, OrderStatusChangedRoutingKey, env.EventID, env.CorrelationID, env)
}

func (p *RabbitPublisher) publish(ctx context.Context, name, routingKey, messageID, correlationID string, env any) error {
	body, err := json.Marshal(env)
	if err != nil {
		p.count(name, "error")
		return fmt.Errorf("marshal %s: %w", name, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	p.mu.Lock()
	err = p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			MessageId:     messageID,
			CorrelationId: correlationID,
			Type:          name,
			Timestamp:     p.now().UTC(),
			Body:          body,
		},
	)
	p.mu.Unlock()

	if err != nil {
		p.count(name, "error")
		return fmt.Errorf("publish %s: %w", name, err)
	}
	p.count(name, "ok")
	return nil
}

func (p *RabbitPublisher) count(name, result string) {
	if p.counter != nil {
		p.counter.WithLabelValues(name, result).Inc()
	}
}

// NopPublisher is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderPlaced(context.Context, *order.Order, EnvelopeMetadata) error {
	return nil
}

func (NopPublisher) PublishOrderStatusChanged(context.Context, string, order.Status, order.Status, string, EnvelopeMetadata) error {
	return nil
}

func (NopPublisher) Close() error { return nil }

var (
	_ Publisher = (*RabbitPublisher)(nil)
	_ Publisher = NopPublisher{}
)
