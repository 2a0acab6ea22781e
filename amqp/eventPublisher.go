package amqp

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	admin "github.com/paulvitic/members-admin"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// EventPublisher sends events to a fanout exchange. When a queue is
// configured it is declared and bound so events wait for a consumer.
type EventPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *admin.Logger
}

func NewEventPublisher(config Configuration, logger *admin.Logger) (*EventPublisher, error) {
	if config.Exchange == "" {
		return nil, errors.New("amqp: exchange is required")
	}
	conn, err := amqp.Dial(connectionUrl(config))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	publisher := &EventPublisher{
		conn:     conn,
		exchange: config.Exchange,
		logger:   logger.Named("AmqpEventPublisher"),
	}

	if err := publisher.setup(config); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return publisher, nil
}

func (p *EventPublisher) setup(config Configuration) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open a channel: %w", err)
	}
	p.channel = ch

	if err = declareExchange(ch, config.Exchange); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", config.Exchange, err)
	}
	if config.Queue == "" {
		return nil
	}
	if _, err = declareQueue(ch, config.Queue); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", config.Queue, err)
	}
	if err = bindQueue(ch, config.Exchange, config.Queue); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", config.Queue, err)
	}
	return nil
}

func (p *EventPublisher) Publish(ctx context.Context, event admin.Event) error {
	msg, err := toPublishing(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	if err = p.channel.PublishWithContext(ctx, p.exchange, "", false, false, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type(), err)
	}
	p.logger.Debug("sent %s %s", event.Type(), event.ID())
	return nil
}

func toPublishing(event admin.Event) (amqp.Publishing, error) {
	body, err := event.ToJsonString()
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID().String(),
		Type:         event.Type(),
		Timestamp:    event.TimeStamp(),
		Body:         []byte(body),
	}, nil
}

func (p *EventPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
	}
	if err := p.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
