package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"coworkhub/internal/pkg/config"
	"coworkhub/internal/pkg/errs"
	"coworkhub/internal/usecase/commands"

	amqp "github.com/rabbitmq/amqp091-go"
)

var (
	errBrokerDial    = errs.New("failed to dial broker")
	errChannelOpen   = errs.New("failed to open channel")
	errQueueDeclare  = errs.New("failed to declare queue")
	errEventPublish  = errs.New("failed to publish event")
	errPublisherDown = errs.New("publisher is closed")
)

// AMQPPublisher delivers booking lifecycle events to a durable queue.
// Messages are persistent so they survive broker restarts. The channel
// is shared and amqp channels are not safe for concurrent publish, so
// Publish serializes on a mutex.
type AMQPPublisher struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	cfg     config.AMQPConfig
	closed  bool
}

func NewAMQPPublisher(cfg config.AMQPConfig) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, errs.Mark(err, errBrokerDial)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Mark(err, errChannelOpen)
	}

	if _, err := ch.QueueDeclare(
		cfg.Queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Mark(err, errQueueDeclare)
	}

	return &AMQPPublisher{conn: conn, channel: ch, cfg: cfg}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, event commands.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return errPublisherDown
	}

	body, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "failed to marshal event")
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         event.Type,
		Body:         body,
	}

	if err := p.channel.PublishWithContext(ctx,
		p.cfg.Exchange,
		p.cfg.Queue, // routing key = queue name on the default exchange
		false,       // mandatory
		false,       // immediate
		pub,
	); err != nil {
		return errs.Mark(err, errEventPublish)
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if err := p.channel.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}
