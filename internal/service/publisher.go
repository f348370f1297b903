// Package service holds the side effects that hang off booking writes:
// broker events and notification emails.
package service

import (
    "context"
    "encoding/json"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/sirupsen/logrus"

    q "github.com/iliyamo/villa-booking/internal/queue"
)

// BookingPublisher publishes booking events to RabbitMQ.  A connection is
// opened per event; booking creation is rare enough not to need a pool.
type BookingPublisher struct {
    url     string
    log     logrus.FieldLogger
    timeout time.Duration
}

func NewBookingPublisher(url string, log logrus.FieldLogger) *BookingPublisher {
    return &BookingPublisher{url: url, log: log, timeout: 3 * time.Second}
}

// Publish sends ev to the booking.created queue as a persistent message.
func (p *BookingPublisher) Publish(ctx context.Context, ev q.BookingCreatedEvent) error {
    conn, err := amqp.DialConfig(p.url, amqp.Config{Dial: amqp.DefaultDial(p.timeout)})
    if err != nil {
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        return err
    }
    defer func() { _ = ch.Close() }()

    // Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(
        q.BookingCreatedQueue, // name
        true,                  // durable
        false,                 // autoDelete
        false,                 // exclusive
        false,                 // noWait
        nil,                   // args
    ); err != nil {
        return err
    }

    body, err := json.Marshal(ev)
    if err != nil {
        return err
    }

    return ch.PublishWithContext(ctx,
        "",                    // default exchange
        q.BookingCreatedQueue, // routing key = queue name
        false,                 // mandatory
        false,                 // immediate
        amqp.Publishing{
            ContentType:  "application/json",
            DeliveryMode: amqp.Persistent,
            Timestamp:    time.Now().UTC(),
            Body:         body,
        },
    )
}

// PublishAsync publishes in the background.  Failures are only logged, the
// request that created the booking never sees them.
func (p *BookingPublisher) PublishAsync(ev q.BookingCreatedEvent) {
    go func() {
        ctx, cancel := context.WithTimeout(context.Background(), 2*p.timeout)
        defer cancel()
        if err := p.Publish(ctx, ev); err != nil {
            p.log.WithError(err).WithField("booking_reference", ev.Booking.BookingReference).Warn("publish booking.created failed")
        }
    }()
}
