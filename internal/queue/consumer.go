// Package queue contains the background consumer that listens to the
// booking.created queue and writes one line per booking to logs/booking.log.
package queue

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/sirupsen/logrus"
)

// Handler is invoked for every decoded event after it has been logged.
// Its error is logged but does not reject the message.
type Handler func(ctx context.Context, ev BookingCreatedEvent) error

// Consumer reads booking.created and appends to a booking log file.
type Consumer struct {
    URL     string
    LogPath string // defaults to logs/booking.log
    OnEvent Handler
    Log     logrus.FieldLogger
}

// Run connects to RabbitMQ and consumes until ctx is cancelled, redialling
// with exponential backoff (capped at 30s) whenever the broker goes away.
func (c *Consumer) Run(ctx context.Context) error {
    backoff := time.Second
    for {
        conn, err := amqp.Dial(c.URL)
        if err != nil {
            c.Log.WithError(err).Warnf("failed to dial broker, retrying in %s", backoff)
            if !sleep(ctx, backoff) {
                return ctx.Err()
            }
            if backoff < 30*time.Second {
                backoff *= 2
            }
            continue
        }
        backoff = time.Second // reset after successful connect

        err = c.consumeLoop(ctx, conn)
        _ = conn.Close()
        if ctx.Err() != nil {
            return ctx.Err()
        }
        c.Log.WithError(err).Warn("consume loop ended, reconnecting")
        if !sleep(ctx, 2*time.Second) {
            return ctx.Err()
        }
    }
}

func sleep(ctx context.Context, d time.Duration) bool {
    t := time.NewTimer(d)
    defer t.Stop()
    select {
    case <-ctx.Done():
        return false
    case <-t.C:
        return true
    }
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
    ch, err := conn.Channel()
    if err != nil {
        return fmt.Errorf("channel open: %w", err)
    }
    defer func() { _ = ch.Close() }()

    if err := ch.Qos(50, 0, false); err != nil {
        c.Log.WithError(err).Warn("set QoS failed")
    }

    if _, err := ch.QueueDeclare(BookingCreatedQueue, true, false, false, false, nil); err != nil {
        return fmt.Errorf("queue declare: %w", err)
    }

    msgs, err := ch.Consume(BookingCreatedQueue, "", false, false, false, false, nil)
    if err != nil {
        return fmt.Errorf("queue consume: %w", err)
    }

    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case d, ok := <-msgs:
            if !ok {
                return errors.New("deliveries channel closed")
            }
            if err := c.Handle(ctx, d.Body); err != nil {
                c.Log.WithError(err).Error("handle message failed")
                _ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
                continue
            }
            _ = d.Ack(false)
        }
    }
}

// Handle decodes one message body, appends it to the booking log and runs
// the OnEvent hook.
func (c *Consumer) Handle(ctx context.Context, body []byte) error {
    var ev BookingCreatedEvent
    if err := json.Unmarshal(body, &ev); err != nil {
        return fmt.Errorf("unmarshal: %w", err)
    }
    if err := c.appendLine(ev); err != nil {
        return err
    }
    if c.OnEvent != nil {
        if err := c.OnEvent(ctx, ev); err != nil {
            c.Log.WithError(err).WithField("booking_reference", ev.Booking.BookingReference).Warn("booking event hook failed")
        }
    }
    return nil
}

func (c *Consumer) appendLine(ev BookingCreatedEvent) error {
    fpath := c.LogPath
    if fpath == "" {
        fpath = filepath.Join("logs", "booking.log")
    }
    if err := os.MkdirAll(filepath.Dir(fpath), 0o755); err != nil {
        return fmt.Errorf("mkdir logs: %w", err)
    }
    f, err := os.OpenFile(fpath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
    if err != nil {
        return fmt.Errorf("open log file: %w", err)
    }
    defer f.Close()

    b := ev.Booking
    line := fmt.Sprintf("[%s] Booking created | booking_id=%d | reference=%s | guest=%q | email=%s | room_id=%s | package_id=%s | stay=%s..%s | guests=%d | total=%.2f %s | source=%s\n",
        ev.CreatedAt, ev.BookingID, b.BookingReference, b.GuestName(), b.Email,
        optID(ev.RoomID), optID(ev.PackageID), b.CheckIn, b.CheckOut, b.Guests, b.TotalPrice, b.Currency, ev.Source)

    if _, err := f.WriteString(line); err != nil {
        return fmt.Errorf("write log: %w", err)
    }
    return nil
}

func optID(id *uint64) string {
    if id == nil {
        return "-"
    }
    return fmt.Sprint(*id)
}
