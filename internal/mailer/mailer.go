// Package mailer sends transactional email through Resend or SMTP.
package mailer

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// ErrNotConfigured is returned by the log-only sender used when no mail
// transport is configured.
var ErrNotConfigured = errors.New("email transport not configured")

// Message is one outbound HTML email.
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
}

// Sender delivers a message and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, m Message) (string, error)
}

// LogSender only logs the message.
type LogSender struct {
	Log logrus.FieldLogger
}

func (s LogSender) Send(_ context.Context, m Message) (string, error) {
	s.Log.WithFields(logrus.Fields{"to": m.To, "subject": m.Subject}).Warn("mail transport not configured, message dropped")
	return "", ErrNotConfigured
}

// Breaker guards a Sender with a circuit breaker.  While the breaker is
// open Send fails fast with gobreaker.ErrOpenState.
type Breaker struct {
	cb   *gobreaker.CircuitBreaker
	next Sender
}

func NewBreaker(name string, next Sender, log logrus.FieldLogger) *Breaker {
	return &Breaker{cb: CircuitBreaker(name, log), next: next}
}

func (b *Breaker) Send(ctx context.Context, m Message) (string, error) {
	id, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Send(ctx, m)
	})
	if err != nil {
		return "", err
	}
	return id.(string), nil
}

// State exposes the breaker state for diagnostics.
func (b *Breaker) State() gobreaker.State { return b.cb.State() }

// CircuitBreaker opens after three consecutive failures and tries again
// after ten seconds.
func CircuitBreaker(name string, log logrus.FieldLogger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(
		gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     10 * time.Second,
			Interval:    0,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 2
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.WithFields(logrus.Fields{"breaker": name, "from": from.String(), "to": to.String()}).Warn("circuit breaker state changed")
			},
			IsSuccessful: func(err error) bool {
				// an unconfigured transport is not an outage
				return err == nil || errors.Is(err, ErrNotConfigured)
			},
		},
	)
}
