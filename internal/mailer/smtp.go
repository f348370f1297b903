package mailer

import (
	"context"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// SMTPSender delivers through an SMTP relay.  SMTP has no provider id, so a
// random one is generated per message.
type SMTPSender struct {
	dialer *gomail.Dialer
}

func NewSMTPSender(host string, port int, user, password string) *SMTPSender {
	return &SMTPSender{dialer: gomail.NewDialer(host, port, user, password)}
}

func (s *SMTPSender) Send(ctx context.Context, m Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", m.Subject)
	msg.SetBody("text/html", m.HTML)

	if err := s.dialer.DialAndSend(msg); err != nil {
		return "", err
	}
	return uuid.NewString(), nil
}
