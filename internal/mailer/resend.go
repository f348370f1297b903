package mailer

import (
	"context"

	"github.com/resend/resend-go/v2"
)

// ResendSender posts messages to the Resend API.
type ResendSender struct {
	client *resend.Client
}

func NewResendSender(apiKey string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey)}
}

func (s *ResendSender) Send(ctx context.Context, m Message) (string, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    m.From,
		To:      []string{m.To},
		Subject: m.Subject,
		Html:    m.HTML,
	})
	if err != nil {
		return "", err
	}
	return sent.Id, nil
}
