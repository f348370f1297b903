package mailer

import (
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/villa-booking/internal/config"
)

// FromConfig picks the transport named by MAIL_TRANSPORT and wraps it in a
// Breaker.  SMTP needs SMTP_HOST and Resend needs RESEND_API_KEY; without
// either the messages are only logged.
func FromConfig(cfg config.Config, log logrus.FieldLogger) *Breaker {
	var next Sender
	switch {
	case cfg.MailTransport == "smtp" && cfg.SMTPHost != "":
		next = NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	case cfg.ResendAPIKey != "":
		next = NewResendSender(cfg.ResendAPIKey)
	default:
		next = LogSender{Log: log}
	}
	return NewBreaker("mailer-"+cfg.MailTransport, next, log)
}
