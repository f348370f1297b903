package service

import (
    "context"
    "time"

    "github.com/google/uuid"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/villa-booking/internal/mailer"
    "github.com/iliyamo/villa-booking/internal/model"
)

type SettingsReader interface {
    Get(ctx context.Context) (model.Settings, error)
}

type RecordSaver interface {
    Save(ctx context.Context, rec model.EmailRecord) error
}

// Notifier renders and sends booking emails and records every attempt.
type Notifier struct {
    sender   mailer.Sender
    settings SettingsReader
    records  RecordSaver
    log      logrus.FieldLogger
    now      func() time.Time
}

func NewNotifier(sender mailer.Sender, settings SettingsReader, records RecordSaver, log logrus.FieldLogger) *Notifier {
    return &Notifier{sender: sender, settings: settings, records: records, log: log, now: time.Now}
}

// Send delivers the kind (guest or admin) email for b.  Delivery errors do
// not fail the call; they are carried in the returned record.
func (n *Notifier) Send(ctx context.Context, kind string, b model.BookingEmail) model.EmailRecord {
    set, err := n.settings.Get(ctx)
    if err != nil {
        n.log.WithError(err).Warn("settings unavailable, using empty sender settings")
    }

    rec := model.EmailRecord{
        ID:      uuid.NewString(),
        To:      recipient(kind, b, set),
        Type:    kind,
        SentAt:  n.now().UTC(),
        Booking: b,
    }

    subject, html, err := mailer.Render(kind, set.VillaName, b)
    if err == nil {
        rec.ResendID, err = n.sender.Send(ctx, mailer.Message{From: set.FromEmail, To: rec.To, Subject: subject, HTML: html})
    }
    if err != nil {
        rec.Error = err.Error()
        n.log.WithError(err).WithFields(logrus.Fields{"type": kind, "booking_reference": b.BookingReference}).Warn("booking email not sent")
    }

    if err := n.records.Save(ctx, rec); err != nil {
        n.log.WithError(err).WithField("booking_reference", b.BookingReference).Warn("email record not stored")
    }
    return rec
}

// BookingCreated sends the emails enabled in settings for a new booking.
func (n *Notifier) BookingCreated(ctx context.Context, b model.BookingEmail) {
    set, err := n.settings.Get(ctx)
    if err != nil {
        n.log.WithError(err).Warn("settings unavailable, skipping booking emails")
        return
    }
    if set.SendGuestConfirmation && b.Email != "" {
        n.Send(ctx, model.EmailGuest, b)
    }
    if set.NotifyAdminOnBooking && set.AdminEmail != "" {
        n.Send(ctx, model.EmailAdmin, b)
    }
}

func recipient(kind string, b model.BookingEmail, set model.Settings) string {
    if b.To != "" {
        return b.To
    }
    if kind == model.EmailAdmin {
        return set.AdminEmail
    }
    return b.Email
}
