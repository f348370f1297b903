// Command consumer reads booking.created events, appends them to the
// booking log and sends the booking emails enabled in settings.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/iliyamo/villa-booking/internal/config"
	"github.com/iliyamo/villa-booking/internal/logging"
	"github.com/iliyamo/villa-booking/internal/mailer"
	"github.com/iliyamo/villa-booking/internal/model"
	"github.com/iliyamo/villa-booking/internal/queue"
	"github.com/iliyamo/villa-booking/internal/repository"
	"github.com/iliyamo/villa-booking/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unreachable: using default settings, email records are not kept")
	} else {
		defer rdb.Close()
	}

	settings := repository.NewSettingsStore(rdb, model.Settings{
		AdminEmail: cfg.AdminEmail,
		VillaName:  cfg.VillaName,
		FromEmail:  cfg.FromEmail,
		Currency:   "USD",
	})
	notifier := service.NewNotifier(
		mailer.FromConfig(cfg, logging.Component(log, "mailer")),
		settings,
		repository.NewEmailRecordStore(rdb),
		logging.Component(log, "notifier"),
	)

	c := &queue.Consumer{
		URL: cfg.RabbitURL,
		OnEvent: func(ctx context.Context, ev queue.BookingCreatedEvent) error {
			notifier.BookingCreated(ctx, ev.Booking)
			return nil
		},
		Log: logging.Component(log, "consumer"),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("consuming %s", queue.BookingCreatedQueue)
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("consumer stopped")
	}
}
