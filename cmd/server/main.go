package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/villa-booking/internal/config" // Internal config loader
	"github.com/iliyamo/villa-booking/internal/database"
	"github.com/iliyamo/villa-booking/internal/handler"
	"github.com/iliyamo/villa-booking/internal/logging"
	"github.com/iliyamo/villa-booking/internal/mailer"
	"github.com/iliyamo/villa-booking/internal/model"
	"github.com/iliyamo/villa-booking/internal/repository"
	"github.com/iliyamo/villa-booking/internal/router" // Internal router setup
	"github.com/iliyamo/villa-booking/internal/service"
	"github.com/iliyamo/villa-booking/internal/storage"
)

func main() {
	_ = godotenv.Load()  // .env is optional; real env vars win
	cfg := config.Load() // Load environment config
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()
	if cfg.DBAutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := database.Migrate(ctx, db)
		cancel()
		if err != nil {
			log.WithError(err).Fatal("schema migration failed")
		}
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unreachable: settings are read-only, cache and rate limit disabled")
	} else {
		defer rdb.Close()
	}

	store, err := newObjectStore(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("object storage setup failed")
	}

	settings := repository.NewSettingsStore(rdb, model.Settings{
		AdminEmail: cfg.AdminEmail,
		VillaName:  cfg.VillaName,
		FromEmail:  cfg.FromEmail,
		Currency:   "USD",
	})
	records := repository.NewEmailRecordStore(rdb)
	notifier := service.NewNotifier(mailer.FromConfig(cfg, logging.Component(log, "mailer")), settings, records, logging.Component(log, "notifier"))
	publisher := service.NewBookingPublisher(cfg.RabbitURL, logging.Component(log, "publisher"))

	rooms := repository.NewRoomRepo(db)
	packages := repository.NewPackageRepo(db)
	amenities := repository.NewAmenityRepo(db)
	stats := repository.NewStatsRepo(db)
	tokens := repository.NewTokenRepo(db)

	e := router.New(router.Handlers{
		Health:     handler.NewHealthHandler(stats, database.Tables, store, cfg, rdb != nil),
		Auth:       handler.NewAuthHandler(cfg, repository.NewUserRepo(db), tokens),
		Rooms:      handler.NewRoomHandler(rooms),
		Packages:   handler.NewPackageHandler(packages),
		Villa:      handler.NewVillaHandler(repository.NewVillaRepo(db)),
		Bookings:   handler.NewBookingHandler(repository.NewBookingRepo(db), publisher, cfg.OverlapGuard, logging.Component(log, "bookings")),
		Amenities:  handler.NewAmenityHandler(amenities),
		Inclusions: handler.NewInclusionHandler(repository.NewInclusionRepo(db)),
		Images:     handler.NewImageHandler(store, cfg.ImagePublicBase),
		Admin:      handler.NewAdminHandler(stats, rooms, packages, amenities),
		Settings:   handler.NewSettingsHandler(settings),
		Email:      handler.NewEmailHandler(notifier, records),
	}, router.Options{
		Config:    cfg,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
		Redis:     rdb,
		Log:       logging.Component(log, "http"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go purgeTokens(ctx, tokens, logging.Component(log, "tokens"))

	addr := ":" + cfg.Port // Address string with port
	go func() {
		log.Infof("listening on %s (env=%s)", addr, cfg.Env) // Print startup info
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server stopped")
		}
	}()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}

// purgeTokens drops refresh tokens that expired or were revoked more than a
// day ago, once an hour until ctx ends.
func purgeTokens(ctx context.Context, tokens *repository.TokenRepo, log logrus.FieldLogger) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := tokens.PurgeExpired(ctx, now.Add(-24*time.Hour))
			if err != nil {
				log.WithError(err).Warn("purge refresh tokens")
				continue
			}
			if n > 0 {
				log.WithField("rows", n).Info("purged refresh tokens")
			}
		}
	}
}

// newObjectStore returns the R2 bucket when an endpoint is configured and
// an in-memory store otherwise.
func newObjectStore(cfg config.Config, log *logrus.Logger) (storage.ObjectStore, error) {
	if cfg.R2Endpoint == "" {
		log.Warn("R2_ENDPOINT not set: images are kept in memory")
		return storage.NewMemoryStore(), nil
	}
	return storage.NewMinioStore(storage.MinioOptions{
		Endpoint:        cfg.R2Endpoint,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		Bucket:          cfg.R2Bucket,
		UseSSL:          cfg.R2UseSSL,
	})
}
