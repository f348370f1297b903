// Command adduser creates a back-office account.
//
//	adduser -username alice -password s3cret-pass -role ADMIN
package main

import (
	"context"
	"errors"
	"flag"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/villa-booking/internal/config"
	"github.com/iliyamo/villa-booking/internal/database"
	"github.com/iliyamo/villa-booking/internal/logging"
	"github.com/iliyamo/villa-booking/internal/model"
	"github.com/iliyamo/villa-booking/internal/repository"
	"github.com/iliyamo/villa-booking/internal/utils"
)

func main() {
	username := flag.String("username", "", "login name")
	password := flag.String("password", "", "plain password, stored as a bcrypt hash")
	role := flag.String("role", model.RoleAdmin, "ADMIN or STAFF")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	r := strings.ToUpper(strings.TrimSpace(*role))
	switch {
	case strings.TrimSpace(*username) == "" || *password == "":
		log.Fatal("-username and -password are required")
	case !model.ValidRole(r):
		log.Fatalf("invalid role %q", *role)
	}
	if err := utils.CheckPasswordStrength(*password); err != nil {
		log.Fatal(err)
	}

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := repository.NewUserRepo(db).Create(ctx, *username, *password, r, cfg.BcryptCost)
	if errors.Is(err, repository.ErrUsernameExists) {
		log.Fatalf("user %q already exists", *username)
	}
	if err != nil {
		log.WithError(err).Fatal("create user failed")
	}
	log.WithField("id", id).Infof("created %s user %q", r, *username)
}
