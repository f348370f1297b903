package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

//go:embed schema.sql
var schema string

// DSN builds the driver connection string.  The driver escapes the
// credentials, so passwords may contain '@', '/' or ':'.
func DSN(user, pass, host, port, name string) string {
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = pass
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, port)
	cfg.DBName = name
	// DATETIME -> time.Time in UTC
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	// UPDATE reports matched rows, so a no-op update of an existing row is
	// not mistaken for a missing one
	cfg.ClientFoundRows = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	dsn := DSN(user, pass, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate applies the embedded schema.  Every statement is idempotent
// (CREATE TABLE IF NOT EXISTS), so it is safe to run on each start.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range Statements() {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Statements splits the embedded schema into individual statements, since
// the driver runs without multiStatements.
func Statements() []string {
	var out []string
	for _, part := range strings.Split(schema, ";") {
		var lines []string
		for _, l := range strings.Split(part, "\n") {
			if t := strings.TrimSpace(l); t == "" || strings.HasPrefix(t, "--") {
				continue
			}
			lines = append(lines, l)
		}
		if len(lines) > 0 {
			out = append(out, strings.Join(lines, "\n"))
		}
	}
	return out
}

// Tables lists the tables created by the schema, in creation order.
var Tables = []string{
	"users", "refresh_tokens", "rooms", "amenities", "room_amenities",
	"inclusions", "packages", "package_rooms", "package_inclusions",
	"package_amenities", "bookings", "villa_info",
}
