package config

// Redis backs the settings record, email send records, the admin response
// cache and the login rate limiter.  If the server cannot be reached at
// startup NewRedisClient returns nil and callers degrade: caching and rate
// limiting switch off and settings fall back to environment defaults.

import (
    "context"
    "crypto/tls"
    "os"
    "strconv"
    "time"

    "github.com/redis/go-redis/v9"
)

// RedisOptions builds client options from the environment:
//   REDIS_URL – full redis:// URL (takes precedence over everything else)
//   REDIS_HOST and REDIS_PORT, or REDIS_ADDR – server address
//   REDIS_PASSWORD, REDIS_DB, REDIS_TLS
func RedisOptions() *redis.Options {
    if u := os.Getenv("REDIS_URL"); u != "" {
        if opt, err := redis.ParseURL(u); err == nil {
            return opt
        }
    }
    addr := os.Getenv("REDIS_ADDR")
    if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
        addr = host + ":" + port
    }
    if addr == "" {
        addr = "localhost:6379"
    }
    dbNum := 0
    if n, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil {
        dbNum = n
    }
    var tlsConf *tls.Config
    if envBool("REDIS_TLS", false) {
        tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
    }
    return &redis.Options{
        Addr:      addr,
        Password:  os.Getenv("REDIS_PASSWORD"),
        DB:        dbNum,
        TLSConfig: tlsConf,
    }
}

// NewRedisClient connects and pings with a short timeout.  It returns nil
// when the server is unreachable.
func NewRedisClient() *redis.Client {
    client := redis.NewClient(RedisOptions())
    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        _ = client.Close()
        return nil
    }
    return client
}
