package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/json"
    "fmt"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/villa-booking/internal/config"
)

// captureWriter tees the response body into buf, up to limit bytes.
type captureWriter struct {
    http.ResponseWriter
    status    int
    buf       bytes.Buffer
    limit     int64
    truncated bool
}

func (cw *captureWriter) WriteHeader(code int) { cw.status = code; cw.ResponseWriter.WriteHeader(code) }

func (cw *captureWriter) Write(b []byte) (int, error) {
    if !cw.truncated {
        if cw.limit > 0 && int64(cw.buf.Len()+len(b)) > cw.limit {
            cw.truncated = true
            cw.buf.Reset()
        } else {
            cw.buf.Write(b)
        }
    }
    return cw.ResponseWriter.Write(b)
}

// cachedResponse is what a cache entry holds.
type cachedResponse struct {
    Status      int    `json:"status"`
    ContentType string `json:"content_type"`
    Body        []byte `json:"body"`
}

// cacheKey builds a stable cache key honoring prefix/strategy.  The caller
// is part of every key so gated responses are never shared between users.
func cacheKey(cfg config.CacheConfig, c echo.Context) string {
    r := c.Request()
    var parts []string
    switch strings.ToLower(cfg.KeyStrategy) {
    case "route":
        parts = []string{"route", c.Path()}
    case "method_route":
        parts = []string{"method", r.Method, "route", c.Path()}
    case "method_route_query":
        parts = []string{"method", r.Method, "route", c.Path(), "q", r.URL.RawQuery}
    default: // "route_query"
        parts = []string{"route", c.Path(), "q", r.URL.RawQuery}
    }
    parts = append(parts, "user", userKey(c))
    sum := sha1.Sum([]byte(strings.Join(parts, ":")))
    return fmt.Sprintf("%s:%x", cfg.Prefix, sum[:])
}

// NewRedisCache caches successful responses of the configured methods in
// Redis for cfg.TTL.  Hits are answered with X-Cache: HIT.  With caching
// disabled or no Redis client it is a no-op.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return passthrough
    }
    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = 15 * time.Second
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if !cfg.Methods[strings.ToUpper(c.Request().Method)] {
                return next(c)
            }

            ctx := c.Request().Context()
            key := cacheKey(cfg, c)

            if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
                var hit cachedResponse
                if json.Unmarshal(raw, &hit) == nil {
                    c.Response().Header().Set("X-Cache", "HIT")
                    return c.Blob(hit.Status, hit.ContentType, hit.Body)
                }
            }

            cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: int64(cfg.MaxBodyBytes)}
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }

            if cw.status == http.StatusOK && !cw.truncated {
                entry, err := json.Marshal(cachedResponse{
                    Status:      cw.status,
                    ContentType: c.Response().Header().Get(echo.HeaderContentType),
                    Body:        cw.buf.Bytes(),
                })
                if err == nil {
                    // the request context may already be cancelled by now
                    _ = rdb.Set(context.Background(), key, entry, ttl).Err()
                }
            }
            return nil
        }
    }
}
