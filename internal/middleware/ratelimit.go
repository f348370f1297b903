package middleware

import (
    "fmt"
    "math"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/villa-booking/internal/config"
    "github.com/iliyamo/villa-booking/internal/utils"
)

// limiterScript refills the bucket in whole intervals and takes one token.
// It returns {allowed, tokens_left, retry_after_ms}.
var limiterScript = redis.NewScript(`
        local key = KEYS[1]
        local now_ms = tonumber(ARGV[1])
        local capacity = tonumber(ARGV[2])
        local refill_tokens = tonumber(ARGV[3])
        local interval_ms = tonumber(ARGV[4])
        local ttl_seconds = tonumber(ARGV[5])

        local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
        local tokens = tonumber(state[1])
        local last_refill = tonumber(state[2])

        if tokens == nil or last_refill == nil then
            tokens = capacity
            last_refill = now_ms
        end

        if interval_ms > 0 and refill_tokens > 0 then
            local elapsed = math.max(0, now_ms - last_refill)
            local intervals = math.floor(elapsed / interval_ms)
            if intervals > 0 then
                tokens = math.min(capacity, tokens + (intervals * refill_tokens))
                last_refill = last_refill + (intervals * interval_ms)
            end
        end

        local allowed = 0
        local retry_after_ms = 0
        if tokens > 0 then
            allowed = 1
            tokens = tokens - 1
        else
            local until_next = interval_ms - (now_ms - last_refill)
            if until_next < 0 then until_next = 0 end
            retry_after_ms = until_next
        end

        redis.call('HMSET', key, 'tokens', tokens, 'last_refill_ms', last_refill, 'capacity', capacity)
        redis.call('EXPIRE', key, ttl_seconds)

        return { allowed, tokens, retry_after_ms }
    `)

// bucketState is the decoded reply of limiterScript.
type bucketState struct {
    allowed   bool
    remaining int64
    retry     time.Duration
}

func takeToken(c echo.Context, rdb *redis.Client, cfg config.RateLimitConfig, key string) (bucketState, error) {
    vals, err := limiterScript.Run(c.Request().Context(), rdb, []string{key},
        time.Now().UnixMilli(),
        cfg.Capacity,
        cfg.RefillTokens,
        cfg.RefillInterval.Milliseconds(),
        int64(cfg.TTL/time.Second),
    ).Int64Slice()
    if err != nil {
        return bucketState{}, err
    }
    if len(vals) != 3 {
        return bucketState{}, fmt.Errorf("ratelimit: unexpected reply %v", vals)
    }
    return bucketState{
        allowed:   vals[0] == 1,
        remaining: vals[1],
        retry:     time.Duration(vals[2]) * time.Millisecond,
    }, nil
}

// NewTokenBucket limits requests per key (see rateKey) with a Redis token
// bucket.  Redis errors let the request through.  With the limiter
// disabled or no Redis client it is a no-op.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client, log logrus.FieldLogger) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return passthrough
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            key := rateKey(cfg, c)
            st, err := takeToken(c, rdb, cfg, key)
            if err != nil {
                log.WithError(err).WithField("key", key).Warn("rate limiter unavailable, request allowed")
                return next(c)
            }

            hdr := c.Response().Header()
            hdr.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
            hdr.Set("X-RateLimit-Remaining", strconv.FormatInt(st.remaining, 10))
            if cfg.Debug {
                hdr.Set("X-RateLimit-Key", key)
            }
            if st.allowed {
                return next(c)
            }

            secs := int(math.Ceil(st.retry.Seconds()))
            hdr.Set("Retry-After", strconv.Itoa(secs))
            log.WithFields(logrus.Fields{"key": key, "retry_after": secs}).Info("rate limited")
            return utils.JSONError(c, http.StatusTooManyRequests,
                fmt.Sprintf("Too many requests, retry in %ds", secs))
        }
    }
}

// rateKey joins the prefix with the parts KeyStrategy names.  Unknown
// strategies use ip, user and route together.
func rateKey(cfg config.RateLimitConfig, c echo.Context) string {
    ip := c.RealIP()
    if ip == "" {
        ip = "unknown"
    }
    parts := map[string][]string{
        "ip":    {"ip", ip},
        "user":  {"user", userKey(c)},
        "route": {"route", c.Request().Method + " " + c.Path()},
    }

    var names []string
    switch strings.ToLower(cfg.KeyStrategy) {
    case "ip", "user", "route":
        names = []string{strings.ToLower(cfg.KeyStrategy)}
    case "ip_user":
        names = []string{"ip", "user"}
    case "ip_route":
        names = []string{"ip", "route"}
    case "user_route":
        names = []string{"user", "route"}
    default:
        names = []string{"ip", "user", "route"}
    }

    key := []string{cfg.Prefix}
    for _, n := range names {
        key = append(key, parts[n]...)
    }
    return strings.Join(key, ":")
}
