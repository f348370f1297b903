package handler // declare the package name; contains HTTP handlers

import (
    "context"
    "net/http" // net/http provides status codes and response helpers
    "time"

    "github.com/labstack/echo/v4" // echo is the web framework used for this project

    "github.com/iliyamo/villa-booking/internal/config"
    "github.com/iliyamo/villa-booking/internal/storage"
    "github.com/iliyamo/villa-booking/internal/utils"
)

// Version is reported by /api/health.
const Version = "1.0.0"

// DBChecker is what the database diagnostic needs.
type DBChecker interface {
    Ping(ctx context.Context) error
    TableCounts(ctx context.Context, tables []string) (map[string]int, error)
}

// HealthHandler serves the liveness and diagnostic endpoints.
type HealthHandler struct {
    DB      DBChecker
    Tables  []string
    Storage storage.ObjectStore
    Cfg     config.Config
    // RedisUp reports whether a Redis client was configured at startup.
    RedisUp bool
    now     func() time.Time
}

func NewHealthHandler(db DBChecker, tables []string, store storage.ObjectStore, cfg config.Config, redisUp bool) *HealthHandler {
    return &HealthHandler{DB: db, Tables: tables, Storage: store, Cfg: cfg, RedisUp: redisUp, now: time.Now}
}

// Healthz is a simple health‑check endpoint used by load balancers and
// monitoring systems to verify that the service is running.  It returns
// a plain text "ok" message with an HTTP 200 status code.
func Healthz(c echo.Context) error {
    return c.String(http.StatusOK, "ok") // String writes plain text
}

// Health reports status, server time and version inside the envelope.
func (h *HealthHandler) Health(c echo.Context) error {
    return utils.JSONSuccess(c, http.StatusOK, echo.Map{
        "status":    "healthy",
        "timestamp": h.now().UTC(),
        "version":   Version,
    })
}

// TestDB pings the database and counts the rows of every schema table.
func (h *HealthHandler) TestDB(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.DB.Ping(ctx); err != nil {
        return err
    }
    counts, err := h.DB.TableCounts(ctx, h.Tables)
    if err != nil {
        return err
    }
    return utils.JSONMessage(c, http.StatusOK, echo.Map{"tables": counts}, "Database connection successful")
}

// TestStorage checks that the image bucket is reachable.
func (h *HealthHandler) TestStorage(c echo.Context) error {
    ctx, cancel := reqCtx(c)
    defer cancel()

    if err := h.Storage.Ping(ctx); err != nil {
        return err
    }
    objs, err := h.Storage.List(ctx, "")
    if err != nil {
        return err
    }
    return utils.JSONMessage(c, http.StatusOK, echo.Map{"objects": len(objs)}, "Storage connection successful")
}

// TestEnv reports which settings are present.  Values are never echoed.
func (h *HealthHandler) TestEnv(c echo.Context) error {
    cfg := h.Cfg
    return utils.JSONSuccess(c, http.StatusOK, echo.Map{
        "app_env":        cfg.Env != "",
        "database":       cfg.DBHost != "" && cfg.DBName != "",
        "jwt_secret":     cfg.JWTSecret != "",
        "resend_api_key": cfg.ResendAPIKey != "",
        "smtp":           cfg.SMTPHost != "",
        "r2_endpoint":    cfg.R2Endpoint != "",
        "r2_credentials": cfg.R2AccessKeyID != "" && cfg.R2SecretAccessKey != "",
        "r2_bucket":      cfg.R2Bucket != "",
        "rabbitmq":       cfg.RabbitURL != "",
        "redis":          h.RedisUp,
        "admin_email":    cfg.AdminEmail != "",
        "from_email":     cfg.FromEmail != "",
        "auth_required":  cfg.AuthRequired,
    })
}
