package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"                   // import the Echo web framework to handle routing
	echomw "github.com/labstack/echo/v4/middleware" // panic recovery
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/villa-booking/internal/config"
	"github.com/iliyamo/villa-booking/internal/handler"    // import the handlers that implement business logic
	"github.com/iliyamo/villa-booking/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/iliyamo/villa-booking/internal/model"
)

// Handlers groups every HTTP handler the API exposes.
type Handlers struct {
	Health     *handler.HealthHandler
	Auth       *handler.AuthHandler
	Rooms      *handler.RoomHandler
	Packages   *handler.PackageHandler
	Villa      *handler.VillaHandler
	Bookings   *handler.BookingHandler
	Amenities  *handler.AmenityHandler
	Inclusions *handler.InclusionHandler
	Images     *handler.ImageHandler
	Admin      *handler.AdminHandler
	Settings   *handler.SettingsHandler
	Email      *handler.EmailHandler
}

// Options carries the configuration the router needs besides handlers.
// Redis may be nil; the cache and the rate limiter are then disabled.
type Options struct {
	Config    config.Config
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
	Redis     *redis.Client
	Log       logrus.FieldLogger
}

// staffRoles may use the gated endpoints when AUTH_REQUIRED is on.
var staffRoles = []string{model.RoleAdmin, model.RoleStaff}

// New builds the Echo instance with the global middleware chain, the error
// handler and every route group.
func New(h Handlers, o Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler(o.Log)

	// Order matters: preflight requests are answered by CORS before the
	// body check runs.
	e.Use(
		echomw.Recover(),
		middleware.RequestID(),
		middleware.RequestLogger(o.Log),
		middleware.CORS(),
		middleware.JSONBody(),
	)

	RegisterRoutes(e, h.Health)
	RegisterResources(e, h, o.Config)
	RegisterBookings(e, h.Bookings, h.Email, o.Config)
	RegisterAuth(e, h.Auth, o)
	RegisterBackOffice(e, h, o)
	return e
}

// RegisterRoutes registers the liveness and diagnostic endpoints.  They
// never require authentication.
func RegisterRoutes(e *echo.Echo, h *handler.HealthHandler) {
	// Map the GET request at path "/healthz" to the Healthz handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Healthz)
	e.GET("/api/health", h.Health)

	t := e.Group("/api/test")
	t.GET("/db", h.TestDB)           // ping + row counts
	t.GET("/storage", h.TestStorage) // bucket reachability
	t.GET("/env", h.TestEnv)         // which settings are present, never their values
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Login is rate limited per client IP when Redis is
// available.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, o Options) {
	g := e.Group("/api/auth")
	// Register a POST endpoint to handle user login at /api/auth/login.
	g.POST("/login", a.Login, middleware.NewTokenBucket(o.RateLimit, o.Redis, o.Log))
	// Verify accepts the token in the body or the Authorization header.
	g.POST("/verify", a.Verify)
	// Register a POST endpoint to refresh access tokens.  This rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Logout revokes one refresh token, or every token of the bearer.
	g.POST("/logout", a.Logout)

	// /api/auth/me returns the authenticated user's identity and always
	// requires a valid access token.
	g.GET("/me", a.Me, middleware.JWTAuth(o.Config.JWTSecret), middleware.RequireRole(staffRoles...))
}

// mutations gates POST, PUT and DELETE behind the staff roles when
// AUTH_REQUIRED is on.
func mutations(cfg config.Config) echo.MiddlewareFunc {
	return middleware.AdminOnly(cfg.AuthRequired, cfg.JWTSecret, staffRoles...)
}

// staffOnly gates every method when AUTH_REQUIRED is on.
func staffOnly(cfg config.Config) []echo.MiddlewareFunc {
	if !cfg.AuthRequired {
		return nil
	}
	return []echo.MiddlewareFunc{
		middleware.JWTAuth(cfg.JWTSecret),
		middleware.RequireRole(staffRoles...),
	}
}
