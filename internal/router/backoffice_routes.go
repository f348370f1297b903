package router

// This file registers the back-office routes: the admin dashboard, the
// settings record and image storage.  Admin reads are cached in Redis;
// they and every settings or image mutation need a staff token when
// AUTH_REQUIRED is on.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/villa-booking/internal/middleware"
)

// RegisterBackOffice mounts /api/admin, /api/settings and /api/images.
func RegisterBackOffice(e *echo.Echo, h Handlers, o Options) {
	adm := e.Group("/api/admin", staffOnly(o.Config)...)
	adm.Use(middleware.NewRedisCache(o.Cache, o.Redis))
	adm.GET("/dashboard", h.Admin.Dashboard)
	adm.GET("/analytics", h.Admin.Analytics)

	s := e.Group("/api/settings", mutations(o.Config))
	s.GET("", h.Settings.Get)
	s.GET("/", h.Settings.Get)
	s.POST("", h.Settings.Merge)
	s.POST("/", h.Settings.Merge)
	s.GET("/:key", h.Settings.GetKey)
	s.PUT("/:key", h.Settings.SetKey)

	img := e.Group("/api/images", mutations(o.Config))
	img.GET("/list", h.Images.List)
	img.POST("/upload", h.Images.Upload)
	img.GET("/*", h.Images.Get)
	img.DELETE("/*", h.Images.Delete)
}
