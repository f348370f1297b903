package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/villa-booking/internal/config"
)

// RegisterResources registers the catalogue endpoints: rooms, packages,
// the villa record, amenities and inclusions.  Reads are public; writes
// are gated by mutations(cfg).
func RegisterResources(e *echo.Echo, h Handlers, cfg config.Config) {
	gate := mutations(cfg)

	// ---- Rooms ----
	r := e.Group("/api/rooms", gate)
	r.GET("", h.Rooms.List)
	r.GET("/", h.Rooms.List)
	r.POST("", h.Rooms.Create)
	r.POST("/", h.Rooms.Create)
	r.GET("/:id", h.Rooms.Get)
	r.PUT("/:id", h.Rooms.Update)
	r.DELETE("/:id", h.Rooms.Delete) // soft delete unless ?hard=true
	r.GET("/:id/amenities", h.Rooms.ListAmenities)
	r.POST("/:id/amenities", h.Rooms.AddAmenity)
	r.DELETE("/:id/amenities/:amenity_id", h.Rooms.RemoveAmenity)

	// ---- Packages ----
	p := e.Group("/api/packages", gate)
	p.GET("", h.Packages.List)
	p.GET("/", h.Packages.List)
	p.POST("", h.Packages.Create)
	p.POST("/", h.Packages.Create)
	p.GET("/categories", h.Packages.Categories) // static segment wins over /:id
	p.GET("/:id", h.Packages.Get)
	p.PUT("/:id", h.Packages.Update)
	p.DELETE("/:id", h.Packages.Delete)
	p.GET("/:id/rooms", h.Packages.ListRooms)
	p.POST("/:id/rooms", h.Packages.AddRoom)
	p.DELETE("/:id/rooms/:room_id", h.Packages.RemoveRoom)
	p.GET("/:id/inclusions", h.Packages.ListInclusions)
	p.POST("/:id/inclusions", h.Packages.AddInclusion)
	p.DELETE("/:id/inclusions/:inclusion_id", h.Packages.RemoveInclusion)
	p.GET("/:id/amenities", h.Packages.ListAmenities)
	p.POST("/:id/amenities", h.Packages.AddAmenity)
	p.DELETE("/:id/amenities/:amenity_id", h.Packages.RemoveAmenity)

	// ---- Villa ----
	v := e.Group("/api/villa", gate)
	v.GET("", h.Villa.Get)
	v.GET("/", h.Villa.Get)
	v.PUT("", h.Villa.Update)
	v.PUT("/", h.Villa.Update)

	// ---- Amenities ----
	a := e.Group("/api/amenities", gate)
	a.GET("", h.Amenities.List)
	a.GET("/", h.Amenities.List)
	a.POST("", h.Amenities.Create)
	a.POST("/", h.Amenities.Create)
	a.GET("/list", h.Amenities.ListActive)
	a.GET("/featured", h.Amenities.Featured)
	a.GET("/icons", h.Amenities.Icons)
	a.GET("/category/:category", h.Amenities.ByCategory)
	a.GET("/:id", h.Amenities.Get)
	a.PUT("/:id", h.Amenities.Update)
	a.DELETE("/:id", h.Amenities.Delete)

	// ---- Inclusions ----
	i := e.Group("/api/inclusions", gate)
	i.GET("", h.Inclusions.List)
	i.GET("/", h.Inclusions.List)
	i.POST("", h.Inclusions.Create)
	i.POST("/", h.Inclusions.Create)
	i.GET("/featured", h.Inclusions.Featured)
	i.GET("/category/:category", h.Inclusions.ByCategory)
	i.GET("/:id", h.Inclusions.Get)
	i.PUT("/:id", h.Inclusions.Update)
	i.DELETE("/:id", h.Inclusions.Delete)
}
