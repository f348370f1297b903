package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/villa-booking/internal/config"
	"github.com/iliyamo/villa-booking/internal/handler"
)

// RegisterBookings registers the booking and booking email endpoints.
// Guests create bookings and trigger confirmation emails without a token;
// changing or deleting a booking and reading email records are staff
// operations when AUTH_REQUIRED is on.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, m *handler.EmailHandler, cfg config.Config) {
	staff := staffOnly(cfg)

	g := e.Group("/api/bookings")
	g.GET("", h.List)
	g.GET("/", h.List)
	g.GET("/list", h.ListPage)
	g.GET("/ref/:ref", h.GetByReference)
	g.GET("/dates/search", h.Search)
	g.POST("", h.Create)
	g.POST("/", h.Create)
	g.POST("/create", h.Create)
	g.GET("/:id", h.Get)
	g.PUT("/:id", h.Update, staff...)
	g.PUT("/:id/status", h.UpdateStatus, staff...)
	g.DELETE("/:id", h.Delete, staff...)

	em := e.Group("/api/email")
	em.POST("/booking-confirmation", m.BookingConfirmation)
	em.POST("/admin-notification", m.AdminNotification)
	em.POST("/status-change", m.StatusChange)
	em.GET("/records/:reference", m.ListRecords, staff...)
}
