package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/equipment-rental/internal/handler"
	"github.com/iliyamo/equipment-rental/internal/middleware"
	"github.com/iliyamo/equipment-rental/internal/model"
	"github.com/iliyamo/equipment-rental/internal/store"
)

// Handlers groups everything the router wires up.
type Handlers struct {
	Meta      *handler.MetaHandler
	Auth      *handler.AuthHandler
	Equipment *handler.EquipmentHandler
	Booking   *handler.BookingHandler
}

// Register wires all routes on the Echo instance.  The path layout is
// fixed for client compatibility: service endpoints at the root, public
// API under /api, session-scoped endpoints behind SessionAuth, and admin
// endpoints additionally behind RequireRole(admin).  The rateLimit
// middleware applies to the whole /api group and may be a pass-through.
func Register(e *echo.Echo, h Handlers, st *store.Store, sessionSecret string, rateLimit echo.MiddlewareFunc) {
	// Unauthenticated service endpoints.
	e.GET("/", h.Meta.Index)
	e.GET("/health", h.Meta.Health)
	e.GET("/config", h.Meta.ShowConfig)

	api := e.Group("/api")
	if rateLimit != nil {
		api.Use(rateLimit)
	}

	// Public: authentication and catalog.  Logout is deliberately public —
	// it is an idempotent no-op without a valid session.
	api.POST("/login", h.Auth.Login)
	api.POST("/logout", h.Auth.Logout)
	api.GET("/equipment", h.Equipment.List)
	api.POST("/calculate-price", h.Equipment.CalculatePrice)

	// Session-scoped: payment and booking views.
	authed := api.Group("")
	authed.Use(middleware.SessionAuth(sessionSecret, st))
	authed.POST("/create-payment-intent", h.Booking.CreatePaymentIntent)
	authed.POST("/confirm-booking", h.Booking.ConfirmBooking)
	authed.GET("/bookings", h.Booking.ListMine)

	// Admin-only views.
	admin := api.Group("/admin")
	admin.Use(middleware.SessionAuth(sessionSecret, st))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.GET("/bookings", h.Booking.ListAll)
	admin.GET("/notifications", h.Booking.ListNotifications)
}
