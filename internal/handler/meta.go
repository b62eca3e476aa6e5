package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/equipment-rental/internal/config"
)

// APIVersion is reported by the index and config endpoints.
const APIVersion = "1.0.0"

// MetaHandler serves the unauthenticated service endpoints: the API
// index, liveness check and non-secret config view.
type MetaHandler struct {
	Cfg config.Config
}

func NewMetaHandler(cfg config.Config) *MetaHandler {
	return &MetaHandler{Cfg: cfg}
}

// Index documents the API surface, including the sample credentials the
// demo user set is seeded with.
func (h *MetaHandler) Index(c echo.Context) error {
	base := c.Scheme() + "://" + c.Request().Host
	return c.JSON(http.StatusOK, echo.Map{
		"api":         "Construction Equipment Rental API",
		"version":     APIVersion,
		"environment": h.Cfg.Env,
		"endpoints": echo.Map{
			"authentication": echo.Map{
				"login":  base + "/api/login (POST)",
				"logout": base + "/api/logout (POST)",
			},
			"equipment": echo.Map{
				"list":            base + "/api/equipment (GET)",
				"calculate_price": base + "/api/calculate-price (POST)",
			},
			"bookings": echo.Map{
				"create_intent": base + "/api/create-payment-intent (POST)",
				"confirm":       base + "/api/confirm-booking (POST)",
				"list_user":     base + "/api/bookings (GET)",
				"list_admin":    base + "/api/admin/bookings (GET)",
				"notifications": base + "/api/admin/notifications (GET)",
			},
			"system": echo.Map{
				"health": base + "/health (GET)",
				"config": base + "/config (GET)",
			},
		},
		"sample_credentials": echo.Map{
			"admin": echo.Map{"email": "admin@example.com", "password": "admin123"},
			"user":  echo.Map{"email": "user@example.com", "password": "user123"},
		},
	})
}

// Health reports liveness.
func (h *MetaHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ShowConfig exposes non-secret configuration flags.  Secrets never
// appear here; stripe_configured only reports whether a key is present.
func (h *MetaHandler) ShowConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"environment":       h.Cfg.Env,
		"api_version":       APIVersion,
		"payment_provider":  h.Cfg.PaymentProvider,
		"stripe_configured": h.Cfg.StripeSecretKey != "",
	})
}
