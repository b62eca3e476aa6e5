package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/equipment-rental/internal/pricing"
	"github.com/iliyamo/equipment-rental/internal/store"
)

// EquipmentHandler serves the public catalog and price calculation
// endpoints.  Neither requires a session.
type EquipmentHandler struct {
	Store    *store.Store
	Currency string
	Log      *zap.Logger
}

func NewEquipmentHandler(st *store.Store, currency string, log *zap.Logger) *EquipmentHandler {
	return &EquipmentHandler{Store: st, Currency: currency, Log: log}
}

// List returns the full equipment catalog.
func (h *EquipmentHandler) List(c echo.Context) error {
	items := h.Store.ListEquipment()
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "success",
		"count":     len(items),
		"equipment": items,
	})
}

type calculatePriceReq struct {
	EquipmentID string `json:"equipment_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// CalculatePrice quotes the rental price for an equipment and date range.
func (h *EquipmentHandler) CalculatePrice(c echo.Context) error {
	var req calculatePriceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No data provided"})
	}
	if req.EquipmentID == "" || req.StartDate == "" || req.EndDate == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Missing required fields"})
	}

	q, err := pricing.ComputeQuote(h.Store, req.EquipmentID, req.StartDate, req.EndDate)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Equipment not found"})
	case errors.Is(err, pricing.ErrInvalidDate), errors.Is(err, pricing.ErrInvalidRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case err != nil:
		h.Log.Error("price calculation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":      "success",
		"equipment":   q.EquipmentName,
		"start_date":  req.StartDate,
		"end_date":    req.EndDate,
		"days":        q.Days,
		"total_price": q.Total,
		"currency":    strings.ToUpper(h.Currency),
	})
}
