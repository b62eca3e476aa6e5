package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/equipment-rental/internal/config"
	"github.com/iliyamo/equipment-rental/internal/middleware"
	"github.com/iliyamo/equipment-rental/internal/model"
	"github.com/iliyamo/equipment-rental/internal/payment"
	"github.com/iliyamo/equipment-rental/internal/pricing"
	"github.com/iliyamo/equipment-rental/internal/queue"
	queue_publisher "github.com/iliyamo/equipment-rental/internal/service"
	"github.com/iliyamo/equipment-rental/internal/store"
)

// processorTimeout bounds each call to the external payment processor.
// The processor is the only I/O in the request path; no store lock is
// held while a call is in flight.
const processorTimeout = 15 * time.Second

// BookingHandler implements the payment-intent and booking endpoints.
type BookingHandler struct {
	Cfg       config.Config
	Store     *store.Store
	Processor payment.Processor
	Log       *zap.Logger
}

func NewBookingHandler(cfg config.Config, st *store.Store, proc payment.Processor, log *zap.Logger) *BookingHandler {
	return &BookingHandler{Cfg: cfg, Store: st, Processor: proc, Log: log}
}

// ----- DTOs -----

type createIntentReq struct {
	EquipmentID string `json:"equipment_id"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	// Amount is what the client believes it owes.  It is informational
	// only: the server always recomputes the price and charges that.
	Amount float64 `json:"amount"`
}

type confirmBookingReq struct {
	PaymentIntentID string `json:"payment_intent_id"`
}

// CreatePaymentIntent opens a payment intent with the processor for the
// requested rental.  The amount is recomputed server-side from the
// catalog; the client-sent amount is never trusted.  Booking context is
// attached as intent metadata so ConfirmBooking can verify ownership.
func (h *BookingHandler) CreatePaymentIntent(c echo.Context) error {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	var req createIntentReq
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
		h.Log.Error("quote failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	amountCents := q.Total * 100
	if amountCents < h.Cfg.PaymentMinCents {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Amount too small"})
	}

	var customerRef string
	if u, err := h.Store.UserByEmail(sess.Email); err == nil {
		customerRef = u.CustomerRef
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), processorTimeout)
	defer cancel()
	intent, err := h.Processor.CreateIntent(ctx, payment.CreateParams{
		Amount:      amountCents,
		Currency:    h.Cfg.Currency,
		CustomerRef: customerRef,
		Description: "Equipment rental: " + q.EquipmentName + " (" + strconv.FormatInt(q.Days, 10) + " days)",
		Metadata: map[string]string{
			"user_id":      strconv.FormatInt(sess.UserID, 10),
			"user_email":   sess.Email,
			"equipment_id": q.EquipmentID,
			"start_date":   req.StartDate,
			"end_date":     req.EndDate,
			"days":         strconv.FormatInt(q.Days, 10),
		},
	})
	if err != nil {
		var pErr *payment.ProcessorError
		if errors.As(err, &pErr) {
			h.Log.Warn("processor rejected intent", zap.String("code", pErr.Code), zap.String("message", pErr.Message))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": pErr.Message})
		}
		h.Log.Error("create intent failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Payment processing failed"})
	}

	h.Log.Info("created payment intent",
		zap.String("intent_id", intent.ID),
		zap.Int64("user_id", sess.UserID),
		zap.Int64("amount_cents", amountCents),
	)
	return c.JSON(http.StatusOK, echo.Map{
		"status":            "success",
		"clientSecret":      intent.ClientSecret,
		"paymentIntentId":   intent.ID,
		"amount":            q.Total,
		"currency":          strings.ToUpper(h.Cfg.Currency),
		"stripe_public_key": h.Cfg.StripePublicKey,
	})
}

// ConfirmBooking verifies a payment intent with the processor and, on
// success, appends the booking and its admin notification atomically.
// The intent must have succeeded and must belong to the calling session's
// user; confirming the same intent twice is rejected.
func (h *BookingHandler) ConfirmBooking(c echo.Context) error {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}

	var req confirmBookingReq
	if err := c.Bind(&req); err != nil || req.PaymentIntentID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Payment intent ID required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), processorTimeout)
	defer cancel()
	intent, err := h.Processor.RetrieveIntent(ctx, req.PaymentIntentID)
	if err != nil {
		if errors.Is(err, payment.ErrIntentNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Payment intent not found"})
		}
		var pErr *payment.ProcessorError
		if errors.As(err, &pErr) {
			h.Log.Warn("processor retrieve failed", zap.String("intent_id", req.PaymentIntentID), zap.String("message", pErr.Message))
			return c.JSON(http.StatusBadRequest, echo.Map{"error": pErr.Message})
		}
		h.Log.Error("retrieve intent failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	if intent.Status != payment.StatusSucceeded {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Payment not completed"})
	}
	// Ownership check: the intent's metadata pins the user that paid.  A
	// session confirming someone else's payment is rejected outright.
	if intent.Metadata["user_id"] != strconv.FormatInt(sess.UserID, 10) {
		h.Log.Warn("intent ownership mismatch",
			zap.String("intent_id", intent.ID),
			zap.Int64("session_user", sess.UserID),
		)
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Payment does not belong to user"})
	}

	equipmentName := "Unknown"
	if eq, err := h.Store.Equipment(intent.Metadata["equipment_id"]); err == nil {
		equipmentName = eq.Name
	}

	booking, err := h.Store.AppendConfirmed(model.Booking{
		UserID:          sess.UserID,
		UserEmail:       sess.Email,
		EquipmentID:     intent.Metadata["equipment_id"],
		EquipmentName:   equipmentName,
		StartDate:       intent.Metadata["start_date"],
		EndDate:         intent.Metadata["end_date"],
		Amount:          float64(intent.Amount) / 100,
		PaymentIntentID: intent.ID,
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateIntent) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Booking already confirmed for this payment"})
		}
		h.Log.Error("append booking failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	h.Log.Info("booking confirmed",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("user_id", booking.UserID),
		zap.String("intent_id", booking.PaymentIntentID),
	)
	h.publishConfirmed(booking)

	return c.JSON(http.StatusOK, echo.Map{
		"status":  "success",
		"message": "Booking confirmed",
		"booking": booking,
	})
}

// publishConfirmed mirrors the confirmation to the message broker.  The
// in-memory ledger is authoritative; publish failures are logged and
// never surfaced to the client.
func (h *BookingHandler) publishConfirmed(b model.Booking) {
	if h.Cfg.AMQPURL == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := queue_publisher.PublishBookingConfirmed(ctx, h.Cfg.AMQPURL, queue.BookingConfirmedEvent{
		BookingID:       b.ID,
		UserID:          b.UserID,
		UserEmail:       b.UserEmail,
		EquipmentID:     b.EquipmentID,
		EquipmentName:   b.EquipmentName,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		Amount:          b.Amount,
		PaymentIntentID: b.PaymentIntentID,
		ConfirmedAt:     b.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		h.Log.Warn("booking event publish failed", zap.Int64("booking_id", b.ID), zap.Error(err))
	}
}

// ListMine returns the calling user's bookings in creation order.
func (h *BookingHandler) ListMine(c echo.Context) error {
	sess, ok := middleware.SessionFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Unauthorized"})
	}
	bookings := h.Store.BookingsForUser(sess.UserID)
	return c.JSON(http.StatusOK, echo.Map{
		"status":   "success",
		"count":    len(bookings),
		"bookings": bookings,
	})
}

// ListAll returns every booking.  Admin only (enforced by routing).
func (h *BookingHandler) ListAll(c echo.Context) error {
	bookings := h.Store.AllBookings()
	return c.JSON(http.StatusOK, echo.Map{
		"status":   "success",
		"count":    len(bookings),
		"bookings": bookings,
	})
}

// ListNotifications returns every admin notification.  Admin only.
func (h *BookingHandler) ListNotifications(c echo.Context) error {
	notifications := h.Store.Notifications()
	return c.JSON(http.StatusOK, echo.Map{
		"status":        "success",
		"count":         len(notifications),
		"notifications": notifications,
	})
}
