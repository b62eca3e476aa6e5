package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/equipment-rental/internal/config"
	"github.com/iliyamo/equipment-rental/internal/payment"
)

const rentalReq = `{"equipment_id":"excavator","start_date":"2024-01-01","end_date":"2024-01-03","amount":1}`

func TestCreatePaymentIntent(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t, "user@example.com", "user123")

	t.Run("requires a session", func(t *testing.T) {
		rec := app.do(http.MethodPost, "/api/create-payment-intent", rentalReq, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("amount is recomputed server-side", func(t *testing.T) {
		// The client claims the rental costs 1; the server must charge
		// the catalog price of 3×5000 regardless.
		rec := app.do(http.MethodPost, "/api/create-payment-intent", rentalReq, cookie)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		body := decode(t, rec)
		assert.Equal(t, float64(15000), body["amount"])
		assert.Equal(t, "USD", body["currency"])
		assert.NotEmpty(t, body["clientSecret"])
		assert.Equal(t, "pk_test_123", body["stripe_public_key"])
		assert.NotContains(t, rec.Body.String(), "sk_", "secret key must never reach the client")

		intentID := body["paymentIntentId"].(string)
		in, err := app.proc.RetrieveIntent(context.Background(), intentID)
		require.NoError(t, err)
		assert.Equal(t, int64(1500000), in.Amount, "intent amount in minor units")
		assert.Equal(t, "2", in.Metadata["user_id"])
		assert.Equal(t, "excavator", in.Metadata["equipment_id"])
		assert.Equal(t, "2024-01-01", in.Metadata["start_date"])
		assert.Equal(t, "2024-01-03", in.Metadata["end_date"])
		assert.Equal(t, "3", in.Metadata["days"])
	})

	t.Run("unknown equipment", func(t *testing.T) {
		rec := app.do(http.MethodPost, "/api/create-payment-intent",
			`{"equipment_id":"helicopter","start_date":"2024-01-01","end_date":"2024-01-03"}`, cookie)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad date range", func(t *testing.T) {
		rec := app.do(http.MethodPost, "/api/create-payment-intent",
			`{"equipment_id":"excavator","start_date":"2024-01-05","end_date":"2024-01-01"}`, cookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := app.do(http.MethodPost, "/api/create-payment-intent", `{"equipment_id":"excavator"}`, cookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCreatePaymentIntentMinimumCharge(t *testing.T) {
	// Raise the processor minimum above any quote the catalog can produce.
	app := newTestApp(t, func(c *config.Config) { c.PaymentMinCents = 10_000_000_000 })
	cookie := app.login(t, "user@example.com", "user123")

	rec := app.do(http.MethodPost, "/api/create-payment-intent", rentalReq, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Amount too small")
}

func TestConfirmBooking(t *testing.T) {
	app := newTestApp(t)
	cookie := app.login(t, "user@example.com", "user123")

	createIntent := func(t *testing.T) string {
		rec := app.do(http.MethodPost, "/api/create-payment-intent", rentalReq, cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		return decode(t, rec)["paymentIntentId"].(string)
	}

	t.Run("happy path appends booking and notification", func(t *testing.T) {
		intentID := createIntent(t)
		rec := app.do(http.MethodPost, "/api/confirm-booking", `{"payment_intent_id":"`+intentID+`"}`, cookie)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		body := decode(t, rec)
		booking := body["booking"].(map[string]any)
		assert.Equal(t, float64(1), booking["id"])
		assert.Equal(t, "confirmed", booking["status"])
		assert.Equal(t, float64(15000), booking["amount"], "stored in major units")
		assert.Equal(t, "Excavator", booking["equipment_name"])
		assert.Equal(t, intentID, booking["payment_intent_id"])

		notes := app.store.Notifications()
		require.Len(t, notes, 1)
		assert.Equal(t, "new_booking", notes[0].Type)
		assert.Equal(t, "user@example.com", notes[0].UserEmail)
	})

	t.Run("second confirmation of the same intent is rejected", func(t *testing.T) {
		intentID := createIntent(t)
		first := app.do(http.MethodPost, "/api/confirm-booking", `{"payment_intent_id":"`+intentID+`"}`, cookie)
		require.Equal(t, http.StatusOK, first.Code)

		second := app.do(http.MethodPost, "/api/confirm-booking", `{"payment_intent_id":"`+intentID+`"}`, cookie)
		assert.Equal(t, http.StatusConflict, second.Code)
		assert.Len(t, app.store.BookingsForUser(2), 2, "duplicate must not append")
	})

	t.Run("unfinished payment produces nothing", func(t *testing.T) {
		intentID := createIntent(t)
		app.proc.SetStatus(intentID, payment.StatusPending)

		before := len(app.store.AllBookings())
		rec := app.do(http.MethodPost, "/api/confirm-booking", `{"payment_intent_id":"`+intentID+`"}`, cookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Payment not completed")
		assert.Len(t, app.store.AllBookings(), before)
		assert.Len(t, app.store.Notifications(), before)
	})

	t.Run("failed payment is also rejected", func(t *testing.T) {
		intentID := createIntent(t)
		app.proc.SetStatus(intentID, payment.StatusFailed)
		rec := app.do(http.MethodPost, "/api/confirm-booking", `{"payment_intent_id":"`+intentID+`"}`, cookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("another user's intent is forbidden even when succeeded", func(t *testing.T) {
		intentID := createIntent(t)
		adminCookie := app.login(t, "admin@example.com", "admin123")

		rec := app.do(http.MethodPost, "/api/confirm-booking", `{"payment_intent_id":"`+intentID+`"}`, adminCookie)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown intent id", func(t *testing.T) {
		rec := app.do(http.MethodPost, "/api/confirm-booking", `{"payment_intent_id":"pi_ghost"}`, cookie)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing intent id", func(t *testing.T) {
		rec := app.do(http.MethodPost, "/api/confirm-booking", `{}`, cookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBookingListings(t *testing.T) {
	app := newTestApp(t)
	userCookie := app.login(t, "user@example.com", "user123")
	adminCookie := app.login(t, "admin@example.com", "admin123")

	confirm := func(t *testing.T, cookie *http.Cookie) {
		rec := app.do(http.MethodPost, "/api/create-payment-intent", rentalReq, cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		intentID := decode(t, rec)["paymentIntentId"].(string)
		rec = app.do(http.MethodPost, "/api/confirm-booking", `{"payment_intent_id":"`+intentID+`"}`, cookie)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	confirm(t, userCookie)
	confirm(t, adminCookie)
	confirm(t, userCookie)

	t.Run("users see only their own bookings in order", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/api/bookings", "", userCookie)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, float64(2), body["count"])
		bookings := body["bookings"].([]any)
		first := bookings[0].(map[string]any)
		second := bookings[1].(map[string]any)
		assert.Equal(t, float64(1), first["id"])
		assert.Equal(t, float64(3), second["id"])
		assert.Equal(t, float64(2), first["user_id"])
	})

	t.Run("admin sees everything", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/api/admin/bookings", "", adminCookie)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(3), decode(t, rec)["count"])
	})

	t.Run("admin notifications mirror bookings", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/api/admin/notifications", "", adminCookie)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, float64(3), decode(t, rec)["count"])
	})

	t.Run("admin endpoints reject user role", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, app.do(http.MethodGet, "/api/admin/bookings", "", userCookie).Code)
		assert.Equal(t, http.StatusForbidden, app.do(http.MethodGet, "/api/admin/notifications", "", userCookie).Code)
	})

	t.Run("admin endpoints reject anonymous", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, app.do(http.MethodGet, "/api/admin/bookings", "", nil).Code)
	})
}
