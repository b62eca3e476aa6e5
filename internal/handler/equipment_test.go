package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEquipment(t *testing.T) {
	app := newTestApp(t)

	rec := app.do(http.MethodGet, "/api/equipment", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, float64(3), body["count"])

	items := body["equipment"].([]any)
	first := items[0].(map[string]any)
	assert.Equal(t, "excavator", first["id"])
	assert.Equal(t, float64(5000), first["price_per_day"])
	assert.Equal(t, true, first["available"])
}

func TestCalculatePrice(t *testing.T) {
	app := newTestApp(t)

	t.Run("quote", func(t *testing.T) {
		rec := app.do(http.MethodPost, "/api/calculate-price",
			`{"equipment_id":"bulldozer","start_date":"2024-03-10","end_date":"2024-03-14"}`, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode(t, rec)
		assert.Equal(t, "Bulldozer", body["equipment"])
		assert.Equal(t, float64(5), body["days"])
		assert.Equal(t, float64(22500), body["total_price"])
		assert.Equal(t, "USD", body["currency"])
	})

	t.Run("unknown equipment", func(t *testing.T) {
		rec := app.do(http.MethodPost, "/api/calculate-price",
			`{"equipment_id":"submarine","start_date":"2024-03-10","end_date":"2024-03-14"}`, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("reversed range", func(t *testing.T) {
		rec := app.do(http.MethodPost, "/api/calculate-price",
			`{"equipment_id":"bulldozer","start_date":"2024-03-14","end_date":"2024-03-10"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed date", func(t *testing.T) {
		rec := app.do(http.MethodPost, "/api/calculate-price",
			`{"equipment_id":"bulldozer","start_date":"14-03-2024","end_date":"2024-03-20"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := app.do(http.MethodPost, "/api/calculate-price", `{"equipment_id":"bulldozer"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMetaEndpoints(t *testing.T) {
	app := newTestApp(t)

	t.Run("index", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "Construction Equipment Rental API", body["api"])
		assert.Equal(t, "test", body["environment"])
	})

	t.Run("health", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/health", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "healthy", decode(t, rec)["status"])
	})

	t.Run("config hides secrets", func(t *testing.T) {
		rec := app.do(http.MethodGet, "/config", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "mock", body["payment_provider"])
		assert.Equal(t, false, body["stripe_configured"])
		assert.NotContains(t, rec.Body.String(), "test-secret")
	})
}
