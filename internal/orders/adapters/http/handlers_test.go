package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	cartdomain "github.com/SouravDn-p/mobile-canvas-api/internal/cart/domain"
	"github.com/SouravDn-p/mobile-canvas-api/internal/events"
	idemmemory "github.com/SouravDn-p/mobile-canvas-api/internal/idempotency/memory"
	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/adapters/memory"
	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/app"
	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/domain"
	"github.com/SouravDn-p/mobile-canvas-api/internal/orders/metrics"
)

type fakeCart struct {
	lines   map[string][]cartdomain.ItemLine
	cleared []string
}

func (f *fakeCart) GetCart(_ context.Context, userID string) ([]cartdomain.ItemLine, error) {
	return f.lines[userID], nil
}

func (f *fakeCart) ClearCart(_ context.Context, userID string) error {
	f.cleared = append(f.cleared, userID)
	delete(f.lines, userID)
	return nil
}

func newTestMux(t *testing.T) (*http.ServeMux, *memory.Repository, *fakeCart) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")
	m, err := metrics.NewMetrics(meter)
	require.NoError(t, err)

	repo := memory.NewRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := app.NewService(repo, events.NewNoopEventBus(), idemmemory.NewStore(), app.Pricing{ShippingFee: 9.99, TaxRate: 0.08}, logger, m)

	cart := &fakeCart{lines: map[string][]cartdomain.ItemLine{}}

	mux := http.NewServeMux()
	NewHandler(service, cart).Register(mux)

	return mux, repo, cart
}

func checkoutPayload() map[string]any {
	return map[string]any{
		"email": "buyer@example.com",
		"items": []map[string]any{
			{"productId": "P1", "name": "Phone", "price": 49.99, "quantity": 1},
		},
		"shippingAddress": map[string]any{
			"firstName": "Ada",
			"lastName":  "Lovelace",
			"address":   "12 Analytical Way",
			"city":      "London",
			"country":   "UK",
		},
		"paymentMethod": map[string]any{"type": "cod"},
	}
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, payload any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeOrder(t *testing.T, rec *httptest.ResponseRecorder) domain.Order {
	t.Helper()

	var response struct {
		Order domain.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response.Order
}

func TestCheckout(t *testing.T) {
	t.Run("requires an idempotency key", func(t *testing.T) {
		mux, _, _ := newTestMux(t)

		rec := doJSON(t, mux, http.MethodPost, "/v1/checkout", checkoutPayload(), nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("places an order from explicit items", func(t *testing.T) {
		mux, repo, _ := newTestMux(t)

		rec := doJSON(t, mux, http.MethodPost, "/v1/checkout", checkoutPayload(), map[string]string{"Idempotency-Key": "key-1"})

		require.Equal(t, http.StatusAccepted, rec.Code)
		order := decodeOrder(t, rec)
		assert.Equal(t, domain.StatusPending, order.Status)
		assert.Equal(t, domain.PaymentPending, order.Payment)
		assert.Equal(t, 63.98, order.Total) // 49.99 + 4.00 tax + 9.99 shipping

		stored, err := repo.GetByID(context.Background(), order.ID)
		require.NoError(t, err)
		assert.Equal(t, order.ID, stored.ID)
	})

	t.Run("reads and clears the cart when items are omitted", func(t *testing.T) {
		mux, _, cart := newTestMux(t)
		cart.lines["user-1"] = []cartdomain.ItemLine{
			{ProductID: "P2", Name: "Case", Price: 25, Quantity: 2},
		}

		payload := checkoutPayload()
		delete(payload, "items")
		payload["userId"] = "user-1"

		rec := doJSON(t, mux, http.MethodPost, "/v1/checkout", payload, map[string]string{"Idempotency-Key": "key-2"})

		require.Equal(t, http.StatusAccepted, rec.Code)
		order := decodeOrder(t, rec)
		require.Len(t, order.Items, 1)
		assert.Equal(t, "P2", order.Items[0].ProductID)
		assert.Equal(t, 2, order.Items[0].Quantity)
		assert.Equal(t, []string{"user-1"}, cart.cleared)
	})

	t.Run("rejects an empty cart", func(t *testing.T) {
		mux, _, _ := newTestMux(t)

		payload := checkoutPayload()
		delete(payload, "items")
		payload["userId"] = "user-empty"

		rec := doJSON(t, mux, http.MethodPost, "/v1/checkout", payload, map[string]string{"Idempotency-Key": "key-3"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("replays the stored response for a duplicate key", func(t *testing.T) {
		mux, repo, _ := newTestMux(t)
		headers := map[string]string{"Idempotency-Key": "key-4"}

		first := doJSON(t, mux, http.MethodPost, "/v1/checkout", checkoutPayload(), headers)
		require.Equal(t, http.StatusAccepted, first.Code)

		second := doJSON(t, mux, http.MethodPost, "/v1/checkout", checkoutPayload(), headers)
		require.Equal(t, http.StatusAccepted, second.Code)
		assert.Equal(t, first.Body.String(), second.Body.String())

		orders, err := repo.ListAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, orders, 1)
	})

	t.Run("rejects invalid payloads", func(t *testing.T) {
		mux, _, _ := newTestMux(t)

		payload := checkoutPayload()
		payload["email"] = "not-an-email"

		rec := doJSON(t, mux, http.MethodPost, "/v1/checkout", payload, map[string]string{"Idempotency-Key": "key-5"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func placeTestOrder(t *testing.T, mux *http.ServeMux, key string) domain.Order {
	t.Helper()
	rec := doJSON(t, mux, http.MethodPost, "/v1/checkout", checkoutPayload(), map[string]string{"Idempotency-Key": key})
	require.Equal(t, http.StatusAccepted, rec.Code)
	return decodeOrder(t, rec)
}

func TestGetOrder(t *testing.T) {
	t.Run("returns a stored order", func(t *testing.T) {
		mux, _, _ := newTestMux(t)
		placed := placeTestOrder(t, mux, "key-get")

		rec := doJSON(t, mux, http.MethodGet, "/v1/orders/"+placed.ID, nil, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		order := decodeOrder(t, rec)
		assert.Equal(t, placed.ID, order.ID)
	})

	t.Run("unknown order returns 404", func(t *testing.T) {
		mux, _, _ := newTestMux(t)

		rec := doJSON(t, mux, http.MethodGet, "/v1/orders/missing", nil, nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListOrders(t *testing.T) {
	t.Run("filters by status", func(t *testing.T) {
		mux, _, _ := newTestMux(t)
		placed := placeTestOrder(t, mux, "key-list")

		rec := doJSON(t, mux, http.MethodGet, "/v1/orders?status=pending", nil, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var response struct {
			Orders []domain.Order `json:"orders"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		require.Len(t, response.Orders, 1)
		assert.Equal(t, placed.ID, response.Orders[0].ID)
	})

	t.Run("rejects an unknown status value", func(t *testing.T) {
		mux, _, _ := newTestMux(t)

		rec := doJSON(t, mux, http.MethodGet, "/v1/orders?status=bogus", nil, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSummarizeOrders(t *testing.T) {
	t.Run("aggregates stored orders", func(t *testing.T) {
		mux, _, _ := newTestMux(t)
		placeTestOrder(t, mux, "key-sum-1")
		placeTestOrder(t, mux, "key-sum-2")

		rec := doJSON(t, mux, http.MethodGet, "/v1/orders/summary", nil, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var response struct {
			Summary domain.Summary `json:"summary"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, 2, response.Summary.TotalOrders)
		assert.Equal(t, 2, response.Summary.StatusCounts[domain.StatusPending])
		assert.Equal(t, 127.96, response.Summary.Revenue)
	})
}

func TestTransitionOrder(t *testing.T) {
	t.Run("advances the status axis", func(t *testing.T) {
		mux, _, _ := newTestMux(t)
		placed := placeTestOrder(t, mux, "key-tr-1")

		rec := doJSON(t, mux, http.MethodPost, "/v1/orders/"+placed.ID+"/status",
			map[string]any{"status": "processing"}, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		order := decodeOrder(t, rec)
		assert.Equal(t, domain.StatusProcessing, order.Status)
	})

	t.Run("illegal edge returns 409", func(t *testing.T) {
		mux, _, _ := newTestMux(t)
		placed := placeTestOrder(t, mux, "key-tr-2")

		rec := doJSON(t, mux, http.MethodPost, "/v1/orders/"+placed.ID+"/status",
			map[string]any{"status": "delivered"}, nil)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown order returns 404", func(t *testing.T) {
		mux, _, _ := newTestMux(t)

		rec := doJSON(t, mux, http.MethodPost, "/v1/orders/missing/status",
			map[string]any{"status": "processing"}, nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUpdateOrderItems(t *testing.T) {
	t.Run("replaces items and recomputes the total", func(t *testing.T) {
		mux, _, _ := newTestMux(t)
		placed := placeTestOrder(t, mux, "key-up-1")

		rec := doJSON(t, mux, http.MethodPut, "/v1/orders/"+placed.ID+"/items", map[string]any{
			"items": []map[string]any{
				{"productId": "P2", "name": "Case", "price": 25, "quantity": 2},
			},
		}, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		order := decodeOrder(t, rec)
		require.Len(t, order.Items, 1)
		assert.Equal(t, "P2", order.Items[0].ProductID)
		assert.Equal(t, 63.99, order.Total) // 50 + 4.00 tax + 9.99 shipping
	})

	t.Run("rejects an empty item list", func(t *testing.T) {
		mux, _, _ := newTestMux(t)
		placed := placeTestOrder(t, mux, "key-up-2")

		rec := doJSON(t, mux, http.MethodPut, "/v1/orders/"+placed.ID+"/items",
			map[string]any{"items": []map[string]any{}}, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMethodNotAllowed(t *testing.T) {
	mux, _, _ := newTestMux(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/v1/checkout"},
		{http.MethodPost, "/v1/orders"},
		{http.MethodDelete, "/v1/orders/some-id"},
		{http.MethodPost, "/v1/orders/summary"},
	}

	for _, tt := range tests {
		rec := doJSON(t, mux, tt.method, tt.path, nil, nil)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, "%s %s", tt.method, tt.path)
	}
}
