package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-order-api/internal/catalog"
	"restaurant-order-api/internal/model"
	"restaurant-order-api/internal/service"
)

type observed struct {
	route string
	code  int
}

type fakeObserver struct {
	calls []observed
}

func (f *fakeObserver) ObserveRequest(route string, code int, _ time.Duration) {
	f.calls = append(f.calls, observed{route: route, code: code})
}

type failingSynthesizer struct{}

func (failingSynthesizer) Synthesize(context.Context, string, string) (model.Order, error) {
	return model.Order{}, errors.New("boom")
}

func newTestHandler(t *testing.T) (http.Handler, *fakeObserver, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	logger := log.New(&logs, "", 0)
	svc := service.NewOrderService(catalog.Default(), nil, nil, logger)
	obs := &fakeObserver{}
	return NewOrderHandler(svc, obs, logger).Routes(), obs, &logs
}

func orderURL(restaurant, dish string) string {
	return "/orders/" + url.PathEscape(restaurant) + "?dish_name=" + url.QueryEscape(dish)
}

func TestGetOrder_Success(t *testing.T) {
	h, obs, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, orderURL("Dominos", "Margherita Pizza"), nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "Dominos", body["restaurant_name"])
	assert.Equal(t, []any{"Margherita Pizza"}, body["items"])
	assert.Equal(t, "USD", body["currency"])
	assert.Equal(t, "123 Main St, Anytown, USA", body["delivery_address"])
	assert.Contains(t, model.Statuses, body["status"])
	assert.Contains(t, model.PaymentModes, body["payment_mode"])
	assert.Contains(t, body, "customer_notes")

	amount, ok := body["total_amount"].(float64)
	require.True(t, ok)
	assert.GreaterOrEqual(t, amount, 5.0)
	assert.LessOrEqual(t, amount, 50.0)

	orderedAt, err := time.Parse(time.RFC3339Nano, body["ordered_at"].(string))
	require.NoError(t, err)
	eta, err := time.Parse(time.RFC3339Nano, body["estimated_arrival_time"].(string))
	require.NoError(t, err)
	diff := eta.Sub(orderedAt)
	assert.Zero(t, diff%time.Minute)
	assert.GreaterOrEqual(t, diff, 20*time.Minute)
	assert.LessOrEqual(t, diff, 60*time.Minute)

	require.Len(t, obs.calls, 1)
	assert.Equal(t, observed{route: "/orders/{restaurant_name}", code: http.StatusOK}, obs.calls[0])
}

func TestGetOrder_EscapedRestaurantNames(t *testing.T) {
	h, _, _ := newTestHandler(t)

	for _, name := range []string{"Ben & Jerry's", "Luigi's Pizzeria", "Cold Stone Creamery"} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, orderURL(name, "Cookie Dough"), nil))

			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			var order model.Order
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
			assert.Equal(t, name, order.RestaurantName)
			assert.Equal(t, []string{"Cookie Dough"}, order.Items)
		})
	}
}

func TestGetOrder_UnknownRestaurant(t *testing.T) {
	h, obs, logs := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, orderURL("NotARealPlace", "Anything"), nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Restaurant 'NotARealPlace' not found.", body["error"])
	assert.Contains(t, logs.String(), `msg=unknown_restaurant restaurant="NotARealPlace"`)

	require.Len(t, obs.calls, 1)
	assert.Equal(t, http.StatusNotFound, obs.calls[0].code)
}

func TestGetOrder_DishNameRequired(t *testing.T) {
	h, _, _ := newTestHandler(t)

	tests := []struct {
		name   string
		target string
	}{
		{name: "missing", target: "/orders/Dominos"},
		{name: "empty", target: "/orders/Dominos?dish_name="},
		{name: "last value empty", target: "/orders/Dominos?dish_name=Pizza&dish_name="},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.target, nil))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.True(t, strings.Contains(rec.Body.String(), "dish_name is required"))
		})
	}
}

func TestGetOrder_WhitespaceDishAcceptedAsIs(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/Dominos?dish_name=%20%20", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var order model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, []string{"  "}, order.Items)
}

func TestGetOrder_RepeatedDishUsesLastValue(t *testing.T) {
	h, _, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/Dominos?dish_name=A&dish_name=B", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var order model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &order))
	assert.Equal(t, []string{"B"}, order.Items)
}

func TestRoutes_OtherRequests(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		want   int
	}{
		{name: "post not allowed", method: http.MethodPost, target: "/orders/Dominos?dish_name=Pizza", want: http.StatusMethodNotAllowed},
		{name: "collection path", method: http.MethodGet, target: "/orders", want: http.StatusNotFound},
		{name: "nested path", method: http.MethodGet, target: "/orders/Dominos/extra?dish_name=Pizza", want: http.StatusNotFound},
		{name: "unrelated path", method: http.MethodGet, target: "/health", want: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, obs, logs := newTestHandler(t)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.target, nil))
			assert.Equal(t, tc.want, rec.Code)

			require.Len(t, obs.calls, 1)
			assert.Equal(t, observed{route: "unmatched", code: tc.want}, obs.calls[0])
			assert.Contains(t, logs.String(), "msg=http_request method="+tc.method)
			assert.Contains(t, logs.String(), "route=unmatched")
		})
	}
}

func TestGetOrder_InternalError(t *testing.T) {
	var logs bytes.Buffer
	h := NewOrderHandler(failingSynthesizer{}, nil, log.New(&logs, "", 0)).Routes()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, orderURL("Dominos", "Pizza"), nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	assert.Contains(t, logs.String(), "msg=request_failed")
}
