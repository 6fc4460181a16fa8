package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"restaurant-order-api/internal/apperr"
	"restaurant-order-api/internal/model"
)

const (
	orderRoute     = "/orders/{restaurant_name}"
	unmatchedRoute = "unmatched"
)

type OrderSynthesizer interface {
	Synthesize(ctx context.Context, restaurantName, dishName string) (model.Order, error)
}

type RequestObserver interface {
	ObserveRequest(route string, code int, elapsed time.Duration)
}

type OrderHandler struct {
	service  OrderSynthesizer
	observer RequestObserver
	logger   *log.Logger
}

// observer may be nil.
func NewOrderHandler(service OrderSynthesizer, observer RequestObserver, logger *log.Logger) *OrderHandler {
	return &OrderHandler{service: service, observer: observer, logger: logger}
}

// Routes returns the public mux. Every request, including the mux's own 404
// and 405 replies, is logged and observed.
func (h *OrderHandler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET "+orderRoute, route(orderRoute, http.HandlerFunc(h.GetOrder)))
	return h.instrument(mux)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	restaurant := r.PathValue("restaurant_name")

	// Repeated parameters resolve to the last value.
	dishes := r.URL.Query()["dish_name"]
	if len(dishes) == 0 || dishes[len(dishes)-1] == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "dish_name is required"})
		return
	}

	order, err := h.service.Synthesize(r.Context(), restaurant, dishes[len(dishes)-1])
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) writeServiceError(w http.ResponseWriter, err error) {
	var unknown *apperr.UnknownRestaurantError
	switch {
	case errors.As(err, &unknown):
		h.logger.Printf("msg=unknown_restaurant restaurant=%q", unknown.Name)
		writeJSON(w, http.StatusNotFound, map[string]string{"error": unknown.Error()})
	case errors.Is(err, apperr.ErrValidation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		h.logger.Printf("msg=request_failed err=%q", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func (h *OrderHandler) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK, route: unmatchedRoute}
		next.ServeHTTP(sw, r)

		elapsed := time.Since(start)
		if h.observer != nil {
			h.observer.ObserveRequest(sw.route, sw.status, elapsed)
		}
		h.logger.Printf("msg=http_request method=%s path=%s route=%s status=%d duration_ms=%d", r.Method, r.URL.Path, sw.route, sw.status, elapsed.Milliseconds())
	})
}

// route labels the response writer with the matched pattern so instrument
// can tell registered routes from mux fallbacks.
func route(pattern string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sw, ok := w.(*statusWriter); ok {
			sw.route = pattern
		}
		next.ServeHTTP(w, r)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
	route  string
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
