package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	Requests          *prometheus.CounterVec
	Latency           *prometheus.HistogramVec
	OrdersSynthesized *prometheus.CounterVec
	UnknownRestaurant prometheus.Counter
	JournalDropped    prometheus.Counter
	JournalRecorded   prometheus.Counter
	JournalFailed     prometheus.Counter
}

func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"route", "code"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		OrdersSynthesized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_synthesized_total",
			Help:      "Orders generated, by status and payment mode.",
		}, []string{"status", "payment_mode"}),
		UnknownRestaurant: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unknown_restaurant_total",
			Help:      "Requests for restaurants missing from the catalog.",
		}),
		JournalDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journal_dropped_total",
			Help:      "Orders that could not be handed to the journal.",
		}),
		JournalRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journal_recorded_total",
			Help:      "Orders written to the journal.",
		}),
		JournalFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "journal_failed_total",
			Help:      "Orders the journal worker failed to write.",
		}),
	}

	m.registry.MustRegister(
		m.Requests,
		m.Latency,
		m.OrdersSynthesized,
		m.UnknownRestaurant,
		m.JournalDropped,
		m.JournalRecorded,
		m.JournalFailed,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) OrderSynthesized(status, paymentMode string) {
	m.OrdersSynthesized.WithLabelValues(status, paymentMode).Inc()
}

func (m *Metrics) RestaurantNotFound() {
	m.UnknownRestaurant.Inc()
}

func (m *Metrics) JournalDrop() {
	m.JournalDropped.Inc()
}

func (m *Metrics) JournalRecord() {
	m.JournalRecorded.Inc()
}

func (m *Metrics) JournalFailure() {
	m.JournalFailed.Inc()
}

func (m *Metrics) ObserveRequest(route string, code int, elapsed time.Duration) {
	m.Requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.Latency.WithLabelValues(route).Observe(elapsed.Seconds())
}
