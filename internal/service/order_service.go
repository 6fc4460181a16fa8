package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"restaurant-order-api/internal/apperr"
	"restaurant-order-api/internal/model"
	"restaurant-order-api/internal/worker"
)

const (
	minAmount     = 5.0
	maxAmount     = 50.0
	minETAMinutes = 20
	maxETAMinutes = 60
)

type Catalog interface {
	IsKnown(name string) bool
	LooksLikeCategory(restaurant, dish string) bool
}

type Stats interface {
	OrderSynthesized(status, paymentMode string)
	RestaurantNotFound()
	JournalDrop()
}

// Rand is satisfied by *rand.Rand from math/rand/v2.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

type OrderService struct {
	catalog Catalog
	queue   worker.Enqueuer
	stats   Stats
	logger  *log.Logger

	rng   Rand
	now   func() time.Time
	newID func() string
}

// NewOrderService builds the synthesizer. A nil queue disables journaling;
// stats may be nil.
func NewOrderService(catalog Catalog, queue worker.Enqueuer, stats Stats, logger *log.Logger) *OrderService {
	if stats == nil {
		stats = noopStats{}
	}
	return &OrderService{
		catalog: catalog,
		queue:   queue,
		stats:   stats,
		logger:  logger,
		rng:     globalRand{},
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

func (s *OrderService) Synthesize(ctx context.Context, restaurantName, dishName string) (model.Order, error) {
	if dishName == "" {
		return model.Order{}, fmt.Errorf("dish_name is required: %w", apperr.ErrValidation)
	}
	if !s.catalog.IsKnown(restaurantName) {
		s.stats.RestaurantNotFound()
		return model.Order{}, fmt.Errorf("synthesize order restaurant=%q: %w", restaurantName, &apperr.UnknownRestaurantError{Name: restaurantName})
	}
	if !s.catalog.LooksLikeCategory(restaurantName, dishName) {
		s.logger.Printf("msg=dish_category_hint restaurant=%q dish=%q", restaurantName, dishName)
	}

	orderedAt := s.now().UTC()
	order := model.Order{
		ID:                   s.newID(),
		RestaurantName:       restaurantName,
		Items:                []string{dishName},
		TotalAmount:          s.amount(),
		Currency:             model.Currency,
		OrderedAt:            orderedAt,
		EstimatedArrivalTime: orderedAt.Add(s.eta()),
		PaymentMode:          model.PaymentModes[s.rng.IntN(len(model.PaymentModes))],
		Status:               model.Statuses[s.rng.IntN(len(model.Statuses))],
		DeliveryAddress:      model.DeliveryAddress,
		CustomerNotes:        s.notes(dishName),
	}
	s.stats.OrderSynthesized(order.Status, order.PaymentMode)

	s.journal(ctx, order)
	return order, nil
}

func (s *OrderService) journal(ctx context.Context, order model.Order) {
	if s.queue == nil {
		return
	}
	if err := s.queue.Enqueue(ctx, order); err != nil {
		s.stats.JournalDrop()
		s.logger.Printf("msg=journal_enqueue_failed order_id=%s err=%q", order.ID, err)
	}
}

func (s *OrderService) amount() float64 {
	v := minAmount + s.rng.Float64()*(maxAmount-minAmount)
	return math.Round(v*100) / 100
}

func (s *OrderService) eta() time.Duration {
	minutes := minETAMinutes + s.rng.IntN(maxETAMinutes-minETAMinutes+1)
	return time.Duration(minutes) * time.Minute
}

func (s *OrderService) notes(dishName string) *string {
	var note string
	switch s.rng.IntN(3) {
	case 0:
		return nil
	case 1:
		note = fmt.Sprintf("Please ensure the %s is fresh!", dishName)
	default:
		note = "Call upon arrival."
	}
	return &note
}

// globalRand uses the goroutine-safe top-level math/rand/v2 generator.
type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

type noopStats struct{}

func (noopStats) OrderSynthesized(string, string) {}
func (noopStats) RestaurantNotFound()             {}
func (noopStats) JournalDrop()                    {}
