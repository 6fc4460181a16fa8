package worker

import (
	"context"
	"log"
	"time"

	"restaurant-order-api/internal/model"
)

type Recorder interface {
	RecordOrder(ctx context.Context, order model.Order) error
}

// RecorderFunc adapts a plain write function, such as a repository's
// Create method, to Recorder.
type RecorderFunc func(ctx context.Context, order model.Order) error

func (f RecorderFunc) RecordOrder(ctx context.Context, order model.Order) error {
	return f(ctx, order)
}

// Stats receives the outcome of every journal write.
type Stats interface {
	JournalRecord()
	JournalFailure()
}

// OrderWorker writes queued orders one at a time. Each write gets its own
// deadline so a stalled database cannot hold the queue indefinitely.
type OrderWorker struct {
	queue         <-chan model.Order
	recorder      Recorder
	stats         Stats
	recordTimeout time.Duration
	logger        *log.Logger

	recorded int
	failed   int
}

// stats may be nil. A zero recordTimeout leaves writes bounded only by ctx.
func NewOrderWorker(queue <-chan model.Order, recorder Recorder, stats Stats, recordTimeout time.Duration, logger *log.Logger) *OrderWorker {
	if stats == nil {
		stats = noopStats{}
	}
	return &OrderWorker{
		queue:         queue,
		recorder:      recorder,
		stats:         stats,
		recordTimeout: recordTimeout,
		logger:        logger,
	}
}

// Run returns when the queue is closed and empty, or when ctx is canceled.
// Orders still buffered at cancellation are not written.
func (w *OrderWorker) Run(ctx context.Context) {
	reason := "queue_closed"
	defer func() {
		w.logger.Printf("msg=journal_worker_stopped reason=%s recorded=%d failed=%d", reason, w.recorded, w.failed)
	}()

	for {
		select {
		case <-ctx.Done():
			reason = "context_canceled"
			return
		case order, ok := <-w.queue:
			if !ok {
				return
			}
			w.record(ctx, order)
		}
	}
}

func (w *OrderWorker) record(ctx context.Context, order model.Order) {
	if w.recordTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.recordTimeout)
		defer cancel()
	}

	start := time.Now()
	if err := w.recorder.RecordOrder(ctx, order); err != nil {
		w.failed++
		w.stats.JournalFailure()
		w.logger.Printf("msg=journal_record_failed order_id=%s restaurant=%q duration_ms=%d err=%q", order.ID, order.RestaurantName, time.Since(start).Milliseconds(), err)
		return
	}
	w.recorded++
	w.stats.JournalRecord()
}

type noopStats struct{}

func (noopStats) JournalRecord()  {}
func (noopStats) JournalFailure() {}
