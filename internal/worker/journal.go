package worker

import (
	"context"
	"log"
	"time"

	"restaurant-order-api/internal/model"
)

// Journal owns the order queue and the worker draining it.
type Journal struct {
	queue  chan model.Order
	worker *OrderWorker
	cancel context.CancelFunc
	done   chan struct{}
}

func NewJournal(size int, recorder Recorder, stats Stats, recordTimeout time.Duration, logger *log.Logger) *Journal {
	queue := make(chan model.Order, size)
	return &Journal{
		queue:  queue,
		worker: NewOrderWorker(queue, recorder, stats, recordTimeout, logger),
		done:   make(chan struct{}),
	}
}

func (j *Journal) Enqueuer() ChannelEnqueuer {
	return ChannelEnqueuer{Ch: j.queue}
}

func (j *Journal) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel
	go func() {
		defer close(j.done)
		j.worker.Run(ctx)
	}()
}

// Stop must only be called after Start. With drain set, the caller
// guarantees no producer can enqueue any more: the queue is closed and the
// worker gets up to wait to flush it before being canceled. Without drain
// the queue stays open, so a late Enqueue cannot panic, and the worker is
// canceled at once. Stop reports whether every queued order was flushed.
func (j *Journal) Stop(drain bool, wait time.Duration) bool {
	defer j.cancel()

	if !drain {
		j.cancel()
		<-j.done
		return false
	}

	close(j.queue)
	select {
	case <-j.done:
		return true
	case <-time.After(wait):
		j.cancel()
		<-j.done
		return false
	}
}
