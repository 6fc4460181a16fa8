package worker

import (
	"context"
	"errors"
	"fmt"

	"restaurant-order-api/internal/model"
)

var ErrQueueFull = errors.New("journal queue full")

type Enqueuer interface {
	Enqueue(ctx context.Context, order model.Order) error
}

// ChannelEnqueuer never blocks: a full channel is reported as ErrQueueFull.
type ChannelEnqueuer struct {
	Ch chan<- model.Order
}

func (e ChannelEnqueuer) Enqueue(ctx context.Context, order model.Order) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("enqueue order id=%s: %w", order.ID, err)
	}
	select {
	case e.Ch <- order:
		return nil
	default:
		return fmt.Errorf("enqueue order id=%s: %w", order.ID, ErrQueueFull)
	}
}
