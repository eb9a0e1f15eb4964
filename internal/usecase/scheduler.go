package usecase

import (
	"context"
	"time"

	"github.com/polkiloo/deliverypro/internal/domain/model"
)

// Scheduler defers lifecycle events. Cancel drops every pending event of the
// given kind for the order.
type Scheduler interface {
	Schedule(ctx context.Context, kind model.EventKind, orderID string, delay time.Duration) error
	Cancel(orderID string, kind model.EventKind)
}
