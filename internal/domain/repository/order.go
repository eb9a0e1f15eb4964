package repository

import (
	"context"

	"github.com/polkiloo/deliverypro/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	Get(ctx context.Context, id string) (*model.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error)
	ListByStatus(ctx context.Context, status model.OrderStatus, limit int) ([]model.Order, error)
	ListByDriver(ctx context.Context, driver string) ([]model.Order, error)
	// UpdateStatus applies update only while the stored status equals from.
	UpdateStatus(ctx context.Context, id string, from model.OrderStatus, update model.StatusUpdate) error
	Stats(ctx context.Context) (*model.DeliveryStats, error)
}
