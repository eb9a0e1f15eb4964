package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/deliverypro/internal/catalog"
	domainErrors "github.com/polkiloo/deliverypro/internal/domain/errors"
	"github.com/polkiloo/deliverypro/internal/domain/model"
	"github.com/polkiloo/deliverypro/internal/domain/repository"
)

// OrderUseCase serves the customer view of deliveries and applies simulated
// driver assignments.
type OrderUseCase struct {
	orders  repository.OrderRepository
	catalog *catalog.Catalog
	logger  *slog.Logger
	now     func() time.Time
	next    atomic.Uint64
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, cat *catalog.Catalog, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, catalog: cat, logger: logger, now: time.Now}
}

// ListByCustomer returns the customer's orders, newest first.
func (u *OrderUseCase) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	return u.orders.ListByCustomer(ctx, customerID)
}

// Get returns an order owned by customerID. Foreign orders are reported as
// missing.
func (u *OrderUseCase) Get(ctx context.Context, customerID int64, id string) (*model.Order, error) {
	order, err := u.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// AssignDriver attaches the next roster driver to a pending order. Orders
// that already left pending are skipped.
func (u *OrderUseCase) AssignDriver(ctx context.Context, orderID string) error {
	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			u.logger.Debug("assignment for unknown order dropped", slog.String("order_id", orderID))
			return nil
		}
		return err
	}
	if order.Status != model.OrderStatusPending {
		u.logger.Debug("assignment dropped", slog.String("order_id", orderID), slog.String("status", string(order.Status)))
		return nil
	}

	driver := u.nextDriver()
	_, update, err := model.Transition(*order, model.OrderStatusAccepted, driver, u.now())
	if err != nil {
		return err
	}
	if err := u.orders.UpdateStatus(ctx, orderID, model.OrderStatusPending, update); err != nil {
		if errors.Is(err, domainErrors.ErrStatusConflict) {
			u.logger.Debug("assignment lost the race", slog.String("order_id", orderID))
			return nil
		}
		return fmt.Errorf("assign driver: %w", err)
	}
	u.logger.Info("driver assigned", slog.String("order_id", orderID), slog.String("driver", driver))
	return nil
}

// SeedRequests loads the demo courier requests as pending orders. Requests
// already present are left alone.
func (u *OrderUseCase) SeedRequests(ctx context.Context) error {
	now := u.now()
	for i, req := range u.catalog.Requests() {
		if _, err := u.orders.Get(ctx, req.ID); err == nil {
			continue
		} else if !errors.Is(err, domainErrors.ErrNotFound) {
			return err
		}
		created := now.Add(time.Duration(i) * time.Second)
		order := &model.Order{
			ID:          req.ID,
			Kind:        model.OrderKindCourier,
			Customer:    req.Customer,
			Pickup:      req.Pickup,
			Dropoff:     req.Dropoff,
			Distance:    req.Distance,
			Payment:     model.PaymentCash,
			ItemsTotal:  decimal.Zero,
			DeliveryFee: req.Payment,
			Total:       req.Payment,
			Status:      model.OrderStatusPending,
			ETA:         CourierETA,
			CreatedAt:   created,
			UpdatedAt:   created,
		}
		if err := u.orders.Create(ctx, order); err != nil {
			return fmt.Errorf("seed request %s: %w", req.ID, err)
		}
	}
	return nil
}

func (u *OrderUseCase) nextDriver() string {
	roster := u.catalog.Drivers()
	n := u.next.Add(1) - 1
	return roster[n%uint64(len(roster))]
}
