package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/deliverypro/internal/domain/errors"
	"github.com/polkiloo/deliverypro/internal/domain/model"
	"github.com/polkiloo/deliverypro/internal/domain/repository"
)

// DriverUseCase serves the driver dashboard. Drivers are online until they
// say otherwise.
type DriverUseCase struct {
	orders repository.OrderRepository
	users  repository.UserRepository
	logger *slog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	offline map[int64]bool
}

// NewDriverUseCase constructs DriverUseCase.
func NewDriverUseCase(orders repository.OrderRepository, users repository.UserRepository, logger *slog.Logger) *DriverUseCase {
	return &DriverUseCase{
		orders:  orders,
		users:   users,
		logger:  logger,
		now:     time.Now,
		offline: make(map[int64]bool),
	}
}

// SetOnline toggles availability. Active deliveries are not affected.
func (u *DriverUseCase) SetOnline(driverID int64, online bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if online {
		delete(u.offline, driverID)
		return
	}
	u.offline[driverID] = true
}

// Online reports the driver's availability.
func (u *DriverUseCase) Online(driverID int64) bool {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return !u.offline[driverID]
}

// Available lists pending requests, oldest first. Offline drivers see none.
func (u *DriverUseCase) Available(ctx context.Context, driverID int64) ([]model.Order, error) {
	if !u.Online(driverID) {
		return []model.Order{}, nil
	}
	return u.orders.ListByStatus(ctx, model.OrderStatusPending, 0)
}

// Accept takes a pending request.
func (u *DriverUseCase) Accept(ctx context.Context, driverID int64, orderID string) (*model.Order, error) {
	if !u.Online(driverID) {
		return nil, domainErrors.ErrDriverOffline
	}
	name, err := u.driverName(ctx, driverID)
	if err != nil {
		return nil, err
	}
	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return u.apply(ctx, *order, model.OrderStatusAccepted, name)
}

// Advance moves an assigned delivery to next. Only the assigned driver may do
// so.
func (u *DriverUseCase) Advance(ctx context.Context, driverID int64, orderID string, next model.OrderStatus) (*model.Order, error) {
	name, err := u.driverName(ctx, driverID)
	if err != nil {
		return nil, err
	}
	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Driver != name {
		return nil, domainErrors.ErrNotAssigned
	}
	if next == model.OrderStatusAccepted {
		return nil, fmt.Errorf("%s -> %s: %w", order.Status, next, domainErrors.ErrInvalidTransition)
	}
	return u.apply(ctx, *order, next, "")
}

// Active lists the driver's deliveries that are not yet delivered.
func (u *DriverUseCase) Active(ctx context.Context, driverID int64) ([]model.Order, error) {
	orders, err := u.byDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	active := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if !o.Status.Terminal() {
			active = append(active, o)
		}
	}
	return active, nil
}

// History lists the driver's completed deliveries.
func (u *DriverUseCase) History(ctx context.Context, driverID int64) ([]model.Order, error) {
	orders, err := u.byDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	done := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if o.Status == model.OrderStatusDelivered {
			done = append(done, o)
		}
	}
	return done, nil
}

func (u *DriverUseCase) apply(ctx context.Context, order model.Order, next model.OrderStatus, driver string) (*model.Order, error) {
	from := order.Status
	updated, update, err := model.Transition(order, next, driver, u.now())
	if err != nil {
		return nil, err
	}
	if err := u.orders.UpdateStatus(ctx, order.ID, from, update); err != nil {
		if errors.Is(err, domainErrors.ErrStatusConflict) {
			return nil, fmt.Errorf("%s -> %s: %w", from, next, domainErrors.ErrInvalidTransition)
		}
		return nil, err
	}
	u.logger.Info("delivery status changed",
		slog.String("order_id", order.ID),
		slog.String("status", string(next)),
		slog.String("driver", updated.Driver),
	)
	return &updated, nil
}

func (u *DriverUseCase) byDriver(ctx context.Context, driverID int64) ([]model.Order, error) {
	name, err := u.driverName(ctx, driverID)
	if err != nil {
		return nil, err
	}
	return u.orders.ListByDriver(ctx, name)
}

func (u *DriverUseCase) driverName(ctx context.Context, driverID int64) (string, error) {
	usr, err := u.users.GetByID(ctx, driverID)
	if err != nil {
		return "", fmt.Errorf("load driver: %w", err)
	}
	return usr.Login, nil
}
