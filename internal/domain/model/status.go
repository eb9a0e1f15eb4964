package model

import (
	"fmt"
	"time"

	domainErrors "github.com/polkiloo/deliverypro/internal/domain/errors"
)

// OrderStatus describes delivery lifecycle.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusPickedUp  OrderStatus = "picked_up"
	OrderStatusDelivered OrderStatus = "delivered"
)

// orderTransitions lists the only successor of each non-terminal status.
var orderTransitions = map[OrderStatus]OrderStatus{
	OrderStatusPending:  OrderStatusAccepted,
	OrderStatusAccepted: OrderStatusPickedUp,
	OrderStatusPickedUp: OrderStatusDelivered,
}

// ParseOrderStatus converts a raw value into a known status.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch s := OrderStatus(raw); s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusPickedUp, OrderStatusDelivered:
		return s, nil
	}
	return "", fmt.Errorf("unknown status %q: %w", raw, domainErrors.ErrInvalidTransition)
}

// Next returns the successor of s and false for the terminal status.
func (s OrderStatus) Next() (OrderStatus, bool) {
	next, ok := orderTransitions[s]
	return next, ok
}

// CanTransition reports whether s may move to next.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	succ, ok := s.Next()
	return ok && succ == next
}

// Terminal reports whether no transition leaves s.
func (s OrderStatus) Terminal() bool {
	_, ok := s.Next()
	return !ok
}

// Label is the customer-facing status text.
func (s OrderStatus) Label() string {
	switch s {
	case OrderStatusPending:
		return "Finding Driver"
	case OrderStatusAccepted:
		return "Driver Assigned"
	case OrderStatusPickedUp:
		return "In Transit"
	case OrderStatusDelivered:
		return "Delivered"
	}
	return string(s)
}

// StatusUpdate carries the fields written by a transition.
type StatusUpdate struct {
	Status OrderStatus
	Driver string
	At     time.Time
}

// Transition applies next to order and returns the updated copy. Accepting
// requires a driver; later transitions keep the attached one.
func Transition(order Order, next OrderStatus, driver string, at time.Time) (Order, StatusUpdate, error) {
	if !order.Status.CanTransition(next) {
		return order, StatusUpdate{}, fmt.Errorf("%s -> %s: %w", order.Status, next, domainErrors.ErrInvalidTransition)
	}
	if next == OrderStatusAccepted {
		if driver == "" {
			return order, StatusUpdate{}, fmt.Errorf("accept without driver: %w", domainErrors.ErrInvalidTransition)
		}
		order.Driver = driver
	}
	order.Status = next
	order.UpdatedAt = at
	return order, StatusUpdate{Status: next, Driver: order.Driver, At: at}, nil
}
