package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderKind distinguishes catalog orders from plain courier requests.
type OrderKind string

const (
	OrderKindAlcohol OrderKind = "alcohol"
	OrderKindCourier OrderKind = "courier"
)

// PaymentMethod is how the customer settles the order.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// Valid reports whether m is a supported payment method.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentCard
}

// Order is the single authoritative delivery record shared by customer and
// driver views.
type Order struct {
	ID          string
	Kind        OrderKind
	CustomerID  int64
	Customer    string
	StoreID     string
	StoreName   string
	Pickup      string
	Dropoff     string
	Distance    decimal.Decimal
	Lines       []CartLine
	Payment     PaymentMethod
	CardBrand   string
	CardLast4   string
	ItemsTotal  decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
	Status      OrderStatus
	Driver      string
	ETA         string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasDriver reports whether a driver is attached to the order.
func (o Order) HasDriver() bool {
	return o.Driver != ""
}

// Quote breaks an order total into its parts.
type Quote struct {
	ItemsTotal  decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

// Draft is a customer's order in progress.
type Draft struct {
	CustomerID int64
	StoreID    string
	Dropoff    string
	Cart       Cart
	Payment    PaymentMethod
}

// CardInfo is what the checkout form shows about a typed card number.
type CardInfo struct {
	Brand     string
	Formatted string
	Valid     bool
}
