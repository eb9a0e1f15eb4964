package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/deliverypro/internal/domain/model"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string, role model.Role) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (model.Actor, error)
}

// CatalogFacade exposes read-only marketplace data.
type CatalogFacade interface {
	Items(category model.Category) []model.CatalogItem
	Stores() []model.Store
	DescribeCard(number string) model.CardInfo
}

// CartFacade edits the customer's draft and places orders.
type CartFacade interface {
	Draft(ctx context.Context, customerID int64) (*model.Draft, error)
	SetQuantity(ctx context.Context, customerID int64, itemID string, delta int) (*model.Draft, error)
	SelectStore(ctx context.Context, customerID int64, storeID string) (*model.Draft, error)
	SetDropoff(ctx context.Context, customerID int64, address string) (*model.Draft, error)
	SetPayment(ctx context.Context, customerID int64, method model.PaymentMethod) (*model.Draft, error)
	ClearDraft(ctx context.Context, customerID int64) error
	Quote(ctx context.Context, customerID int64) (model.Quote, error)
	Checkout(ctx context.Context, customerID int64, cardNumber string) (*model.Order, error)
	RequestCourier(ctx context.Context, customerID int64, pickup, dropoff string, distance decimal.Decimal) (*model.Order, error)
}

// OrderFacade encapsulates the customer view of deliveries.
type OrderFacade interface {
	Orders(ctx context.Context, customerID int64) ([]model.Order, error)
	Order(ctx context.Context, customerID int64, id string) (*model.Order, error)
}

// DriverFacade serves the driver dashboard.
type DriverFacade interface {
	SetOnline(driverID int64, online bool)
	Online(driverID int64) bool
	AvailableRequests(ctx context.Context, driverID int64) ([]model.Order, error)
	AcceptRequest(ctx context.Context, driverID int64, orderID string) (*model.Order, error)
	AdvanceDelivery(ctx context.Context, driverID int64, orderID string, next model.OrderStatus) (*model.Order, error)
	ActiveDeliveries(ctx context.Context, driverID int64) ([]model.Order, error)
	DeliveryHistory(ctx context.Context, driverID int64) ([]model.Order, error)
}

// ChatFacade runs order chats for both sides.
type ChatFacade interface {
	OpenChat(ctx context.Context, actor model.Actor, orderID string) ([]model.ChatMessage, error)
	SendMessage(ctx context.Context, actor model.Actor, orderID, text string) (*model.ChatMessage, error)
	CloseChat(ctx context.Context, actor model.Actor, orderID string) error
}

// AdminFacade provides the admin overview.
type AdminFacade interface {
	Stats(ctx context.Context) (*model.Stats, error)
}

// DeliveryFacade aggregates the full set of operations used across handlers.
type DeliveryFacade interface {
	AuthFacade
	CatalogFacade
	CartFacade
	OrderFacade
	DriverFacade
	ChatFacade
	AdminFacade
}
