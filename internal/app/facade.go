package app

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/deliverypro/internal/catalog"
	"github.com/polkiloo/deliverypro/internal/domain/model"
	"github.com/polkiloo/deliverypro/internal/usecase"
)

// DeliveryFacade joins the use cases behind the HTTP handlers and the event
// dispatcher.
type DeliveryFacade struct {
	auth    *usecase.AuthUseCase
	catalog *catalog.Catalog
	cart    *usecase.CartUseCase
	orders  *usecase.OrderUseCase
	drivers *usecase.DriverUseCase
	chat    *usecase.ChatUseCase
	admin   *usecase.AdminUseCase
}

func NewDeliveryFacade(
	auth *usecase.AuthUseCase,
	cat *catalog.Catalog,
	cart *usecase.CartUseCase,
	orders *usecase.OrderUseCase,
	drivers *usecase.DriverUseCase,
	chat *usecase.ChatUseCase,
	admin *usecase.AdminUseCase,
) *DeliveryFacade {
	return &DeliveryFacade{
		auth:    auth,
		catalog: cat,
		cart:    cart,
		orders:  orders,
		drivers: drivers,
		chat:    chat,
		admin:   admin,
	}
}

func (f *DeliveryFacade) Register(ctx context.Context, login, password string, role model.Role) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password, role)
	return token, err
}

func (f *DeliveryFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *DeliveryFacade) ParseToken(token string) (model.Actor, error) {
	return f.auth.ParseToken(token)
}

func (f *DeliveryFacade) Items(category model.Category) []model.CatalogItem {
	return f.catalog.Items(category)
}

func (f *DeliveryFacade) Stores() []model.Store {
	return f.catalog.Stores()
}

func (f *DeliveryFacade) DescribeCard(number string) model.CardInfo {
	return usecase.DescribeCard(number)
}

func (f *DeliveryFacade) Draft(ctx context.Context, customerID int64) (*model.Draft, error) {
	return f.cart.Draft(ctx, customerID)
}

func (f *DeliveryFacade) SetQuantity(ctx context.Context, customerID int64, itemID string, delta int) (*model.Draft, error) {
	return f.cart.SetQuantity(ctx, customerID, itemID, delta)
}

func (f *DeliveryFacade) SelectStore(ctx context.Context, customerID int64, storeID string) (*model.Draft, error) {
	return f.cart.SelectStore(ctx, customerID, storeID)
}

func (f *DeliveryFacade) SetDropoff(ctx context.Context, customerID int64, address string) (*model.Draft, error) {
	return f.cart.SetDropoff(ctx, customerID, address)
}

func (f *DeliveryFacade) SetPayment(ctx context.Context, customerID int64, method model.PaymentMethod) (*model.Draft, error) {
	return f.cart.SetPayment(ctx, customerID, method)
}

func (f *DeliveryFacade) ClearDraft(ctx context.Context, customerID int64) error {
	return f.cart.Clear(ctx, customerID)
}

func (f *DeliveryFacade) Quote(ctx context.Context, customerID int64) (model.Quote, error) {
	return f.cart.Quote(ctx, customerID)
}

func (f *DeliveryFacade) Checkout(ctx context.Context, customerID int64, cardNumber string) (*model.Order, error) {
	return f.cart.Checkout(ctx, customerID, cardNumber)
}

func (f *DeliveryFacade) RequestCourier(ctx context.Context, customerID int64, pickup, dropoff string, distance decimal.Decimal) (*model.Order, error) {
	return f.cart.RequestCourier(ctx, customerID, usecase.CourierRequest{Pickup: pickup, Dropoff: dropoff, Distance: distance})
}

func (f *DeliveryFacade) Orders(ctx context.Context, customerID int64) ([]model.Order, error) {
	return f.orders.ListByCustomer(ctx, customerID)
}

func (f *DeliveryFacade) Order(ctx context.Context, customerID int64, id string) (*model.Order, error) {
	return f.orders.Get(ctx, customerID, id)
}

func (f *DeliveryFacade) SetOnline(driverID int64, online bool) {
	f.drivers.SetOnline(driverID, online)
}

func (f *DeliveryFacade) Online(driverID int64) bool {
	return f.drivers.Online(driverID)
}

func (f *DeliveryFacade) AvailableRequests(ctx context.Context, driverID int64) ([]model.Order, error) {
	return f.drivers.Available(ctx, driverID)
}

func (f *DeliveryFacade) AcceptRequest(ctx context.Context, driverID int64, orderID string) (*model.Order, error) {
	return f.drivers.Accept(ctx, driverID, orderID)
}

func (f *DeliveryFacade) AdvanceDelivery(ctx context.Context, driverID int64, orderID string, next model.OrderStatus) (*model.Order, error) {
	return f.drivers.Advance(ctx, driverID, orderID, next)
}

func (f *DeliveryFacade) ActiveDeliveries(ctx context.Context, driverID int64) ([]model.Order, error) {
	return f.drivers.Active(ctx, driverID)
}

func (f *DeliveryFacade) DeliveryHistory(ctx context.Context, driverID int64) ([]model.Order, error) {
	return f.drivers.History(ctx, driverID)
}

func (f *DeliveryFacade) OpenChat(ctx context.Context, actor model.Actor, orderID string) ([]model.ChatMessage, error) {
	return f.chat.Open(ctx, actor, orderID)
}

func (f *DeliveryFacade) SendMessage(ctx context.Context, actor model.Actor, orderID, text string) (*model.ChatMessage, error) {
	return f.chat.Send(ctx, actor, orderID, text)
}

func (f *DeliveryFacade) CloseChat(ctx context.Context, actor model.Actor, orderID string) error {
	return f.chat.Close(ctx, actor, orderID)
}

func (f *DeliveryFacade) Stats(ctx context.Context) (*model.Stats, error) {
	return f.admin.Stats(ctx)
}

// SeedRequests loads the demo courier requests.
func (f *DeliveryFacade) SeedRequests(ctx context.Context) error {
	return f.orders.SeedRequests(ctx)
}

// HandleEvent applies a due dispatcher event.
func (f *DeliveryFacade) HandleEvent(ctx context.Context, event model.Event) error {
	switch event.Kind {
	case model.EventDriverAssignment:
		return f.orders.AssignDriver(ctx, event.OrderID)
	case model.EventDriverReply:
		return f.chat.Reply(ctx, event.OrderID)
	}
	return fmt.Errorf("unknown event kind %q", event.Kind)
}
