package test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/deliverypro/internal/domain/model"
)

// SampleOrder returns a delivered-looking order used by HTTP tests.
func SampleOrder(id string) model.Order {
	price := decimal.RequireFromString("18.99")
	return model.Order{
		ID:          id,
		Kind:        model.OrderKindAlcohol,
		CustomerID:  1,
		Customer:    "alice",
		StoreID:     "tops1",
		StoreName:   "Tops at SPAR Sandton",
		Pickup:      "123 Rivonia Road, Sandton",
		Dropoff:     "1 Test Street",
		Distance:    decimal.RequireFromString("2.1"),
		Lines:       []model.CartLine{{Item: model.CatalogItem{ID: "beer1", Name: "Castle Lager 440ml", Price: price, Category: model.CategoryBeer}, Quantity: 2}},
		Payment:     model.PaymentCash,
		ItemsTotal:  decimal.RequireFromString("37.98"),
		DeliveryFee: decimal.RequireFromString("56.5"),
		Total:       decimal.RequireFromString("94.48"),
		Status:      model.OrderStatusPending,
		ETA:         "20-30 mins",
		CreatedAt:   time.Unix(0, 0).UTC(),
		UpdatedAt:   time.Unix(0, 0).UTC(),
	}
}

// CatalogFacadeStub serves fixed catalog data.
type CatalogFacadeStub struct {
	ItemsFn  func(model.Category) []model.CatalogItem
	StoresFn func() []model.Store
	CardFn   func(string) model.CardInfo
}

// Items returns a single beer unless overridden.
func (s CatalogFacadeStub) Items(category model.Category) []model.CatalogItem {
	if s.ItemsFn != nil {
		return s.ItemsFn(category)
	}
	return []model.CatalogItem{{ID: "beer1", Name: "Castle Lager 440ml", Price: decimal.RequireFromString("18.99"), Category: model.CategoryBeer}}
}

// Stores returns a single store unless overridden.
func (s CatalogFacadeStub) Stores() []model.Store {
	if s.StoresFn != nil {
		return s.StoresFn()
	}
	return []model.Store{{ID: "tops1", Name: "Tops at SPAR Sandton", Distance: decimal.RequireFromString("2.1")}}
}

// DescribeCard reports every number as a valid Visa unless overridden.
func (s CatalogFacadeStub) DescribeCard(number string) model.CardInfo {
	if s.CardFn != nil {
		return s.CardFn(number)
	}
	return model.CardInfo{Brand: "Visa", Formatted: number, Valid: true}
}

// CartFacadeStub provides controllable behaviour for cart endpoints.
type CartFacadeStub struct {
	DraftFn       func(context.Context, int64) (*model.Draft, error)
	SetQuantityFn func(context.Context, int64, string, int) (*model.Draft, error)
	SelectStoreFn func(context.Context, int64, string) (*model.Draft, error)
	SetDropoffFn  func(context.Context, int64, string) (*model.Draft, error)
	SetPaymentFn  func(context.Context, int64, model.PaymentMethod) (*model.Draft, error)
	ClearFn       func(context.Context, int64) error
	QuoteFn       func(context.Context, int64) (model.Quote, error)
	CheckoutFn    func(context.Context, int64, string) (*model.Order, error)
	CourierFn     func(context.Context, int64, string, string, decimal.Decimal) (*model.Order, error)
}

// Draft returns an empty draft unless overridden.
func (s CartFacadeStub) Draft(ctx context.Context, customerID int64) (*model.Draft, error) {
	if s.DraftFn != nil {
		return s.DraftFn(ctx, customerID)
	}
	return &model.Draft{CustomerID: customerID, Payment: model.PaymentCash}, nil
}

// SetQuantity delegates to override or returns an empty draft.
func (s CartFacadeStub) SetQuantity(ctx context.Context, customerID int64, itemID string, delta int) (*model.Draft, error) {
	if s.SetQuantityFn != nil {
		return s.SetQuantityFn(ctx, customerID, itemID, delta)
	}
	return s.Draft(ctx, customerID)
}

// SelectStore delegates to override or returns a draft with the store set.
func (s CartFacadeStub) SelectStore(ctx context.Context, customerID int64, storeID string) (*model.Draft, error) {
	if s.SelectStoreFn != nil {
		return s.SelectStoreFn(ctx, customerID, storeID)
	}
	return &model.Draft{CustomerID: customerID, StoreID: storeID, Payment: model.PaymentCash}, nil
}

// SetDropoff delegates to override or returns a draft with the address set.
func (s CartFacadeStub) SetDropoff(ctx context.Context, customerID int64, address string) (*model.Draft, error) {
	if s.SetDropoffFn != nil {
		return s.SetDropoffFn(ctx, customerID, address)
	}
	return &model.Draft{CustomerID: customerID, Dropoff: address, Payment: model.PaymentCash}, nil
}

// SetPayment delegates to override or returns a draft with the method set.
func (s CartFacadeStub) SetPayment(ctx context.Context, customerID int64, method model.PaymentMethod) (*model.Draft, error) {
	if s.SetPaymentFn != nil {
		return s.SetPaymentFn(ctx, customerID, method)
	}
	return &model.Draft{CustomerID: customerID, Payment: method}, nil
}

// ClearDraft delegates to override.
func (s CartFacadeStub) ClearDraft(ctx context.Context, customerID int64) error {
	if s.ClearFn != nil {
		return s.ClearFn(ctx, customerID)
	}
	return nil
}

// Quote returns a zero quote unless overridden.
func (s CartFacadeStub) Quote(ctx context.Context, customerID int64) (model.Quote, error) {
	if s.QuoteFn != nil {
		return s.QuoteFn(ctx, customerID)
	}
	return model.Quote{ItemsTotal: decimal.Zero, DeliveryFee: decimal.NewFromInt(25), Total: decimal.NewFromInt(25)}, nil
}

// Checkout returns SampleOrder unless overridden.
func (s CartFacadeStub) Checkout(ctx context.Context, customerID int64, cardNumber string) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, customerID, cardNumber)
	}
	order := SampleOrder("DEL-1")
	return &order, nil
}

// RequestCourier returns a courier order unless overridden.
func (s CartFacadeStub) RequestCourier(ctx context.Context, customerID int64, pickup, dropoff string, distance decimal.Decimal) (*model.Order, error) {
	if s.CourierFn != nil {
		return s.CourierFn(ctx, customerID, pickup, dropoff, distance)
	}
	order := SampleOrder("DEL-2")
	order.Kind = model.OrderKindCourier
	order.Pickup, order.Dropoff, order.Distance = pickup, dropoff, distance
	order.Lines = nil
	return &order, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	OrdersFn func(context.Context, int64) ([]model.Order, error)
	OrderFn  func(context.Context, int64, string) (*model.Order, error)
}

// Orders returns predefined orders for given user.
func (s OrderFacadeStub) Orders(ctx context.Context, customerID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, customerID)
	}
	return []model.Order{SampleOrder("DEL-1")}, nil
}

// Order returns SampleOrder with the requested id.
func (s OrderFacadeStub) Order(ctx context.Context, customerID int64, id string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, customerID, id)
	}
	order := SampleOrder(id)
	return &order, nil
}

// DriverFacadeStub simulates the driver dashboard.
type DriverFacadeStub struct {
	AvailableFn func(context.Context, int64) ([]model.Order, error)
	AcceptFn    func(context.Context, int64, string) (*model.Order, error)
	AdvanceFn   func(context.Context, int64, string, model.OrderStatus) (*model.Order, error)
	ActiveFn    func(context.Context, int64) ([]model.Order, error)
	HistoryFn   func(context.Context, int64) ([]model.Order, error)

	mu      sync.Mutex
	offline map[int64]bool
}

// SetOnline records availability.
func (s *DriverFacadeStub) SetOnline(driverID int64, online bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.offline == nil {
		s.offline = make(map[int64]bool)
	}
	s.offline[driverID] = !online
}

// Online reports recorded availability.
func (s *DriverFacadeStub) Online(driverID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.offline[driverID]
}

// AvailableRequests returns one pending order unless overridden.
func (s *DriverFacadeStub) AvailableRequests(ctx context.Context, driverID int64) ([]model.Order, error) {
	if s.AvailableFn != nil {
		return s.AvailableFn(ctx, driverID)
	}
	return []model.Order{SampleOrder("DEL-001")}, nil
}

// AcceptRequest returns the order as accepted unless overridden.
func (s *DriverFacadeStub) AcceptRequest(ctx context.Context, driverID int64, orderID string) (*model.Order, error) {
	if s.AcceptFn != nil {
		return s.AcceptFn(ctx, driverID, orderID)
	}
	order := SampleOrder(orderID)
	order.Status = model.OrderStatusAccepted
	order.Driver = "driver"
	return &order, nil
}

// AdvanceDelivery returns the order in the requested status unless overridden.
func (s *DriverFacadeStub) AdvanceDelivery(ctx context.Context, driverID int64, orderID string, next model.OrderStatus) (*model.Order, error) {
	if s.AdvanceFn != nil {
		return s.AdvanceFn(ctx, driverID, orderID, next)
	}
	order := SampleOrder(orderID)
	order.Status = next
	order.Driver = "driver"
	return &order, nil
}

// ActiveDeliveries delegates to override or returns nothing.
func (s *DriverFacadeStub) ActiveDeliveries(ctx context.Context, driverID int64) ([]model.Order, error) {
	if s.ActiveFn != nil {
		return s.ActiveFn(ctx, driverID)
	}
	return nil, nil
}

// DeliveryHistory delegates to override or returns nothing.
func (s *DriverFacadeStub) DeliveryHistory(ctx context.Context, driverID int64) ([]model.Order, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, driverID)
	}
	return nil, nil
}

// ChatFacadeStub simulates chat endpoints.
type ChatFacadeStub struct {
	OpenFn  func(context.Context, model.Actor, string) ([]model.ChatMessage, error)
	SendFn  func(context.Context, model.Actor, string, string) (*model.ChatMessage, error)
	CloseFn func(context.Context, model.Actor, string) error
}

// OpenChat returns a single greeting unless overridden.
func (s ChatFacadeStub) OpenChat(ctx context.Context, actor model.Actor, orderID string) ([]model.ChatMessage, error) {
	if s.OpenFn != nil {
		return s.OpenFn(ctx, actor, orderID)
	}
	return []model.ChatMessage{{ID: "m1", OrderID: orderID, Sender: model.SenderDriver, Text: "Hi!", Timestamp: time.Unix(0, 0).UTC()}}, nil
}

// SendMessage echoes the message unless overridden.
func (s ChatFacadeStub) SendMessage(ctx context.Context, actor model.Actor, orderID, text string) (*model.ChatMessage, error) {
	if s.SendFn != nil {
		return s.SendFn(ctx, actor, orderID, text)
	}
	sender := model.SenderCustomer
	if actor.Role == model.RoleDriver {
		sender = model.SenderDriver
	}
	return &model.ChatMessage{ID: "m2", OrderID: orderID, Sender: sender, Text: text, Timestamp: time.Unix(0, 0).UTC()}, nil
}

// CloseChat delegates to override.
func (s ChatFacadeStub) CloseChat(ctx context.Context, actor model.Actor, orderID string) error {
	if s.CloseFn != nil {
		return s.CloseFn(ctx, actor, orderID)
	}
	return nil
}

// AdminFacadeStub returns configured statistics.
type AdminFacadeStub struct {
	StatsFn func(context.Context) (*model.Stats, error)
}

// Stats delegates to override or returns fixed counters.
func (s AdminFacadeStub) Stats(ctx context.Context) (*model.Stats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx)
	}
	return &model.Stats{Users: 3, Customers: 2, Drivers: 1, DeliveryStats: model.DeliveryStats{Total: 4, Delivered: 1, Revenue: decimal.RequireFromString("94.48")}}, nil
}

// DeliveryFacadeStub aggregates facade dependencies for HTTP layer tests.
type DeliveryFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	CartFacadeStub
	OrderFacadeStub
	*DriverFacadeStub
	ChatFacadeStub
	AdminFacadeStub
}

// NewDeliveryFacadeStub returns a stub with default behaviour everywhere.
func NewDeliveryFacadeStub() *DeliveryFacadeStub {
	return &DeliveryFacadeStub{DriverFacadeStub: &DriverFacadeStub{}}
}

// ScheduledEvent is a Schedule call captured by SchedulerStub.
type ScheduledEvent struct {
	Kind    model.EventKind
	OrderID string
	Delay   time.Duration
}

// SchedulerStub records scheduled and cancelled events.
type SchedulerStub struct {
	Err error

	mu        sync.Mutex
	Scheduled []ScheduledEvent
	Cancelled []ScheduledEvent
}

// Schedule records the event or returns Err.
func (s *SchedulerStub) Schedule(_ context.Context, kind model.EventKind, orderID string, delay time.Duration) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Scheduled = append(s.Scheduled, ScheduledEvent{Kind: kind, OrderID: orderID, Delay: delay})
	return nil
}

// Cancel records the cancellation.
func (s *SchedulerStub) Cancel(orderID string, kind model.EventKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Cancelled = append(s.Cancelled, ScheduledEvent{Kind: kind, OrderID: orderID})
}

// Events returns a snapshot of scheduled events.
func (s *SchedulerStub) Events() []ScheduledEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ScheduledEvent(nil), s.Scheduled...)
}
