package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/deliverypro/internal/catalog"
	"github.com/polkiloo/deliverypro/internal/config"
	domainErrors "github.com/polkiloo/deliverypro/internal/domain/errors"
	"github.com/polkiloo/deliverypro/internal/domain/model"
	"github.com/polkiloo/deliverypro/internal/domain/repository"
)

// CourierETA is quoted for every plain courier request.
const CourierETA = "15-30 mins"

// CourierRequest describes a pickup and drop-off job booked by a customer.
type CourierRequest struct {
	Pickup   string
	Dropoff  string
	Distance decimal.Decimal
}

const draftLockStripes = 64

// CartUseCase edits customer drafts and turns them into orders. Changes to
// one customer's draft are serialized.
type CartUseCase struct {
	locks       [draftLockStripes]sync.Mutex
	drafts      repository.DraftRepository
	orders      repository.OrderRepository
	users       repository.UserRepository
	catalog     *catalog.Catalog
	fees        FeeSchedule
	scheduler   Scheduler
	acceptDelay time.Duration
	logger      *slog.Logger
	now         func() time.Time
}

// NewCartUseCase constructs CartUseCase.
func NewCartUseCase(
	drafts repository.DraftRepository,
	orders repository.OrderRepository,
	users repository.UserRepository,
	cat *catalog.Catalog,
	scheduler Scheduler,
	cfg *config.Config,
	logger *slog.Logger,
) *CartUseCase {
	return &CartUseCase{
		drafts:      drafts,
		orders:      orders,
		users:       users,
		catalog:     cat,
		fees:        NewFeeSchedule(cfg),
		scheduler:   scheduler,
		acceptDelay: cfg.AcceptDelay,
		logger:      logger,
		now:         time.Now,
	}
}

// Draft returns the customer's current draft.
func (u *CartUseCase) Draft(ctx context.Context, customerID int64) (*model.Draft, error) {
	return u.drafts.Get(ctx, customerID)
}

// SetQuantity applies delta to the cart line of itemID.
func (u *CartUseCase) SetQuantity(ctx context.Context, customerID int64, itemID string, delta int) (*model.Draft, error) {
	item, err := u.catalog.Item(itemID)
	if err != nil {
		return nil, err
	}
	return u.update(ctx, customerID, func(d *model.Draft) error {
		d.Cart = d.Cart.SetQuantity(item, delta)
		return nil
	})
}

// SelectStore picks the store the order is collected from.
func (u *CartUseCase) SelectStore(ctx context.Context, customerID int64, storeID string) (*model.Draft, error) {
	store, err := u.catalog.Store(storeID)
	if err != nil {
		return nil, err
	}
	return u.update(ctx, customerID, func(d *model.Draft) error {
		d.StoreID = store.ID
		return nil
	})
}

// SetDropoff stores the delivery address.
func (u *CartUseCase) SetDropoff(ctx context.Context, customerID int64, address string) (*model.Draft, error) {
	return u.update(ctx, customerID, func(d *model.Draft) error {
		d.Dropoff = strings.TrimSpace(address)
		return nil
	})
}

// SetPayment chooses between cash and card.
func (u *CartUseCase) SetPayment(ctx context.Context, customerID int64, method model.PaymentMethod) (*model.Draft, error) {
	if !method.Valid() {
		return nil, domainErrors.ErrInvalidPayment
	}
	return u.update(ctx, customerID, func(d *model.Draft) error {
		d.Payment = method
		return nil
	})
}

// Clear discards the draft.
func (u *CartUseCase) Clear(ctx context.Context, customerID int64) error {
	unlock := u.lock(customerID)
	defer unlock()
	return u.drafts.Delete(ctx, customerID)
}

// Quote prices the draft. Without a store the delivery distance is zero.
func (u *CartUseCase) Quote(ctx context.Context, customerID int64) (model.Quote, error) {
	draft, err := u.drafts.Get(ctx, customerID)
	if err != nil {
		return model.Quote{}, err
	}
	distance := decimal.Zero
	if draft.StoreID != "" {
		store, err := u.catalog.Store(draft.StoreID)
		if err != nil {
			return model.Quote{}, err
		}
		distance = store.Distance
	}
	return u.fees.Quote(draft.Cart, distance), nil
}

// Checkout validates the draft, creates a pending order and schedules the
// simulated driver assignment. The draft is cleared on success and left
// untouched on failure.
func (u *CartUseCase) Checkout(ctx context.Context, customerID int64, cardNumber string) (*model.Order, error) {
	unlock := u.lock(customerID)
	defer unlock()

	draft, err := u.drafts.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(draft.Dropoff) == "" {
		return nil, domainErrors.ErrMissingAddress
	}
	if draft.StoreID == "" {
		return nil, domainErrors.ErrMissingStore
	}
	if draft.Cart.IsEmpty() {
		return nil, domainErrors.ErrEmptyCart
	}
	store, err := u.catalog.Store(draft.StoreID)
	if err != nil {
		return nil, err
	}

	payment := draft.Payment
	if payment == "" {
		payment = model.PaymentCash
	}
	var brand, last4 string
	if payment == model.PaymentCard {
		if !ValidateCardNumber(cardNumber) {
			return nil, domainErrors.ErrInvalidCardNumber
		}
		brand = ClassifyCard(cardNumber)
		last4 = LastFour(cardNumber)
	}

	customer, err := u.customerName(ctx, customerID)
	if err != nil {
		return nil, err
	}

	quote := u.fees.Quote(draft.Cart, store.Distance)
	now := u.now()
	order := &model.Order{
		ID:          newOrderID(),
		Kind:        model.OrderKindAlcohol,
		CustomerID:  customerID,
		Customer:    customer,
		StoreID:     store.ID,
		StoreName:   store.Name,
		Pickup:      store.Address,
		Dropoff:     draft.Dropoff,
		Distance:    store.Distance,
		Lines:       draft.Cart.Clone().Lines,
		Payment:     payment,
		CardBrand:   brand,
		CardLast4:   last4,
		ItemsTotal:  quote.ItemsTotal,
		DeliveryFee: quote.DeliveryFee,
		Total:       quote.Total,
		Status:      model.OrderStatusPending,
		ETA:         store.DeliveryTime,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.place(ctx, order); err != nil {
		return nil, err
	}
	if err := u.drafts.Delete(ctx, customerID); err != nil {
		u.logger.Warn("failed to clear draft", slog.Int64("customer_id", customerID), slog.Any("error", err))
	}
	return order, nil
}

// RequestCourier books a plain pickup and drop-off delivery.
func (u *CartUseCase) RequestCourier(ctx context.Context, customerID int64, req CourierRequest) (*model.Order, error) {
	pickup := strings.TrimSpace(req.Pickup)
	dropoff := strings.TrimSpace(req.Dropoff)
	if pickup == "" {
		return nil, domainErrors.ErrMissingPickup
	}
	if dropoff == "" {
		return nil, domainErrors.ErrMissingAddress
	}
	if req.Distance.IsNegative() {
		return nil, domainErrors.ErrInvalidDistance
	}
	customer, err := u.customerName(ctx, customerID)
	if err != nil {
		return nil, err
	}
	fee := u.fees.DeliveryFee(req.Distance)
	now := u.now()
	order := &model.Order{
		ID:          newOrderID(),
		Kind:        model.OrderKindCourier,
		CustomerID:  customerID,
		Customer:    customer,
		Pickup:      pickup,
		Dropoff:     dropoff,
		Distance:    req.Distance,
		Payment:     model.PaymentCash,
		ItemsTotal:  decimal.Zero,
		DeliveryFee: fee,
		Total:       fee,
		Status:      model.OrderStatusPending,
		ETA:         CourierETA,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.place(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (u *CartUseCase) place(ctx context.Context, order *model.Order) error {
	if err := u.orders.Create(ctx, order); err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	if err := u.scheduler.Schedule(ctx, model.EventDriverAssignment, order.ID, u.acceptDelay); err != nil {
		u.logger.Error("failed to schedule driver assignment", slog.String("order_id", order.ID), slog.Any("error", err))
	}
	u.logger.Info("order placed",
		slog.String("order_id", order.ID),
		slog.String("kind", string(order.Kind)),
		slog.String("total", order.Total.StringFixed(2)),
	)
	return nil
}

func (u *CartUseCase) lock(customerID int64) func() {
	idx := customerID % draftLockStripes
	if idx < 0 {
		idx = -idx
	}
	mu := &u.locks[idx]
	mu.Lock()
	return mu.Unlock
}

func (u *CartUseCase) update(ctx context.Context, customerID int64, apply func(*model.Draft) error) (*model.Draft, error) {
	unlock := u.lock(customerID)
	defer unlock()

	draft, err := u.drafts.Get(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if err := apply(draft); err != nil {
		return nil, err
	}
	if err := u.drafts.Save(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (u *CartUseCase) customerName(ctx context.Context, customerID int64) (string, error) {
	usr, err := u.users.GetByID(ctx, customerID)
	if err != nil {
		return "", fmt.Errorf("load customer: %w", err)
	}
	return usr.Login, nil
}

func newOrderID() string {
	return "DEL-" + uuid.NewString()
}
