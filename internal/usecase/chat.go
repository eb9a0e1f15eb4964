package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/deliverypro/internal/catalog"
	"github.com/polkiloo/deliverypro/internal/config"
	domainErrors "github.com/polkiloo/deliverypro/internal/domain/errors"
	"github.com/polkiloo/deliverypro/internal/domain/model"
	"github.com/polkiloo/deliverypro/internal/domain/repository"
)

// ChatUseCase runs the per-order conversation between customer and driver.
type ChatUseCase struct {
	chats      repository.ChatRepository
	orders     repository.OrderRepository
	users      repository.UserRepository
	catalog    *catalog.Catalog
	scheduler  Scheduler
	replyDelay time.Duration
	logger     *slog.Logger
	now        func() time.Time

	mu   sync.Mutex
	rand *rand.Rand
}

// NewChatUseCase constructs ChatUseCase.
func NewChatUseCase(
	chats repository.ChatRepository,
	orders repository.OrderRepository,
	users repository.UserRepository,
	cat *catalog.Catalog,
	scheduler Scheduler,
	cfg *config.Config,
	logger *slog.Logger,
) *ChatUseCase {
	return &ChatUseCase{
		chats:      chats,
		orders:     orders,
		users:      users,
		catalog:    cat,
		scheduler:  scheduler,
		replyDelay: cfg.ReplyDelay,
		logger:     logger,
		now:        time.Now,
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Open returns the chat log of an order, greeting the customer on first use.
func (u *ChatUseCase) Open(ctx context.Context, actor model.Actor, orderID string) ([]model.ChatMessage, error) {
	order, err := u.authorize(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	return u.greet(ctx, order)
}

// Send appends a message from actor. Customer messages get a delayed driver
// reply. The greetings go first when the log is still empty.
func (u *ChatUseCase) Send(ctx context.Context, actor model.Actor, orderID, text string) (*model.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domainErrors.ErrEmptyMessage
	}
	order, err := u.authorize(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	sender := model.SenderCustomer
	if actor.Role == model.RoleDriver {
		sender = model.SenderDriver
	}

	u.mu.Lock()
	if _, err := u.greet(ctx, order); err != nil {
		u.mu.Unlock()
		return nil, err
	}
	msg := u.message(orderID, sender, text)
	err = u.chats.Append(ctx, msg)
	u.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if sender == model.SenderCustomer {
		if err := u.scheduler.Schedule(ctx, model.EventDriverReply, orderID, u.replyDelay); err != nil {
			u.logger.Warn("failed to schedule driver reply", slog.String("order_id", orderID), slog.Any("error", err))
		}
	}
	return &msg, nil
}

// greet seeds the driver's greetings into an empty log. Callers hold u.mu.
func (u *ChatUseCase) greet(ctx context.Context, order *model.Order) ([]model.ChatMessage, error) {
	log, err := u.chats.List(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if len(log) > 0 {
		return log, nil
	}
	for _, text := range u.catalog.Greetings(order.Driver) {
		msg := u.message(order.ID, model.SenderDriver, text)
		if err := u.chats.Append(ctx, msg); err != nil {
			return nil, err
		}
		log = append(log, msg)
	}
	return log, nil
}

// Close stops pending driver replies for the order.
func (u *ChatUseCase) Close(ctx context.Context, actor model.Actor, orderID string) error {
	if _, err := u.authorize(ctx, actor, orderID); err != nil {
		return err
	}
	u.scheduler.Cancel(orderID, model.EventDriverReply)
	return nil
}

// Reply appends one canned driver reply picked at random.
func (u *ChatUseCase) Reply(ctx context.Context, orderID string) error {
	replies := u.catalog.Replies()
	u.mu.Lock()
	text := replies[u.rand.Intn(len(replies))]
	u.mu.Unlock()

	msg := u.message(orderID, model.SenderDriver, text)
	if err := u.chats.Append(ctx, msg); err != nil {
		return fmt.Errorf("append reply: %w", err)
	}
	return nil
}

func (u *ChatUseCase) authorize(ctx context.Context, actor model.Actor, orderID string) (*model.Order, error) {
	order, err := u.orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	switch actor.Role {
	case model.RoleCustomer:
		if order.CustomerID != actor.UserID {
			return nil, domainErrors.ErrNotFound
		}
	case model.RoleDriver:
		usr, err := u.users.GetByID(ctx, actor.UserID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, domainErrors.ErrNotAssigned
			}
			return nil, err
		}
		if order.Driver != usr.Login {
			return nil, domainErrors.ErrNotAssigned
		}
	default:
		return nil, domainErrors.ErrInvalidRole
	}
	if !order.HasDriver() {
		return nil, domainErrors.ErrNoDriverAssigned
	}
	return order, nil
}

func (u *ChatUseCase) message(orderID string, sender model.Sender, text string) model.ChatMessage {
	return model.ChatMessage{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		Sender:    sender,
		Text:      text,
		Timestamp: u.now(),
	}
}
