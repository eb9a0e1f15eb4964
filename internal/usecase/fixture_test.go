package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/polkiloo/deliverypro/internal/catalog"
	"github.com/polkiloo/deliverypro/internal/config"
	"github.com/polkiloo/deliverypro/internal/domain/model"
	"github.com/polkiloo/deliverypro/internal/storage/memory"
	testhelpers "github.com/polkiloo/deliverypro/internal/test"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store     *memory.Storage
	catalog   *catalog.Catalog
	scheduler *testhelpers.SchedulerStub
	cfg       *config.Config
	logger    *slog.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return &fixture{
		store:     memory.New(),
		catalog:   cat,
		scheduler: &testhelpers.SchedulerStub{},
		cfg: &config.Config{
			AcceptDelay: 3 * time.Second,
			ReplyDelay:  2 * time.Second,
			BaseFee:     dec("25"),
			PerKmRate:   dec("15"),
		},
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
}

func (f *fixture) user(t *testing.T, login string, role model.Role) *model.User {
	t.Helper()
	usr, err := f.store.Users().Create(context.Background(), login, "hash", role)
	require.NoError(t, err)
	return usr
}

func (f *fixture) cart() *CartUseCase {
	uc := NewCartUseCase(f.store.Drafts(), f.store.Orders(), f.store.Users(), f.catalog, f.scheduler, f.cfg, f.logger)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func (f *fixture) orders() *OrderUseCase {
	uc := NewOrderUseCase(f.store.Orders(), f.catalog, f.logger)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func (f *fixture) drivers() *DriverUseCase {
	uc := NewDriverUseCase(f.store.Orders(), f.store.Users(), f.logger)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func (f *fixture) chat() *ChatUseCase {
	uc := NewChatUseCase(f.store.Chats(), f.store.Orders(), f.store.Users(), f.catalog, f.scheduler, f.cfg, f.logger)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

// placeOrder checks out a ready cart for customer and returns the order.
func (f *fixture) placeOrder(t *testing.T, customer *model.User) *model.Order {
	t.Helper()
	ctx := context.Background()
	uc := f.cart()
	_, err := uc.SetQuantity(ctx, customer.ID, "beer1", 2)
	require.NoError(t, err)
	_, err = uc.SelectStore(ctx, customer.ID, "tops1")
	require.NoError(t, err)
	_, err = uc.SetDropoff(ctx, customer.ID, "1 Test Street")
	require.NoError(t, err)
	order, err := uc.Checkout(ctx, customer.ID, "")
	require.NoError(t, err)
	return order
}
