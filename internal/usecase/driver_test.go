package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/deliverypro/internal/domain/errors"
	"github.com/polkiloo/deliverypro/internal/domain/model"
)

func TestDriverAcceptMovesRequestToActive(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice", model.RoleCustomer)
	driver := f.user(t, "dave", model.RoleDriver)
	order := f.placeOrder(t, alice)
	uc := f.drivers()
	ctx := context.Background()

	available, err := uc.Available(ctx, driver.ID)
	require.NoError(t, err)
	require.Len(t, available, 1)

	accepted, err := uc.Accept(ctx, driver.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusAccepted, accepted.Status)
	assert.Equal(t, "dave", accepted.Driver)

	available, err = uc.Available(ctx, driver.ID)
	require.NoError(t, err)
	assert.Empty(t, available)

	active, err := uc.Active(ctx, driver.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, order.ID, active[0].ID)

	_, err = uc.Accept(ctx, driver.ID, order.ID)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)
}

func TestDriverAdvanceToDelivered(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice", model.RoleCustomer)
	driver := f.user(t, "dave", model.RoleDriver)
	other := f.user(t, "erin", model.RoleDriver)
	order := f.placeOrder(t, alice)
	uc := f.drivers()
	ctx := context.Background()

	_, err := uc.Accept(ctx, driver.ID, order.ID)
	require.NoError(t, err)

	_, err = uc.Advance(ctx, other.ID, order.ID, model.OrderStatusPickedUp)
	assert.ErrorIs(t, err, domainErrors.ErrNotAssigned)

	_, err = uc.Advance(ctx, driver.ID, order.ID, model.OrderStatusDelivered)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition, "picked_up cannot be skipped")

	_, err = uc.Advance(ctx, driver.ID, order.ID, model.OrderStatusAccepted)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition)

	picked, err := uc.Advance(ctx, driver.ID, order.ID, model.OrderStatusPickedUp)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPickedUp, picked.Status)

	delivered, err := uc.Advance(ctx, driver.ID, order.ID, model.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivered, delivered.Status)
	assert.Equal(t, "dave", delivered.Driver)

	active, err := uc.Active(ctx, driver.ID)
	require.NoError(t, err)
	assert.Empty(t, active)

	history, err := uc.History(ctx, driver.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, order.ID, history[0].ID)

	_, err = uc.Advance(ctx, driver.ID, order.ID, model.OrderStatusPickedUp)
	assert.ErrorIs(t, err, domainErrors.ErrInvalidTransition, "status never moves backward")

	customerView, err := f.orders().Get(ctx, alice.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusDelivered, customerView.Status, "both sides see one record")
}

func TestDriverOffline(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice", model.RoleCustomer)
	driver := f.user(t, "dave", model.RoleDriver)
	first := f.placeOrder(t, alice)
	second := f.placeOrder(t, alice)
	uc := f.drivers()
	ctx := context.Background()

	_, err := uc.Accept(ctx, driver.ID, first.ID)
	require.NoError(t, err)

	assert.True(t, uc.Online(driver.ID))
	uc.SetOnline(driver.ID, false)
	assert.False(t, uc.Online(driver.ID))

	available, err := uc.Available(ctx, driver.ID)
	require.NoError(t, err)
	assert.Empty(t, available)

	_, err = uc.Accept(ctx, driver.ID, second.ID)
	assert.ErrorIs(t, err, domainErrors.ErrDriverOffline)

	active, err := uc.Active(ctx, driver.ID)
	require.NoError(t, err)
	assert.Len(t, active, 1, "going offline keeps active deliveries")

	_, err = uc.Advance(ctx, driver.ID, first.ID, model.OrderStatusPickedUp)
	assert.NoError(t, err)

	uc.SetOnline(driver.ID, true)
	available, err = uc.Available(ctx, driver.ID)
	require.NoError(t, err)
	assert.Len(t, available, 1)
}

func TestDriverAcceptRaceHasOneWinner(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice", model.RoleCustomer)
	order := f.placeOrder(t, alice)
	uc := f.drivers()
	ctx := context.Background()

	drivers := make([]*model.User, 8)
	for i := range drivers {
		drivers[i] = f.user(t, string(rune('a'+i))+"-driver", model.RoleDriver)
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for _, d := range drivers {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if _, err := uc.Accept(ctx, id, order.ID); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}(d.ID)
	}
	wg.Wait()
	assert.Equal(t, 1, wins)
}

func TestDriverUnknownUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.drivers().Accept(context.Background(), 404, "DEL-1")
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
	_, err = f.drivers().Active(context.Background(), 404)
	assert.ErrorIs(t, err, domainErrors.ErrNotFound)
}
