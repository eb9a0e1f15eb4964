package usecase

import (
	"context"

	"github.com/polkiloo/deliverypro/internal/domain/model"
	"github.com/polkiloo/deliverypro/internal/domain/repository"
)

// AdminUseCase builds the admin overview.
type AdminUseCase struct {
	users  repository.UserRepository
	orders repository.OrderRepository
}

// NewAdminUseCase constructs AdminUseCase.
func NewAdminUseCase(users repository.UserRepository, orders repository.OrderRepository) *AdminUseCase {
	return &AdminUseCase{users: users, orders: orders}
}

// Stats counts users by role and sums deliveries.
func (u *AdminUseCase) Stats(ctx context.Context) (*model.Stats, error) {
	counts, err := u.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	deliveries, err := u.orders.Stats(ctx)
	if err != nil {
		return nil, err
	}
	stats := &model.Stats{
		Customers:     counts[model.RoleCustomer],
		Drivers:       counts[model.RoleDriver],
		DeliveryStats: *deliveries,
	}
	for _, n := range counts {
		stats.Users += n
	}
	return stats, nil
}
