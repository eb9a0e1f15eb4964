package repository

import (
	"context"

	"github.com/polkiloo/deliverypro/internal/domain/model"
)

// DraftRepository keeps one in-progress order per customer.
type DraftRepository interface {
	Get(ctx context.Context, customerID int64) (*model.Draft, error)
	Save(ctx context.Context, draft *model.Draft) error
	Delete(ctx context.Context, customerID int64) error
}
