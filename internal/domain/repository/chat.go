package repository

import (
	"context"

	"github.com/polkiloo/deliverypro/internal/domain/model"
)

// ChatRepository stores per-order chat logs.
type ChatRepository interface {
	Append(ctx context.Context, msg model.ChatMessage) error
	List(ctx context.Context, orderID string) ([]model.ChatMessage, error)
}
