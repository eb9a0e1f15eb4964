package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	goredis "github.com/go-redis/redis/v8"

	"github.com/polkiloo/deliverypro/internal/domain/model"
)

const chatKeyPrefix = "deliverypro:chat:"

// ChatStore keeps chat logs as Redis lists, one list per order.
type ChatStore struct {
	client *goredis.Client
	logger *slog.Logger
}

// New connects to Redis at addr and verifies the connection.
func New(ctx context.Context, addr string, logger *slog.Logger) (*ChatStore, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return NewWithClient(client, logger), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *goredis.Client, logger *slog.Logger) *ChatStore {
	return &ChatStore{client: client, logger: logger}
}

// Close releases the underlying client.
func (s *ChatStore) Close() error {
	return s.client.Close()
}

func chatKey(orderID string) string {
	return chatKeyPrefix + orderID
}

// Append pushes msg to the tail of its order's log. Logs never expire.
func (s *ChatStore) Append(ctx context.Context, msg model.ChatMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode chat message: %w", err)
	}

	if err := s.client.RPush(ctx, chatKey(msg.OrderID), payload).Err(); err != nil {
		return fmt.Errorf("append chat message: %w", err)
	}
	return nil
}

// List returns the whole log of orderID in append order.
func (s *ChatStore) List(ctx context.Context, orderID string) ([]model.ChatMessage, error) {
	raw, err := s.client.LRange(ctx, chatKey(orderID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list chat messages: %w", err)
	}

	result := make([]model.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg model.ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			s.logger.Warn("skipping malformed chat entry",
				slog.String("order", orderID),
				slog.String("error", err.Error()),
			)
			continue
		}
		result = append(result, msg)
	}
	return result, nil
}
