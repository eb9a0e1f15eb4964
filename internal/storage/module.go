package storage

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/deliverypro/internal/config"
	"github.com/polkiloo/deliverypro/internal/domain/repository"
	"github.com/polkiloo/deliverypro/internal/storage/memory"
	"github.com/polkiloo/deliverypro/internal/storage/postgres"
	"github.com/polkiloo/deliverypro/internal/storage/redis"
)

// Module selects storage backends from configuration and exposes them as
// domain repositories. Drafts always live in memory.
var Module = fx.Options(
	fx.Provide(
		memory.New,
		newRepositories,
	),
)

type storageParams struct {
	fx.In

	Ctx       context.Context
	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
	Memory    *memory.Storage
}

// Repositories is the set of repositories handed to use cases.
type Repositories struct {
	fx.Out

	Users  repository.UserRepository
	Orders repository.OrderRepository
	Chats  repository.ChatRepository
	Drafts repository.DraftRepository
	Kind   Backend
}

// Backend names the storage that holds users and orders.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendPostgres Backend = "postgres"
)

func newRepositories(p storageParams) (Repositories, error) {
	repos := Repositories{
		Users:  p.Memory.Users(),
		Orders: p.Memory.Orders(),
		Chats:  p.Memory.Chats(),
		Drafts: p.Memory.Drafts(),
		Kind:   BackendMemory,
	}

	if p.Config.DatabaseURI != "" {
		pg, err := postgres.New(p.Ctx, p.Config.DatabaseURI, p.Logger)
		if err != nil {
			return Repositories{}, err
		}
		p.Lifecycle.Append(fx.Hook{
			OnStart: pg.Ping,
			OnStop: func(context.Context) error {
				pg.Close()
				return nil
			},
		})
		repos.Users = pg.Users()
		repos.Orders = pg.Orders()
		repos.Chats = pg.Chats()
		repos.Kind = BackendPostgres
	}

	if p.Config.RedisAddress != "" {
		chats, err := redis.New(p.Ctx, p.Config.RedisAddress, p.Logger)
		if err != nil {
			return Repositories{}, err
		}
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return chats.Close()
			},
		})
		repos.Chats = chats
	}

	p.Logger.Info("storage selected",
		slog.String("backend", string(repos.Kind)),
		slog.Bool("redis_chat", p.Config.RedisAddress != ""),
	)
	return repos, nil
}
