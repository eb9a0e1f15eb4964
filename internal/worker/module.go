package worker

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/deliverypro/internal/config"
)

// Module provides the event dispatcher sized from configuration.
var Module = fx.Provide(func(cfg *config.Config, logger *slog.Logger) *Dispatcher {
	return NewDispatcher(cfg.WorkerPoolSize, cfg.EventBuffer, logger)
})
