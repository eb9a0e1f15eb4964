package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/deliverypro/internal/app"
	"github.com/polkiloo/deliverypro/internal/catalog"
	"github.com/polkiloo/deliverypro/internal/config"
	"github.com/polkiloo/deliverypro/internal/logger"
	"github.com/polkiloo/deliverypro/internal/pkg/auth"
	"github.com/polkiloo/deliverypro/internal/server/http/router"
	"github.com/polkiloo/deliverypro/internal/storage"
	"github.com/polkiloo/deliverypro/internal/usecase"
	"github.com/polkiloo/deliverypro/internal/worker"
)

// Module assembles the service graph. The caller supplies context.Context
// and config.Args.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		catalog.Module,
		auth.Module,
		storage.Module,
		worker.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
