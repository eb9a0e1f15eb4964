package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/deliverypro/internal/worker"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewCartUseCase,
	NewOrderUseCase,
	NewDriverUseCase,
	NewChatUseCase,
	NewAdminUseCase,
	func(d *worker.Dispatcher) Scheduler { return d },
)
