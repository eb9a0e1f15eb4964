package catalog

import (
	"go.uber.org/fx"

	"github.com/polkiloo/deliverypro/internal/config"
)

// Module provides the catalog to the fx container.
var Module = fx.Provide(func(cfg *config.Config) (*Catalog, error) {
	return Open(cfg.CatalogFile)
})
