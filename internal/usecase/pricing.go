package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/deliverypro/internal/config"
	"github.com/polkiloo/deliverypro/internal/domain/model"
)

// FeeSchedule prices a delivery as a base fee plus a per-kilometre rate.
type FeeSchedule struct {
	Base  decimal.Decimal
	PerKm decimal.Decimal
}

// DefaultFeeSchedule charges 25 plus 15 per km.
func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{Base: decimal.NewFromInt(25), PerKm: decimal.NewFromInt(15)}
}

// NewFeeSchedule reads fees from configuration.
func NewFeeSchedule(cfg *config.Config) FeeSchedule {
	return FeeSchedule{Base: cfg.BaseFee, PerKm: cfg.PerKmRate}
}

// DeliveryFee returns base + perKm * distance.
func (f FeeSchedule) DeliveryFee(distance decimal.Decimal) decimal.Decimal {
	return f.Base.Add(f.PerKm.Mul(distance))
}

// Quote breaks the order price into items, fee and total.
func (f FeeSchedule) Quote(cart model.Cart, distance decimal.Decimal) model.Quote {
	items := cart.Subtotal()
	fee := f.DeliveryFee(distance)
	return model.Quote{ItemsTotal: items, DeliveryFee: fee, Total: items.Add(fee)}
}
