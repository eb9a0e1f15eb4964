package model

import "github.com/shopspring/decimal"

// DeliveryStats aggregates order counters.
type DeliveryStats struct {
	Total     int
	Delivered int
	Revenue   decimal.Decimal
}

// Stats is the admin overview.
type Stats struct {
	Users     int
	Customers int
	Drivers   int
	DeliveryStats
}
