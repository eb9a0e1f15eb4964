package dto

import "github.com/shopspring/decimal"

// QuantityRequest changes a cart line by Delta.
type QuantityRequest struct {
	Delta int `json:"delta"`
}

// StoreRequest selects a store.
type StoreRequest struct {
	StoreID string `json:"store_id"`
}

// AddressRequest sets the drop-off address.
type AddressRequest struct {
	Address string `json:"address"`
}

// PaymentRequest picks cash or card.
type PaymentRequest struct {
	Method string `json:"method"`
}

// CourierRequest books a plain courier delivery. Distance is in kilometres.
type CourierRequest struct {
	Pickup   string           `json:"pickup"`
	Dropoff  string           `json:"dropoff"`
	Distance *decimal.Decimal `json:"distance,omitempty"`
}

// LineResponse is a cart or order line.
type LineResponse struct {
	ItemID   string          `json:"item_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// DraftResponse is the customer's cart with checkout details.
type DraftResponse struct {
	StoreID    string          `json:"store_id,omitempty"`
	Dropoff    string          `json:"dropoff,omitempty"`
	Payment    string          `json:"payment"`
	Lines      []LineResponse  `json:"lines"`
	ItemsTotal decimal.Decimal `json:"items_total"`
}

// QuoteResponse prices a draft.
type QuoteResponse struct {
	ItemsTotal  decimal.Decimal `json:"items_total"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
}
