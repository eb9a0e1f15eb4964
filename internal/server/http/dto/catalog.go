package dto

import "github.com/shopspring/decimal"

// ItemResponse is a catalog product.
type ItemResponse struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Image    string          `json:"image,omitempty"`
}

// StoreResponse is a pickup store.
type StoreResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Address      string          `json:"address"`
	Distance     decimal.Decimal `json:"distance"`
	DeliveryTime string          `json:"delivery_time"`
	Rating       float64         `json:"rating"`
}

// CardRequest carries a card number typed at checkout.
type CardRequest struct {
	CardNumber string `json:"card_number"`
}

// CardResponse describes a classified card number.
type CardResponse struct {
	Brand     string `json:"brand"`
	Formatted string `json:"formatted"`
	Valid     bool   `json:"valid"`
}
