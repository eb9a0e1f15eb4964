package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderResponse is the shared delivery record as shown to customers and
// drivers.
type OrderResponse struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	Customer    string          `json:"customer,omitempty"`
	Store       string          `json:"store,omitempty"`
	Pickup      string          `json:"pickup"`
	Dropoff     string          `json:"dropoff"`
	Distance    decimal.Decimal `json:"distance"`
	Lines       []LineResponse  `json:"lines,omitempty"`
	Payment     string          `json:"payment"`
	CardBrand   string          `json:"card_brand,omitempty"`
	CardLast4   string          `json:"card_last4,omitempty"`
	ItemsTotal  decimal.Decimal `json:"items_total"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"status"`
	StatusLabel string          `json:"status_label"`
	Driver      string          `json:"driver,omitempty"`
	ETA         string          `json:"eta,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StatusRequest advances a delivery.
type StatusRequest struct {
	Status string `json:"status"`
}

// OnlineRequest toggles driver availability.
type OnlineRequest struct {
	Online bool `json:"online"`
}

// OnlineResponse reports driver availability.
type OnlineResponse struct {
	Online bool `json:"online"`
}

// MessageRequest is a chat message typed by the caller.
type MessageRequest struct {
	Text string `json:"text"`
}

// MessageResponse is a chat log entry.
type MessageResponse struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// StatsResponse is the admin overview.
type StatsResponse struct {
	Users               int             `json:"users"`
	Customers           int             `json:"customers"`
	Drivers             int             `json:"drivers"`
	Deliveries          int             `json:"deliveries"`
	DeliveredDeliveries int             `json:"delivered_deliveries"`
	Revenue             decimal.Decimal `json:"revenue"`
}
