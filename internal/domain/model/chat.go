package model

import "time"

// Sender identifies the author of a chat message.
type Sender string

const (
	SenderCustomer Sender = "customer"
	SenderDriver   Sender = "driver"
)

// ChatMessage is an entry of an order's append-only chat log.
type ChatMessage struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
