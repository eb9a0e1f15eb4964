package handlers

import (
	"github.com/polkiloo/deliverypro/internal/domain/model"
	"github.com/polkiloo/deliverypro/internal/server/http/dto"
)

func toLineResponses(lines []model.CartLine) []dto.LineResponse {
	out := make([]dto.LineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.LineResponse{
			ItemID:   l.Item.ID,
			Name:     l.Item.Name,
			Price:    l.Item.Price,
			Quantity: l.Quantity,
			Subtotal: l.Subtotal(),
		})
	}
	return out
}

func toDraftResponse(d *model.Draft) dto.DraftResponse {
	return dto.DraftResponse{
		StoreID:    d.StoreID,
		Dropoff:    d.Dropoff,
		Payment:    string(d.Payment),
		Lines:      toLineResponses(d.Cart.Lines),
		ItemsTotal: d.Cart.Subtotal(),
	}
}

func toOrderResponse(o model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:          o.ID,
		Kind:        string(o.Kind),
		Customer:    o.Customer,
		Store:       o.StoreName,
		Pickup:      o.Pickup,
		Dropoff:     o.Dropoff,
		Distance:    o.Distance,
		Payment:     string(o.Payment),
		CardBrand:   o.CardBrand,
		CardLast4:   o.CardLast4,
		ItemsTotal:  o.ItemsTotal,
		DeliveryFee: o.DeliveryFee,
		Total:       o.Total,
		Status:      string(o.Status),
		StatusLabel: o.Status.Label(),
		Driver:      o.Driver,
		ETA:         o.ETA,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
	if len(o.Lines) > 0 {
		resp.Lines = toLineResponses(o.Lines)
	}
	return resp
}

func toOrderResponses(orders []model.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

func toMessageResponses(msgs []model.ChatMessage) []dto.MessageResponse {
	out := make([]dto.MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return out
}

func toMessageResponse(m model.ChatMessage) dto.MessageResponse {
	return dto.MessageResponse{ID: m.ID, Sender: string(m.Sender), Text: m.Text, Timestamp: m.Timestamp}
}
