package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/deliverypro/internal/domain/model"
	"github.com/polkiloo/deliverypro/internal/server/http/dto"
)

// CartHandler manages the customer's draft and checkout.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *gin.Context) {
	draft, err := h.facade.Draft(c.Request.Context(), CurrentUserID(c))
	h.respondDraft(c, draft, err)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.facade.ClearDraft(c.Request.Context(), CurrentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetQuantity handles PUT /api/cart/items/:id.
func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req dto.QuantityRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.facade.SetQuantity(c.Request.Context(), CurrentUserID(c), c.Param("id"), req.Delta)
	h.respondDraft(c, draft, err)
}

// SelectStore handles PUT /api/cart/store.
func (h *CartHandler) SelectStore(c *gin.Context) {
	var req dto.StoreRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.facade.SelectStore(c.Request.Context(), CurrentUserID(c), req.StoreID)
	h.respondDraft(c, draft, err)
}

// SetAddress handles PUT /api/cart/address.
func (h *CartHandler) SetAddress(c *gin.Context) {
	var req dto.AddressRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.facade.SetDropoff(c.Request.Context(), CurrentUserID(c), req.Address)
	h.respondDraft(c, draft, err)
}

// SetPayment handles PUT /api/cart/payment.
func (h *CartHandler) SetPayment(c *gin.Context) {
	var req dto.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	draft, err := h.facade.SetPayment(c.Request.Context(), CurrentUserID(c), model.PaymentMethod(req.Method))
	h.respondDraft(c, draft, err)
}

// Quote handles GET /api/cart/quote.
func (h *CartHandler) Quote(c *gin.Context) {
	quote, err := h.facade.Quote(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.QuoteResponse{
		ItemsTotal:  quote.ItemsTotal,
		DeliveryFee: quote.DeliveryFee,
		Total:       quote.Total,
	})
}

// Checkout handles POST /api/cart/checkout. The body is optional for cash
// payments.
func (h *CartHandler) Checkout(c *gin.Context) {
	var req dto.CardRequest
	if c.Request.ContentLength != 0 {
		if !bindJSON(c, &req) {
			return
		}
	}
	order, err := h.facade.Checkout(c.Request.Context(), CurrentUserID(c), req.CardNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// RequestCourier handles POST /api/deliveries.
func (h *CartHandler) RequestCourier(c *gin.Context) {
	var req dto.CourierRequest
	if !bindJSON(c, &req) {
		return
	}
	distance := decimal.Zero
	if req.Distance != nil {
		distance = *req.Distance
	}
	order, err := h.facade.RequestCourier(c.Request.Context(), CurrentUserID(c), req.Pickup, req.Dropoff, distance)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

func (h *CartHandler) respondDraft(c *gin.Context, draft *model.Draft, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDraftResponse(draft))
}
