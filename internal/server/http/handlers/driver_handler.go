package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/deliverypro/internal/domain/model"
	"github.com/polkiloo/deliverypro/internal/server/http/dto"
)

// DriverHandler serves the driver dashboard.
type DriverHandler struct {
	facade DriverFacade
}

// NewDriverHandler constructs DriverHandler.
func NewDriverHandler(facade DriverFacade) *DriverHandler {
	return &DriverHandler{facade: facade}
}

// SetOnline handles PUT /api/driver/online.
func (h *DriverHandler) SetOnline(c *gin.Context) {
	var req dto.OnlineRequest
	if !bindJSON(c, &req) {
		return
	}
	id := CurrentUserID(c)
	h.facade.SetOnline(id, req.Online)
	c.JSON(http.StatusOK, dto.OnlineResponse{Online: h.facade.Online(id)})
}

// Requests handles GET /api/driver/requests.
func (h *DriverHandler) Requests(c *gin.Context) {
	orders, err := h.facade.AvailableRequests(c.Request.Context(), CurrentUserID(c))
	h.respondOrders(c, orders, err)
}

// Accept handles POST /api/driver/requests/:id/accept.
func (h *DriverHandler) Accept(c *gin.Context) {
	order, err := h.facade.AcceptRequest(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Deliveries handles GET /api/driver/deliveries.
func (h *DriverHandler) Deliveries(c *gin.Context) {
	orders, err := h.facade.ActiveDeliveries(c.Request.Context(), CurrentUserID(c))
	h.respondOrders(c, orders, err)
}

// History handles GET /api/driver/history.
func (h *DriverHandler) History(c *gin.Context) {
	orders, err := h.facade.DeliveryHistory(c.Request.Context(), CurrentUserID(c))
	h.respondOrders(c, orders, err)
}

// Advance handles POST /api/driver/deliveries/:id/status.
func (h *DriverHandler) Advance(c *gin.Context) {
	var req dto.StatusRequest
	if !bindJSON(c, &req) {
		return
	}
	next, err := model.ParseOrderStatus(req.Status)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: err.Error()})
		return
	}
	order, err := h.facade.AdvanceDelivery(c.Request.Context(), CurrentUserID(c), c.Param("id"), next)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

func (h *DriverHandler) respondOrders(c *gin.Context, orders []model.Order, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}
