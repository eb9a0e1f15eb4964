package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/deliverypro/internal/server/http/dto"
)

// AdminHandler serves the admin overview.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.facade.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StatsResponse{
		Users:               stats.Users,
		Customers:           stats.Customers,
		Drivers:             stats.Drivers,
		Deliveries:          stats.Total,
		DeliveredDeliveries: stats.Delivered,
		Revenue:             stats.Revenue,
	})
}
