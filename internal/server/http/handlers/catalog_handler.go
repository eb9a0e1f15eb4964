package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/deliverypro/internal/domain/model"
	"github.com/polkiloo/deliverypro/internal/server/http/dto"
)

// CatalogHandler serves products, stores and card classification.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// Items handles GET /api/catalog.
func (h *CatalogHandler) Items(c *gin.Context) {
	category := model.Category(c.Query("category"))
	if category != "" && !category.Valid() {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: "unknown category"})
		return
	}
	items := h.facade.Items(category)
	resp := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, dto.ItemResponse{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Category: string(it.Category),
			Image:    it.Image,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// Stores handles GET /api/stores.
func (h *CatalogHandler) Stores(c *gin.Context) {
	stores := h.facade.Stores()
	resp := make([]dto.StoreResponse, 0, len(stores))
	for _, s := range stores {
		resp = append(resp, dto.StoreResponse{
			ID:           s.ID,
			Name:         s.Name,
			Address:      s.Address,
			Distance:     s.Distance,
			DeliveryTime: s.DeliveryTime,
			Rating:       s.Rating,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// ClassifyCard handles POST /api/payments/classify.
func (h *CatalogHandler) ClassifyCard(c *gin.Context) {
	var req dto.CardRequest
	if !bindJSON(c, &req) {
		return
	}
	info := h.facade.DescribeCard(req.CardNumber)
	c.JSON(http.StatusOK, dto.CardResponse{Brand: info.Brand, Formatted: info.Formatted, Valid: info.Valid})
}
