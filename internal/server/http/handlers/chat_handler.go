package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/deliverypro/internal/server/http/dto"
)

// ChatHandler exposes order chats to customers and drivers.
type ChatHandler struct {
	facade ChatFacade
}

// NewChatHandler constructs ChatHandler.
func NewChatHandler(facade ChatFacade) *ChatHandler {
	return &ChatHandler{facade: facade}
}

// Open handles GET .../:id/chat.
func (h *ChatHandler) Open(c *gin.Context) {
	msgs, err := h.facade.OpenChat(c.Request.Context(), CurrentActor(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMessageResponses(msgs))
}

// Send handles POST .../:id/chat.
func (h *ChatHandler) Send(c *gin.Context) {
	var req dto.MessageRequest
	if !bindJSON(c, &req) {
		return
	}
	msg, err := h.facade.SendMessage(c.Request.Context(), CurrentActor(c), c.Param("id"), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMessageResponse(*msg))
}

// Close handles DELETE /api/orders/:id/chat.
func (h *ChatHandler) Close(c *gin.Context) {
	if err := h.facade.CloseChat(c.Request.Context(), CurrentActor(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
