package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/chef4u/backend/internal/service"
	"github.com/chef4u/backend/internal/types"
)

// ChatHandler handles assistant conversation turns.
type ChatHandler struct {
	gateway service.GenerationGateway
}

// NewChatHandler creates a new ChatHandler instance.
func NewChatHandler(gateway service.GenerationGateway) *ChatHandler {
	return &ChatHandler{gateway: gateway}
}

// Send handles POST /chat. The client sends the full prior conversation on
// every turn; degraded outcomes come back as normal assistant replies, so
// this endpoint only fails on a malformed request.
func (h *ChatHandler) Send(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.gateway.Chat(c.Request.Context(), req.History, req.Message)
	if err != nil {
		// Chat is contracted never to fail; treat a violation as internal
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.ChatResponse{
		Reply: types.ChatTurn{
			ID:   uuid.New().String(),
			Role: types.RoleAssistant,
			Text: reply,
		},
	})
}
