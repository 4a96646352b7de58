package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/swole-ai/backend/internal/service"
	"github.com/pageza/swole-ai/backend/internal/types"
)

type ChatHandler struct {
	chatService service.IChatService
}

func NewChatHandler(chatService service.IChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/chat", h.Chat)
}

// Chat relays the conversation to the trainer model
func (h *ChatHandler) Chat(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.chatService.Chat(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "failed to chat")
		return
	}
	c.JSON(http.StatusOK, resp)
}
