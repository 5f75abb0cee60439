package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sitecel/portfolio-api/internal/service"
	"github.com/sitecel/portfolio-api/pkg/logger"
	"go.uber.org/zap"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

type ChatRequest struct {
	Message string                `json:"message" binding:"required,min=1,max=500"`
	History []service.ChatMessage `json:"history"`
}

// Chat handles POST /api/v1/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": "message is required and must be between 1 and 500 characters",
		})
		return
	}

	response, err := h.chatService.Complete(c.Request.Context(), req.Message, req.History)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidMessage):
			c.JSON(http.StatusBadRequest, gin.H{
				"detail": err.Error(),
			})
		case errors.Is(err, service.ErrChatUnavailable):
			// response carries the user-safe fallback text
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"detail": response,
			})
		default:
			logger.Log.Error("Chat request failed",
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{
				"detail": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"response": response,
	})
}

// Health handles GET /api/v1/chat/health
func (h *ChatHandler) Health(c *gin.Context) {
	if err := h.chatService.Healthy(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"detail": "Chat service unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "AI Chat",
		"model":   h.chatService.Model(),
	})
}
