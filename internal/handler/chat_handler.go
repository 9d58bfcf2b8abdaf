// Package handler 提供 HTTP 请求处理器
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chatlog-server/internal/service"
	"chatlog-server/pkg/response"
)

// ChatHandler 聊天请求处理器
type ChatHandler struct {
	chatService *service.ChatService
}

// NewChatHandler 创建 ChatHandler 实例
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// ChatResponse 聊天响应
type ChatResponse struct {
	Statement string `json:"statement"`
}

// Chat 处理聊天请求
// GET /chat/:email?prompt=
// prompt 省略时使用默认提问
// 成功: 200 {"statement": 回复内容}
// 失败: 404 用户不存在; 502 AI 服务失败
func (h *ChatHandler) Chat(c *gin.Context) {
	email := c.Param("email")
	prompt := c.DefaultQuery("prompt", service.DefaultChatPrompt)

	statement, err := h.chatService.Chat(c.Request.Context(), email, prompt)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.UserNotFound(c)
		case errors.Is(err, service.ErrGatewayFailure):
			response.GatewayError(c, "AI 服务暂时不可用")
		default:
			response.InternalError(c, "聊天处理失败")
		}
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Statement: statement})
}
