// Package handler 提供 HTTP 请求处理器
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chatlog-server/internal/model"
	"chatlog-server/internal/service"
	"chatlog-server/pkg/response"
)

// MessageHandler 消息请求处理器
type MessageHandler struct {
	messageService *service.MessageService
}

// NewMessageHandler 创建 MessageHandler 实例
func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// MessageItem 消息的响应结构
// 只暴露 ID 和内容
type MessageItem struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

// newMessageItem 把消息模型转成响应结构
func newMessageItem(m *model.Message) MessageItem {
	return MessageItem{
		ID:      m.ID,
		Content: m.Content,
	}
}

// CreateMessage 处理创建消息请求
// POST /users/:email/messages
// 请求体: {content}
// 成功: 200 {"id": 消息ID, "content": 消息内容}
// 失败: 404 用户不存在
func (h *MessageHandler) CreateMessage(c *gin.Context) {
	email := c.Param("email")

	var req service.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}

	message, err := h.messageService.CreateMessage(c.Request.Context(), email, &req)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.UserNotFound(c)
			return
		}
		response.InternalError(c, "创建消息失败")
		return
	}

	c.JSON(http.StatusOK, newMessageItem(message))
}

// ListMessages 处理查询消息请求
// GET /users/:email/messages
// 成功: 200 [{"id", "content"}, ...]
// 失败: 404 用户不存在
func (h *MessageHandler) ListMessages(c *gin.Context) {
	email := c.Param("email")

	messages, err := h.messageService.ListMessages(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.UserNotFound(c)
			return
		}
		response.InternalError(c, "查询消息失败")
		return
	}

	// 即使列表为空也返回 []，而不是 null
	items := make([]MessageItem, 0, len(messages))
	for i := range messages {
		items = append(items, newMessageItem(&messages[i]))
	}
	c.JSON(http.StatusOK, items)
}
