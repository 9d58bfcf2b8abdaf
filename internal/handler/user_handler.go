// Package handler 提供 HTTP 请求处理器
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"chatlog-server/internal/service"
	"chatlog-server/pkg/response"
)

// UserHandler 用户请求处理器
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler 创建 UserHandler 实例
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Register 处理账号创建请求
// POST /users
// 请求体: {username, email, password}
// 成功: 200 {"name": 用户名, "message": "Account successfully created"}
// 失败: 400 密码不符合规则或邮箱已被注册
func (h *UserHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误")
		return
	}

	result, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists):
			response.EmailExists(c)
		case errors.Is(err, service.ErrPasswordTooShort),
			errors.Is(err, service.ErrPasswordNoDigit),
			errors.Is(err, service.ErrPasswordNoUpper):
			// 错误信息标明具体被违反的规则
			response.ValidationFailed(c, err.Error())
		default:
			response.InternalError(c, "创建账号失败")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
