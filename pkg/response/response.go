// Package response 提供统一的 HTTP 错误响应格式
// 成功响应的 JSON 结构由各接口自己定义，错误响应统一走这里
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一错误响应结构
// code: 业务状态码
// message: 提示信息
type Response struct {
	Code    int    `json:"code"`    // 业务状态码
	Message string `json:"message"` // 提示信息
}

// 业务状态码定义
const (
	CodeBadRequest    = 1000 // 请求参数错误
	CodeNotFound      = 1003 // 资源不存在
	CodeInternalError = 1004 // 服务器内部错误
	CodeEmailExists   = 1101 // 邮箱已被注册
	CodeUserNotFound  = 1102 // 用户不存在
	CodeValidation    = 1103 // 输入校验失败
	CodeGatewayError  = 1201 // 外部 AI 服务失败
)

// ErrorWithCode 返回错误响应（带业务状态码）
// 参数:
//   - c: Gin 上下文
//   - httpCode: HTTP 状态码
//   - bizCode: 业务状态码
//   - message: 错误信息
func ErrorWithCode(c *gin.Context, httpCode, bizCode int, message string) {
	c.JSON(httpCode, Response{
		Code:    bizCode,
		Message: message,
	})
}

// BadRequest 返回 400 错误（请求参数错误）
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    CodeBadRequest,
		Message: message,
	})
}

// ValidationFailed 返回 400 错误（输入校验失败）
// message 标明具体被违反的规则
func ValidationFailed(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    CodeValidation,
		Message: message,
	})
}

// EmailExists 返回邮箱已被注册错误
func EmailExists(c *gin.Context) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    CodeEmailExists,
		Message: "邮箱已被注册",
	})
}

// UserNotFound 返回用户不存在错误
func UserNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{
		Code:    CodeUserNotFound,
		Message: "用户不存在",
	})
}

// GatewayError 返回 502 错误（外部 AI 服务失败）
func GatewayError(c *gin.Context, message string) {
	c.JSON(http.StatusBadGateway, Response{
		Code:    CodeGatewayError,
		Message: message,
	})
}

// InternalError 返回 500 错误（服务器内部错误）
func InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, Response{
		Code:    CodeInternalError,
		Message: message,
	})
}
