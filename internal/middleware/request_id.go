// Package middleware 提供 HTTP 请求的中间件
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader 请求ID使用的 HTTP 头
const RequestIDHeader = "X-Request-ID"

// RequestIDKey 请求ID在 gin 上下文中的键
const RequestIDKey = "request_id"

// RequestIDMiddleware 创建请求ID中间件
// 每个请求分配一个 UUID，写入响应头并放进上下文供日志使用
// 客户端已经带上请求ID时直接沿用，方便跨服务追踪
// 返回:
//   - gin.HandlerFunc: Gin 中间件函数
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}
