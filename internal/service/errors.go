// Package service 提供业务逻辑层的实现
// 服务层封装具体的业务逻辑，协调 Repository 和 Cache
package service

import "errors"

// 定义业务错误
var (
	ErrEmailExists    = errors.New("邮箱已被注册")
	ErrUserNotFound   = errors.New("用户不存在")
	ErrGatewayFailure = errors.New("AI 服务调用失败")

	// 密码校验错误，每个错误对应一条被违反的规则
	ErrPasswordTooShort = errors.New("密码长度至少为 8 个字符")
	ErrPasswordNoDigit  = errors.New("密码必须包含至少一个数字")
	ErrPasswordNoUpper  = errors.New("密码必须包含至少一个大写字母")
)
