// Package service 提供业务逻辑层的实现
package service

import "unicode"

// ValidatePassword 校验密码强度
// 规则：长度至少 8 个字符、至少一个数字、至少一个大写字母
// 纯函数，无任何副作用，所有规则都通过才返回 nil
// 参数:
//   - password: 明文密码
//
// 返回:
//   - error: 第一条被违反的规则对应的错误，全部通过返回 nil
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	hasDigit := false
	hasUpper := false
	for _, ch := range password {
		if unicode.IsDigit(ch) {
			hasDigit = true
		}
		if unicode.IsUpper(ch) {
			hasUpper = true
		}
	}

	if !hasDigit {
		return ErrPasswordNoDigit
	}
	if !hasUpper {
		return ErrPasswordNoUpper
	}
	return nil
}
