// Package service 提供业务逻辑层的实现
package service

import (
	"context"

	"chatlog-server/internal/cache"
	"chatlog-server/internal/model"
	"chatlog-server/internal/repository"
)

// findUserByEmail 按邮箱查找用户，供消息和聊天服务共用
// 先查 Redis 缓存，未命中或缓存不可用时回源数据库
// 缓存只存在加速作用：用户创建后不会被修改或删除，命中结果永远有效
// 参数:
//   - ctx: 上下文
//   - userCache: Redis 缓存，允许为 nil（此时直接查库）
//   - userRepo: 用户数据访问层
//   - email: 邮箱地址
//
// 返回:
//   - *model.User: 用户对象
//   - error: 用户不存在返回 ErrUserNotFound
func findUserByEmail(ctx context.Context, userCache *cache.RedisCache, userRepo *repository.UserRepository, email string) (*model.User, error) {
	if userCache != nil {
		user, err := userCache.GetUserByEmail(ctx, email)
		if err == nil && user != nil {
			return user, nil
		}
		// 缓存出错或未命中时回源数据库，不影响请求
	}

	user, err := userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// 回填缓存，失败可以忽略
	if userCache != nil {
		_ = userCache.SetUserByEmail(ctx, user)
	}
	return user, nil
}
