// Package cache 提供 Redis 缓存操作的封装
// 缓存邮箱到用户的映射，减少热点查找的数据库压力
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"chatlog-server/internal/config"
	"chatlog-server/internal/model"
)

// 用户缓存的过期时间
// 用户一经创建便不会被修改或删除，所以缓存不存在失效一致性问题
// 设置 TTL 只是为了限制内存占用
const userCacheTTL = 10 * time.Minute

// RedisCache 封装 Redis 客户端，提供业务相关的缓存操作
type RedisCache struct {
	client *redis.Client // Redis 客户端实例
}

// NewRedisCache 创建 RedisCache 实例
// 参数:
//   - cfg: 应用配置（包含 Redis 连接信息）
//
// 返回:
//   - *RedisCache: 缓存实例
//   - error: 连接错误
func NewRedisCache(cfg *config.Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Username: cfg.Redis.Username, // 阿里云 Redis 需要用户名
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// Close 关闭 Redis 连接
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// userKey 生成邮箱到用户缓存的 Key
func userKey(email string) string {
	return "user:email:" + email
}

// GetUserByEmail 从缓存读取用户
// 参数:
//   - ctx: 上下文
//   - email: 邮箱地址
//
// 返回:
//   - *model.User: 缓存命中返回用户对象，未命中返回 nil
//   - error: Redis 操作错误
func (c *RedisCache) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	data, err := c.client.Get(ctx, userKey(email)).Bytes()
	if err == redis.Nil {
		return nil, nil // 缓存未命中，不当作错误
	}
	if err != nil {
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SetUserByEmail 把用户写入缓存
// 只缓存存在的用户，不缓存"未找到"的结果
// 参数:
//   - ctx: 上下文
//   - user: 用户对象
//
// 返回:
//   - error: Redis 操作错误
func (c *RedisCache) SetUserByEmail(ctx context.Context, user *model.User) error {
	// 密码字段带 json:"-" 标签，不会进入缓存
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, userKey(user.Email), data, userCacheTTL).Err()
}

// Ping 检查 Redis 连接
// 参数:
//   - ctx: 上下文
//
// 返回:
//   - error: 如果连接失败返回错误
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
