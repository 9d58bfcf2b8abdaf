// Package service 提供业务逻辑层的实现
package service

import (
	"context"

	"chatlog-server/internal/cache"
	"chatlog-server/internal/model"
	"chatlog-server/internal/repository"
)

// MessageService 消息服务
// 处理消息的创建和查询
type MessageService struct {
	userRepo    *repository.UserRepository    // 用户数据访问层
	messageRepo *repository.MessageRepository // 消息数据访问层
	cache       *cache.RedisCache             // Redis 缓存，允许为 nil
}

// NewMessageService 创建 MessageService 实例
func NewMessageService(
	userRepo *repository.UserRepository,
	messageRepo *repository.MessageRepository,
	userCache *cache.RedisCache,
) *MessageService {
	return &MessageService{
		userRepo:    userRepo,
		messageRepo: messageRepo,
		cache:       userCache,
	}
}

// CreateMessageRequest 创建消息请求
type CreateMessageRequest struct {
	Content string `json:"content" binding:"required"` // 消息内容
}

// CreateMessage 为指定用户创建一条消息
// 参数:
//   - ctx: 上下文
//   - email: 用户邮箱
//   - req: 创建消息请求
//
// 返回:
//   - *model.Message: 创建成功的消息，ID 已填充
//   - error: 用户不存在返回 ErrUserNotFound
func (s *MessageService) CreateMessage(ctx context.Context, email string, req *CreateMessageRequest) (*model.Message, error) {
	// 1. 按邮箱定位用户
	user, err := findUserByEmail(ctx, s.cache, s.userRepo, email)
	if err != nil {
		return nil, err
	}

	// 2. 写入消息
	message := &model.Message{
		UserID:  user.ID,
		Content: req.Content,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// ListMessages 获取指定用户的全部消息
// 只读操作，按存储分配的顺序返回（最早的在前）
// 参数:
//   - ctx: 上下文
//   - email: 用户邮箱
//
// 返回:
//   - []model.Message: 该用户拥有的全部消息
//   - error: 用户不存在返回 ErrUserNotFound
func (s *MessageService) ListMessages(ctx context.Context, email string) ([]model.Message, error) {
	user, err := findUserByEmail(ctx, s.cache, s.userRepo, email)
	if err != nil {
		return nil, err
	}
	return s.messageRepo.GetByUserID(ctx, user.ID)
}
