// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"chatlog-server/internal/cache"
	"chatlog-server/internal/model"
	"chatlog-server/internal/repository"
)

const (
	// ChatSystemPrompt 聊天的固定系统指令
	ChatSystemPrompt = "You are a helpful assistant."

	// DefaultChatPrompt 未提供 prompt 参数时使用的默认提问
	DefaultChatPrompt = "Inspire me"
)

// LLMGateway 是聊天服务对外部大模型的依赖抽象
// 传入系统指令和用户提问，返回一条文本回复
// 具体实现见 internal/llm
type LLMGateway interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// ChatService 聊天服务
// 调用外部大模型生成回复，并把提问和回复记录到用户的消息中
type ChatService struct {
	db          *gorm.DB                      // 数据库连接，用于开启事务
	userRepo    *repository.UserRepository    // 用户数据访问层
	messageRepo *repository.MessageRepository // 消息数据访问层
	cache       *cache.RedisCache             // Redis 缓存，允许为 nil
	gateway     LLMGateway                    // 大模型网关
}

// NewChatService 创建 ChatService 实例
func NewChatService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	messageRepo *repository.MessageRepository,
	userCache *cache.RedisCache,
	gateway LLMGateway,
) *ChatService {
	return &ChatService{
		db:          db,
		userRepo:    userRepo,
		messageRepo: messageRepo,
		cache:       userCache,
		gateway:     gateway,
	}
}

// Chat 处理一次聊天请求
// 流程：定位用户 → 调用大模型 → 在同一个事务中记录提问和回复
// 大模型调用失败时整个操作中止，不写入任何消息
// 参数:
//   - ctx: 上下文
//   - email: 用户邮箱
//   - prompt: 用户提问，空字符串时使用默认提问
//
// 返回:
//   - string: 大模型的回复（已去除首尾空白）
//   - error: 用户不存在返回 ErrUserNotFound，大模型失败返回 ErrGatewayFailure
func (s *ChatService) Chat(ctx context.Context, email, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultChatPrompt
	}

	// 1. 按邮箱定位用户
	user, err := findUserByEmail(ctx, s.cache, s.userRepo, email)
	if err != nil {
		return "", err
	}

	// 2. 调用大模型
	// 写入只发生在调用成功之后，失败路径不留任何记录
	reply, err := s.gateway.Complete(ctx, ChatSystemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGatewayFailure, err)
	}
	reply = strings.TrimSpace(reply)

	// 3. 在同一个事务中记录提问和回复
	// 提问在前、回复在后，两条消息一起提交
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := s.messageRepo.WithTx(tx)

		userMsg := &model.Message{
			UserID:  user.ID,
			Content: "User: " + prompt,
		}
		if err := txRepo.Create(ctx, userMsg); err != nil {
			return err
		}

		aiMsg := &model.Message{
			UserID:  user.ID,
			Content: "AI: " + reply,
		}
		return txRepo.Create(ctx, aiMsg)
	})
	if err != nil {
		return "", err
	}

	return reply, nil
}
