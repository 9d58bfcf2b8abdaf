// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"chatlog-server/internal/model"
	"chatlog-server/internal/repository"
)

// UserService 用户服务
// 处理账号创建
type UserService struct {
	db          *gorm.DB                      // 数据库连接，用于开启事务
	userRepo    *repository.UserRepository    // 用户数据访问层
	messageRepo *repository.MessageRepository // 消息数据访问层
}

// NewUserService 创建 UserService 实例
func NewUserService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	messageRepo *repository.MessageRepository,
) *UserService {
	return &UserService{
		db:          db,
		userRepo:    userRepo,
		messageRepo: messageRepo,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required"` // 用户名
	Email    string `json:"email" binding:"required"`    // 邮箱（不做格式校验，与参考实现保持一致）
	Password string `json:"password" binding:"required"` // 密码
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Register 创建账号
// 成功时写入一个新用户和一条欢迎消息，两者在同一个事务中提交
// 任何失败路径都不会留下部分写入
// 参数:
//   - ctx: 上下文
//   - req: 注册请求（字段已通过 binding 校验非空）
//
// 返回:
//   - *RegisterResponse: 注册成功返回用户名和提示信息
//   - error: 密码不符合规则或邮箱已被注册等业务错误
func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	// 1. 校验密码强度
	if err := ValidatePassword(req.Password); err != nil {
		return nil, err
	}

	// 2. 检查邮箱是否已被注册
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	// 3. 在同一个事务中创建用户和欢迎消息
	// 事务保证两条记录要么都写入，要么都不写入
	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password, // 按参考实现明文存储
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).Create(ctx, user); err != nil {
			return err
		}

		// 欢迎消息的内容中嵌入用户名
		welcome := &model.Message{
			UserID:  user.ID,
			Content: fmt.Sprintf("Welcome, %s!", user.Username),
		}
		return s.messageRepo.WithTx(tx).Create(ctx, welcome)
	})
	if err != nil {
		// 唯一索引兜底：并发注册同一邮箱时，先查后插的检查会漏过
		// 这里把数据库层的重复键错误也映射成业务错误
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	return &RegisterResponse{
		Name:    user.Username,
		Message: "Account successfully created",
	}, nil
}
