// Package repository 提供数据访问层的实现
// 封装所有与数据库的交互操作
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"chatlog-server/internal/model"
)

// UserRepository 用户数据访问层
// 负责用户相关的所有数据库操作
type UserRepository struct {
	db *gorm.DB // GORM 数据库连接实例
}

// NewUserRepository 创建 UserRepository 实例
// 参数:
//   - db: GORM 数据库连接
//
// 返回:
//   - *UserRepository: 用户仓库实例
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx 返回绑定到指定事务的仓库副本
// 用于把多个写操作放进同一个事务中提交
// 参数:
//   - tx: 事务句柄（gorm.DB.Transaction 回调中的 tx）
//
// 返回:
//   - *UserRepository: 使用事务句柄的仓库实例
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository {
	return &UserRepository{db: tx}
}

// Create 创建新用户
// 参数:
//   - ctx: 上下文，用于控制请求生命周期
//   - user: 用户对象，ID 字段会被自动填充
//
// 返回:
//   - error: 如果用户名或邮箱重复，会返回 gorm.ErrDuplicatedKey
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	// 使用 WithContext 确保数据库操作可以被取消
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByEmail 根据邮箱获取用户
// 消息和聊天接口都通过邮箱定位用户
// 参数:
//   - ctx: 上下文
//   - email: 邮箱地址
//
// 返回:
//   - *model.User: 用户对象，如果未找到返回 nil
//   - error: 数据库错误（不包括记录未找到）
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		// 检查是否是"记录未找到"错误
		// 这是 GORM 特有的错误类型
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // 未找到返回 nil，不当作错误
		}
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail 检查邮箱是否已被注册
// 参数:
//   - ctx: 上下文
//   - email: 邮箱
//
// 返回:
//   - bool: 是否存在
//   - error: 数据库错误
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Count 统计用户总数
// 启动时的种子数据检查会用到
// 参数:
//   - ctx: 上下文
//
// 返回:
//   - int64: 用户数量
//   - error: 数据库错误
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error
	return count, err
}
