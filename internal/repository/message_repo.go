// Package repository 提供数据访问层的实现
package repository

import (
	"context"

	"gorm.io/gorm"

	"chatlog-server/internal/model"
)

// MessageRepository 消息数据访问层
// 负责消息相关的所有数据库操作
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建 MessageRepository 实例
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// WithTx 返回绑定到指定事务的仓库副本
func (r *MessageRepository) WithTx(tx *gorm.DB) *MessageRepository {
	return &MessageRepository{db: tx}
}

// Create 创建新消息
// 参数:
//   - ctx: 上下文
//   - message: 消息对象，ID 和 CreatedAt 会被自动填充
//
// 返回:
//   - error: 数据库错误
func (r *MessageRepository) Create(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// CreateBatch 批量创建消息
// 种子数据和聊天记录（提问 + 回复成对写入）会用到
// 参数:
//   - ctx: 上下文
//   - messages: 消息对象切片
//
// 返回:
//   - error: 数据库错误
func (r *MessageRepository) CreateBatch(ctx context.Context, messages []model.Message) error {
	if len(messages) == 0 {
		return nil
	}
	// CreateInBatches 分批插入，避免单次插入过多数据
	// 100 是每批的数量
	return r.db.WithContext(ctx).CreateInBatches(messages, 100).Error
}

// GetByUserID 获取用户的所有消息
// 按主键正序排列（最早的在前），即存储分配的顺序
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//
// 返回:
//   - []model.Message: 消息列表
//   - error: 数据库错误
func (r *MessageRepository) GetByUserID(ctx context.Context, userID int64) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC"). // 按插入顺序返回，方便展示对话
		Find(&messages).Error
	return messages, err
}

// CountByUserID 统计用户的消息数量
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//
// 返回:
//   - int64: 消息数量
//   - error: 数据库错误
func (r *MessageRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Message{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
