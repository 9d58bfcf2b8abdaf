// Package service 提供业务逻辑层的实现
package service

import (
	"context"

	"gorm.io/gorm"

	"chatlog-server/internal/model"
	"chatlog-server/internal/repository"
)

// EnsureSampleData 写入演示用的种子数据
// 幂等：只要存储中已经有任何用户就什么都不做
// 在进程启动时调用一次，不作为 API 暴露
// 参数:
//   - ctx: 上下文
//   - db: 数据库连接
//
// 返回:
//   - error: 数据库错误
func EnsureSampleData(ctx context.Context, db *gorm.DB) error {
	userRepo := repository.NewUserRepository(db)

	// 已有数据则跳过，保证重复启动不会产生重复记录
	count, err := userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	// 演示用户和它的两条消息在同一个事务中写入
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		demoUser := &model.User{
			Username: "testuser",
			Email:    "test@example.com",
			Password: "TestPassword1",
		}
		if err := userRepo.WithTx(tx).Create(ctx, demoUser); err != nil {
			return err
		}

		messages := []model.Message{
			{UserID: demoUser.ID, Content: "This is the first message"},
			{UserID: demoUser.ID, Content: "This is another message"},
		}
		return repository.NewMessageRepository(tx).CreateBatch(ctx, messages)
	})
}
