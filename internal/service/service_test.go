package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"chatlog-server/internal/model"
	"chatlog-server/internal/repository"
)

// newTestDB 创建测试用的内存数据库
// 每个测试使用独立的库名，cache=shared 保证连接池内的连接看到同一份数据
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Message{}))
	return db
}

// newTestRepos 创建测试用的仓库
func newTestRepos(db *gorm.DB) (*repository.UserRepository, *repository.MessageRepository) {
	return repository.NewUserRepository(db), repository.NewMessageRepository(db)
}

// countRows 统计表中的记录数
func countRows(t *testing.T, db *gorm.DB, modelPtr interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(modelPtr).Count(&count).Error)
	return count
}
