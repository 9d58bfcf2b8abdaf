package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"chatlog-server/internal/model"
)

func TestEnsureSampleData(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, EnsureSampleData(ctx, db))

	var user model.User
	require.NoError(t, db.Where("email = ?", "test@example.com").First(&user).Error)
	require.Equal(t, "testuser", user.Username)

	var messages []model.Message
	require.NoError(t, db.Where("user_id = ?", user.ID).Order("id ASC").Find(&messages).Error)
	require.Len(t, messages, 2)
	require.Equal(t, "This is the first message", messages[0].Content)
	require.Equal(t, "This is another message", messages[1].Content)
}

func TestEnsureSampleData_Idempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// 连续执行两次，数据不应重复
	require.NoError(t, EnsureSampleData(ctx, db))
	require.NoError(t, EnsureSampleData(ctx, db))

	require.EqualValues(t, 1, countRows(t, db, &model.User{}))
	require.EqualValues(t, 2, countRows(t, db, &model.Message{}))
}

func TestEnsureSampleData_SkipsWhenUsersExist(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// 已有任何用户时完全不写入
	require.NoError(t, db.Create(&model.User{
		Username: "existing",
		Email:    "existing@x.com",
		Password: "Passw0rd",
	}).Error)

	require.NoError(t, EnsureSampleData(ctx, db))

	require.EqualValues(t, 1, countRows(t, db, &model.User{}))
	require.EqualValues(t, 0, countRows(t, db, &model.Message{}))
}
