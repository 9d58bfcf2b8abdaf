package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"chatlog-server/internal/model"
)

func newUserService(t *testing.T) (*UserService, *MessageService, func(t *testing.T, m interface{}) int64) {
	t.Helper()
	db := newTestDB(t)
	userRepo, messageRepo := newTestRepos(db)
	us := NewUserService(db, userRepo, messageRepo)
	ms := NewMessageService(userRepo, messageRepo, nil)
	count := func(t *testing.T, m interface{}) int64 {
		return countRows(t, db, m)
	}
	return us, ms, count
}

func TestRegister_CreatesUserAndWelcomeMessage(t *testing.T) {
	us, ms, count := newUserService(t)
	ctx := context.Background()

	result, err := us.Register(ctx, &RegisterRequest{
		Username: "alice",
		Email:    "alice@x.com",
		Password: "Passw0rd",
	})
	require.NoError(t, err)
	require.Equal(t, "alice", result.Name)
	require.Equal(t, "Account successfully created", result.Message)

	// 恰好一个用户和一条欢迎消息
	require.EqualValues(t, 1, count(t, &model.User{}))
	require.EqualValues(t, 1, count(t, &model.Message{}))

	// 欢迎消息内容中嵌入用户名
	messages, err := ms.ListMessages(ctx, "alice@x.com")
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Equal(t, "Welcome, alice!", messages[0].Content)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	us, _, count := newUserService(t)
	ctx := context.Background()

	_, err := us.Register(ctx, &RegisterRequest{
		Username: "alice",
		Email:    "alice@x.com",
		Password: "Passw0rd",
	})
	require.NoError(t, err)

	// 同一邮箱再注册一次，即使用户名不同也要失败
	_, err = us.Register(ctx, &RegisterRequest{
		Username: "alice2",
		Email:    "alice@x.com",
		Password: "Passw0rd",
	})
	require.ErrorIs(t, err, ErrEmailExists)

	// 失败路径不新增任何记录
	require.EqualValues(t, 1, count(t, &model.User{}))
	require.EqualValues(t, 1, count(t, &model.Message{}))
}

func TestRegister_WeakPasswordWritesNothing(t *testing.T) {
	us, _, count := newUserService(t)
	ctx := context.Background()

	cases := []struct {
		password string
		wantErr  error
	}{
		{"short", ErrPasswordTooShort},
		{"alllower1", ErrPasswordNoUpper},
		{"NoDigitHere", ErrPasswordNoDigit},
	}
	for _, tc := range cases {
		_, err := us.Register(ctx, &RegisterRequest{
			Username: "bob",
			Email:    "bob@x.com",
			Password: tc.password,
		})
		require.ErrorIs(t, err, tc.wantErr)
	}

	require.EqualValues(t, 0, count(t, &model.User{}))
	require.EqualValues(t, 0, count(t, &model.Message{}))
}

func TestRegister_UniqueIndexBackstop(t *testing.T) {
	// 绕过服务层的先查后插检查，直接预置同邮箱用户
	// 验证数据库唯一索引兜底时错误仍映射为 ErrEmailExists
	db := newTestDB(t)
	userRepo, messageRepo := newTestRepos(db)
	us := NewUserService(db, userRepo, messageRepo)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.User{
		Username: "carol",
		Email:    "carol@x.com",
		Password: "Passw0rd",
	}).Error)

	// 同用户名不同邮箱也会命中 username 的唯一索引
	_, err := us.Register(ctx, &RegisterRequest{
		Username: "carol",
		Email:    "carol2@x.com",
		Password: "Passw0rd",
	})
	require.ErrorIs(t, err, ErrEmailExists)

	// 事务回滚，不留下欢迎消息
	require.EqualValues(t, 1, countRows(t, db, &model.User{}))
	require.EqualValues(t, 0, countRows(t, db, &model.Message{}))
}
