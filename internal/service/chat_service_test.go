package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"chatlog-server/internal/model"
)

// fakeGateway 是测试用的大模型网关
type fakeGateway struct {
	reply      string
	err        error
	calls      int
	lastSystem string
	lastPrompt string
}

func (g *fakeGateway) Complete(_ context.Context, system, prompt string) (string, error) {
	g.calls++
	g.lastSystem = system
	g.lastPrompt = prompt
	return g.reply, g.err
}

func newChatService(t *testing.T, gateway LLMGateway) (*ChatService, *MessageService, func(t *testing.T) int64) {
	t.Helper()
	db := newTestDB(t)
	userRepo, messageRepo := newTestRepos(db)
	seedUser(t, db, "alice", "alice@x.com")

	cs := NewChatService(db, userRepo, messageRepo, nil, gateway)
	ms := NewMessageService(userRepo, messageRepo, nil)
	count := func(t *testing.T) int64 {
		return countRows(t, db, &model.Message{})
	}
	return cs, ms, count
}

func TestChat_LogsPromptAndReply(t *testing.T) {
	gateway := &fakeGateway{reply: "  Carpe diem.\n"}
	cs, ms, _ := newChatService(t, gateway)
	ctx := context.Background()

	statement, err := cs.Chat(ctx, "alice@x.com", "Inspire me")
	require.NoError(t, err)
	// 回复去除首尾空白
	require.Equal(t, "Carpe diem.", statement)

	// 固定系统指令和原始提问一起发给网关
	require.Equal(t, 1, gateway.calls)
	require.Equal(t, ChatSystemPrompt, gateway.lastSystem)
	require.Equal(t, "Inspire me", gateway.lastPrompt)

	// 恰好两条新消息：提问在前，回复在后
	messages, err := ms.ListMessages(ctx, "alice@x.com")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Equal(t, "User: Inspire me", messages[0].Content)
	require.Equal(t, "AI: Carpe diem.", messages[1].Content)
}

func TestChat_DefaultPrompt(t *testing.T) {
	gateway := &fakeGateway{reply: "ok"}
	cs, _, _ := newChatService(t, gateway)

	_, err := cs.Chat(context.Background(), "alice@x.com", "")
	require.NoError(t, err)
	require.Equal(t, DefaultChatPrompt, gateway.lastPrompt)
}

func TestChat_GatewayFailureWritesNothing(t *testing.T) {
	gateway := &fakeGateway{err: errors.New("upstream down")}
	cs, _, count := newChatService(t, gateway)

	_, err := cs.Chat(context.Background(), "alice@x.com", "hello")
	require.ErrorIs(t, err, ErrGatewayFailure)

	// 失败路径不留任何消息
	require.EqualValues(t, 0, count(t))
}

func TestChat_UserNotFound(t *testing.T) {
	gateway := &fakeGateway{reply: "ok"}
	cs, _, count := newChatService(t, gateway)

	_, err := cs.Chat(context.Background(), "nobody@x.com", "hello")
	require.ErrorIs(t, err, ErrUserNotFound)

	// 用户不存在时不应调用网关，也不应写入
	require.Equal(t, 0, gateway.calls)
	require.EqualValues(t, 0, count(t))
}
