package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chatlog-server/internal/config"
)

func TestChatURL(t *testing.T) {
	cases := []struct {
		base string
		want string
	}{
		{"https://api.openai.com/v1", "https://api.openai.com/v1/chat/completions"},
		{"https://api.openai.com/v1/", "https://api.openai.com/v1/chat/completions"},
		{"http://localhost:8080", "http://localhost:8080/v1/chat/completions"},
		{"", "https://api.openai.com/v1/chat/completions"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, chatURL(tc.base), "base=%q", tc.base)
	}
}

func newTestClient(baseURL string) *Client {
	return NewClient(&config.Config{
		OpenAI: config.OpenAIConfig{
			APIKey:  "sk-test",
			BaseURL: baseURL,
			Model:   "gpt-3.5-turbo",
			Timeout: 5 * time.Second,
		},
	})
}

func chatReply(content string) string {
	return `{"choices":[{"message":{"role":"assistant","content":` + encodeJSON(content) + `}}]}`
}

func encodeJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestComplete_Success(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(chatReply("  Carpe diem.\n")))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	reply, err := c.Complete(context.Background(), "You are a helpful assistant.", "Inspire me")
	require.NoError(t, err)
	// 回复去除首尾空白
	require.Equal(t, "Carpe diem.", reply)

	require.Equal(t, "Bearer sk-test", gotAuth)
	require.Equal(t, "gpt-3.5-turbo", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	require.Equal(t, "system", gotReq.Messages[0].Role)
	require.Equal(t, "You are a helpful assistant.", gotReq.Messages[0].Content)
	require.Equal(t, "user", gotReq.Messages[1].Role)
	require.Equal(t, "Inspire me", gotReq.Messages[1].Content)
}

func TestComplete_RetriesOnServerError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(chatReply("ok")))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	reply, err := c.Complete(context.Background(), "system", "prompt")
	require.NoError(t, err)
	require.Equal(t, "ok", reply)
	require.Equal(t, 2, calls, "5xx 后应重试一次")
}

func TestComplete_RetryExhausted(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Complete(context.Background(), "system", "prompt")
	require.Error(t, err)
	require.Equal(t, 2, calls, "最多重试一次后放弃")
}

func TestComplete_NoRetryOnClientError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Complete(context.Background(), "system", "prompt")
	require.Error(t, err)
	require.Equal(t, 1, calls, "4xx 不应重试")
}

func TestComplete_MissingAPIKey(t *testing.T) {
	c := NewClient(&config.Config{})
	_, err := c.Complete(context.Background(), "system", "prompt")
	require.Error(t, err)
	require.Contains(t, err.Error(), "API Key")
}

func TestComplete_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Complete(context.Background(), "system", "prompt")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no content")
}

func TestComplete_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"error":{"message":"model overloaded","type":"server_error"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL)
	_, err := c.Complete(context.Background(), "system", "prompt")
	require.Error(t, err)
	require.Contains(t, err.Error(), "model overloaded")
}
