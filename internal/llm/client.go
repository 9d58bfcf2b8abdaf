// Package llm 提供 OpenAI Chat Completions 接口的客户端
// 对外部大模型的调用在这里收口：超时、重试、响应解析都在网关边界处理
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"chatlog-server/internal/config"
)

const (
	// 默认 API 地址
	defaultBaseURL = "https://api.openai.com/v1"
	// 单次请求的默认超时时间
	defaultTimeout = 30 * time.Second
	// 失败后最多重试一次
	maxRetries = 1
	// 重试前的等待时间
	retryDelay = 500 * time.Millisecond
)

// chatMessage 对话消息
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest Chat Completions 请求结构
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

// chatResponse Chat Completions 响应结构
// 只解析需要的字段
type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Client OpenAI 客户端
// 实现 service.LLMGateway 接口
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewClient 创建 Client 实例
// 参数:
//   - cfg: 应用配置（包含 API Key、地址、模型和超时）
//
// 返回:
//   - *Client: 客户端实例
func NewClient(cfg *config.Config) *Client {
	baseURL := strings.TrimSpace(cfg.OpenAI.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.OpenAI.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		apiKey:  cfg.OpenAI.APIKey,
		baseURL: baseURL,
		model:   cfg.OpenAI.Model,
		client: &http.Client{
			Timeout: timeout, // 设置超时，避免请求无限阻塞
		},
	}
}

// chatURL 拼接 Chat Completions 的完整地址
func chatURL(baseURL string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = defaultBaseURL
	}
	if strings.HasSuffix(base, "/v1") {
		return base + "/chat/completions"
	}
	return base + "/v1/chat/completions"
}

// Complete 调用大模型生成一条回复
// 传输错误和 5xx/429 响应会重试一次，4xx 不重试
// 参数:
//   - ctx: 上下文
//   - system: 系统指令
//   - prompt: 用户提问
//
// 返回:
//   - string: 回复文本（已去除首尾空白）
//   - error: 调用失败或响应不可用
func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("llm service not configured (missing API Key)")
	}

	// 构造请求 Body
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			// 重试前等待，同时尊重上下文取消
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(retryDelay):
			}
		}

		reply, retryable, err := c.doComplete(ctx, jsonData)
		if err == nil {
			return reply, nil
		}
		lastErr = err
		if !retryable {
			return "", err
		}
	}
	return "", lastErr
}

// doComplete 执行一次请求
// 第二个返回值表示该错误是否可以重试
func (c *Client) doComplete(ctx context.Context, jsonData []byte) (string, bool, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, chatURL(c.baseURL), bytes.NewReader(jsonData))
	if err != nil {
		return "", false, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		// 传输层错误（连接失败、超时等），可以重试
		return "", true, fmt.Errorf("failed to call llm service: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("llm service returned status %d: %s", resp.StatusCode, string(bodyBytes))
		// 5xx 和限流可以重试，其余 4xx 重试也不会有不同结果
		retryable := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return "", retryable, err
	}

	// 解析响应
	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", false, fmt.Errorf("failed to parse llm response: %w", err)
	}
	if chatResp.Error != nil {
		return "", false, fmt.Errorf("llm service error: %s - %s", chatResp.Error.Type, chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", false, errors.New("llm returned no content")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), false, nil
}
