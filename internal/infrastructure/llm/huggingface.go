package llm

import (
	"context"
	"strings"
	"time"

	"github.com/leon37/ExpenseBot/internal/config"
	"github.com/sashabaranov/go-openai"
)

const defaultHuggingFaceURL = "https://router.huggingface.co/v1"

// HuggingFaceClient 开发环境的 oracle
// HF router 兼容 OpenAI 协议，所以同样用 go-openai，只是换了 BaseURL 和 token
type HuggingFaceClient struct {
	client       *openai.Client
	model        string
	maxNewTokens int
	temperature  float32
	timeout      time.Duration
}

func NewHuggingFaceClient(cfg config.HuggingFaceConfig, timeout time.Duration) *HuggingFaceClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if clientConfig.BaseURL == "" {
		clientConfig.BaseURL = defaultHuggingFaceURL
	}

	return &HuggingFaceClient{
		client:       openai.NewClientWithConfig(clientConfig),
		model:        cfg.Model,
		maxNewTokens: cfg.MaxNewTokens,
		temperature:  float32(cfg.Temperature),
		timeout:      timeout,
	}
}

func (c *HuggingFaceClient) Backend() string {
	return BackendHuggingFace
}

func (c *HuggingFaceClient) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// temperature 为 0 时 omitempty 不会发送，由服务端做贪心解码
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		MaxTokens:   c.maxNewTokens,
		Temperature: c.temperature,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", oracleError(BackendHuggingFace, err)
	}

	text, err := hfCompletion(resp).ExtractText()
	if err != nil {
		return "", oracleError(BackendHuggingFace, err)
	}
	return text, nil
}

// hfCompletion 开源模型偶尔会在第一个 choice 里只给空白，取第一个有内容的
type hfCompletion openai.ChatCompletionResponse

func (r hfCompletion) ExtractText() (string, error) {
	for _, choice := range r.Choices {
		if strings.TrimSpace(choice.Message.Content) != "" {
			return choice.Message.Content, nil
		}
	}
	return "", ErrEmptyResponse
}
