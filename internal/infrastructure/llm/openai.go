package llm

import (
	"context"
	"errors"
	"time"

	"github.com/leon37/ExpenseBot/internal/config"
	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// OpenAIClient 生产环境的 oracle (OpenAI 或任意兼容接口)
type OpenAIClient struct {
	client         *openai.Client
	model          string
	maxTokens      int
	temperature    float32
	responseFormat string
	timeout        time.Duration
}

func NewOpenAIClient(cfg config.OpenAIConfig, timeout time.Duration) *OpenAIClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIClient{
		client:         openai.NewClientWithConfig(clientConfig),
		model:          cfg.Model,
		maxTokens:      cfg.MaxTokens,
		temperature:    cfg.Temperature,
		responseFormat: cfg.ResponseFormat,
		timeout:        timeout,
	}
}

func (c *OpenAIClient) Backend() string {
	return BackendOpenAI
}

func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage},
		},
		MaxTokens:      c.maxTokens,
		Temperature:    c.temperature, // 低温有助于 JSON 格式稳定
		ResponseFormat: c.format(),
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", oracleError(BackendOpenAI, err)
	}

	text, err := openAICompletion(resp).ExtractText()
	if err != nil {
		return "", oracleError(BackendOpenAI, err)
	}
	return text, nil
}

func (c *OpenAIClient) format() *openai.ChatCompletionResponseFormat {
	switch c.responseFormat {
	case "json_object":
		return &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	case "json_schema":
		schema := expenseSchema()
		return &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "expense_classification",
				Schema: &schema,
				Strict: false,
			},
		}
	default:
		return nil
	}
}

// expenseSchema 两种输出形状的并集：is_expense 必填，其余字段只在 true 时出现
// 分类的取值范围写在 system prompt 里，这里不重复
func expenseSchema() jsonschema.Definition {
	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"is_expense": {
				Type:        jsonschema.Boolean,
				Description: "Whether the message describes a monetary expense.",
			},
			"description": {
				Type:        jsonschema.String,
				Description: "Short summary of the expense.",
			},
			"amount": {
				Type:        jsonschema.Number,
				Description: "Bare number, no currency symbol or words.",
			},
			"category": {
				Type:        jsonschema.String,
				Description: "One of the configured categories.",
			},
		},
		Required: []string{"is_expense"},
	}
}

type openAICompletion openai.ChatCompletionResponse

func (r openAICompletion) ExtractText() (string, error) {
	if len(r.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	msg := r.Choices[0].Message
	if msg.Content == "" {
		if msg.Refusal != "" {
			return "", errors.New("model refused: " + msg.Refusal)
		}
		return "", ErrEmptyResponse
	}
	return msg.Content, nil
}
