package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/leon37/ExpenseBot/internal/config"
)

const (
	BackendOpenAI      = "openai"
	BackendHuggingFace = "huggingface"
)

// ErrEmptyResponse 模型返回了响应，但里面提取不到文本
var ErrEmptyResponse = errors.New("empty completion")

// Provider 定义了 LLM 的通用行为
type Provider interface {
	// Complete 发送 system + user 两条消息，返回模型的原始文本输出
	// 任何传输/生成失败都以 *OracleError 返回
	Complete(ctx context.Context, systemPrompt, userMessage string) (string, error)
	// Backend 返回后端名称，用于日志
	Backend() string
}

// completion 是各个后端响应对象的统一抽象，只负责把文本取出来
type completion interface {
	ExtractText() (string, error)
}

// OracleError 包装了一次 oracle 调用的失败原因
type OracleError struct {
	Backend string
	Err     error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("%s oracle: %v", e.Backend, e.Err)
}

func (e *OracleError) Unwrap() error {
	return e.Err
}

func oracleError(backend string, err error) error {
	return &OracleError{Backend: backend, Err: err}
}

// NewProvider 根据 app.dev 选择后端：dev -> HuggingFace，否则 -> OpenAI
func NewProvider(cfg *config.Config) (Provider, error) {
	if cfg.LLM.Timeout <= 0 {
		return nil, errors.New("llm timeout must be positive")
	}
	if cfg.App.Dev {
		if cfg.HuggingFace.APIKey == "" || cfg.HuggingFace.Model == "" {
			return nil, errors.New("huggingface api key and model are required")
		}
		return NewHuggingFaceClient(cfg.HuggingFace, cfg.LLM.Timeout), nil
	}
	if cfg.OpenAI.APIKey == "" || cfg.OpenAI.Model == "" {
		return nil, errors.New("openai api key and model are required")
	}
	return NewOpenAIClient(cfg.OpenAI, cfg.LLM.Timeout), nil
}
