// Package analyzer 判断一条自由文本消息是不是一笔消费，如果是，提取出规范化的消费记录。
//
// 流程：快速过滤 -> LLM -> 解析 -> 校验。任何一步失败都只返回"没有消费"，错误不会传给调用方。
package analyzer

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/leon37/ExpenseBot/internal/infrastructure/llm"
	"github.com/leon37/ExpenseBot/internal/model"
)

// Analyzer 构造之后只读，可以被多个请求并发使用
type Analyzer struct {
	provider     llm.Provider
	categories   model.CategorySet
	systemPrompt string
	validator    *Validator
	logger       *slog.Logger
}

func New(provider llm.Provider, categories []string, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "analyzer")

	set := model.NewCategorySet(categories)
	if !set.Contains(model.FallbackCategory) {
		// 没有兜底分类时，模型给出未知分类的记录会被直接拒绝
		logger.Warn("Fallback category not configured", "fallback", model.FallbackCategory, "categories", []string(set))
	}

	return &Analyzer{
		provider:     provider,
		categories:   set,
		systemPrompt: BuildSystemPrompt(set),
		validator:    NewValidator(set, logger),
		logger:       logger,
	}
}

func (a *Analyzer) SystemPrompt() string {
	return a.systemPrompt
}

// Categories 返回副本，调用方修改不会影响校验用的分类集合
func (a *Analyzer) Categories() []string {
	return slices.Clone([]string(a.categories))
}

// Analyze 唯一入口。第二个返回值为 false 表示"没有消费"
func (a *Analyzer) Analyze(ctx context.Context, message string) (model.NormalizedExpense, bool) {
	// 1. 快速过滤，不花 LLM 的钱
	if reason, ok := MatchNonExpense(message); ok {
		a.logger.DebugContext(ctx, "Message obviously not an expense", "reason", reason, "message", message)
		return model.NormalizedExpense{}, false
	}

	// 2. 调 LLM，只尝试一次
	raw, err := a.provider.Complete(ctx, a.systemPrompt, strings.TrimSpace(message))
	if err != nil {
		attrs := []any{"error", err, "message", message}
		var oracleErr *llm.OracleError
		if errors.As(err, &oracleErr) {
			attrs = append(attrs, "backend", oracleErr.Backend)
		}
		a.logger.ErrorContext(ctx, "Oracle call failed", attrs...)
		return model.NormalizedExpense{}, false
	}

	// 3. 解析
	candidate, err := ParseResponse(raw)
	if err != nil {
		a.logger.ErrorContext(ctx, "Failed to parse oracle response", "error", err, "raw", raw)
		return model.NormalizedExpense{}, false
	}
	if !candidate.IsExpense {
		a.logger.InfoContext(ctx, "Oracle classified message as not an expense", "message", message)
		return model.NormalizedExpense{}, false
	}

	// 4. 校验 + 清洗
	return a.validator.Validate(candidate)
}
