package analyzer

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/leon37/ExpenseBot/internal/model"
	"github.com/shopspring/decimal"
)

// 校验失败的具体规则，用于日志和测试
var (
	ErrIncompleteExpense   = errors.New("incomplete expense data")
	ErrInvalidCategory     = errors.New("category is not a string")
	ErrCategoryUnavailable = errors.New("category outside the configured set and no fallback configured")
	ErrInvalidAmount       = errors.New("amount is not a decimal number")
	ErrNonPositiveAmount   = errors.New("amount must be greater than zero")
	ErrAmountOutOfRange    = model.ErrAmountOutOfRange
	ErrInvalidDescription  = errors.New("description is not a scalar value")
	ErrEmptyDescription    = errors.New("empty description")
)

// Validator 校验并清洗 LLM 给出的候选记录
type Validator struct {
	categories model.CategorySet
	logger     *slog.Logger
}

func NewValidator(categories model.CategorySet, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{categories: categories, logger: logger}
}

// Validate 返回规范化后的记录；任何一条规则不通过都返回 false，只记日志不报错
func (v *Validator) Validate(c model.ExpenseCandidate) (model.NormalizedExpense, bool) {
	expense, err := v.Normalize(c)
	if err != nil {
		v.logger.Warn("Expense candidate rejected",
			"rule", err.Error(),
			"description", c.Description,
			"amount", c.Amount,
			"category", c.Category)
		return model.NormalizedExpense{}, false
	}
	return expense, true
}

// Normalize 同 Validate，但把违反的规则以 error 返回
func (v *Validator) Normalize(c model.ExpenseCandidate) (model.NormalizedExpense, error) {
	// 1. 必填字段：缺失、null、空字符串、0 都算缺
	if !truthy(c.Description) || !truthy(c.Amount) || !truthy(c.Category) {
		return model.NormalizedExpense{}, ErrIncompleteExpense
	}

	// 2. 分类：不在列表里就降级为兜底分类，这是唯一不直接拒绝的字段
	rawCategory, ok := c.Category.(string)
	if !ok {
		return model.NormalizedExpense{}, ErrInvalidCategory
	}
	category := strings.TrimSpace(rawCategory)
	if !v.categories.Contains(category) {
		if !v.categories.Contains(model.FallbackCategory) {
			return model.NormalizedExpense{}, fmt.Errorf("%w: %q", ErrCategoryUnavailable, category)
		}
		v.logger.Warn("Invalid category, using fallback",
			"category", category,
			"fallback", model.FallbackCategory)
		category = model.FallbackCategory
	}

	// 3. 金额：必须能精确转成 decimal，放得进 decimal(12,2)，四舍五入到分之后严格大于 0
	amount, err := toDecimal(c.Amount)
	if err != nil {
		return model.NormalizedExpense{}, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	if !amount.IsPositive() {
		return model.NormalizedExpense{}, ErrNonPositiveAmount
	}
	amount, err = model.NormalizeAmount(amount)
	if err != nil {
		return model.NormalizedExpense{}, err
	}
	if !amount.IsPositive() {
		return model.NormalizedExpense{}, fmt.Errorf("%w: rounds to %s", ErrNonPositiveAmount, amount.StringFixed(model.AmountScale))
	}

	// 4. 描述：去掉首尾空白后不能为空
	description, err := toText(c.Description)
	if err != nil {
		return model.NormalizedExpense{}, err
	}
	description = strings.TrimSpace(description)
	if description == "" {
		return model.NormalizedExpense{}, ErrEmptyDescription
	}

	return model.NormalizedExpense{
		Description: description,
		Amount:      amount,
		Category:    category,
	}, nil
}

// toDecimal 字符串和数字都接受；数字优先走 json.Number 的原始文本，避免浮点误差
func toDecimal(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case json.Number:
		return decimal.NewFromString(x.String())
	case string:
		return decimal.NewFromString(strings.TrimSpace(x))
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return decimal.Decimal{}, fmt.Errorf("non-finite number %v", x)
		}
		return decimal.NewFromFloat(x), nil
	case float32:
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return decimal.Decimal{}, fmt.Errorf("non-finite number %v", x)
		}
		return decimal.NewFromFloat32(x), nil
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int32:
		return decimal.NewFromInt32(x), nil
	case int64:
		return decimal.NewFromInt(x), nil
	default:
		return decimal.Decimal{}, fmt.Errorf("unsupported type %T", v)
	}
}

func toText(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case json.Number:
		return x.String(), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case bool:
		return strconv.FormatBool(x), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrInvalidDescription, v)
	}
}
