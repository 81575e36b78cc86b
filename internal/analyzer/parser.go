package analyzer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/leon37/ExpenseBot/internal/model"
	"github.com/shopspring/decimal"
)

// ErrParseFailure LLM 输出无法解码成预期的 JSON 对象
var ErrParseFailure = errors.New("unparseable oracle output")

var labelPrefix = regexp.MustCompile(`(?i)^(output:|result:)`)

// ParseResponse 从模型的原始文本里取出唯一的 JSON 对象
// 容忍 "Output:" / "Result:" 前缀和 ```json 代码块包裹，除此之外不做任何解释
func ParseResponse(raw string) (model.ExpenseCandidate, error) {
	text := cleanResponse(raw)

	payload, err := decodeSingle(text)
	if err != nil {
		return model.ExpenseCandidate{}, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}

	obj, ok := payload.(map[string]any)
	if !ok {
		return model.ExpenseCandidate{}, fmt.Errorf("%w: expected a JSON object, got %T", ErrParseFailure, payload)
	}

	return model.ExpenseCandidate{
		IsExpense:   truthy(obj["is_expense"]),
		Description: obj["description"],
		Amount:      obj["amount"],
		Category:    obj["category"],
	}, nil
}

func cleanResponse(raw string) string {
	text := strings.TrimSpace(raw)
	text = strings.TrimSpace(labelPrefix.ReplaceAllString(text, ""))
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

// decodeSingle 只接受一个 JSON 值，后面跟着任何东西都算失败
// UseNumber 保留数字的原始文本，后面转 decimal 时不会经过 float64
func decodeSingle(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON value")
	}
	return v, nil
}

// truthy 按"空即假"判断：nil、false、0、空字符串、空数组、空对象都算假
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		return err != nil || !d.IsZero()
	case float64:
		return x != 0
	case float32:
		return x != 0
	case int:
		return x != 0
	case int64:
		return x != 0
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}
