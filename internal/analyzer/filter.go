package analyzer

import (
	"regexp"
	"strings"
	"unicode"
)

// filterRule 一条"显然不是消费"的启发式规则
type filterRule struct {
	Label   string
	Pattern *regexp.Regexp
}

// nonExpenseRules 按顺序匹配，锚定在归一化后消息的开头
// 粗筛，不保证正确：漏网的交给 LLM 和 validator
var nonExpenseRules = []filterRule{
	{Label: "greeting", Pattern: regexp.MustCompile(`^(hi|hello|hey|good morning|good afternoon|good evening)`)},
	{Label: "small talk", Pattern: regexp.MustCompile(`^(how are you|what's up|how's it going)`)},
	{Label: "gratitude", Pattern: regexp.MustCompile(`^(thank you|thanks|thx)`)},
	{Label: "acknowledgement", Pattern: regexp.MustCompile(`^(yes|no|ok|okay)`)},
	{Label: "question", Pattern: regexp.MustCompile(`^\?`)},
	{Label: "command", Pattern: regexp.MustCompile(`^(help|start|stop)`)},
}

const reasonNoDigits = "no digits"

// MatchNonExpense 返回命中的规则名；没有命中时 ok 为 false
func MatchNonExpense(message string) (reason string, ok bool) {
	normalized := strings.ToLower(strings.TrimSpace(message))

	for _, rule := range nonExpenseRules {
		if rule.Pattern.MatchString(normalized) {
			return rule.Label, true
		}
	}

	// 消费一定带金额，一个数字都没有就直接放弃
	if strings.IndexFunc(message, unicode.IsDigit) < 0 {
		return reasonNoDigits, true
	}
	return "", false
}

// IsNotExpense 快速判断消息是否显然不是消费，不做任何 I/O
func IsNotExpense(message string) bool {
	_, ok := MatchNonExpense(message)
	return ok
}
