package analyzer

import (
	"encoding/json"
	"fmt"

	"github.com/leon37/ExpenseBot/internal/model"
)

// BuildSystemPrompt 生成 system prompt，分类列表在构造时注入，之后每条消息复用
func BuildSystemPrompt(categories model.CategorySet) string {
	// 用 JSON 数组把分类原样列出来，避免分类名里带逗号时产生歧义
	enum, _ := json.Marshal([]string(categories))

	return fmt.Sprintf(`You are an intelligent expense parsing assistant.

Your job is to analyze a user's message and determine if it represents an expense.

If it **is** an expense, return a **single-line JSON** like this:
{"is_expense": true, "description": "short summary of the expense", "amount": number_only, "category": one_of(%s)}

If it is **not** an expense, return:
{"is_expense": false}

**IMPORTANT RULES**:
- Return ONLY the JSON on a single line, no extra text, no explanations.
- Do NOT wrap it in markdown or backticks.
- Categories must be one of: %s
- Amount must be a valid bare number (no currency symbols, no words like "dollars").

Examples:

Input: "Dinner with friends 45"
Output: {"is_expense": true, "description": "Dinner with friends", "amount": 45.00, "category": %q}

Input: "Paid $30 for gas"
Output: {"is_expense": true, "description": "Gas", "amount": 30.00, "category": %q}

Input: "hello there!"
Output: {"is_expense": false}

Now process the next message.`,
		enum,
		categories.PromptList(),
		exampleCategory(categories, "Food"),
		exampleCategory(categories, "Transportation"),
	)
}

// exampleCategory 示例里的分类必须来自配置，否则模型会照抄一个不存在的分类
func exampleCategory(categories model.CategorySet, preferred string) string {
	if categories.Contains(preferred) || len(categories) == 0 {
		return preferred
	}
	return categories[0]
}
