package model

// ExpenseCandidate 是 LLM 输出解码后的结构化猜测
// 这是不可信的外部数据：任何字段都可能缺失、类型不对或者语义非法，
// 所以字段保留 JSON 解码后的原始值 (string, json.Number, bool, nil ...)，校验留给 validator
type ExpenseCandidate struct {
	IsExpense   bool `json:"is_expense"`
	Description any  `json:"description,omitempty"`
	Amount      any  `json:"amount,omitempty"`
	Category    any  `json:"category,omitempty"`
}
