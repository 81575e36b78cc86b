package model

import (
	"slices"
	"strings"
)

// FallbackCategory 模型给出的分类不在列表里时使用的兜底分类
const FallbackCategory = "Other"

// CategorySet 配置提供的有序分类列表，进程生命周期内不变
type CategorySet []string

// NewCategorySet 拷贝一份，避免调用方之后修改底层数组
func NewCategorySet(categories []string) CategorySet {
	return CategorySet(slices.Clone(categories))
}

func (s CategorySet) Contains(category string) bool {
	return slices.Contains(s, category)
}

// PromptList 生成 Prompt 用的分类提示词
func (s CategorySet) PromptList() string {
	return strings.Join(s, ", ")
}
