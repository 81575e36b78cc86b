package analyzer

import (
	"strings"
	"testing"

	"github.com/leon37/ExpenseBot/internal/model"
)

func TestBuildSystemPrompt_ContainsCategories(t *testing.T) {
	prompt := BuildSystemPrompt(model.NewCategorySet(testCategories))
	for _, c := range testCategories {
		if !strings.Contains(prompt, c) {
			t.Errorf("prompt missing category %q", c)
		}
	}
}

func TestBuildSystemPrompt_Format(t *testing.T) {
	prompt := BuildSystemPrompt(model.NewCategorySet(testCategories))

	wants := []string{
		"expense parsing assistant",
		"single-line JSON",
		`"is_expense": true`,
		`"is_expense": false`,
		"IMPORTANT RULES",
		"Do NOT wrap it in markdown",
		"no currency symbols",
		`Input: "Dinner with friends 45"`,
		`Input: "hello there!"`,
	}
	for _, w := range wants {
		if !strings.Contains(prompt, w) {
			t.Errorf("prompt missing %q", w)
		}
	}

	if got := strings.Count(prompt, `Output: {"is_expense": true`); got < 2 {
		t.Errorf("expected at least 2 positive examples, got %d", got)
	}
	if got := strings.Count(prompt, `Output: {"is_expense": false}`); got < 1 {
		t.Errorf("expected at least 1 negative example, got %d", got)
	}
}

func TestBuildSystemPrompt_ExamplesUseConfiguredCategories(t *testing.T) {
	prompt := BuildSystemPrompt(model.NewCategorySet([]string{"Groceries", "Other"}))

	if strings.Contains(prompt, `"category": "Food"`) {
		t.Error("examples must not reference categories outside the set")
	}
	if !strings.Contains(prompt, `"category": "Groceries"`) {
		t.Error("examples should fall back to the first configured category")
	}
}
