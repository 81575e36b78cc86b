package analyzer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/leon37/ExpenseBot/internal/infrastructure/llm"
	"github.com/shopspring/decimal"
)

func newTestAnalyzer(p *fakeProvider) *Analyzer {
	return New(p, testCategories, discardLogger())
}

func TestAnalyze_DinnerWithFriends(t *testing.T) {
	p := &fakeProvider{response: `{"is_expense": true, "description": "Dinner with friends", "amount": 45.00, "category": "Food"}`}
	a := newTestAnalyzer(p)

	got, ok := a.Analyze(context.Background(), "Dinner with friends 45")
	if !ok {
		t.Fatal("expected an expense")
	}
	if got.Description != "Dinner with friends" || got.Category != "Food" || !got.Amount.Equal(decimal.NewFromInt(45)) {
		t.Errorf("got %+v", got)
	}
	if p.Calls() != 1 {
		t.Errorf("oracle calls = %d, want 1", p.Calls())
	}
	if p.lastSystem != a.SystemPrompt() {
		t.Error("system prompt not passed to the oracle")
	}
	if p.lastUser != "Dinner with friends 45" {
		t.Errorf("user message = %q", p.lastUser)
	}
}

func TestAnalyze_FilteredMessagesSkipOracle(t *testing.T) {
	p := &fakeProvider{response: `{"is_expense": true, "description": "x", "amount": 1, "category": "Food"}`}
	a := newTestAnalyzer(p)

	for _, msg := range []string{"hello", "thanks 5", "what's up", "no numbers here", "?"} {
		if _, ok := a.Analyze(context.Background(), msg); ok {
			t.Errorf("Analyze(%q) returned an expense", msg)
		}
	}
	if p.Calls() != 0 {
		t.Errorf("oracle calls = %d, want 0", p.Calls())
	}
}

func TestAnalyze_TrimsMessage(t *testing.T) {
	p := &fakeProvider{response: `{"is_expense": false}`}
	a := newTestAnalyzer(p)

	a.Analyze(context.Background(), "   taxi 12 \n")
	if p.lastUser != "taxi 12" {
		t.Errorf("user message = %q", p.lastUser)
	}
}

func TestAnalyze_ResponseWrappers(t *testing.T) {
	const body = `{"is_expense": true, "description": "Taxi", "amount": "12.30", "category": "Transportation"}`

	for _, raw := range []string{body, "```json\n" + body + "\n```", "Output: " + body} {
		p := &fakeProvider{response: raw}
		got, ok := newTestAnalyzer(p).Analyze(context.Background(), "taxi 12.30")
		if !ok {
			t.Fatalf("raw %q: expected an expense", raw)
		}
		if got.Category != "Transportation" || got.Amount.String() != "12.3" {
			t.Errorf("raw %q: got %+v", raw, got)
		}
	}
}

func TestAnalyze_Absence(t *testing.T) {
	tests := []struct {
		name     string
		response string
		err      error
	}{
		{"not an expense", `{"is_expense": false}`, nil},
		{"malformed json", `{"is_expense": true, "amount": `, nil},
		{"prose", "I think this is food", nil},
		{"zero amount", `{"is_expense": true, "description": "Test", "amount": 0, "category": "Food"}`, nil},
		{"negative amount", `{"is_expense": true, "description": "Test", "amount": -5, "category": "Food"}`, nil},
		{"word amount", `{"is_expense": true, "description": "Test", "amount": "twenty-five", "category": "Food"}`, nil},
		{"missing category", `{"is_expense": true, "description": "Test", "amount": 5}`, nil},
		{"oracle error", "", &llm.OracleError{Backend: "fake", Err: errors.New("connection refused")}},
		{"deadline", "", &llm.OracleError{Backend: "fake", Err: context.DeadlineExceeded}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &fakeProvider{response: tt.response, err: tt.err}
			got, ok := newTestAnalyzer(p).Analyze(context.Background(), "spent 25 on something")
			if ok {
				t.Errorf("expected absence, got %+v", got)
			}
			if p.Calls() != 1 {
				t.Errorf("oracle calls = %d, want 1", p.Calls())
			}
		})
	}
}

func TestAnalyze_UnknownCategoryFallsBack(t *testing.T) {
	p := &fakeProvider{response: `{"is_expense": true, "description": "  Test  ", "amount": 10, "category": "InvalidCategory"}`}

	got, ok := newTestAnalyzer(p).Analyze(context.Background(), "test 10")
	if !ok {
		t.Fatal("expected an expense")
	}
	if got.Category != "Other" || got.Description != "Test" {
		t.Errorf("got %+v", got)
	}
}

func TestAnalyze_Concurrent(t *testing.T) {
	p := &fakeProvider{response: `{"is_expense": true, "description": "Coffee", "amount": 3, "category": "Food"}`}
	a := newTestAnalyzer(p)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := a.Analyze(context.Background(), "coffee 3"); !ok {
				t.Error("expected an expense")
			}
		}()
	}
	wg.Wait()

	if p.Calls() != 20 {
		t.Errorf("oracle calls = %d, want 20", p.Calls())
	}
}

func TestNew_CategoriesCopied(t *testing.T) {
	categories := []string{"Food", "Other"}
	a := New(&fakeProvider{}, categories, discardLogger())
	categories[0] = "Mutated"

	if a.Categories()[0] != "Food" {
		t.Error("analyzer must not alias the caller's slice")
	}

	returned := a.Categories()
	returned[0] = "Mutated"
	if a.Categories()[0] != "Food" {
		t.Error("Categories() must return a copy")
	}
	if _, ok := a.validator.Validate(candidate("Lunch", "12", "Mutated")); !ok {
		t.Fatal("unknown category should still fall back")
	}
	if !strings.Contains(a.SystemPrompt(), "Food") {
		t.Error("system prompt missing category")
	}
}

func TestAnalyze_HugeExponentAmountRejected(t *testing.T) {
	p := &fakeProvider{response: `{"is_expense": true, "description": "Coffee", "amount": 1e900000000, "category": "Food"}`}
	a := newTestAnalyzer(p)

	done := make(chan bool, 1)
	go func() {
		_, ok := a.Analyze(context.Background(), "Coffee 1e900000000")
		done <- ok
	}()

	select {
	case ok := <-done:
		if ok {
			t.Error("amount outside decimal(12,2) must be rejected")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Analyze did not return")
	}
}

func TestAnalyze_AmountRoundedToCents(t *testing.T) {
	p := &fakeProvider{response: `{"is_expense": true, "description": "Snack", "amount": 12.345, "category": "Food"}`}
	a := newTestAnalyzer(p)

	got, ok := a.Analyze(context.Background(), "Snack 12.345")
	if !ok {
		t.Fatal("expected an expense")
	}
	if got.Amount.StringFixed(2) != "12.35" || !got.Amount.Equal(decimal.RequireFromString("12.35")) {
		t.Errorf("amount = %s, want 12.35", got.Amount)
	}
}
