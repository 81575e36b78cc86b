package analyzer

import "testing"

func TestIsNotExpense_Rejects(t *testing.T) {
	messages := []string{
		"hi there",
		"hello",
		"Hello there!",
		"good morning",
		"how are you",
		"What's up 2day",
		"thank you",
		"Thanks for the 5 tips",
		"yes",
		"OK 10",
		"?? 12",
		"help",
		"stop 3",
		"random text without numbers",
		"",
		"   ",
	}
	for _, msg := range messages {
		if !IsNotExpense(msg) {
			t.Errorf("IsNotExpense(%q) = false, want true", msg)
		}
	}
}

func TestIsNotExpense_PassesPotentialExpenses(t *testing.T) {
	messages := []string{
		"spent 25 on lunch",
		"dinner cost $30",
		"paid 15 for coffee",
		"grocery shopping 85.50",
		"Dinner with friends 45",
		"  Uber ride home 12  ",
	}
	for _, msg := range messages {
		if IsNotExpense(msg) {
			t.Errorf("IsNotExpense(%q) = true, want false", msg)
		}
	}
}

func TestMatchNonExpense_Reason(t *testing.T) {
	tests := []struct {
		message string
		reason  string
	}{
		{"  HEY 5", "greeting"},
		{"how's it going 1", "small talk"},
		{"thx 2", "gratitude"},
		{"okay 3", "acknowledgement"},
		{"?4", "question"},
		{"start 7", "command"},
		{"lunch", reasonNoDigits},
	}
	for _, tt := range tests {
		reason, ok := MatchNonExpense(tt.message)
		if !ok || reason != tt.reason {
			t.Errorf("MatchNonExpense(%q) = (%q, %v), want (%q, true)", tt.message, reason, ok, tt.reason)
		}
	}
}

func TestNonExpenseRules_Anchored(t *testing.T) {
	// 规则只匹配开头，句中出现问候词不算
	if IsNotExpense("lunch with the hello kitty crew 20") {
		t.Error("rules must be anchored at the start of the message")
	}
}
