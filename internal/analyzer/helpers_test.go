package analyzer

import (
	"context"
	"io"
	"log/slog"
	"sync"
)

var testCategories = []string{"Food", "Transportation", "Entertainment", "Shopping", "Bills", "Healthcare", "Other"}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeProvider 记录调用次数和最后一次的请求内容
type fakeProvider struct {
	mu         sync.Mutex
	calls      int
	lastSystem string
	lastUser   string
	response   string
	err        error
}

func (f *fakeProvider) Complete(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastSystem = systemPrompt
	f.lastUser = userMessage
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeProvider) Backend() string {
	return "fake"
}

func (f *fakeProvider) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
