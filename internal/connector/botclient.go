package connector

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/leon37/ExpenseBot/internal/config"
	"github.com/shopspring/decimal"
)

// ErrAlreadyRegistered 用户已经注册过，对 /start 来说不算失败
var ErrAlreadyRegistered = errors.New("user already registered")

// Expense bot service 返回的账单
type Expense struct {
	ID          uint            `json:"id"`
	UserID      uint            `json:"user_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
}

// StatusError bot service 返回了非 2xx
type StatusError struct {
	Status int
	Msg    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bot service returned %d: %s", e.Status, e.Msg)
}

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// BotServiceClient 调用 bot service 的 HTTP API，每个请求都带上 API Key
type BotServiceClient struct {
	baseURL      string
	apiKeyHeader string
	apiKey       string
	httpClient   *http.Client
}

func NewBotServiceClient(tg config.TelegramConfig, auth config.AuthConfig) *BotServiceClient {
	timeout := tg.ServiceTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &BotServiceClient{
		baseURL:      strings.TrimRight(tg.ServiceURL, "/"),
		apiKeyHeader: auth.APIKeyHeader,
		apiKey:       auth.APIKeySecret,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// ProcessMessage 把自由文本交给 bot service 分析并落库
func (c *BotServiceClient) ProcessMessage(ctx context.Context, telegramID, message string) (*Expense, error) {
	var expense Expense
	path := "/v1/expenses/" + url.PathEscape(telegramID)
	if err := c.do(ctx, http.MethodPost, path, map[string]string{"message": message}, &expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

func (c *BotServiceClient) RegisterUser(ctx context.Context, telegramID string) error {
	err := c.do(ctx, http.MethodPost, "/v1/users", map[string]string{"telegram_id": telegramID}, nil)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Status == http.StatusConflict {
		return ErrAlreadyRegistered
	}
	return err
}

// ListExpenses 只取第一页，最新的在前
func (c *BotServiceClient) ListExpenses(ctx context.Context, telegramID string) ([]Expense, error) {
	var page struct {
		List []Expense `json:"list"`
	}
	path := "/v1/expenses/" + url.PathEscape(telegramID)
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return page.List, nil
}

// HealthCheck bot service 报告 healthy 时返回 true
func (c *BotServiceClient) HealthCheck(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "Bot service health check failed", "error", err)
		return false
	}
	defer resp.Body.Close()

	var health struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return false
	}
	return health.Status == "healthy"
}

// do 发送请求并解开统一响应结构，out 为 nil 时忽略 data
func (c *BotServiceClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(c.apiKeyHeader, c.apiKey)

	slog.DebugContext(ctx, "Bot service request", "method", method, "path", path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("bot service %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read bot service response: %w", err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Msg
		if decodeErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		slog.ErrorContext(ctx, "Bot service response error", "method", method, "path", path, "status", resp.StatusCode, "msg", msg)
		return &StatusError{Status: resp.StatusCode, Msg: msg}
	}
	if decodeErr != nil {
		return fmt.Errorf("decode bot service response: %w", decodeErr)
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode bot service data: %w", err)
	}
	return nil
}
