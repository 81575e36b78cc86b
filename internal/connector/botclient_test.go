package connector

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/leon37/ExpenseBot/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *BotServiceClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewBotServiceClient(
		config.TelegramConfig{ServiceURL: srv.URL + "/", ServiceTimeout: 2 * time.Second},
		config.AuthConfig{APIKeyHeader: "X-API-Key", APIKeySecret: "secret"},
	)
}

func writeEnvelope(w http.ResponseWriter, status int, msg string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	code := 0
	if status >= 300 {
		code = -1
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"code": code, "msg": msg, "data": data})
}

func TestBotServiceClient_ProcessMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/expenses/alice" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("X-API-Key") != "secret" {
			t.Errorf("api key header = %q", r.Header.Get("X-API-Key"))
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["message"] != "Lunch 12.50" {
			t.Errorf("body = %v", body)
		}
		writeEnvelope(w, http.StatusOK, "success", map[string]any{
			"id": 3, "user_id": 1, "description": "Lunch", "amount": "12.5", "category": "Food",
		})
	})

	e, err := client.ProcessMessage(context.Background(), "alice", "Lunch 12.50")
	if err != nil {
		t.Fatalf("ProcessMessage() error = %v", err)
	}
	if e.ID != 3 || e.Category != "Food" || e.Amount.String() != "12.5" {
		t.Errorf("expense = %+v", e)
	}
}

func TestBotServiceClient_ProcessMessage_NotAnExpense(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, "Invalid message", nil)
	})

	_, err := client.ProcessMessage(context.Background(), "alice", "hello")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.Status != http.StatusBadRequest || statusErr.Msg != "Invalid message" {
		t.Errorf("status error = %+v", statusErr)
	}
}

func TestBotServiceClient_RegisterUser(t *testing.T) {
	status := http.StatusCreated
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/users" {
			t.Errorf("path = %s", r.URL.Path)
		}
		writeEnvelope(w, status, "", map[string]any{"id": 1, "telegram_id": "alice"})
	})

	if err := client.RegisterUser(context.Background(), "alice"); err != nil {
		t.Errorf("RegisterUser() error = %v", err)
	}

	status = http.StatusConflict
	if err := client.RegisterUser(context.Background(), "alice"); !errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("conflict err = %v", err)
	}

	status = http.StatusInternalServerError
	if err := client.RegisterUser(context.Background(), "alice"); err == nil || errors.Is(err, ErrAlreadyRegistered) {
		t.Errorf("server error err = %v", err)
	}
}

func TestBotServiceClient_ListExpenses(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/v1/expenses/alice" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		writeEnvelope(w, http.StatusOK, "success", map[string]any{
			"list": []map[string]any{
				{"id": 2, "description": "Bus", "amount": "5", "category": "Transportation"},
				{"id": 1, "description": "Lunch", "amount": "10", "category": "Food"},
			},
			"total": 2,
		})
	})

	list, err := client.ListExpenses(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ListExpenses() error = %v", err)
	}
	if len(list) != 2 || list[0].Description != "Bus" {
		t.Errorf("list = %+v", list)
	}
}

func TestBotServiceClient_HealthCheck(t *testing.T) {
	healthy := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "healthy", "database": "connected"}`))
	})
	if !healthy.HealthCheck(context.Background()) {
		t.Error("expected healthy")
	}

	unhealthy := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "unhealthy"}`))
	})
	if unhealthy.HealthCheck(context.Background()) {
		t.Error("expected unhealthy")
	}
}

func TestBotServiceClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	client := NewBotServiceClient(
		config.TelegramConfig{ServiceURL: srv.URL, ServiceTimeout: 50 * time.Millisecond},
		config.AuthConfig{APIKeyHeader: "X-API-Key", APIKeySecret: "secret"},
	)
	if _, err := client.ListExpenses(context.Background(), "alice"); err == nil {
		t.Error("expected timeout error")
	}
}
