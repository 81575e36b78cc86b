package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		App: AppConfig{
			LogLevel:          "INFO",
			Dev:               false,
			ExpenseCategories: []string{"Food", "Other"},
		},
		Database: DatabaseConfig{Driver: "sqlite", DSN: "file::memory:"},
		OpenAI:   OpenAIConfig{APIKey: "sk-test", Model: "gpt-3.5-turbo", ResponseFormat: "text"},
		LLM:      LLMConfig{Timeout: 30 * time.Second},
		Auth:     AuthConfig{APIKeyHeader: "X-API-Key", APIKeySecret: "secret"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid production config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "valid dev config",
			mutate: func(c *Config) {
				c.App.Dev = true
				c.HuggingFace = HuggingFaceConfig{APIKey: "hf_test", Model: "HuggingFaceH4/zephyr-7b-beta"}
			},
			wantErr: false,
		},
		{
			name:        "empty categories",
			mutate:      func(c *Config) { c.App.ExpenseCategories = nil },
			wantErr:     true,
			errorString: "app.expense_categories must not be empty",
		},
		{
			name:    "warning log level alias",
			mutate:  func(c *Config) { c.App.LogLevel = "warning" },
			wantErr: false,
		},
		{
			name:        "bad log level",
			mutate:      func(c *Config) { c.App.LogLevel = "LOUD" },
			wantErr:     true,
			errorString: `invalid app.log_level "LOUD"`,
		},
		{
			name:        "bad server mode",
			mutate:      func(c *Config) { c.Server.Mode = "prod" },
			wantErr:     true,
			errorString: `invalid server.mode "prod"`,
		},
		{
			name:        "unknown driver",
			mutate:      func(c *Config) { c.Database.Driver = "oracle" },
			wantErr:     true,
			errorString: `unsupported database.driver "oracle"`,
		},
		{
			name:        "missing dsn",
			mutate:      func(c *Config) { c.Database.DSN = "" },
			wantErr:     true,
			errorString: "database.dsn is required",
		},
		{
			name:        "missing api key secret",
			mutate:      func(c *Config) { c.Auth.APIKeySecret = "" },
			wantErr:     true,
			errorString: "auth.api_key_secret is required",
		},
		{
			name:        "dev mode without huggingface credentials",
			mutate:      func(c *Config) { c.App.Dev = true },
			wantErr:     true,
			errorString: "huggingface.api_key and huggingface.model are required in dev mode",
		},
		{
			name:        "production mode without openai key",
			mutate:      func(c *Config) { c.OpenAI.APIKey = "" },
			wantErr:     true,
			errorString: "openai.api_key and openai.model are required in production mode",
		},
		{
			name:        "bad response format",
			mutate:      func(c *Config) { c.OpenAI.ResponseFormat = "xml" },
			wantErr:     true,
			errorString: `invalid openai.response_format "xml"`,
		},
		{
			name:        "zero timeout",
			mutate:      func(c *Config) { c.LLM.Timeout = 0 },
			wantErr:     true,
			errorString: "llm.timeout must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err.Error() != tt.errorString {
				t.Errorf("Validate() error = %q, want %q", err.Error(), tt.errorString)
			}
		})
	}
}

func TestLoad_FromYAML(t *testing.T) {
	dir := t.TempDir()
	yaml := `
app:
  dev: false
  expense_categories: [Food, Bills, Other]
database:
  driver: sqlite
  dsn: "file::memory:"
openai:
  api_key: sk-yaml
llm:
  timeout: 5s
auth:
  api_key_secret: yaml-secret
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if want := []string{"Food", "Bills", "Other"}; !reflect.DeepEqual(cfg.App.ExpenseCategories, want) {
		t.Errorf("categories = %v, want %v", cfg.App.ExpenseCategories, want)
	}
	if cfg.LLM.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", cfg.LLM.Timeout)
	}
	if cfg.OpenAI.Model != "gpt-3.5-turbo" {
		t.Errorf("default openai.model = %q", cfg.OpenAI.Model)
	}
	if cfg.Auth.APIKeyHeader != "X-API-Key" {
		t.Errorf("default api key header = %q", cfg.Auth.APIKeyHeader)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("EXPENSEBOT_APP_EXPENSE_CATEGORIES", `["Food","Transportation","Other"]`)
	t.Setenv("EXPENSEBOT_AUTH_API_KEY_SECRET", "env-secret")
	t.Setenv("EXPENSEBOT_APP_DEV", "false")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if want := []string{"Food", "Transportation", "Other"}; !reflect.DeepEqual(cfg.App.ExpenseCategories, want) {
		t.Errorf("categories = %v, want %v", cfg.App.ExpenseCategories, want)
	}
	if cfg.Auth.APIKeySecret != "env-secret" {
		t.Errorf("api key secret = %q", cfg.Auth.APIKeySecret)
	}
	if cfg.App.Dev {
		t.Error("dev should be overridden to false")
	}
}

func TestNormalizeCategories(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"plain list", []string{"Food", " Bills "}, []string{"Food", "Bills"}},
		{"json array", []string{`["Food"`, `"Other"]`}, []string{"Food", "Other"}},
		{"duplicates and blanks", []string{"Food", "", "Food", "Other"}, []string{"Food", "Other"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeCategories(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := normalizeCategories([]string{"[broken"}); err == nil || !strings.Contains(err.Error(), "expense_categories") {
		t.Errorf("expected decode error, got %v", err)
	}
}

func TestConfig_ValidateConnector(t *testing.T) {
	c := Config{
		Auth:     AuthConfig{APIKeyHeader: "X-API-Key", APIKeySecret: "secret"},
		Telegram: TelegramConfig{BotToken: "123:abc", ServiceURL: "http://bot-service:8000"},
	}
	if err := c.ValidateConnector(); err != nil {
		t.Fatalf("ValidateConnector() error = %v", err)
	}

	missingToken := c
	missingToken.Telegram.BotToken = ""
	if err := missingToken.ValidateConnector(); err == nil || err.Error() != "telegram.bot_token is required" {
		t.Errorf("missing token err = %v", err)
	}

	missingSecret := c
	missingSecret.Auth.APIKeySecret = ""
	if err := missingSecret.ValidateConnector(); err == nil {
		t.Error("missing api key secret should fail")
	}
}
