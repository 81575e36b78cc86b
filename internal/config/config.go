package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	OpenAI      OpenAIConfig      `mapstructure:"openai"`
	HuggingFace HuggingFaceConfig `mapstructure:"huggingface"`
	LLM         LLMConfig         `mapstructure:"llm"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Telegram    TelegramConfig    `mapstructure:"telegram"`
}

type AppConfig struct {
	Name              string   `mapstructure:"name"`
	Version           string   `mapstructure:"version"`
	Dev               bool     `mapstructure:"dev"`
	LogLevel          string   `mapstructure:"log_level"`
	ExpenseCategories []string `mapstructure:"expense_categories"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug | release | test
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // mysql | postgres | sqlite
	DSN             string        `mapstructure:"dsn"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// OpenAIConfig 生产环境 oracle
type OpenAIConfig struct {
	APIKey         string  `mapstructure:"api_key"`
	BaseURL        string  `mapstructure:"base_url"`
	Model          string  `mapstructure:"model"`
	MaxTokens      int     `mapstructure:"max_tokens"`
	Temperature    float32 `mapstructure:"temperature"`
	ResponseFormat string  `mapstructure:"response_format"` // text | json_object | json_schema
}

// HuggingFaceConfig 开发环境 oracle
type HuggingFaceConfig struct {
	APIKey       string  `mapstructure:"api_key"`
	BaseURL      string  `mapstructure:"base_url"`
	Model        string  `mapstructure:"model"`
	MaxNewTokens int     `mapstructure:"max_new_tokens"`
	Temperature  float64 `mapstructure:"temperature"` // 0 表示贪心解码，不发送该字段
}

type LLMConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type AuthConfig struct {
	APIKeyHeader   string `mapstructure:"api_key_header"`
	APIKeySecret   string `mapstructure:"api_key_secret"`
	JWTSecret      string `mapstructure:"jwt_secret"`
	JWTExpireHours int    `mapstructure:"jwt_expire_hours"`
}

type TelegramConfig struct {
	BotToken       string        `mapstructure:"bot_token"`
	ServiceURL     string        `mapstructure:"service_url"`
	ServiceTimeout time.Duration `mapstructure:"service_timeout"`
	HealthPort     string        `mapstructure:"health_port"`
}

var defaults = map[string]any{
	"app.name":                   "Telegram Expense Bot Service",
	"app.version":                "1.0.0",
	"app.dev":                    true,
	"app.log_level":              "INFO",
	"app.expense_categories":     []string{"Food", "Transportation", "Entertainment", "Shopping", "Bills", "Healthcare", "Other"},
	"server.port":                ":8000",
	"server.mode":                "debug",
	"database.driver":            "postgres",
	"database.dsn":               "",
	"database.max_idle_conns":    10,
	"database.max_open_conns":    50,
	"database.conn_max_lifetime": time.Hour,
	"openai.api_key":             "",
	"openai.base_url":            "https://api.openai.com/v1",
	"openai.model":               "gpt-3.5-turbo",
	"openai.max_tokens":          500,
	"openai.temperature":         0.1,
	"openai.response_format":     "text",
	"huggingface.api_key":        "",
	"huggingface.base_url":       "https://router.huggingface.co/v1",
	"huggingface.model":          "",
	"huggingface.max_new_tokens": 512,
	"huggingface.temperature":    0.0,
	"llm.timeout":                30 * time.Second,
	"auth.api_key_header":        "X-API-Key",
	"auth.api_key_secret":        "",
	"auth.jwt_secret":            "",
	"auth.jwt_expire_hours":      24,
	"telegram.bot_token":         "",
	"telegram.service_url":       "http://bot-service:8000",
	"telegram.service_timeout":   30 * time.Second,
	"telegram.health_port":       ":3000",
}

// LoadConfig 读取配置文件
// 查找顺序：. 和 ./config 下的 config.yaml，然后由环境变量覆盖
// 比如设置环境变量 EXPENSEBOT_OPENAI_API_KEY 可以覆盖 yaml 里的值
func LoadConfig() (*Config, error) {
	return Load(".", "./config")
}

// Load 同 LoadConfig，但允许指定查找路径 (测试用)
func Load(paths ...string) (*Config, error) {
	// .env 是可选的，不存在就直接用环境变量
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("EXPENSEBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 每个 key 都要有默认值，否则 AutomaticEnv 在 Unmarshal 时看不到它
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	categories, err := normalizeCategories(cfg.App.ExpenseCategories)
	if err != nil {
		return nil, err
	}
	cfg.App.ExpenseCategories = categories

	return &cfg, nil
}

// normalizeCategories 兼容三种写法：yaml 列表、逗号分隔、JSON 数组字符串
func normalizeCategories(raw []string) ([]string, error) {
	joined := strings.TrimSpace(strings.Join(raw, ","))
	if strings.HasPrefix(joined, "[") {
		var list []string
		if err := json.Unmarshal([]byte(joined), &list); err != nil {
			return nil, fmt.Errorf("decode expense_categories: %w", err)
		}
		raw = list
	}

	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, c := range raw {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}

// Validate 校验 server 启动所需的配置
func (c *Config) Validate() error {
	if len(c.App.ExpenseCategories) == 0 {
		return errors.New("app.expense_categories must not be empty")
	}
	switch strings.ToUpper(strings.TrimSpace(c.App.LogLevel)) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		return fmt.Errorf("invalid app.log_level %q", c.App.LogLevel)
	}

	switch c.Server.Mode {
	case "", "debug", "release", "test":
	default:
		return fmt.Errorf("invalid server.mode %q", c.Server.Mode)
	}

	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database.driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}

	if c.Auth.APIKeySecret == "" {
		return errors.New("auth.api_key_secret is required")
	}
	if c.Auth.APIKeyHeader == "" {
		return errors.New("auth.api_key_header is required")
	}

	if c.App.Dev {
		if c.HuggingFace.APIKey == "" || c.HuggingFace.Model == "" {
			return errors.New("huggingface.api_key and huggingface.model are required in dev mode")
		}
	} else {
		if c.OpenAI.APIKey == "" || c.OpenAI.Model == "" {
			return errors.New("openai.api_key and openai.model are required in production mode")
		}
		switch c.OpenAI.ResponseFormat {
		case "", "text", "json_object", "json_schema":
		default:
			return fmt.Errorf("invalid openai.response_format %q", c.OpenAI.ResponseFormat)
		}
	}

	if c.LLM.Timeout <= 0 {
		return errors.New("llm.timeout must be positive")
	}
	return nil
}

// ValidateConnector 校验 telegram connector 所需的配置
func (c *Config) ValidateConnector() error {
	if c.Telegram.BotToken == "" {
		return errors.New("telegram.bot_token is required")
	}
	if c.Telegram.ServiceURL == "" {
		return errors.New("telegram.service_url is required")
	}
	if c.Auth.APIKeySecret == "" {
		return errors.New("auth.api_key_secret is required")
	}
	if c.Auth.APIKeyHeader == "" {
		return errors.New("auth.api_key_header is required")
	}
	return nil
}
