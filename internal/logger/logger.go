package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Setup 使用 JSONHandler 让日志以 JSON 格式输出，方便解析，并设置为全局默认 logger
// AddSource: true 会在日志里显示文件名和行号
func Setup(w io.Writer, level string) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: true,
		Level:     ParseLevel(level),
	}))
	slog.SetDefault(logger)
	return logger
}

// ParseLevel 无法识别时退回 INFO
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
