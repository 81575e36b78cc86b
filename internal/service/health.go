package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/leon37/ExpenseBot/internal/config"
	"github.com/leon37/ExpenseBot/internal/model"
)

const pingTimeout = 2 * time.Second

// Pinger 数据库连通性检查
type Pinger func(ctx context.Context) error

type HealthService struct {
	ping       Pinger
	app        config.AppConfig
	categories []string
}

func NewHealthService(ping Pinger, app config.AppConfig, categories []string) *HealthService {
	return &HealthService{ping: ping, app: app, categories: categories}
}

// Check 数据库不通时 status 为 unhealthy，但永远不返回错误
func (s *HealthService) Check(ctx context.Context) model.HealthcheckResponse {
	rsp := model.HealthcheckResponse{
		Status:            model.StatusHealthy,
		Service:           s.app.Name,
		Version:           s.app.Version,
		Database:          model.DatabaseConnected,
		ExpenseCategories: s.categories,
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.ping(ctx); err != nil {
		slog.ErrorContext(ctx, "Health check failed", "error", err)
		rsp.Status = model.StatusUnhealthy
		rsp.Database = model.DatabaseDisconnected
	}
	return rsp
}
