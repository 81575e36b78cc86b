package connector

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker bot service 的健康检查
type HealthChecker interface {
	HealthCheck(ctx context.Context) bool
}

type healthResponse struct {
	Status     string `json:"status"`
	Service    string `json:"service"`
	Version    string `json:"version"`
	Timestamp  string `json:"timestamp"`
	Telegram   string `json:"telegram"`
	BotService string `json:"bot_service"`
}

// NewHealthRouter connector 自己的 /health，能响应就说明轮询循环还活着
func NewHealthRouter(version string, backend HealthChecker) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", func(c *gin.Context) {
		botService := "unreachable"
		if backend.HealthCheck(c.Request.Context()) {
			botService = "healthy"
		}
		c.JSON(http.StatusOK, healthResponse{
			Status:     "healthy",
			Service:    "Telegram Connector Service",
			Version:    version,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
			Telegram:   "connected",
			BotService: botService,
		})
	})
	return r
}
