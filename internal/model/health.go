package model

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"

	DatabaseConnected    = "connected"
	DatabaseDisconnected = "disconnected"
)

// HealthcheckResponse /health 的响应体
type HealthcheckResponse struct {
	Status            string   `json:"status"`
	Service           string   `json:"service"`
	Version           string   `json:"version"`
	Database          string   `json:"database"`
	ExpenseCategories []string `json:"expense_categories"`
}
