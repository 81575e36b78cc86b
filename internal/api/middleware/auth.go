package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/leon37/ExpenseBot/internal/api/response"
	"github.com/leon37/ExpenseBot/internal/service"
)

const (
	AuthMethodKey = "authMethod"

	AuthMethodAPIKey = "api_key"
	AuthMethodJWT    = "jwt"

	authFailedMsg = "Could not validate API KEY"
)

// Auth 接受两种凭证：配置的 API Key 请求头，或者 "Authorization: Bearer <token>"
func Auth(auth *service.AuthService, apiKeyHeader string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := c.GetHeader(apiKeyHeader); key != "" {
			if auth.VerifyAPIKey(key) {
				c.Set(AuthMethodKey, AuthMethodAPIKey)
				c.Next()
				return
			}
			reject(c, "invalid api key")
			return
		}

		// 格式通常是 "Bearer <token>"
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			reject(c, "missing credentials")
			return
		}

		if _, err := auth.ParseToken(parts[1]); err != nil {
			reject(c, err.Error())
			return
		}

		c.Set(AuthMethodKey, AuthMethodJWT)
		c.Next()
	}
}

func reject(c *gin.Context, reason string) {
	slog.Warn("Authentication failed",
		"reason", reason,
		"path", c.Request.URL.Path,
		"client_ip", c.ClientIP(),
		"request_id", GetRequestID(c))
	response.Abort(c, http.StatusForbidden, authFailedMsg)
}
