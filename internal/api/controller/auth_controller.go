package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/leon37/ExpenseBot/internal/api/response"
	"github.com/leon37/ExpenseBot/internal/service"
)

// AuthController 用 API Key 换取 JWT
type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

type TokenRequest struct {
	APIKey string `json:"api_key" binding:"required"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Token 颁发 JWT
// @Summary 颁发 JWT
// @Description 校验 API Key，返回 HS256 签名的 Bearer Token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body TokenRequest true "API Key"
// @Success 200 {object} response.Response{data=controller.TokenResponse}
// @Failure 403 {object} response.Response "API Key 无效"
// @Failure 422 {object} response.Response "参数错误"
// @Router /v1/auth/token [post]
func (ctrl *AuthController) Token(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	token, expiresAt, err := ctrl.authService.IssueToken(req.APIKey)
	switch {
	case errors.Is(err, service.ErrJWTDisabled):
		response.Error(c, http.StatusNotImplemented, "Token exchange is disabled")
		return
	case errors.Is(err, service.ErrInvalidAPIKey):
		slog.Warn("Token exchange rejected", "client_ip", c.ClientIP())
		response.Error(c, http.StatusForbidden, "Could not validate API KEY")
		return
	case err != nil:
		writeError(c, err)
		return
	}

	response.Success(c, TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
	})
}
