package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/leon37/ExpenseBot/internal/service"
)

type HealthController struct {
	service *service.HealthService
}

func NewHealthController(s *service.HealthService) *HealthController {
	return &HealthController{service: s}
}

// Health 健康检查
// @Summary 健康检查
// @Description 数据库连通性 + 当前配置的消费分类。永远返回 200，状态看 status 字段
// @Tags Health
// @Produce json
// @Success 200 {object} model.HealthcheckResponse
// @Router /health [get]
func (ctrl *HealthController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.service.Check(c.Request.Context()))
}
