package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/leon37/ExpenseBot/internal/api/controller"
	"github.com/leon37/ExpenseBot/internal/api/middleware"
	"github.com/leon37/ExpenseBot/internal/service"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/leon37/ExpenseBot/docs"
)

// Controllers 所有需要注册路由的 controller
type Controllers struct {
	Health  *controller.HealthController
	Auth    *controller.AuthController
	User    *controller.UserController
	Expense *controller.ExpenseController
}

// NewRouter 创建 gin 引擎并挂好全局中间件和路由
func NewRouter(authSvc *service.AuthService, apiKeyHeader string, ctrls Controllers) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(),
		cors.New(corsConfig(apiKeyHeader)),
		gzip.Gzip(gzip.DefaultCompression),
	)

	RegisterRoutes(r, middleware.Auth(authSvc, apiKeyHeader), ctrls)
	return r
}

// corsConfig 允许任意来源，放行鉴权用到的请求头
func corsConfig(apiKeyHeader string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowAllOrigins = true
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.AddAllowHeaders("Authorization", apiKeyHeader, middleware.RequestIDHeader)
	cfg.AddExposeHeaders(middleware.RequestIDHeader)
	return cfg
}

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, auth gin.HandlerFunc, ctrls Controllers) {
	// 健康检查，不需要鉴权
	r.GET("/health", ctrls.Health.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := r.Group("/v1/auth")
	{
		public.POST("/token", ctrls.Auth.Token)
	}

	// API 组
	protected := r.Group("/v1")
	protected.Use(auth)
	{
		protected.GET("/users", ctrls.User.List)
		protected.POST("/users", ctrls.User.Create)
		protected.GET("/users/:telegram_id", ctrls.User.Get)

		protected.POST("/expenses/:telegram_id", ctrls.Expense.Add)
		protected.GET("/expenses/:telegram_id", ctrls.Expense.List)
		protected.PUT("/expenses/:telegram_id/:id", ctrls.Expense.Update)
		protected.DELETE("/expenses/:telegram_id/:id", ctrls.Expense.Delete)
	}
}
