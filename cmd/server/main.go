package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/leon37/ExpenseBot/internal/analyzer"
	"github.com/leon37/ExpenseBot/internal/api"
	"github.com/leon37/ExpenseBot/internal/api/controller"
	"github.com/leon37/ExpenseBot/internal/config"
	"github.com/leon37/ExpenseBot/internal/infrastructure/database"
	"github.com/leon37/ExpenseBot/internal/infrastructure/llm"
	"github.com/leon37/ExpenseBot/internal/logger"
	"github.com/leon37/ExpenseBot/internal/repository"
	"github.com/leon37/ExpenseBot/internal/service"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// @title           Expense Bot API
// @version         1.0
// @description     Telegram 记账机器人后端：自然语言消费识别 + 账单存储

// @host            localhost:8000
// @BasePath        /

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 请在输入框中输入 "Bearer <token>" (注意 Bearer 和 token 之间有空格)

const shutdownTimeout = 10 * time.Second

func main() {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}

	// 1. 初始化 Logger
	logger.Setup(os.Stdout, conf.App.LogLevel)
	slog.Info("Expense bot service starting", "version", conf.App.Version, "dev", conf.App.Dev)

	if err := conf.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	// 2. Infra Initialization
	db, err := database.NewConnection(conf.Database, conf.App.Dev) // 这里会自动建表
	if err != nil {
		slog.Error("Failed to connect database", "driver", conf.Database.Driver, "error", err)
		os.Exit(1)
	}
	defer func() { _ = database.Close(db) }()

	provider, err := llm.NewProvider(conf)
	if err != nil {
		slog.Error("Failed to init oracle", "error", err)
		os.Exit(1)
	}
	slog.Info("Oracle ready", "backend", provider.Backend())

	authSvc, err := service.NewAuthService(conf.Auth)
	if err != nil {
		slog.Error("Failed to init auth", "error", err)
		os.Exit(1)
	}

	// 3. Layer Wiring (依赖注入)
	expenseAnalyzer := analyzer.New(provider, conf.App.ExpenseCategories, slog.Default())
	router := newRouter(conf, db, expenseAnalyzer, authSvc)

	// 4. Server Start
	srv := &http.Server{
		Addr:              conf.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func newRouter(conf *config.Config, db *gorm.DB, expenseAnalyzer *analyzer.Analyzer, authSvc *service.AuthService) *gin.Engine {
	if conf.Server.Mode != "" {
		gin.SetMode(conf.Server.Mode)
	}

	userSvc := service.NewUserService(repository.NewUserRepository(db))
	expenseSvc := service.NewExpenseService(expenseAnalyzer, repository.NewExpenseRepo(db), userSvc)
	healthSvc := service.NewHealthService(func(ctx context.Context) error {
		return database.Ping(ctx, db)
	}, conf.App, expenseAnalyzer.Categories())

	return api.NewRouter(authSvc, conf.Auth.APIKeyHeader, api.Controllers{
		Health:  controller.NewHealthController(healthSvc),
		Auth:    controller.NewAuthController(authSvc),
		User:    controller.NewUserController(userSvc),
		Expense: controller.NewExpenseController(expenseSvc),
	})
}
