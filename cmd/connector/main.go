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

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/leon37/ExpenseBot/internal/config"
	"github.com/leon37/ExpenseBot/internal/connector"
	"github.com/leon37/ExpenseBot/internal/logger"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}
	logger.Setup(os.Stdout, conf.App.LogLevel)

	if err := conf.ValidateConnector(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	botAPI, err := tgbotapi.NewBotAPI(conf.Telegram.BotToken)
	if err != nil {
		slog.Error("Failed to init telegram bot", "error", err)
		os.Exit(1)
	}
	slog.Info("Telegram bot authorized", "username", botAPI.Self.UserName)

	client := connector.NewBotServiceClient(conf.Telegram, conf.Auth)
	bot := connector.NewBot(botAPI, client, slog.Default())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !client.HealthCheck(ctx) {
		// 不阻塞启动，bot service 可能还没起来
		slog.Warn("Bot service is not healthy yet", "url", conf.Telegram.ServiceURL)
	}

	healthSrv := &http.Server{
		Addr:              conf.Telegram.HealthPort,
		Handler:           connector.NewHealthRouter(conf.App.Version, client),
		ReadHeaderTimeout: 10 * time.Second,
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botAPI.GetUpdatesChan(u)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bot.Run(gctx, updates)
	})
	g.Go(func() error {
		slog.Info("Health server listening", "addr", healthSrv.Addr)
		if err := healthSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down connector")
		botAPI.StopReceivingUpdates()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return healthSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Connector stopped with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Connector stopped")
}
