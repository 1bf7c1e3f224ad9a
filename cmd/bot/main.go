package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Freeeeeet/booking_bot/internal/app"
	"github.com/Freeeeeet/booking_bot/internal/config"
	"github.com/Freeeeeet/booking_bot/internal/controller"
	"github.com/Freeeeeet/booking_bot/internal/repository"
	"github.com/Freeeeeet/booking_bot/internal/server"
	"github.com/Freeeeeet/booking_bot/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting booking backend",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// База данных
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create db pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	// Миграции
	migrator, err := app.NewMigrator(pool)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Telegram бот; секретный токен вебхука генерируется на каждый запуск
	webhookSecret := uuid.NewString()
	b, err := bot.New(cfg.TelegramToken, bot.WithWebhookSecretToken(webhookSecret))
	if err != nil {
		logger.Fatal("Failed to create telegram bot", zap.Error(err))
	}

	// Репозитории и сервисы
	userRepo := repository.NewUserRepository(pool)
	slotRepo := repository.NewSlotRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	notifier := controller.NewTelegramNotifier(b, cfg.AdminTelegramID, logger)
	bookingService := service.NewBookingService(userRepo, slotRepo, bookingRepo, notifier, logger)

	// Бот-контроллер и вебхук
	botController := controller.NewBotController(b, bookingService, cfg.AdminTelegramID, cfg.FrontendURL, logger)
	botController.RegisterHandlers()
	botController.SetWebhook(ctx, cfg.PublicURL, webhookSecret)
	go botController.StartWebhook(ctx)

	// Фоновые задачи
	scheduler := app.NewScheduler(bookingService, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	// HTTP сервер
	srv := server.New(cfg, bookingService, b.WebhookHandler(), logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Run()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown failed", zap.Error(err))
		}
	}

	logger.Info("Stopped")
}
