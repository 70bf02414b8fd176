package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"rentalmanager/config"
	"rentalmanager/internal/api"
	"rentalmanager/internal/database"
	"rentalmanager/internal/models"
	"rentalmanager/internal/notify"
	"rentalmanager/internal/processor"
	"rentalmanager/internal/queue"
	"rentalmanager/internal/scheduler"
	"rentalmanager/internal/telegram"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	} else {
		logger.WithError(err).Warn("Invalid log level, using info")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.WithError(err).Fatal("Server failed")
	}
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	logger.Infof("Using database at: %s", cfg.Server.DBPath)
	db, err := database.NewDatabase(cfg.Server.DBPath, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.MigrateSchema(); err != nil {
		return err
	}
	if err := db.EnsureAdmin(cfg.Server.AdminName, cfg.Server.AdminEmail, cfg.Server.AdminPassword); err != nil {
		return err
	}

	// Warnings and errors raised by background jobs go to the log and, when
	// configured, to Telegram.
	notifier := notify.Notifier(notify.NewLogger(logger))
	bot := telegram.NewService(telegram.Config{
		Enabled:  cfg.Notifications.TelegramEnabled,
		BotToken: cfg.Notifications.TelegramBotToken,
		ChatID:   cfg.Notifications.TelegramChatID,
	}, logger)
	if bot.IsEnabled() {
		notificationQueue := queue.NewNotificationQueue(cfg.Notifications.QueueSize, logger)
		delivery := processor.NewDeliveryProcessor(bot, notificationQueue, cfg, logger)
		delivery.Start()
		defer delivery.Stop()

		notifier = notify.Multi{
			notifier,
			notify.NewAsync(notificationQueue, logger, models.NotifyError, models.NotifyWarning),
		}
	}

	jobs := scheduler.NewScheduler(db, notifier, logger)
	if err := jobs.Start(cfg.Server.OverdueSchedule); err != nil {
		return err
	}
	defer jobs.Stop()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handler := api.NewHandler(db, api.Options{
		Token:    cfg.Server.AuthToken,
		TokenTTL: cfg.Server.TokenTTL,
	}, logger)
	api.SetupRoutes(router, handler)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on port %s", cfg.Server.Port)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
