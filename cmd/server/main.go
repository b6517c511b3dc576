package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"residence/server/config"
	"residence/server/internal/api"
	"residence/server/internal/database"
	"residence/server/internal/filestore"
	"residence/server/internal/leads"
	"residence/server/internal/media"
	"residence/server/internal/notify"
	"residence/server/internal/queue"
	"residence/server/internal/scheduler"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.WithError(err).Warnf("Unknown log level %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if level < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	contentFile := filestore.NewContentFile(filepath.Join(cfg.DataDir, "data.json"))
	logger.Infof("Using content file at: %s", filepath.Join(cfg.DataDir, "data.json"))

	repo, closeRepo, err := bookingRepository(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize booking storage")
	}
	defer closeRepo()

	notifications := queue.NewLeadQueue(cfg.NotifyQueueSize, logger)
	if cfg.SMTPEnabled() {
		email := notify.NewEmail(notify.EmailConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			User:     cfg.SMTP.User,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			To:       cfg.NotifyEmail,
		}, logger)
		notifications.Subscribe(email.Notify)
		logger.Info("E-mail lead notifications enabled")
	} else {
		logger.Warn("SMTP is not configured, e-mail lead notifications are disabled")
	}
	if cfg.TelegramEnabled() {
		tg := notify.NewTelegram(notify.TelegramConfig{
			BotToken: cfg.Telegram.BotToken,
			ChatID:   cfg.Telegram.ChatID,
		}, logger)
		notifications.Subscribe(tg.Notify)
		logger.Info("Telegram lead notifications enabled")
	}
	notifications.Start()

	backups := scheduler.NewScheduler(logger)
	if cfg.Backup.Interval > 0 {
		backups.Every(cfg.Backup.Interval, scheduler.BackupJob(contentFile, filepath.Join(cfg.DataDir, "backups"), cfg.Backup.Keep, logger))
	}
	backups.Start()

	handler := api.NewHandler(
		contentFile,
		media.NewService(cfg.UploadsDir, "/uploads", logger),
		leads.NewService(repo, notifications, logger),
		logger,
	)

	router := gin.New()
	api.SetupRoutes(router, handler, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.Infof("Starting server on port %d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	backups.Stop()
	if n := notifications.Len(); n > 0 {
		logger.Infof("Delivering %d queued lead notifications before exit", n)
	}
	if err := notifications.Close(); err != nil {
		logger.WithError(err).Warn("Failed to drain notification queue")
	}
	logger.Info("Server stopped")
}

// bookingRepository picks the booking log backend
func bookingRepository(cfg *config.Config, logger *logrus.Logger) (leads.Repository, func(), error) {
	switch cfg.Bookings.Driver {
	case "", "file":
		path := filepath.Join(cfg.DataDir, "bookings.json")
		logger.Infof("Using booking log at: %s", path)
		return filestore.NewBookingLog(path), func() {}, nil
	case "sqlite", "postgres":
		dsn := cfg.Bookings.DSN
		if dsn == "" && cfg.Bookings.Driver == "sqlite" {
			dsn = filepath.Join(cfg.DataDir, "bookings.db")
		}
		if dsn == "" {
			return nil, nil, fmt.Errorf("BOOKINGS_DSN is required for driver %s", cfg.Bookings.Driver)
		}

		db, err := database.NewDatabase(cfg.Bookings.Driver, dsn)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Running database migrations...")
		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		logger.Infof("Using %s booking storage", cfg.Bookings.Driver)
		return db, func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown bookings driver %q", cfg.Bookings.Driver)
	}
}
