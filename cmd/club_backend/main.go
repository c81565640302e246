package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "time/tzdata"

	"github.com/SscSPs/club_finance_app/internal/adapters/events"
	"github.com/SscSPs/club_finance_app/internal/core/ports/notifications"
	"github.com/SscSPs/club_finance_app/internal/core/services"
	"github.com/SscSPs/club_finance_app/internal/handlers"
	"github.com/SscSPs/club_finance_app/internal/middleware"
	"github.com/SscSPs/club_finance_app/internal/platform/config"
	"github.com/SscSPs/club_finance_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/club_finance_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Club Finance API
// @version 1.0
// @description Monthly dues and cash ledger of a sports club.

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	if _, err := database.RunMigrations(logger, cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateUp); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	publisher, closePublisher := newPublisher(cfg, logger)
	defer closePublisher()

	servicesContainer, err := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool), publisher)
	if err != nil {
		logger.Error("Failed to build services", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.RequestMetrics(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, servicesContainer)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// newPublisher returns the RabbitMQ publisher when AMQP_URL is set and a
// logging publisher otherwise.
func newPublisher(cfg *config.Config, logger *slog.Logger) (notifications.EventPublisher, func()) {
	if cfg.AMQPURL == "" {
		logger.Info("AMQP_URL not set, events will be logged")
		return events.LogPublisher{}, func() {}
	}
	publisher, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		logger.Warn("Failed to connect to RabbitMQ, events will be logged", slog.String("error", err.Error()))
		return events.LogPublisher{}, func() {}
	}
	logger.Info("Publishing events to RabbitMQ", slog.String("exchange", cfg.AMQPExchange))
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close RabbitMQ publisher", slog.String("error", err.Error()))
		}
	}
}
