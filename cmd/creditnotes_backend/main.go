package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/credit_notes_app/internal/adapters/messaging/amqp"
	portssvc "github.com/SscSPs/credit_notes_app/internal/core/ports/services"
	"github.com/SscSPs/credit_notes_app/internal/core/services"
	"github.com/SscSPs/credit_notes_app/internal/handlers"
	"github.com/SscSPs/credit_notes_app/internal/middleware"
	"github.com/SscSPs/credit_notes_app/internal/platform/clock"
	"github.com/SscSPs/credit_notes_app/internal/platform/config"
	"github.com/SscSPs/credit_notes_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/credit_notes_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Credit Notes API
// @version 1.0
// @description Budgetary credit notes, section allocations, commitments and returns.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if cfg.RunMigrations {
		logger.Info("Running database migrations...")
		if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	today, err := clock.NewSystem(cfg.Timezone)
	if err != nil {
		logger.Error("Failed to load time zone", slog.String("timezone", cfg.Timezone), slog.String("error", err.Error()))
		os.Exit(1)
	}

	// A nil interface, not a nil *amqp.Notifier, disables publication.
	var notifier portssvc.ChangeNotifier
	if cfg.AMQPURL != "" {
		n, err := amqp.NewNotifier(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
		if err != nil {
			logger.Warn("Ledger change notifications disabled", slog.String("error", err.Error()))
		} else {
			defer n.Close()
			notifier = n
			logger.Info("Ledger change notifications enabled", slog.String("exchange", cfg.AMQPExchange))
		}
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(repos, today, notifier)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, serviceContainer); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
