package handlers

import (
	"log/slog"

	"github.com/SscSPs/credit_notes_app/cmd/docs"
	portssvc "github.com/SscSPs/credit_notes_app/internal/core/ports/services"
	"github.com/SscSPs/credit_notes_app/internal/middleware"
	"github.com/SscSPs/credit_notes_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	registerHealthRoutes(r)

	if err := setupAPIV1Routes(r, cfg, services); err != nil {
		return err
	}

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group with auth, rate limiting and lookup caching
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	rateLimiter, err := middleware.NewMemoryRateLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}

	caches := NewReadCaches(cfg.CacheSize, cfg.CacheTTL)
	v1 := r.Group("/api/v1",
		middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
		middleware.RateLimit(rateLimiter),
	)
	RegisterAPIRoutes(v1, services, caches)

	slog.Info("API routes registered", slog.String("rate_limit", cfg.RateLimit))
	return nil
}

// RegisterAPIRoutes registers every ledger route on rg. Successful writes purge the lookup caches.
func RegisterAPIRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, caches *ReadCaches) {
	rg.Use(purgeOnWrite(caches))

	registerSectionRoutes(rg, services.Section, caches)
	registerNoteRoutes(rg, services.CreditNote, services.Balance)
	registerCommitmentRoutes(rg, services.Commitment)
	registerReturnRoutes(rg, services.Return)
	registerReportingRoutes(rg, services.Balance, services.Audit, caches)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
