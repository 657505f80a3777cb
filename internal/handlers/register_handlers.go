package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"

	"github.com/SscSPs/ledger_service/cmd/docs"
	portssvc "github.com/SscSPs/ledger_service/internal/core/ports/services"
	"github.com/SscSPs/ledger_service/internal/middleware"
	"github.com/SscSPs/ledger_service/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
// A nil writeLimiter disables rate limiting on write routes.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	db Pinger,
	writeLimiter *limiter.Limiter,
) {
	r.GET("/health", getHealth(db))

	setupAPIV1Routes(r, cfg, services, writeLimiter)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	writeLimiter *limiter.Limiter,
) {
	// API keys are checked first; a bearer token is only consulted when no key was sent.
	v1 := r.Group("/api/v1",
		middleware.APIKeyAuth(service.APIKey),
		middleware.AuthMiddleware(cfg.JWTSecret),
	)

	var write gin.HandlersChain
	if writeLimiter != nil {
		write = append(write, middleware.RateLimit(writeLimiter))
	}
	write = append(write, middleware.RequireAuth())

	registerAccountRoutes(v1, write, service.Account, service.Reporting)
	registerJournalRoutes(v1, write, service.Journal)
	registerReportingRoutes(v1, service.Reporting)
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
