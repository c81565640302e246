package handlers

import (
	portssvc "github.com/SscSPs/club_finance_app/internal/core/ports/services"
	"github.com/SscSPs/club_finance_app/internal/middleware"
	"github.com/SscSPs/club_finance_app/internal/platform/config"
	"github.com/SscSPs/club_finance_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	registerValidators()

	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Public authentication routes
	registerAuthRoutes(r, cfg, services.User)

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerUserRoutes(v1, service.User)
	registerPlayerRoutes(v1, service.Player)
	registerDuesRoutes(v1, service.Dues)
	registerTransactionRoutes(v1, service.Transaction)
	registerFinanceRoutes(v1, service.Reporting, cfg.ClubLocation)
}
