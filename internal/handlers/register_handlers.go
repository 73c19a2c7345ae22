package handlers

import (
	"github.com/dharmawan/portledger/cmd/docs"
	portssvc "github.com/dharmawan/portledger/internal/core/ports/services"
	"github.com/dharmawan/portledger/internal/middleware"
	"github.com/dharmawan/portledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service facades.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/", getHome)
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	authMW := middleware.AuthMiddleware(cfg.JWTSecret)

	v1 := r.Group("/api/v1")
	registerAuthRoutes(v1, services.Auth, authMW)
	registerUserRoutes(v1, services.User, authMW)
	registerStockRoutes(v1, services.Stock, authMW)
	registerRevenueRoutes(v1, services.Revenue, authMW)
	registerSheetsRoutes(v1, services.Sheets, authMW)

	setupSwaggerRoutes(r, cfg)
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
