package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/asset_depreciation/cmd/docs"
	portssvc "github.com/SscSPs/asset_depreciation/internal/core/ports/services"
	"github.com/SscSPs/asset_depreciation/internal/dto"
	"github.com/SscSPs/asset_depreciation/internal/middleware"
	"github.com/SscSPs/asset_depreciation/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	dto.RegisterValidators()

	if len(cfg.CORSAllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
		r.Use(cors.New(corsConfig))
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	var runGuards []gin.HandlerFunc
	if cfg.RunRateLimit != "" {
		limiterInstance, err := middleware.NewLimiter(cfg.RunRateLimit)
		if err != nil {
			slog.Warn("Invalid RUN_RATE_LIMIT, manual runs are not rate limited",
				slog.String("rate", cfg.RunRateLimit),
				slog.String("error", err.Error()))
		} else {
			runGuards = append(runGuards, middleware.RateLimit(limiterInstance))
		}
	}

	registerDepreciationRoutes(v1, service.Depreciation, runGuards...)
	registerScheduleRoutes(v1, service.Schedule)
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
