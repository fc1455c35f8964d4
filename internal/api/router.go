package api

import (
	"github.com/Conceptual-Machines/songsmith-api/internal/api/handlers"
	apimiddleware "github.com/Conceptual-Machines/songsmith-api/internal/api/middleware"
	"github.com/Conceptual-Machines/songsmith-api/internal/config"
	"github.com/Conceptual-Machines/songsmith-api/internal/metrics"
	"github.com/Conceptual-Machines/songsmith-api/internal/middleware"
	"github.com/Conceptual-Machines/songsmith-api/internal/services"
	"github.com/gin-gonic/gin"
)

// Dependencies bundles the services the router wires into handlers
type Dependencies struct {
	Compositions  *services.CompositionService
	Interpreter   *services.InterpretService
	Share         *services.ShareService
	CloudWatch    *metrics.Client
	SentryMetrics *metrics.SentryMetrics
	Features      handlers.Features
}

func SetupRouter(cfg *config.Config, deps Dependencies, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking(deps.CloudWatch, deps.SentryMetrics))

	router.Use(apimiddleware.CORS())

	counters := &handlers.Counters{}

	healthHandler := handlers.NewHealthHandler(deps.Features)
	router.GET("/health", healthHandler.HealthCheck)

	metricsHandler := handlers.NewMetricsHandler(version, deps.Features, counters)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	v1 := router.Group("/api/v1")
	v1.GET("/catalog", handlers.Catalog)

	compositionHandler := handlers.NewCompositionHandler(deps.Compositions, counters)
	interpretHandler := handlers.NewInterpretHandler(deps.Interpreter, deps.Compositions, counters)

	// Share links are the credential for downloads, so they skip user auth
	v1.GET("/compositions/:id/download", middleware.ShareTokenAuth(deps.Share), compositionHandler.Download)

	compositions := v1.Group("/compositions")
	if cfg.IsGatewayMode() {
		compositions.Use(apimiddleware.GatewayAuth())
	} else {
		compositions.Use(apimiddleware.NoAuth())
	}
	{
		compositions.POST("", compositionHandler.Create)
		compositions.GET("", compositionHandler.List)
		compositions.POST("/interpret", interpretHandler.Interpret)
		compositions.GET("/:id", compositionHandler.Get)
	}

	return router
}
