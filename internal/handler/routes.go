package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/newsurl/internal/api"
)

// SetupRoutes configures all service routes.
func SetupRoutes(router *gin.Engine, resolve *ResolveHandler, health *HealthHandler, metrics *api.Metrics) {
	// Health and metrics sit at the root for standard probes and scrapers.
	router.GET("/health", health.HealthCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Short redirect endpoint for feed readers.
	router.GET("/r", resolve.Redirect)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", health.HealthCheck)

		res := v1.Group("/resolve")
		{
			res.GET("", resolve.Resolve)
			res.POST("", resolve.Resolve)
		}
	}
}
