// Package httpapi exposes the moonglow computations over HTTP with gin.
package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/thurmanmarka/moonglow/internal/config"
)

// SetupRouter creates and configures the Gin router. now is the clock used
// when a request omits its time parameter; nil means time.Now.
func SetupRouter(cfg config.ServerConfig, now func() time.Time) *gin.Engine {
	router := gin.Default()
	router.Use(requestID())

	// Setup CORS middleware.
	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	router.Use(cors.New(corsConfig))

	handler := NewHandler(now, cfg.MaxEventRangeDays)

	// API v1 routes.
	v1 := router.Group("/v1")
	moon := v1.Group("/moon")
	moon.GET("/illumination", handler.GetIllumination)
	moon.GET("/phase", handler.GetPhase)
	moon.GET("/events", handler.GetEvents)

	// Health check.
	router.GET("/health", handler.HealthCheck)

	return router
}
