// Package api wires the HTTP routes and middleware.
package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/gosocial/internal/handlers"
	"github.com/jonesrussell/gosocial/internal/logger"
)

const (
	corsMaxAgeHours = 12
)

func NewRouter(service handlers.AgentService, log logger.Logger) *gin.Engine {
	router := gin.New()

	// CORS middleware - must be first
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"Authorization", "accept", "origin",
			"Cache-Control", "X-Requested-With",
		},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        corsMaxAgeHours * time.Hour,
	}))

	// Middleware
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	agentHandler := handlers.NewAgentHandler(service, log)

	// Agent endpoints
	v1 := router.Group("/api/v1")
	agentGroup := v1.Group("/agent")
	agentGroup.POST("/analyze", agentHandler.Analyze)
	agentGroup.POST("/recommendations", agentHandler.Recommendations)
	agentGroup.GET("/history", agentHandler.History)
	agentGroup.GET("/recent", agentHandler.Recent)
	agentGroup.GET("/health", agentHandler.Health)
	agentGroup.GET("/platforms", agentHandler.Platforms)

	return router
}

func ginLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		log.Info("HTTP request",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status_code", statusCode),
			logger.String("client_ip", c.ClientIP()),
			logger.Duration("duration", duration),
		)
	}
}
