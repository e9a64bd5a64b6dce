package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kounITV/misouk-express-wapp-sub000/internal/api/handlers"
	"github.com/kounITV/misouk-express-wapp-sub000/internal/api/middleware"
	"github.com/kounITV/misouk-express-wapp-sub000/internal/backend"
	"github.com/kounITV/misouk-express-wapp-sub000/internal/config"
	"github.com/kounITV/misouk-express-wapp-sub000/internal/session"
	"github.com/kounITV/misouk-express-wapp-sub000/internal/workflow"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	newClient := func(token string) handlers.BackendClient {
		return backend.NewClient(cfg.Backend, func() string { return token }, logger)
	}
	deps := &handlers.Deps{
		Backend: newClient,
		Sessions: session.NewManager(func(token string) session.Mutator {
			return newClient(token)
		}, logger),
		Engine: workflow.NewEngine(logger),
		Logger: logger,
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Internal ops routes
	internal := router.Group("/internal")
	internal.Use(middleware.ServiceKeyAuth(cfg.Auth, logger))
	{
		internal.POST("/sessions/reset", handlers.HandleResetSessions(deps))
	}

	// API v1 routes (staff authenticated)
	v1 := router.Group("/v1")
	v1.Use(middleware.StaffAuth(cfg.Auth, logger))
	{
		v1.GET("/orders/tracking/:code", handlers.HandleResolveTracking(deps))
		v1.GET("/session/orders", handlers.HandleListSessionOrders(deps))
		v1.POST("/transitions", handlers.HandleTransition(deps))
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
