package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/nutriapp/backend/internal/api"
	"github.com/pageza/nutriapp/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(allowedOrigins []string, services api.Services, health gin.HandlerFunc, log *zap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(allowedOrigins))

	if health != nil {
		router.GET("/health", health)
	}

	api.RegisterRoutes(router.Group("/api"), services)

	router.NoRoute(middleware.NotFound())

	return router
}
