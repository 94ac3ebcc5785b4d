// Package api holds the gin handlers of the REST API.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/nutriapp/backend/internal/middleware"
	"github.com/pageza/nutriapp/backend/internal/service"
)

// Services bundles what the handlers depend on. Images and Limiter may be nil.
type Services struct {
	Auth        service.IAuthService
	Profiles    service.IProfileService
	Recipes     service.IRecipeService
	Preferences service.IPreferencesService
	MealPlans   service.IMealPlanService
	Shopping    service.IShoppingListService
	Images      service.IImageService
	Limiter     *middleware.RateLimiter
}

// RegisterRoutes mounts every handler on router, normally the /api group.
func RegisterRoutes(router *gin.RouterGroup, s Services) {
	auth := middleware.AuthMiddleware(s.Auth)

	NewUserHandler(s.Auth, s.Profiles).RegisterRoutes(router, auth)
	NewRecipeHandler(s.Recipes, s.Images).RegisterRoutes(router, auth)
	NewPreferencesHandler(s.Preferences).RegisterRoutes(router, auth)
	NewMealPlanHandler(s.MealPlans, s.Limiter).RegisterRoutes(router, auth)
	NewShoppingHandler(s.Shopping).RegisterRoutes(router, auth)
}
