package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutriapp/backend/internal/middleware"
	"github.com/pageza/nutriapp/backend/internal/service"
	"github.com/pageza/nutriapp/backend/pkg/nutrition"
)

type MealPlanHandler struct {
	plans   service.IMealPlanService
	limiter *middleware.RateLimiter
}

func NewMealPlanHandler(plans service.IMealPlanService, limiter *middleware.RateLimiter) *MealPlanHandler {
	return &MealPlanHandler{plans: plans, limiter: limiter}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	plans := router.Group("/MealPlans")
	plans.Use(auth)
	{
		plans.GET("/:userId/current", h.Current)

		generate := []gin.HandlerFunc{h.Generate}
		if h.limiter != nil {
			generate = append([]gin.HandlerFunc{h.limiter.Middleware()}, generate...)
		}
		plans.POST("/generate", generate...)
	}
}

func (h *MealPlanHandler) Generate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req nutrition.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !sameUser(c, userID, req.UserID) {
		return
	}

	plan, err := h.plans.Generate(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// Current answers 404 when the user has never generated a plan.
func (h *MealPlanHandler) Current(c *gin.Context) {
	userID, ok := ownUser(c)
	if !ok {
		return
	}

	plan, err := h.plans.Current(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}
