package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/nutriapp/backend/internal/mapper"
	"github.com/pageza/nutriapp/backend/internal/service"
	"github.com/pageza/nutriapp/backend/pkg/types"
)

// PreferencesHandler serves a user's own preferences and favorite set.
type PreferencesHandler struct {
	prefs service.IPreferencesService
}

func NewPreferencesHandler(prefs service.IPreferencesService) *PreferencesHandler {
	return &PreferencesHandler{prefs: prefs}
}

func (h *PreferencesHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	prefs := router.Group("/UserPreferences/:userId")
	prefs.Use(auth)
	{
		prefs.GET("", h.Get)
		prefs.PUT("", h.Update)
		prefs.POST("/favorite-recipes", h.AddFavorite)
		prefs.DELETE("/favorite-recipes/:recipeId", h.RemoveFavorite)
	}
}

func (h *PreferencesHandler) Get(c *gin.Context) {
	userID, ok := ownUser(c)
	if !ok {
		return
	}

	prefs, err := h.prefs.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.Preferences(prefs))
}

func (h *PreferencesHandler) Update(c *gin.Context) {
	userID, ok := ownUser(c)
	if !ok {
		return
	}

	var req types.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefs, err := h.prefs.Update(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.Preferences(prefs))
}

func (h *PreferencesHandler) AddFavorite(c *gin.Context) {
	userID, ok := ownUser(c)
	if !ok {
		return
	}

	var req types.AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	recipeID, err := uuid.Parse(req.RecipeID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipeId"})
		return
	}

	prefs, err := h.prefs.AddFavorite(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.Preferences(prefs))
}

func (h *PreferencesHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := ownUser(c)
	if !ok {
		return
	}
	recipeID, ok := uuidParam(c, "recipeId")
	if !ok {
		return
	}

	prefs, err := h.prefs.RemoveFavorite(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.Preferences(prefs))
}
