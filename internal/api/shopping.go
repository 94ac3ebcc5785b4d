package api

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutriapp/backend/internal/mapper"
	"github.com/pageza/nutriapp/backend/internal/service"
	"github.com/pageza/nutriapp/backend/pkg/types"
)

type ShoppingHandler struct {
	lists service.IShoppingListService
}

func NewShoppingHandler(lists service.IShoppingListService) *ShoppingHandler {
	return &ShoppingHandler{lists: lists}
}

func (h *ShoppingHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	lists := router.Group("/ShoppingLists")
	lists.Use(auth)
	{
		lists.POST("/generate-from-favorites", h.GenerateFromFavorites)
		lists.GET("/:userId/latest", h.Latest)
	}

	router.PUT("/ShoppingListItems/:id/toggle", auth, h.ToggleItem)
}

func (h *ShoppingHandler) GenerateFromFavorites(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.GenerateShoppingListRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if !sameUser(c, userID, req.UserID) {
		return
	}

	list, err := h.lists.GenerateFromFavorites(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.ShoppingList(list))
}

func (h *ShoppingHandler) Latest(c *gin.Context) {
	userID, ok := ownUser(c)
	if !ok {
		return
	}

	list, err := h.lists.Latest(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.ShoppingList(list))
}

// ToggleItem sets the checked flag to the JSON boolean in the body.
func (h *ShoppingHandler) ToggleItem(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})
		return
	}
	var checked *bool
	if err := json.Unmarshal(raw, &checked); err != nil || checked == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be a JSON boolean"})
		return
	}

	item, err := h.lists.SetItemChecked(c.Request.Context(), userID, itemID, *checked)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.ShoppingListItem(item))
}
