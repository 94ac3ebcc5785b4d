package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/nutriapp/backend/internal/middleware"
	"github.com/pageza/nutriapp/backend/internal/service"
	"github.com/pageza/nutriapp/backend/pkg/nutrition"
)

// respondError maps service errors onto status codes.
func respondError(c *gin.Context, err error) {
	var verr *nutrition.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNoMealPlan):
		c.JSON(http.StatusNotFound, gin.H{"error": "no current meal plan"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
	case errors.Is(err, service.ErrGoogleIdentity), errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": "an account with this email already exists"})
	case errors.Is(err, service.ErrNoRecipes):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	}
	return id, ok
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// ownUser resolves the :userId path parameter and requires it to be the
// authenticated user.
func ownUser(c *gin.Context) (uuid.UUID, bool) {
	caller, ok := currentUser(c)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := uuidParam(c, "userId")
	if !ok {
		return uuid.Nil, false
	}
	if id != caller {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return uuid.Nil, false
	}
	return id, true
}

// sameUser checks an optional user ID sent in a request body.
func sameUser(c *gin.Context, caller uuid.UUID, bodyUserID string) bool {
	if bodyUserID == "" {
		return true
	}
	id, err := uuid.Parse(bodyUserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId"})
		return false
	}
	if id != caller {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return false
	}
	return true
}
