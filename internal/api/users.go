package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutriapp/backend/internal/mapper"
	"github.com/pageza/nutriapp/backend/internal/service"
	"github.com/pageza/nutriapp/backend/pkg/types"
)

type UserHandler struct {
	auth     service.IAuthService
	profiles service.IProfileService
}

func NewUserHandler(auth service.IAuthService, profiles service.IProfileService) *UserHandler {
	return &UserHandler{auth: auth, profiles: profiles}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	users := router.Group("/Users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.GET("/profile", auth, h.GetProfile)
		users.PUT("/update-profile", auth, h.UpdateProfile)
	}

	google := router.Group("/auth/google")
	{
		google.POST("/check-email", h.CheckEmail)
		google.POST("/login", h.GoogleLogin)
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, user, err := h.auth.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, types.AuthResponse{Token: token, User: mapper.Profile(user)})
}

// Login answers with the bare token as text/plain.
func (h *UserHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.String(http.StatusOK, token)
}

func (h *UserHandler) CheckEmail(c *gin.Context) {
	var req types.CheckEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	exists, err := h.auth.EmailExists(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.CheckEmailResponse{Exists: exists})
}

func (h *UserHandler) GoogleLogin(c *gin.Context) {
	var req types.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.auth.GoogleLogin(c.Request.Context(), req.AccessToken, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.String(http.StatusOK, token)
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.Profile(user))
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !sameUser(c, userID, req.UserID) {
		return
	}

	user, err := h.profiles.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapper.Profile(user))
}
