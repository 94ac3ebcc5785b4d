package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/nutriapp/backend/pkg/types"
)

type stubValidator map[string]*types.TokenClaims

func (s stubValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	if claims, ok := s[token]; ok {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	validator := stubValidator{
		"good": {RegisteredClaims: jwt.RegisteredClaims{Subject: userID.String()}, Name: "cook"},
		"odd":  {RegisteredClaims: jwt.RegisteredClaims{Subject: "not-a-uuid"}},
	}

	router := gin.New()
	router.GET("/me", AuthMiddleware(validator), func(c *gin.Context) {
		id, ok := UserID(c)
		assert.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "name": c.GetString(UserNameKey)})
	})

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, `{"error":"missing authorization header"}`},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, `{"error":"invalid authorization header format"}`},
		{"no token", "Bearer ", http.StatusUnauthorized, `{"error":"invalid authorization header format"}`},
		{"unknown token", "Bearer nope", http.StatusUnauthorized, `{"error":"invalid token"}`},
		{"bad subject", "Bearer odd", http.StatusUnauthorized, `{"error":"invalid token"}`},
		{"valid", "Bearer good", http.StatusOK, `{"id":"` + userID.String() + `","name":"cook"}`},
		{"lower-case scheme", "bearer good", http.StatusOK, `{"id":"` + userID.String() + `","name":"cook"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)
			assert.JSONEq(t, tt.body, rr.Body.String())
		})
	}
}

func TestUserIDMissing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := UserID(c)
	assert.False(t, ok)

	c.Set(UserIDKey, "not-a-uuid-value")
	_, ok = UserID(c)
	assert.False(t, ok)
}
