package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/nutriapp/backend/internal/logger"
	"github.com/pageza/nutriapp/backend/internal/models"
	"github.com/pageza/nutriapp/backend/internal/service"
	"github.com/pageza/nutriapp/backend/internal/testhelpers"
	"github.com/pageza/nutriapp/backend/pkg/types"
)

const testSecret = "test-secret"

type fakeGoogle struct {
	identity *service.GoogleIdentity
	err      error
}

func (f *fakeGoogle) Verify(ctx context.Context, accessToken string) (*service.GoogleIdentity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

func setupAuth(t *testing.T, google service.GoogleVerifier) (*gorm.DB, *service.AuthService) {
	db := testhelpers.SetupSQLite(t)
	return db, service.NewAuthService(db, testSecret, time.Hour, google, logger.Nop())
}

func TestRegister(t *testing.T) {
	db, svc := setupAuth(t, nil)
	ctx := context.Background()

	token, user, err := svc.Register(ctx, &types.RegisterRequest{
		Name:     "Ada Lovelace",
		Username: "ada",
		Email:    "  Ada@Example.com ",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, "ada", claims.Name)

	var prefs models.UserPreferences
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&prefs).Error)
	assert.Equal(t, "[]", prefs.FavoriteRecipes)

	_, _, err = svc.Register(ctx, &types.RegisterRequest{
		Name: "Other", Username: "other", Email: "ada@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, service.ErrUserExists)
}

func TestLogin(t *testing.T) {
	db, svc := setupAuth(t, nil)
	ctx := context.Background()
	user := testhelpers.CreateUser(t, db, "cook@example.com", "cook")

	token, err := svc.Login(ctx, "COOK@example.com", testhelpers.TestPassword)
	require.NoError(t, err)
	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.NotNil(t, stored.LastLogin)

	_, err = svc.Login(ctx, "cook@example.com", "wrong-password")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", testhelpers.TestPassword)
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestEmailExists(t *testing.T) {
	db, svc := setupAuth(t, nil)
	testhelpers.CreateUser(t, db, "cook@example.com", "cook")

	exists, err := svc.EmailExists(context.Background(), "Cook@Example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.EmailExists(context.Background(), "missing@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGoogleLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account on first use", func(t *testing.T) {
		google := &fakeGoogle{identity: &service.GoogleIdentity{
			Subject: "g-123", Email: "new@example.com", EmailVerified: true, Name: "New Cook",
		}}
		db, svc := setupAuth(t, google)

		token, err := svc.GoogleLogin(ctx, "access", "new@example.com")
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		var user models.User
		require.NoError(t, db.First(&user, "email = ?", "new@example.com").Error)
		assert.Equal(t, "g-123", user.GoogleID)
		assert.Equal(t, "new", user.Username)
		assert.Empty(t, user.PasswordHash)

		// a google-only account cannot sign in with a password
		_, err = svc.Login(ctx, "new@example.com", "")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("links existing account", func(t *testing.T) {
		google := &fakeGoogle{identity: &service.GoogleIdentity{
			Subject: "g-456", Email: "cook@example.com", EmailVerified: true,
		}}
		db, svc := setupAuth(t, google)
		existing := testhelpers.CreateUser(t, db, "cook@example.com", "cook")

		token, err := svc.GoogleLogin(ctx, "access", "cook@example.com")
		require.NoError(t, err)
		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, existing.ID.String(), claims.Subject)

		var user models.User
		require.NoError(t, db.First(&user, "id = ?", existing.ID).Error)
		assert.Equal(t, "g-456", user.GoogleID)
	})

	t.Run("rejects mismatched or unverified identity", func(t *testing.T) {
		google := &fakeGoogle{identity: &service.GoogleIdentity{
			Subject: "g-1", Email: "someone@example.com", EmailVerified: true,
		}}
		_, svc := setupAuth(t, google)
		_, err := svc.GoogleLogin(ctx, "access", "other@example.com")
		assert.ErrorIs(t, err, service.ErrGoogleIdentity)

		google.identity = &service.GoogleIdentity{Subject: "g-1", Email: "other@example.com"}
		_, err = svc.GoogleLogin(ctx, "access", "other@example.com")
		assert.ErrorIs(t, err, service.ErrGoogleIdentity)
	})

	t.Run("rejects token google refuses", func(t *testing.T) {
		_, svc := setupAuth(t, &fakeGoogle{err: errors.New("invalid_token")})
		_, err := svc.GoogleLogin(ctx, "bad", "cook@example.com")
		assert.ErrorIs(t, err, service.ErrGoogleIdentity)
	})

	t.Run("not configured", func(t *testing.T) {
		_, svc := setupAuth(t, nil)
		_, err := svc.GoogleLogin(ctx, "access", "cook@example.com")
		assert.ErrorIs(t, err, service.ErrGoogleIdentity)
	})
}

func TestValidateToken(t *testing.T) {
	db, svc := setupAuth(t, nil)
	user := testhelpers.CreateUser(t, db, "cook@example.com", "cook")

	tests := []struct {
		name  string
		token func() string
	}{
		{"garbage", func() string { return "invalid.token" }},
		{"wrong secret", func() string {
			other := service.NewAuthService(db, "other-secret", time.Hour, nil, logger.Nop())
			tok, err := other.GenerateToken(user)
			require.NoError(t, err)
			return tok
		}},
		{"expired", func() string {
			claims := &types.TokenClaims{RegisteredClaims: jwt.RegisteredClaims{
				Subject:   user.ID.String(),
				Issuer:    "nutriapp",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			}}
			tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
			require.NoError(t, err)
			return tok
		}},
		{"subject is not a user id", func() string {
			claims := &types.TokenClaims{RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "not-a-uuid",
				Issuer:    "nutriapp",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			}}
			tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
			require.NoError(t, err)
			return tok
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.ValidateToken(tt.token())
			assert.ErrorIs(t, err, service.ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}
