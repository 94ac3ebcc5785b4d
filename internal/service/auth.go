package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/nutriapp/backend/internal/models"
	"github.com/pageza/nutriapp/backend/internal/repository"
	"github.com/pageza/nutriapp/backend/pkg/types"
)

const tokenIssuer = "nutriapp"

type AuthService struct {
	db        *gorm.DB
	users     *repository.Repository[models.User]
	jwtSecret []byte
	tokenTTL  time.Duration
	google    GoogleVerifier
	log       *zap.Logger
}

func NewAuthService(db *gorm.DB, jwtSecret string, tokenTTL time.Duration, google GoogleVerifier, log *zap.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		db:        db,
		users:     repository.New[models.User](db),
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		google:    google,
		log:       log,
	}
}

// Register creates the account and its empty preferences in one transaction
// and returns a signed token.
func (s *AuthService) Register(ctx context.Context, req *types.RegisterRequest) (string, *models.User, error) {
	email := normalizeEmail(req.Email)
	if _, err := s.users.FindOne(ctx, "email = ?", email); err == nil {
		return "", nil, ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Username:     strings.TrimSpace(req.Username),
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.createWithPreferences(ctx, user); err != nil {
		return "", nil, err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return "", nil, err
	}
	s.log.Info("user registered", zap.String("user_id", user.ID.String()))
	return token, user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindOne(ctx, "email = ?", normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if user.PasswordHash == "" {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	s.touchLastLogin(ctx, user)
	return s.GenerateToken(user)
}

// EmailExists reports whether an account is registered for email.
func (s *AuthService) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", normalizeEmail(email)).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return count > 0, nil
}

// GoogleLogin verifies the Google access token, checks it belongs to email,
// and signs in the matching account, creating it on first use.
func (s *AuthService) GoogleLogin(ctx context.Context, accessToken, email string) (string, error) {
	if s.google == nil {
		return "", fmt.Errorf("%w: google sign-in is not configured", ErrGoogleIdentity)
	}
	identity, err := s.google.Verify(ctx, accessToken)
	if err != nil {
		s.log.Warn("google token rejected", zap.Error(err))
		return "", ErrGoogleIdentity
	}
	email = normalizeEmail(email)
	if !identity.EmailVerified || normalizeEmail(identity.Email) != email {
		return "", ErrGoogleIdentity
	}

	user, err := s.users.FindOne(ctx, "email = ?", email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		user = &models.User{
			Name:     identity.Name,
			Username: usernameFromEmail(email),
			Email:    email,
			GoogleID: identity.Subject,
		}
		if user.Name == "" {
			user.Name = user.Username
		}
		if err := s.createWithPreferences(ctx, user); err != nil {
			return "", err
		}
		s.log.Info("user registered with google", zap.String("user_id", user.ID.String()))
	case err != nil:
		return "", err
	case user.GoogleID == "":
		if _, err := s.users.Update(ctx, map[string]interface{}{"google_id": identity.Subject}, "id = ?", user.ID); err != nil {
			return "", err
		}
	}

	s.touchLastLogin(ctx, user)
	return s.GenerateToken(user)
}

func (s *AuthService) createWithPreferences(ctx context.Context, user *models.User) error {
	return repository.NewUnitOfWork(s.db).Do(ctx, func(tx *gorm.DB) error {
		if err := repository.New[models.User](tx).Create(ctx, user); err != nil {
			return err
		}
		prefs := &models.UserPreferences{UserID: user.ID}
		return repository.New[models.UserPreferences](tx).Create(ctx, prefs)
	})
}

func (s *AuthService) touchLastLogin(ctx context.Context, user *models.User) {
	now := time.Now()
	if _, err := s.users.Update(ctx, map[string]interface{}{"last_login": now}, "id = ?", user.ID); err != nil {
		s.log.Warn("failed to record last login", zap.String("user_id", user.ID.String()), zap.Error(err))
	}
}

// GenerateToken signs an HS256 token whose subject is the user ID.
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		Name: user.DisplayName(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func usernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if len(local) > 50 {
		local = local[:50]
	}
	return local
}
