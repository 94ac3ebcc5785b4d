package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/nutriapp/backend/internal/models"
	"github.com/pageza/nutriapp/backend/internal/repository"
	"github.com/pageza/nutriapp/backend/pkg/types"
)

// ProfileService handles user profile operations
type ProfileService struct {
	users *repository.Repository[models.User]
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{users: repository.New[models.User](db)}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile changes the username and name. Blank fields are left alone.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error) {
	updates := map[string]interface{}{}
	if u := strings.TrimSpace(req.Username); u != "" {
		updates["username"] = u
	}
	if n := strings.TrimSpace(req.Name); n != "" {
		updates["name"] = n
	}
	if len(updates) > 0 {
		n, err := s.users.Update(ctx, updates, "id = ?", userID)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, ErrNotFound
		}
	}
	return s.users.GetByID(ctx, userID)
}
