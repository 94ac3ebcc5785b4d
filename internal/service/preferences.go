package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/nutriapp/backend/internal/models"
	"github.com/pageza/nutriapp/backend/internal/repository"
	"github.com/pageza/nutriapp/backend/pkg/nutrition"
	"github.com/pageza/nutriapp/backend/pkg/types"
)

// PreferencesService owns the favorite set and dietary settings of users.
type PreferencesService struct {
	db     *gorm.DB
	limits nutrition.Limits
}

func NewPreferencesService(db *gorm.DB, limits nutrition.Limits) *PreferencesService {
	return &PreferencesService{db: db, limits: limits}
}

// Get returns the preferences of userID, creating the default row on first access.
func (s *PreferencesService) Get(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	return s.getOrCreate(ctx, s.db, userID)
}

func (s *PreferencesService) getOrCreate(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*models.UserPreferences, error) {
	if _, err := repository.New[models.User](db).GetByID(ctx, userID); err != nil {
		return nil, err
	}
	prefs := &models.UserPreferences{UserID: userID}
	err := db.WithContext(ctx).
		Where(models.UserPreferences{UserID: userID}).
		FirstOrCreate(prefs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	return prefs, nil
}

func (s *PreferencesService) Update(ctx context.Context, userID uuid.UUID, req *types.UpdatePreferencesRequest) (*models.UserPreferences, error) {
	prefs, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{}
	if req.DietaryPreference != nil {
		updates["dietary_preference"] = strings.TrimSpace(*req.DietaryPreference)
	}
	if req.CaloricGoal != nil {
		goal := *req.CaloricGoal
		if goal < s.limits.MinCaloricGoal || goal > s.limits.MaxCaloricGoal {
			return nil, fmt.Errorf("%w: caloric goal must be between %d and %d",
				ErrInvalidInput, s.limits.MinCaloricGoal, s.limits.MaxCaloricGoal)
		}
		updates["caloric_goal"] = goal
	}
	if len(updates) == 0 {
		return prefs, nil
	}
	if err := s.db.WithContext(ctx).Model(prefs).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update preferences: %w", err)
	}
	return s.Get(ctx, userID)
}

// AddFavorite inserts recipeID into the favorite set. Adding a member twice
// leaves the set unchanged.
func (s *PreferencesService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) (*models.UserPreferences, error) {
	if _, err := repository.New[models.Recipe](s.db).GetByID(ctx, recipeID); err != nil {
		return nil, err
	}
	return s.mutateFavorites(ctx, userID, func(set *nutrition.FavoriteSet) bool {
		return set.Add(recipeID.String())
	})
}

// RemoveFavorite deletes recipeID from the favorite set. Removing an absent
// member is a no-op.
func (s *PreferencesService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) (*models.UserPreferences, error) {
	return s.mutateFavorites(ctx, userID, func(set *nutrition.FavoriteSet) bool {
		return set.Remove(recipeID.String())
	})
}

// mutateFavorites reads, changes and writes the serialized set inside one
// transaction with the row locked where the database supports it.
func (s *PreferencesService) mutateFavorites(ctx context.Context, userID uuid.UUID, change func(*nutrition.FavoriteSet) bool) (*models.UserPreferences, error) {
	var out *models.UserPreferences
	err := repository.NewUnitOfWork(s.db).Do(ctx, func(tx *gorm.DB) error {
		if _, err := s.getOrCreate(ctx, tx, userID); err != nil {
			return err
		}
		var prefs models.UserPreferences
		q := tx.WithContext(ctx)
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&prefs, "user_id = ?", userID).Error; err != nil {
			return fmt.Errorf("failed to lock preferences: %w", err)
		}

		set := nutrition.DecodeFavorites(prefs.FavoriteRecipes)
		if change(&set) || prefs.FavoriteRecipes != set.Encode() {
			prefs.FavoriteRecipes = set.Encode()
			if err := tx.Model(&prefs).Update("favorite_recipes", prefs.FavoriteRecipes).Error; err != nil {
				return fmt.Errorf("failed to save favorites: %w", err)
			}
		}
		out = &prefs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// FavoriteRecipes loads the recipes in the favorite set, skipping IDs that no
// longer resolve.
func (s *PreferencesService) FavoriteRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	prefs, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := nutrition.DecodeFavorites(prefs.FavoriteRecipes).IDs()
	if len(ids) == 0 {
		return []models.Recipe{}, nil
	}

	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to load favorite recipes: %w", err)
	}

	// keep favorite order
	byID := make(map[string]models.Recipe, len(recipes))
	for _, r := range recipes {
		byID[r.ID.String()] = r
	}
	ordered := make([]models.Recipe, 0, len(recipes))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			ordered = append(ordered, r)
		}
	}
	return ordered, nil
}

// IsNotFound reports whether err means a missing row.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
