package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/nutriapp/backend/internal/models"
	"github.com/pageza/nutriapp/backend/internal/repository"
	"github.com/pageza/nutriapp/backend/pkg/nutrition"
)

// ShoppingListService builds shopping lists from favorite recipes
type ShoppingListService struct {
	db    *gorm.DB
	prefs IPreferencesService
	items *repository.Repository[models.ShoppingListItem]
	log   *zap.Logger
}

func NewShoppingListService(db *gorm.DB, prefs IPreferencesService, log *zap.Logger) *ShoppingListService {
	return &ShoppingListService{
		db:    db,
		prefs: prefs,
		items: repository.New[models.ShoppingListItem](db),
		log:   log,
	}
}

// GenerateFromFavorites merges the ingredients of every favorite recipe into
// a new list. A user without favorites gets a list with no items.
func (s *ShoppingListService) GenerateFromFavorites(ctx context.Context, userID uuid.UUID) (*models.ShoppingList, error) {
	recipes, err := s.prefs.FavoriteRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, r := range recipes {
		lines = append(lines, r.Ingredients...)
	}

	list := &models.ShoppingList{UserID: userID, Items: []models.ShoppingListItem{}}
	for i, agg := range nutrition.AggregateIngredients(lines) {
		list.Items = append(list.Items, models.ShoppingListItem{
			Position:       i,
			IngredientName: agg.IngredientName,
			Quantity:       agg.Quantity,
			Unit:           agg.Unit,
		})
	}

	if err := repository.New[models.ShoppingList](s.db).Create(ctx, list); err != nil {
		return nil, err
	}
	s.log.Info("shopping list generated",
		zap.String("user_id", userID.String()),
		zap.Int("recipes", len(recipes)),
		zap.Int("items", len(list.Items)))
	return list, nil
}

// Latest returns the most recently generated list of a user.
func (s *ShoppingListService) Latest(ctx context.Context, userID uuid.UUID) (*models.ShoppingList, error) {
	var list models.ShoppingList
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load shopping list: %w", err)
	}
	return &list, nil
}

// SetItemChecked sets the flag of one item of a list owned by userID.
// Setting the value it already has is not an error.
func (s *ShoppingListService) SetItemChecked(ctx context.Context, userID, itemID uuid.UUID, checked bool) (*models.ShoppingListItem, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	list, err := repository.New[models.ShoppingList](s.db).GetByID(ctx, item.ShoppingListID)
	if err != nil {
		return nil, err
	}
	if list.UserID != userID {
		return nil, ErrForbidden
	}

	if item.IsChecked != checked {
		if _, err := s.items.Update(ctx, map[string]interface{}{"is_checked": checked}, "id = ?", itemID); err != nil {
			return nil, err
		}
		item.IsChecked = checked
	}
	return item, nil
}
