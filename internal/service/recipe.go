package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/nutriapp/backend/internal/models"
	"github.com/pageza/nutriapp/backend/internal/repository"
	"github.com/pageza/nutriapp/backend/pkg/nutrition"
	"github.com/pageza/nutriapp/backend/pkg/types"
)

// RecipeService handles recipe and review operations
type RecipeService struct {
	db      *gorm.DB
	recipes *repository.Repository[models.Recipe]
	reviews *repository.Repository[models.Review]
	users   *repository.Repository[models.User]
	log     *zap.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, log *zap.Logger) *RecipeService {
	return &RecipeService{
		db:      db,
		recipes: repository.New[models.Recipe](db),
		reviews: repository.New[models.Review](db),
		users:   repository.New[models.User](db),
		log:     log,
	}
}

func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	return s.recipes.GetByID(ctx, id)
}

// FilterRecipes applies the nutrition bounds, the dietary label and the name
// term. On postgres, name matches are ranked by embedding distance.
func (s *RecipeService) FilterRecipes(ctx context.Context, f *types.RecipeFilter) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})

	if f.MaxCalories != nil {
		query = query.Where("calories <= ?", *f.MaxCalories)
	}
	if f.MinProtein != nil {
		query = query.Where("protein >= ?", *f.MinProtein)
	}
	if f.MaxCarbs != nil {
		query = query.Where("carbohydrates <= ?", *f.MaxCarbs)
	}
	if f.MaxFats != nil {
		query = query.Where("fats <= ?", *f.MaxFats)
	}
	if pref := dietaryLabel(f.DietaryPreference); pref != "" {
		query = query.Where(labelLikeClause, labelPattern(pref))
	}

	term := strings.TrimSpace(f.SearchTerm)
	if term != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(term))+"%")
	}

	if term != "" && supportsVectors(s.db) {
		query = query.Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <-> ? NULLS LAST", Vars: []interface{}{GenerateEmbedding(term)}},
		})
	} else {
		query = query.Order("name ASC")
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to filter recipes: %w", err)
	}
	return recipes, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern with ESCAPE '\'.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

const labelLikeClause = `LOWER(dietary_labels) LIKE ? ESCAPE '\'`

// labelPattern matches one quoted element of the serialized label array.
func labelPattern(label string) string {
	return `%"` + escapeLike(label) + `"%`
}

// dietaryLabel lower-cases a preference; "", "all" and "none" mean no filter.
func dietaryLabel(pref string) string {
	p := strings.ToLower(strings.TrimSpace(pref))
	if p == "all" || p == "none" {
		return ""
	}
	return p
}

func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	labels := make(models.StringArray, 0, len(req.DietaryLabels))
	for _, l := range req.DietaryLabels {
		if l = strings.ToLower(strings.TrimSpace(l)); l != "" {
			labels = append(labels, l)
		}
	}
	ingredients := make(models.StringArray, 0, len(req.Ingredients))
	for _, ing := range req.Ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			ingredients = append(ingredients, ing)
		}
	}
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("%w: at least one ingredient is required", ErrInvalidInput)
	}

	total := req.TotalTime
	if total == 0 {
		total = req.PrepTime + req.CookingTime
	}

	recipe := &models.Recipe{
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Ingredients:   ingredients,
		Instructions:  req.Instructions,
		Calories:      req.Calories,
		Protein:       req.Protein,
		Carbohydrates: req.Carbohydrates,
		Fats:          req.Fats,
		DietaryLabels: labels,
		Category:      strings.TrimSpace(req.Category),
		Difficulty:    nutrition.NormalizeDifficulty(req.Difficulty),
		PrepTime:      req.PrepTime,
		CookingTime:   req.CookingTime,
		TotalTime:     total,
		CreatedBy:     userID,
	}

	err := repository.NewUnitOfWork(s.db).Do(ctx, func(tx *gorm.DB) error {
		if err := repository.New[models.Recipe](tx).Create(ctx, recipe); err != nil {
			return err
		}
		return StoreEmbedding(ctx, tx, recipe.ID, recipe.Name+" "+recipe.Description)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("recipe created", zap.String("recipe_id", recipe.ID.String()), zap.String("user_id", userID.String()))
	return recipe, nil
}

// ListReviews returns the reviews of a recipe, newest first.
func (s *RecipeService) ListReviews(ctx context.Context, recipeID uuid.UUID) ([]models.Review, error) {
	if _, err := s.recipes.GetByID(ctx, recipeID); err != nil {
		return nil, err
	}
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// AddReview stores a review with a snapshot of the author's display name.
func (s *RecipeService) AddReview(ctx context.Context, recipeID, userID uuid.UUID, req *types.CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalidInput)
	}
	if len([]rune(req.Comment)) > 500 {
		return nil, fmt.Errorf("%w: comment must be at most 500 characters", ErrInvalidInput)
	}
	if _, err := s.recipes.GetByID(ctx, recipeID); err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	review := &models.Review{
		RecipeID: recipeID,
		UserID:   userID,
		Rating:   req.Rating,
		Comment:  strings.TrimSpace(req.Comment),
		UserName: user.DisplayName(),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *RecipeService) SetImageURL(ctx context.Context, recipeID uuid.UUID, url string) error {
	n, err := s.recipes.Update(ctx, map[string]interface{}{"image_url": url}, "id = ?", recipeID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
