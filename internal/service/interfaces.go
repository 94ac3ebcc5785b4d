package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/pageza/nutriapp/backend/internal/models"
	"github.com/pageza/nutriapp/backend/pkg/nutrition"
	"github.com/pageza/nutriapp/backend/pkg/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (string, *models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	GoogleLogin(ctx context.Context, accessToken, email string) (string, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	FilterRecipes(ctx context.Context, filter *types.RecipeFilter) ([]models.Recipe, error)
	CreateRecipe(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error)
	ListReviews(ctx context.Context, recipeID uuid.UUID) ([]models.Review, error)
	AddReview(ctx context.Context, recipeID, userID uuid.UUID, req *types.CreateReviewRequest) (*models.Review, error)
	SetImageURL(ctx context.Context, recipeID uuid.UUID, url string) error
}

// IPreferencesService manages the favorite set and dietary settings
type IPreferencesService interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error)
	Update(ctx context.Context, userID uuid.UUID, req *types.UpdatePreferencesRequest) (*models.UserPreferences, error)
	AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) (*models.UserPreferences, error)
	RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) (*models.UserPreferences, error)
	FavoriteRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error)
}

// IMealPlanService generates and serves the current plan of a user
type IMealPlanService interface {
	Generate(ctx context.Context, userID uuid.UUID, req *nutrition.GenerateRequest) (*nutrition.MealPlan, error)
	Current(ctx context.Context, userID uuid.UUID) (*nutrition.MealPlan, error)
}

// IShoppingListService builds shopping lists and tracks item state
type IShoppingListService interface {
	GenerateFromFavorites(ctx context.Context, userID uuid.UUID) (*models.ShoppingList, error)
	Latest(ctx context.Context, userID uuid.UUID) (*models.ShoppingList, error)
	SetItemChecked(ctx context.Context, userID, itemID uuid.UUID, checked bool) (*models.ShoppingListItem, error)
}

// IImageService stores recipe images
type IImageService interface {
	UploadRecipeImage(ctx context.Context, userID, recipeID uuid.UUID, contentType string, body io.Reader) (string, error)
}
