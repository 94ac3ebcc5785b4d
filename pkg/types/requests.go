package types

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CheckEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// GoogleLoginRequest exchanges a Google access token for an API token
type GoogleLoginRequest struct {
	AccessToken string `json:"accessToken" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
}

// UpdateProfileRequest represents a request to update a user's profile
type UpdateProfileRequest struct {
	UserID   string `json:"userId"`
	Username string `json:"username" binding:"omitempty,max=50"`
	Name     string `json:"name"`
}

// RecipeFilter selects recipes by nutrition ceilings and floors. A nil
// pointer leaves that bound open.
type RecipeFilter struct {
	DietaryPreference string   `json:"dietaryPreference,omitempty"`
	MaxCalories       *float64 `json:"maxCalories,omitempty"`
	MinProtein        *float64 `json:"minProtein,omitempty"`
	MaxCarbs          *float64 `json:"maxCarbs,omitempty"`
	MaxFats           *float64 `json:"maxFats,omitempty"`
	SearchTerm        string   `json:"searchTerm,omitempty"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Name          string   `json:"name" binding:"required,max=255"`
	Description   string   `json:"description"`
	Ingredients   []string `json:"ingredients" binding:"required,min=1"`
	Instructions  string   `json:"instructions"`
	Calories      float64  `json:"calories" binding:"gte=0"`
	Protein       float64  `json:"protein" binding:"gte=0"`
	Carbohydrates float64  `json:"carbohydrates" binding:"gte=0"`
	Fats          float64  `json:"fats" binding:"gte=0"`
	DietaryLabels []string `json:"dietaryLabels"`
	Category      string   `json:"category" binding:"max=50"`
	Difficulty    string   `json:"difficulty"`
	PrepTime      int      `json:"prepTime" binding:"gte=0"`
	CookingTime   int      `json:"cookingTime" binding:"gte=0"`
	TotalTime     int      `json:"totalTime" binding:"gte=0"`
	CreatedBy     string   `json:"createdBy"`
}

// CreateReviewRequest carries a rating. The user and name snapshot come from
// the token, so userId and username in the body are informational.
type CreateReviewRequest struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comment  string `json:"comment" binding:"max=500"`
}

type AddFavoriteRequest struct {
	RecipeID string `json:"recipeId" binding:"required"`
}

// UpdatePreferencesRequest changes stored preferences. Nil fields are kept.
type UpdatePreferencesRequest struct {
	DietaryPreference *string `json:"dietaryPreference"`
	CaloricGoal       *int    `json:"caloricGoal"`
}

type GenerateShoppingListRequest struct {
	UserID string `json:"userId"`
}
