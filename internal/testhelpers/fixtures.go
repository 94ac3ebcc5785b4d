package testhelpers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/nutriapp/backend/internal/models"
)

// TestPassword is the plain password of every user created by CreateUser.
const TestPassword = "password123"

// CreateUser inserts a user with a bcrypt hash of TestPassword.
func CreateUser(t *testing.T, db *gorm.DB, email, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Name:         "Test " + username,
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// RecipeOption customises a recipe built by CreateRecipe.
type RecipeOption func(*models.Recipe)

func WithCategory(category string) RecipeOption {
	return func(r *models.Recipe) { r.Category = category }
}

func WithCalories(calories float64) RecipeOption {
	return func(r *models.Recipe) { r.Calories = calories }
}

func WithIngredients(lines ...string) RecipeOption {
	return func(r *models.Recipe) { r.Ingredients = models.StringArray(lines) }
}

func WithLabels(labels ...string) RecipeOption {
	return func(r *models.Recipe) { r.DietaryLabels = models.StringArray(labels) }
}

// CreateRecipe inserts a recipe with sensible nutrition defaults.
func CreateRecipe(t *testing.T, db *gorm.DB, name string, opts ...RecipeOption) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		Name:          name,
		Description:   name + " description",
		Ingredients:   models.StringArray{"100g rice"},
		Instructions:  "Cook\nServe",
		Calories:      500,
		Protein:       25,
		Carbohydrates: 60,
		Fats:          15,
		Category:      "Dinner",
		Difficulty:    "easy",
		PrepTime:      10,
		CookingTime:   20,
		TotalTime:     30,
		CreatedBy:     uuid.New(),
	}
	for _, opt := range opts {
		opt(recipe)
	}
	require.NoError(t, db.Create(recipe).Error)
	return recipe
}
