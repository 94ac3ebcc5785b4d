package types

import (
	"time"
)

// Recipe is the client view of a recipe. Ingredients is a JSON-encoded
// array of "quantity name" strings.
type Recipe struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Ingredients   string    `json:"ingredients"`
	Instructions  string    `json:"instructions"`
	Calories      float64   `json:"calories"`
	Protein       float64   `json:"protein"`
	Carbohydrates float64   `json:"carbohydrates"`
	Fats          float64   `json:"fats"`
	DietaryLabels []string  `json:"dietaryLabels"`
	Category      string    `json:"category"`
	Difficulty    string    `json:"difficulty"`
	PrepTime      int       `json:"prepTime"`
	CookingTime   int       `json:"cookingTime"`
	TotalTime     int       `json:"totalTime"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	CreatedBy     string    `json:"createdBy"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Review is a single rating left on a recipe.
type Review struct {
	ID        string    `json:"id"`
	RecipeID  string    `json:"recipeId"`
	UserID    string    `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	UserName  string    `json:"userName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ImageUploadResponse carries the public URL of an uploaded recipe image.
type ImageUploadResponse struct {
	ImageURL string `json:"imageUrl"`
}
