package nutriclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/google/uuid"

	"github.com/pageza/nutriapp/backend/pkg/nutrition"
	"github.com/pageza/nutriapp/backend/pkg/types"
)

// Filter defaults applied to bounds the caller leaves unset.
const (
	DefaultMaxCalories = 3000
	DefaultMinProtein  = 1
	DefaultMaxCarbs    = 500
	DefaultMaxFats     = 500
)

// WithFilterDefaults fills the unset numeric bounds of f.
func WithFilterDefaults(f types.RecipeFilter) types.RecipeFilter {
	fill := func(p **float64, v float64) {
		if *p == nil {
			*p = &v
		}
	}
	fill(&f.MaxCalories, DefaultMaxCalories)
	fill(&f.MinProtein, DefaultMinProtein)
	fill(&f.MaxCarbs, DefaultMaxCarbs)
	fill(&f.MaxFats, DefaultMaxFats)
	return f
}

// FilterRecipes searches the catalog after applying the filter defaults.
func (c *Client) FilterRecipes(ctx context.Context, f types.RecipeFilter) ([]types.Recipe, error) {
	var recipes []types.Recipe
	if err := c.do(ctx, http.MethodPost, "/Recipes/filter", WithFilterDefaults(f), &recipes); err != nil {
		return nil, err
	}
	for i := range recipes {
		recipes[i].Difficulty = nutrition.NormalizeDifficulty(recipes[i].Difficulty)
	}
	return recipes, nil
}

// GetRecipe fetches one recipe with its difficulty normalized.
func (c *Client) GetRecipe(ctx context.Context, id uuid.UUID) (*types.Recipe, error) {
	var recipe types.Recipe
	if err := c.do(ctx, http.MethodGet, "/Recipes/"+id.String(), nil, &recipe); err != nil {
		return nil, err
	}
	recipe.Difficulty = nutrition.NormalizeDifficulty(recipe.Difficulty)
	return &recipe, nil
}

func (c *Client) CreateRecipe(ctx context.Context, req types.CreateRecipeRequest) (*types.Recipe, error) {
	if _, err := c.requireSession(); err != nil {
		return nil, err
	}
	var recipe types.Recipe
	if err := c.do(ctx, http.MethodPost, "/Recipes", req, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Reviews lists a recipe's reviews, newest first.
func (c *Client) Reviews(ctx context.Context, recipeID uuid.UUID) ([]types.Review, error) {
	var reviews []types.Review
	if err := c.do(ctx, http.MethodGet, "/Recipes/"+recipeID.String()+"/reviews", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// AddReview rates a recipe as the session user. The rating and comment
// length are checked before sending.
func (c *Client) AddReview(ctx context.Context, recipeID uuid.UUID, rating int, comment string) (*types.Review, error) {
	session, err := c.requireSession()
	if err != nil {
		return nil, err
	}
	if rating < 1 || rating > 5 {
		return nil, &nutrition.ValidationError{Field: "rating", Message: "Rating must be between 1 and 5"}
	}
	if len([]rune(comment)) > 500 {
		return nil, &nutrition.ValidationError{Field: "comment", Message: "Comment must be 500 characters or fewer"}
	}

	req := types.CreateReviewRequest{
		UserID:   session.UserID.String(),
		Username: session.Name,
		Rating:   rating,
		Comment:  comment,
	}
	var review types.Review
	if err := c.do(ctx, http.MethodPost, "/Recipes/"+recipeID.String()+"/reviews", req, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

// UploadRecipeImage sends an image for a recipe the session user created and
// returns its public URL.
func (c *Client) UploadRecipeImage(ctx context.Context, recipeID uuid.UUID, filename, contentType string, image io.Reader) (string, error) {
	if _, err := c.requireSession(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, image); err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/api/Recipes/"+recipeID.String()+"/image", &buf)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp types.ImageUploadResponse
	if err := c.send(req, &resp); err != nil {
		return "", err
	}
	return resp.ImageURL, nil
}

// ScaledIngredient is an ingredient line adjusted to a serving count.
type ScaledIngredient struct {
	Quantity string
	Name     string
}

// ScaleRecipe returns the recipe's ingredients and nutrition for servings,
// which is clamped to the calculator's range.
func ScaleRecipe(r *types.Recipe, servings int) ([]ScaledIngredient, ScaledNutrition) {
	servings = nutrition.ClampServings(servings)
	ingredients := nutrition.ParseIngredients(r.Ingredients)
	out := make([]ScaledIngredient, 0, len(ingredients))
	for _, ing := range ingredients {
		out = append(out, ScaledIngredient{
			Quantity: nutrition.Scale(ing.Quantity, float64(servings)),
			Name:     ing.Name,
		})
	}
	return out, ScaledNutrition{
		Servings:      servings,
		Calories:      nutrition.ScaleNutrient(r.Calories, servings),
		Protein:       nutrition.ScaleNutrient(r.Protein, servings),
		Carbohydrates: nutrition.ScaleNutrient(r.Carbohydrates, servings),
		Fats:          nutrition.ScaleNutrient(r.Fats, servings),
	}
}

// ScaledNutrition is whole-number nutrition for a serving count.
type ScaledNutrition struct {
	Servings      int
	Calories      int
	Protein       int
	Carbohydrates int
	Fats          int
}
