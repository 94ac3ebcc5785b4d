// Package mapper converts persistence models to the wire shapes in pkg/types
// and pkg/nutrition.
package mapper

import (
	"sort"

	"github.com/pageza/nutriapp/backend/internal/models"
	"github.com/pageza/nutriapp/backend/pkg/nutrition"
	"github.com/pageza/nutriapp/backend/pkg/types"
)

func Recipe(r *models.Recipe) types.Recipe {
	labels := []string(r.DietaryLabels)
	if labels == nil {
		labels = []string{}
	}
	return types.Recipe{
		ID:            r.ID.String(),
		Name:          r.Name,
		Description:   r.Description,
		Ingredients:   r.Ingredients.JSON(),
		Instructions:  r.Instructions,
		Calories:      r.Calories,
		Protein:       r.Protein,
		Carbohydrates: r.Carbohydrates,
		Fats:          r.Fats,
		DietaryLabels: labels,
		Category:      r.Category,
		Difficulty:    nutrition.NormalizeDifficulty(r.Difficulty),
		PrepTime:      r.PrepTime,
		CookingTime:   r.CookingTime,
		TotalTime:     r.TotalTime,
		ImageURL:      r.ImageURL,
		CreatedBy:     r.CreatedBy.String(),
		CreatedAt:     r.CreatedAt,
	}
}

func Recipes(in []models.Recipe) []types.Recipe {
	out := make([]types.Recipe, 0, len(in))
	for i := range in {
		out = append(out, Recipe(&in[i]))
	}
	return out
}

func Review(r *models.Review) types.Review {
	return types.Review{
		ID:        r.ID.String(),
		RecipeID:  r.RecipeID.String(),
		UserID:    r.UserID.String(),
		Rating:    r.Rating,
		Comment:   r.Comment,
		UserName:  r.UserName,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func Reviews(in []models.Review) []types.Review {
	out := make([]types.Review, 0, len(in))
	for i := range in {
		out = append(out, Review(&in[i]))
	}
	return out
}

func Profile(u *models.User) types.Profile {
	return types.Profile{
		ID:       u.ID.String(),
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
	}
}

func Preferences(p *models.UserPreferences) types.UserPreferences {
	return types.UserPreferences{
		UserID:            p.UserID.String(),
		FavoriteRecipes:   p.FavoriteRecipes,
		DietaryPreference: p.DietaryPreference,
		CaloricGoal:       p.CaloricGoal,
	}
}

// MealPlan regroups the flat meal rows into days ordered by day index, and
// meals within a day by position.
func MealPlan(p *models.MealPlan) nutrition.MealPlan {
	meals := make([]models.MealPlanMeal, len(p.Meals))
	copy(meals, p.Meals)
	sort.SliceStable(meals, func(i, j int) bool {
		if meals[i].DayIndex != meals[j].DayIndex {
			return meals[i].DayIndex < meals[j].DayIndex
		}
		return meals[i].Position < meals[j].Position
	})

	days := []nutrition.DailyPlan{}
	for _, m := range meals {
		if len(days) == 0 || days[len(days)-1].Day != m.Day {
			days = append(days, nutrition.DailyPlan{Day: m.Day})
		}
		last := &days[len(days)-1]
		last.Meals = append(last.Meals, nutrition.Meal{
			MealType:      m.MealType,
			RecipeID:      m.RecipeID.String(),
			RecipeName:    m.RecipeName,
			Calories:      m.Calories,
			Protein:       m.Protein,
			Carbohydrates: m.Carbohydrates,
			Fats:          m.Fats,
		})
	}

	return nutrition.MealPlan{
		ID:                 p.ID.String(),
		UserID:             p.UserID.String(),
		DurationInDays:     p.DurationInDays,
		CaloricGoal:        p.CaloricGoal,
		DietaryPreference:  p.DietaryPreference,
		DailyPlans:         days,
		TotalCalories:      p.TotalCalories,
		TotalProtein:       p.TotalProtein,
		TotalCarbohydrates: p.TotalCarbohydrates,
		TotalFats:          p.TotalFats,
		CreatedAt:          p.CreatedAt,
	}
}

func ShoppingListItem(i *models.ShoppingListItem) nutrition.ShoppingListItem {
	return nutrition.ShoppingListItem{
		ID:             i.ID.String(),
		IngredientName: i.IngredientName,
		Quantity:       i.Quantity,
		Unit:           i.Unit,
		IsChecked:      i.IsChecked,
	}
}

// ShoppingList orders items by position.
func ShoppingList(l *models.ShoppingList) nutrition.ShoppingList {
	items := make([]models.ShoppingListItem, len(l.Items))
	copy(items, l.Items)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Position < items[j].Position })

	out := nutrition.ShoppingList{
		ID:        l.ID.String(),
		UserID:    l.UserID.String(),
		Items:     make([]nutrition.ShoppingListItem, 0, len(items)),
		CreatedAt: l.CreatedAt,
	}
	for i := range items {
		out.Items = append(out.Items, ShoppingListItem(&items[i]))
	}
	return out
}
