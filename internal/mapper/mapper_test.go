package mapper

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/nutriapp/backend/internal/models"
)

func TestRecipeNormalizesDifficulty(t *testing.T) {
	dto := Recipe(&models.Recipe{
		ID:          uuid.New(),
		Name:        "Bread",
		Ingredients: models.StringArray{"500g flour", "7g yeast"},
		Difficulty:  "difficult",
	})

	assert.Equal(t, "hard", dto.Difficulty)
	assert.Equal(t, `["500g flour","7g yeast"]`, dto.Ingredients)
	assert.NotNil(t, dto.DietaryLabels)
}

func TestMealPlanGroupsDaysInOrder(t *testing.T) {
	plan := &models.MealPlan{
		ID:            uuid.New(),
		TotalCalories: 3000,
		Meals: []models.MealPlanMeal{
			{DayIndex: 1, Day: "Tuesday", Position: 0, MealType: "Breakfast", RecipeName: "B2"},
			{DayIndex: 0, Day: "Monday", Position: 1, MealType: "Lunch", RecipeName: "L1"},
			{DayIndex: 0, Day: "Monday", Position: 0, MealType: "Breakfast", RecipeName: "B1"},
		},
	}

	dto := MealPlan(plan)
	require.Len(t, dto.DailyPlans, 2)
	assert.Equal(t, "Monday", dto.DailyPlans[0].Day)
	assert.Equal(t, "B1", dto.DailyPlans[0].Meals[0].RecipeName)
	assert.Equal(t, "L1", dto.DailyPlans[0].Meals[1].RecipeName)
	assert.Equal(t, "Tuesday", dto.DailyPlans[1].Day)
	assert.Equal(t, 3000.0, dto.TotalCalories)
	// input order untouched
	assert.Equal(t, "B2", plan.Meals[0].RecipeName)
}

func TestShoppingListOrdersItems(t *testing.T) {
	list := &models.ShoppingList{
		ID: uuid.New(),
		Items: []models.ShoppingListItem{
			{ID: uuid.New(), Position: 1, IngredientName: "eggs", Quantity: 3},
			{ID: uuid.New(), Position: 0, IngredientName: "rice", Quantity: 200, Unit: "g", IsChecked: true},
		},
	}

	dto := ShoppingList(list)
	require.Len(t, dto.Items, 2)
	assert.Equal(t, "rice", dto.Items[0].IngredientName)
	assert.True(t, dto.Items[0].IsChecked)
	assert.Equal(t, "eggs", dto.Items[1].IngredientName)
}

func TestEmptyShoppingListHasNonNilItems(t *testing.T) {
	dto := ShoppingList(&models.ShoppingList{ID: uuid.New()})
	assert.NotNil(t, dto.Items)
	assert.Empty(t, dto.Items)
}
