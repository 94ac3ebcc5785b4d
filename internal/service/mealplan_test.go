package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/nutriapp/backend/internal/logger"
	"github.com/pageza/nutriapp/backend/internal/models"
	"github.com/pageza/nutriapp/backend/internal/service"
	"github.com/pageza/nutriapp/backend/internal/testhelpers"
	"github.com/pageza/nutriapp/backend/pkg/nutrition"
)

type memoryPlanCache struct {
	mu    sync.Mutex
	plans map[uuid.UUID]nutrition.MealPlan
	hits  int
}

func newMemoryPlanCache() *memoryPlanCache {
	return &memoryPlanCache{plans: map[uuid.UUID]nutrition.MealPlan{}}
}

func (c *memoryPlanCache) Get(_ context.Context, userID uuid.UUID) (*nutrition.MealPlan, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.plans[userID]
	if ok {
		c.hits++
	}
	return &p, ok
}

func (c *memoryPlanCache) Set(_ context.Context, userID uuid.UUID, plan *nutrition.MealPlan) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.plans[userID] = *plan
}

func (c *memoryPlanCache) Delete(_ context.Context, userID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.plans, userID)
}

func setupMealPlans(t *testing.T, cache service.PlanCache) (*gorm.DB, *service.MealPlanService, *models.User) {
	db := testhelpers.SetupSQLite(t)
	prefs := service.NewPreferencesService(db, nutrition.DefaultLimits())
	svc := service.NewMealPlanService(db, prefs, nutrition.DefaultLimits(), cache, logger.Nop())
	user := testhelpers.CreateUser(t, db, "cook@example.com", "cook")

	testhelpers.CreateRecipe(t, db, "Oats", testhelpers.WithCategory("Breakfast"), testhelpers.WithCalories(500), testhelpers.WithLabels("vegan"))
	testhelpers.CreateRecipe(t, db, "Wrap", testhelpers.WithCategory("Lunch"), testhelpers.WithCalories(700))
	testhelpers.CreateRecipe(t, db, "Curry", testhelpers.WithCategory("Dinner"), testhelpers.WithCalories(600), testhelpers.WithLabels("vegan"))
	testhelpers.CreateRecipe(t, db, "Nuts", testhelpers.WithCategory("Snack"), testhelpers.WithCalories(200), testhelpers.WithLabels("vegan"))
	return db, svc, user
}

func TestGenerateMealPlan(t *testing.T) {
	_, svc, user := setupMealPlans(t, nil)

	plan, err := svc.Generate(context.Background(), user.ID, &nutrition.GenerateRequest{
		DurationInDays:      3,
		SpecificCaloricGoal: 2000,
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), plan.UserID)
	assert.Equal(t, 2000, plan.CaloricGoal)
	require.Len(t, plan.DailyPlans, 3)
	assert.Equal(t, "Monday", plan.DailyPlans[0].Day)
	assert.Equal(t, "Wednesday", plan.DailyPlans[2].Day)
	for _, day := range plan.DailyPlans {
		require.Len(t, day.Meals, 4)
		assert.Equal(t, nutrition.MealTypeBreakfast, day.Meals[0].MealType)
	}
	assert.Equal(t, 3*2000.0, plan.TotalCalories)

	eval := nutrition.DefaultLimits().Evaluate(plan, 2000)
	assert.Nil(t, eval.Warning)
}

func TestGenerateMealPlanValidation(t *testing.T) {
	_, svc, user := setupMealPlans(t, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		req  nutrition.GenerateRequest
	}{
		{"duration too short", nutrition.GenerateRequest{DurationInDays: 0, SpecificCaloricGoal: 2000}},
		{"duration too long", nutrition.GenerateRequest{DurationInDays: 15, SpecificCaloricGoal: 2000}},
		{"goal too low", nutrition.GenerateRequest{DurationInDays: 7, SpecificCaloricGoal: 1199}},
		{"goal too high", nutrition.GenerateRequest{DurationInDays: 7, SpecificCaloricGoal: 4001}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Generate(ctx, user.ID, &tt.req)
			assert.ErrorIs(t, err, service.ErrInvalidInput)
			var verr *nutrition.ValidationError
			assert.True(t, errors.As(err, &verr))
		})
	}
}

func TestGenerateUsesPreferences(t *testing.T) {
	db, svc, user := setupMealPlans(t, nil)
	ctx := context.Background()
	require.NoError(t, db.Create(&models.UserPreferences{
		UserID: user.ID, DietaryPreference: "vegan", CaloricGoal: 1500,
	}).Error)

	plan, err := svc.Generate(ctx, user.ID, &nutrition.GenerateRequest{
		DurationInDays:          1,
		ConsiderUserPreferences: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1500, plan.CaloricGoal)
	assert.Equal(t, "vegan", plan.DietaryPreference)
	for _, m := range plan.DailyPlans[0].Meals {
		assert.NotEqual(t, "Wrap", m.RecipeName)
	}

	// an explicit goal wins over the stored one
	plan, err = svc.Generate(ctx, user.ID, &nutrition.GenerateRequest{
		DurationInDays:          1,
		ConsiderUserPreferences: true,
		SpecificCaloricGoal:     2500,
	})
	require.NoError(t, err)
	assert.Equal(t, 2500, plan.CaloricGoal)
}

func TestGenerateWithoutMatchingRecipes(t *testing.T) {
	_, svc, user := setupMealPlans(t, nil)
	diet := "carnivore"
	_, err := svc.Generate(context.Background(), user.ID, &nutrition.GenerateRequest{
		DurationInDays:            2,
		SpecificCaloricGoal:       2000,
		SpecificDietaryPreference: &diet,
	})
	assert.ErrorIs(t, err, service.ErrNoRecipes)
}

func TestCurrentMealPlan(t *testing.T) {
	db, svc, user := setupMealPlans(t, nil)
	ctx := context.Background()

	_, err := svc.Current(ctx, user.ID)
	assert.ErrorIs(t, err, service.ErrNoMealPlan)

	first, err := svc.Generate(ctx, user.ID, &nutrition.GenerateRequest{DurationInDays: 2, SpecificCaloricGoal: 2000})
	require.NoError(t, err)
	second, err := svc.Generate(ctx, user.ID, &nutrition.GenerateRequest{DurationInDays: 3, SpecificCaloricGoal: 1800})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	current, err := svc.Current(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)
	assert.Equal(t, second.DailyPlans, current.DailyPlans)

	var currentCount int64
	require.NoError(t, db.Model(&models.MealPlan{}).Where("user_id = ? AND is_current = ?", user.ID, true).Count(&currentCount).Error)
	assert.Equal(t, int64(1), currentCount)
}

func TestCurrentMealPlanUsesCache(t *testing.T) {
	cache := newMemoryPlanCache()
	_, svc, user := setupMealPlans(t, cache)
	ctx := context.Background()

	plan, err := svc.Generate(ctx, user.ID, &nutrition.GenerateRequest{DurationInDays: 1, SpecificCaloricGoal: 2000})
	require.NoError(t, err)

	current, err := svc.Current(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, current.ID)
	assert.Equal(t, 1, cache.hits)

	cache.Delete(ctx, user.ID)
	current, err = svc.Current(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, current.ID)
	_, cached := cache.plans[user.ID]
	assert.True(t, cached)
}
