package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/pageza/nutriapp/backend/config"
	"github.com/pageza/nutriapp/backend/internal/server"
	"github.com/pageza/nutriapp/backend/internal/testhelpers"
	"github.com/pageza/nutriapp/backend/pkg/nutriclient"
	"github.com/pageza/nutriapp/backend/pkg/nutrition"
	"github.com/pageza/nutriapp/backend/pkg/types"
)

// TestPostgresAndRedis drives the API over PostgreSQL with pgvector and
// Redis, the production backends.
func TestPostgresAndRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupPostgres(t)
	rdb := testhelpers.SetupRedis(t)

	cfg := &config.Config{
		JWTSecret:          "integration-secret",
		TokenTTL:           time.Hour,
		MealPlanLimits:     nutrition.DefaultLimits(),
		MealPlanRateLimit:  2,
		MealPlanRateWindow: time.Minute,
		MealPlanCacheTTL:   time.Minute,
	}
	srv := httptest.NewServer(server.New(cfg, db, zaptest.NewLogger(t), server.Options{Redis: rdb}).Handler())
	defer srv.Close()

	ctx := context.Background()
	anon := nutriclient.New(srv.URL)
	session, _, err := anon.Register(ctx, types.RegisterRequest{
		Name:     "Integration",
		Username: "integration",
		Email:    "integration@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	client := anon.WithSession(session)

	seed := []types.CreateRecipeRequest{
		{Name: "Berry Oats", Category: "Breakfast", Calories: 450, Protein: 12, Ingredients: []string{"60g oats", "80g berries"}, DietaryLabels: []string{"Vegan"}},
		{Name: "Chicken Salad", Category: "Lunch", Calories: 700, Protein: 45, Ingredients: []string{"150g chicken", "1 lettuce"}},
		{Name: "Chicken Curry", Category: "Dinner", Calories: 650, Protein: 40, Ingredients: []string{"200g chicken", "100ml coconut milk"}},
		{Name: "Almonds", Category: "Snack", Calories: 200, Protein: 6, Ingredients: []string{"30g almonds"}, DietaryLabels: []string{"vegan"}},
	}
	ids := make([]uuid.UUID, 0, len(seed))
	for _, req := range seed {
		recipe, err := client.CreateRecipe(ctx, req)
		require.NoError(t, err)
		ids = append(ids, uuid.MustParse(recipe.ID))
	}

	t.Run("search ranks by embedding", func(t *testing.T) {
		found, err := client.FilterRecipes(ctx, types.RecipeFilter{SearchTerm: "chicken"})
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.ElementsMatch(t, []string{"Chicken Salad", "Chicken Curry"}, []string{found[0].Name, found[1].Name})

		vegan, err := client.FilterRecipes(ctx, types.RecipeFilter{DietaryPreference: "Vegan"})
		require.NoError(t, err)
		assert.Len(t, vegan, 2)
	})

	t.Run("concurrent favorite adds keep every member", func(t *testing.T) {
		var wg sync.WaitGroup
		for _, id := range ids {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := nutriclient.NewFavoriteManager(client).Toggle(ctx, id, false)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		favorites := nutriclient.NewFavoriteManager(client)
		_, err := favorites.Refresh(ctx)
		require.NoError(t, err)
		assert.Len(t, favorites.Favorites(), len(ids))
	})

	t.Run("shopping list from favorites", func(t *testing.T) {
		list, err := nutriclient.NewShoppingList(client).GenerateFromFavorites(ctx)
		require.NoError(t, err)
		assert.Len(t, list.Items, 6)
		for _, item := range list.Items {
			if item.IngredientName == "chicken" {
				assert.Equal(t, 350.0, item.Quantity)
			}
		}
	})

	t.Run("plans are cached and generation is rate limited", func(t *testing.T) {
		planner := nutriclient.NewMealPlanner(client, nutrition.DefaultLimits())
		req := nutrition.GenerateRequest{DurationInDays: 3, SpecificCaloricGoal: 2000}

		first, err := planner.Generate(ctx, req)
		require.NoError(t, err)
		second, err := planner.Generate(ctx, req)
		require.NoError(t, err)
		assert.NotEqual(t, first.Plan.ID, second.Plan.ID)

		cached, err := rdb.Exists(ctx, "mealplan:current:"+session.UserID.String()).Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), cached)

		current, err := planner.Current(ctx)
		require.NoError(t, err)
		assert.Equal(t, second.Plan.ID, current.ID)

		_, err = planner.Generate(ctx, req)
		assert.True(t, nutriclient.IsStatus(err, http.StatusTooManyRequests))
		assert.Equal(t, second.Plan.ID, planner.Plan().ID)
	})
}
