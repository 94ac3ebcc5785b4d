package nutriclient_test

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
	"gorm.io/gorm"

	"github.com/pageza/nutriapp/backend/config"
	"github.com/pageza/nutriapp/backend/internal/server"
	"github.com/pageza/nutriapp/backend/internal/testhelpers"
	"github.com/pageza/nutriapp/backend/pkg/nutriclient"
	"github.com/pageza/nutriapp/backend/pkg/nutrition"
	"github.com/pageza/nutriapp/backend/pkg/types"
)

// liveAPI runs the real router over SQLite and returns a signed-in client.
func liveAPI(t *testing.T) (*nutriclient.Client, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLite(t)
	cfg := &config.Config{
		JWTSecret:      "e2e-secret",
		TokenTTL:       time.Hour,
		MealPlanLimits: nutrition.DefaultLimits(),
	}
	srv := httptest.NewServer(server.New(cfg, db, nil, server.Options{}).Handler())
	t.Cleanup(srv.Close)

	client := nutriclient.New(srv.URL)
	session, profile, err := client.Register(context.Background(), types.RegisterRequest{
		Name:     "Grace Hopper",
		Username: "grace",
		Email:    "grace@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, profile.ID, session.UserID.String())
	assert.Equal(t, "grace", session.Name)

	return client.WithSession(session), db
}

func TestUsersEndToEnd(t *testing.T) {
	client, _ := liveAPI(t)
	ctx := context.Background()

	anon := client.WithSession(nil)
	session, err := anon.Login(ctx, "grace@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, client.Session().UserID, session.UserID)

	_, err = anon.Login(ctx, "grace@example.com", "wrong-password")
	assert.True(t, nutriclient.IsStatus(err, http.StatusUnauthorized))

	exists, err := anon.EmailExists(ctx, "grace@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	profile, err := client.UpdateProfile(ctx, "Rear Admiral Hopper", "")
	require.NoError(t, err)
	assert.Equal(t, "Rear Admiral Hopper", profile.Name)
	assert.Equal(t, "grace", profile.Username)
}

func TestFavoritesEndToEnd(t *testing.T) {
	client, db := liveAPI(t)
	ctx := context.Background()
	recipe := testhelpers.CreateRecipe(t, db, "Shakshuka")
	favorites := nutriclient.NewFavoriteManager(client)

	isFav, err := favorites.IsFavorite(ctx, recipe.ID)
	require.NoError(t, err)
	assert.False(t, isFav)

	isFav, err = favorites.Toggle(ctx, recipe.ID, isFav)
	require.NoError(t, err)
	assert.True(t, isFav)
	assert.Equal(t, []string{recipe.ID.String()}, favorites.Favorites())

	// a stale "not favorite" adds again; the set stays a set
	isFav, err = favorites.Toggle(ctx, recipe.ID, false)
	require.NoError(t, err)
	assert.True(t, isFav)
	assert.Len(t, favorites.Favorites(), 1)

	isFav, err = favorites.Toggle(ctx, recipe.ID, true)
	require.NoError(t, err)
	assert.False(t, isFav)
	assert.Empty(t, favorites.Favorites())

	t.Run("failure leaves state unchanged", func(t *testing.T) {
		missing := uuid.New()
		isFav, err := favorites.Toggle(ctx, missing, false)
		assert.True(t, nutriclient.IsStatus(err, http.StatusNotFound))
		assert.False(t, isFav)
		assert.Empty(t, favorites.Favorites())
	})

	t.Run("favorite recipes skip deleted ones", func(t *testing.T) {
		stew := testhelpers.CreateRecipe(t, db, "Stew")
		toast := testhelpers.CreateRecipe(t, db, "Toast")
		for _, id := range []uuid.UUID{stew.ID, recipe.ID, toast.ID} {
			_, err := favorites.Toggle(ctx, id, false)
			require.NoError(t, err)
		}
		require.NoError(t, db.Delete(stew).Error)

		recipes, err := favorites.FavoriteRecipes(ctx)
		require.NoError(t, err)
		require.Len(t, recipes, 2)
		assert.Equal(t, "Shakshuka", recipes[0].Name)
		assert.Equal(t, "Toast", recipes[1].Name)
		assert.Len(t, favorites.Favorites(), 3)
	})

	t.Run("preferences", func(t *testing.T) {
		diet, goal := "vegan", 1900
		prefs, err := favorites.UpdatePreferences(ctx, &diet, &goal)
		require.NoError(t, err)
		assert.Equal(t, "vegan", prefs.DietaryPreference)
		assert.Equal(t, 1900, prefs.CaloricGoal)
	})
}

func TestMealPlanEndToEnd(t *testing.T) {
	client, db := liveAPI(t)
	ctx := context.Background()
	planner := nutriclient.NewMealPlanner(client, nutrition.DefaultLimits())

	_, err := planner.Current(ctx)
	assert.ErrorIs(t, err, nutriclient.ErrNoMealPlan)

	testhelpers.CreateRecipe(t, db, "Oats", testhelpers.WithCategory("Breakfast"), testhelpers.WithCalories(500))
	testhelpers.CreateRecipe(t, db, "Salad", testhelpers.WithCategory("Lunch"), testhelpers.WithCalories(700))
	testhelpers.CreateRecipe(t, db, "Stew", testhelpers.WithCategory("Dinner"), testhelpers.WithCalories(600))
	testhelpers.CreateRecipe(t, db, "Apple", testhelpers.WithCategory("Snack"), testhelpers.WithCalories(200))

	result, err := planner.Generate(ctx, nutrition.GenerateRequest{DurationInDays: 7, SpecificCaloricGoal: 2000})
	require.NoError(t, err)
	assert.Len(t, result.Plan.DailyPlans, 7)
	assert.Len(t, result.Week, 7)
	assert.Nil(t, result.Evaluation.Warning)
	assert.InDelta(t, 2000, result.Evaluation.Averages.Calories, 0.001)

	current, err := planner.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, result.Plan.ID, current.ID)
}

func TestShoppingListEndToEnd(t *testing.T) {
	client, db := liveAPI(t)
	ctx := context.Background()
	list := nutriclient.NewShoppingList(client)

	latest, err := list.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)
	assert.Nil(t, list.List())

	empty, err := list.GenerateFromFavorites(ctx)
	require.NoError(t, err)
	require.NotNil(t, empty)
	assert.Empty(t, empty.Items)
	assert.Equal(t, nutrition.Progress{}, list.Progress())

	pancakes := testhelpers.CreateRecipe(t, db, "Pancakes", testhelpers.WithIngredients("200g flour", "2 eggs", "300ml milk"))
	crepes := testhelpers.CreateRecipe(t, db, "Crepes", testhelpers.WithIngredients("100g flour", "1 eggs"))
	favorites := nutriclient.NewFavoriteManager(client)
	for _, id := range []uuid.UUID{pancakes.ID, crepes.ID} {
		_, err := favorites.Toggle(ctx, id, false)
		require.NoError(t, err)
	}

	generated, err := list.GenerateFromFavorites(ctx)
	require.NoError(t, err)
	require.Len(t, generated.Items, 3)
	assert.Equal(t, "flour", generated.Items[0].IngredientName)
	assert.Equal(t, 300.0, generated.Items[0].Quantity)
	assert.Equal(t, "g", generated.Items[0].Unit)
	assert.Equal(t, nutrition.Progress{Checked: 0, Total: 3}, list.Progress())

	var wg sync.WaitGroup
	errs := make([]error, len(generated.Items))
	for i, item := range generated.Items {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = list.ToggleItem(ctx, item.ID, item.IsChecked)
		}()
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, nutrition.Progress{Checked: 3, Total: 3}, list.Progress())
	assert.Equal(t, 100.0, list.Progress().Percent())

	require.NoError(t, list.ToggleItem(ctx, generated.Items[0].ID, true))
	assert.Equal(t, 2, list.Progress().Checked)
	assert.False(t, list.InFlight(generated.Items[0].ID))

	err = list.ToggleItem(ctx, uuid.NewString(), false)
	assert.True(t, nutriclient.IsStatus(err, http.StatusNotFound))
	assert.Equal(t, 2, list.Progress().Checked)
}

func TestCatalogEndToEnd(t *testing.T) {
	client, db := liveAPI(t)
	ctx := context.Background()
	testhelpers.CreateRecipe(t, db, "Light Soup", testhelpers.WithCalories(250), testhelpers.WithLabels("vegan"))

	recipe, err := client.CreateRecipe(ctx, types.CreateRecipeRequest{
		Name:        "Pesto Pasta",
		Ingredients: []string{"100g pasta", "30g pesto"},
		Calories:    650,
		Difficulty:  "difficult",
		PrepTime:    5,
		CookingTime: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, client.Session().UserID.String(), recipe.CreatedBy)

	fetched, err := client.GetRecipe(ctx, uuid.MustParse(recipe.ID))
	require.NoError(t, err)
	assert.Equal(t, nutrition.DifficultyHard, fetched.Difficulty)
	assert.Equal(t, 17, fetched.TotalTime)

	vegan, err := client.FilterRecipes(ctx, types.RecipeFilter{DietaryPreference: "vegan"})
	require.NoError(t, err)
	require.Len(t, vegan, 1)
	assert.Equal(t, "Light Soup", vegan[0].Name)

	_, err = client.AddReview(ctx, uuid.MustParse(recipe.ID), 0, "")
	var verr *nutrition.ValidationError
	require.ErrorAs(t, err, &verr)

	review, err := client.AddReview(ctx, uuid.MustParse(recipe.ID), 5, "Quick and tasty")
	require.NoError(t, err)
	assert.Equal(t, "grace", review.UserName)

	reviews, err := client.Reviews(ctx, uuid.MustParse(recipe.ID))
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)
}
