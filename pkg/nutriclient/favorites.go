package nutriclient

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/pageza/nutriapp/backend/pkg/nutrition"
	"github.com/pageza/nutriapp/backend/pkg/types"
)

// FavoriteManager tracks the session user's favorite recipes. Local state
// changes only after the server confirms a change.
type FavoriteManager struct {
	client *Client

	mu    sync.Mutex
	set   nutrition.FavoriteSet
	prefs *types.UserPreferences
}

func NewFavoriteManager(client *Client) *FavoriteManager {
	return &FavoriteManager{client: client}
}

// Refresh reloads the preferences and the favorite set from the server.
func (f *FavoriteManager) Refresh(ctx context.Context) (*types.UserPreferences, error) {
	session, err := f.client.requireSession()
	if err != nil {
		return nil, err
	}
	var prefs types.UserPreferences
	if err := f.client.do(ctx, http.MethodGet, "/UserPreferences/"+session.UserID.String(), nil, &prefs); err != nil {
		return nil, err
	}
	f.apply(&prefs)
	return &prefs, nil
}

// IsFavorite fetches the preferences and reports membership of recipeID.
func (f *FavoriteManager) IsFavorite(ctx context.Context, recipeID uuid.UUID) (bool, error) {
	if _, err := f.Refresh(ctx); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.set.Contains(recipeID.String()), nil
}

// Favorites returns the locally known favorite IDs in insertion order.
func (f *FavoriteManager) Favorites() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.set.IDs()
}

// FavoriteRecipes refreshes the favorite set and resolves it into recipes in
// favorite order. IDs that are malformed or no longer exist are skipped.
func (f *FavoriteManager) FavoriteRecipes(ctx context.Context) ([]types.Recipe, error) {
	if _, err := f.Refresh(ctx); err != nil {
		return nil, err
	}
	ids := f.Favorites()
	recipes := make([]types.Recipe, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		recipe, err := f.client.GetRecipe(ctx, id)
		if IsStatus(err, http.StatusNotFound) || IsStatus(err, http.StatusBadRequest) {
			continue
		}
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, *recipe)
	}
	return recipes, nil
}

// Toggle removes recipeID when currentlyFavorite and adds it otherwise, and
// returns the new membership. On failure the known state is unchanged.
func (f *FavoriteManager) Toggle(ctx context.Context, recipeID uuid.UUID, currentlyFavorite bool) (bool, error) {
	session, err := f.client.requireSession()
	if err != nil {
		return currentlyFavorite, err
	}
	base := "/UserPreferences/" + session.UserID.String() + "/favorite-recipes"

	var prefs types.UserPreferences
	if currentlyFavorite {
		err = f.client.do(ctx, http.MethodDelete, base+"/"+recipeID.String(), nil, &prefs)
	} else {
		err = f.client.do(ctx, http.MethodPost, base, types.AddFavoriteRequest{RecipeID: recipeID.String()}, &prefs)
	}
	if err != nil {
		return currentlyFavorite, err
	}

	f.apply(&prefs)
	return !currentlyFavorite, nil
}

func (f *FavoriteManager) apply(prefs *types.UserPreferences) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prefs = prefs
	f.set = nutrition.DecodeFavorites(prefs.FavoriteRecipes)
}

// UpdatePreferences changes the stored dietary preference and caloric goal.
// Nil arguments are left unchanged.
func (f *FavoriteManager) UpdatePreferences(ctx context.Context, dietaryPreference *string, caloricGoal *int) (*types.UserPreferences, error) {
	session, err := f.client.requireSession()
	if err != nil {
		return nil, err
	}
	req := types.UpdatePreferencesRequest{DietaryPreference: dietaryPreference, CaloricGoal: caloricGoal}
	var prefs types.UserPreferences
	if err := f.client.do(ctx, http.MethodPut, "/UserPreferences/"+session.UserID.String(), req, &prefs); err != nil {
		return nil, err
	}
	f.apply(&prefs)
	return &prefs, nil
}
