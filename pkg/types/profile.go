package types

// Profile is the public part of a user account.
type Profile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserPreferences carries the favorite set as the serialized JSON array the
// API stores.
type UserPreferences struct {
	UserID            string `json:"userId"`
	FavoriteRecipes   string `json:"favoriteRecipes"`
	DietaryPreference string `json:"dietaryPreference"`
	CaloricGoal       int    `json:"caloricGoal"`
}

// CheckEmailResponse reports whether an account exists for an email.
type CheckEmailResponse struct {
	Exists bool `json:"exists"`
}

// AuthResponse is returned by registration.
type AuthResponse struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}
