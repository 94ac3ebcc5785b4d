package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/pageza/nutriapp/backend/config"
	"github.com/pageza/nutriapp/backend/internal/database"
	"github.com/pageza/nutriapp/backend/internal/logger"
	"github.com/pageza/nutriapp/backend/internal/service"
	"github.com/pageza/nutriapp/backend/pkg/types"
)

const testPassword = "testpassword123"

type testUser struct {
	name     string
	email    string
	username string
	diet     string
	goal     int
}

var testUsers = []testUser{
	{name: "John Doe", email: "john.doe@example.com", username: "johndoe", diet: "vegetarian", goal: 2200},
	{name: "Jane Smith", email: "jane.smith@example.com", username: "janesmith", diet: "vegan", goal: 1800},
	{name: "Bob Wilson", email: "bob.wilson@example.com", username: "bobwilson", goal: 2600},
	{name: "Alice Cooper", email: "alice.cooper@example.com", username: "alicecooper", diet: "gluten-free", goal: 2000},
	{name: "Test Keto", email: "keto@example.com", username: "keto_user", diet: "keto", goal: 1600},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New("seed-users", cfg.LogLevel, false)
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, nil, log)
	prefs := service.NewPreferencesService(db, cfg.MealPlanLimits)
	ctx := context.Background()

	created := 0
	for _, u := range testUsers {
		_, user, err := auth.Register(ctx, &types.RegisterRequest{
			Name:     u.name,
			Username: u.username,
			Email:    u.email,
			Password: testPassword,
		})
		if errors.Is(err, service.ErrUserExists) {
			log.Info("user already exists, skipping", zap.String("email", u.email))
			continue
		}
		if err != nil {
			log.Error("failed to create user", zap.String("email", u.email), zap.Error(err))
			continue
		}

		diet, goal := u.diet, u.goal
		if _, err := prefs.Update(ctx, user.ID, &types.UpdatePreferencesRequest{
			DietaryPreference: &diet,
			CaloricGoal:       &goal,
		}); err != nil {
			log.Error("failed to set preferences", zap.String("email", u.email), zap.Error(err))
			continue
		}

		created++
		log.Info("created test user",
			zap.String("email", u.email),
			zap.String("diet", u.diet),
			zap.Int("caloric_goal", u.goal))
	}

	log.Info("test users seeded",
		zap.Int("created", created),
		zap.Int("total", len(testUsers)),
		zap.String("password", testPassword))
}
