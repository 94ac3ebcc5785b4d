package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/nutriapp/backend/config"
	"github.com/pageza/nutriapp/backend/internal/database"
	"github.com/pageza/nutriapp/backend/internal/logger"
	"github.com/pageza/nutriapp/backend/internal/models"
	"github.com/pageza/nutriapp/backend/internal/service"
	"github.com/pageza/nutriapp/backend/pkg/types"
)

const batchSize = 5 // recipes per logged batch

//go:embed recipes.json
var builtinRecipes []byte

func main() {
	file := flag.String("file", "", "JSON file with recipes to seed (defaults to the built-in set)")
	authorEmail := flag.String("author", "chef@nutriapp.local", "Email of the account that owns seeded recipes")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New("seed-recipes", cfg.LogLevel, false)
	defer func() { _ = log.Sync() }()

	data := builtinRecipes
	if *file != "" {
		if data, err = os.ReadFile(*file); err != nil {
			log.Fatal("failed to read recipe file", zap.Error(err))
		}
	}
	var recipes []types.CreateRecipeRequest
	if err := json.Unmarshal(data, &recipes); err != nil {
		log.Fatal("failed to parse recipes", zap.Error(err))
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	ctx := context.Background()
	authorID, err := ensureAuthor(ctx, db, cfg, *authorEmail, log)
	if err != nil {
		log.Fatal("failed to prepare recipe author", zap.Error(err))
	}

	svc := service.NewRecipeService(db, log)
	created := 0
	for i := 0; i < len(recipes); i += batchSize {
		end := min(i+batchSize, len(recipes))
		log.Info("seeding batch", zap.Int("from", i+1), zap.Int("to", end))

		for _, req := range recipes[i:end] {
			var count int64
			if err := db.Model(&models.Recipe{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
				log.Error("failed to check recipe", zap.String("name", req.Name), zap.Error(err))
				continue
			}
			if count > 0 {
				log.Debug("recipe exists, skipping", zap.String("name", req.Name))
				continue
			}

			recipe, err := svc.CreateRecipe(ctx, authorID, &req)
			if err != nil {
				log.Error("failed to save recipe", zap.String("name", req.Name), zap.Error(err))
				continue
			}
			created++
			log.Info("created recipe", zap.String("name", recipe.Name), zap.Float64("calories", recipe.Calories))
		}
	}

	log.Info("recipes seeded", zap.Int("created", created), zap.Int("total", len(recipes)))
}

// ensureAuthor returns the ID of the account owning seeded recipes,
// registering it on first run.
func ensureAuthor(ctx context.Context, db *gorm.DB, cfg *config.Config, email string, log *zap.Logger) (uuid.UUID, error) {
	var user models.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err == nil {
		return user.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, err
	}

	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, nil, log)
	_, author, err := auth.Register(ctx, &types.RegisterRequest{
		Name:     "NutriApp Kitchen",
		Username: "kitchen",
		Email:    email,
		Password: uuid.NewString(),
	})
	if err != nil {
		return uuid.Nil, err
	}
	return author.ID, nil
}
