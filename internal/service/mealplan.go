package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/nutriapp/backend/internal/mapper"
	"github.com/pageza/nutriapp/backend/internal/models"
	"github.com/pageza/nutriapp/backend/internal/repository"
	"github.com/pageza/nutriapp/backend/pkg/nutrition"
)

// defaultCaloricGoal applies when neither the request nor the stored
// preferences carry a goal.
const defaultCaloricGoal = 2000

// MealPlanService generates plans and serves the current one
type MealPlanService struct {
	db      *gorm.DB
	prefs   IPreferencesService
	limits  nutrition.Limits
	planner *Planner
	cache   PlanCache
	log     *zap.Logger
}

func NewMealPlanService(db *gorm.DB, prefs IPreferencesService, limits nutrition.Limits, cache PlanCache, log *zap.Logger) *MealPlanService {
	if cache == nil {
		cache = noopPlanCache{}
	}
	return &MealPlanService{
		db:      db,
		prefs:   prefs,
		limits:  limits,
		planner: NewPlanner(),
		cache:   cache,
		log:     log,
	}
}

// Generate validates the request, plans the meals and stores the result as
// the user's only current plan.
func (s *MealPlanService) Generate(ctx context.Context, userID uuid.UUID, req *nutrition.GenerateRequest) (*nutrition.MealPlan, error) {
	goal := req.SpecificCaloricGoal
	diet := ""
	if req.SpecificDietaryPreference != nil {
		diet = strings.TrimSpace(*req.SpecificDietaryPreference)
	}

	if req.ConsiderUserPreferences {
		prefs, err := s.prefs.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		if goal == 0 {
			goal = prefs.CaloricGoal
		}
		if diet == "" {
			diet = prefs.DietaryPreference
		}
	}
	if goal == 0 {
		goal = defaultCaloricGoal
	}

	if err := s.limits.ValidateGeneration(req.DurationInDays, goal); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	recipes, err := s.candidates(ctx, diet)
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, ErrNoRecipes
	}

	meals := s.planner.Plan(recipes, goal, req.DurationInDays)
	plan := &models.MealPlan{
		UserID:            userID,
		DurationInDays:    req.DurationInDays,
		CaloricGoal:       goal,
		DietaryPreference: diet,
		IsCurrent:         true,
		Meals:             meals,
	}
	plan.TotalCalories, plan.TotalProtein, plan.TotalCarbohydrates, plan.TotalFats = Totals(meals)

	err = repository.NewUnitOfWork(s.db).Do(ctx, func(tx *gorm.DB) error {
		if err := tx.Model(&models.MealPlan{}).
			Where("user_id = ? AND is_current = ?", userID, true).
			Update("is_current", false).Error; err != nil {
			return fmt.Errorf("failed to retire current plan: %w", err)
		}
		return repository.New[models.MealPlan](tx).Create(ctx, plan)
	})
	if err != nil {
		return nil, err
	}

	out := mapper.MealPlan(plan)
	s.cache.Set(ctx, userID, &out)
	s.log.Info("meal plan generated",
		zap.String("user_id", userID.String()),
		zap.Int("days", req.DurationInDays),
		zap.Int("goal", goal),
		zap.Float64("total_calories", plan.TotalCalories))
	return &out, nil
}

func (s *MealPlanService) candidates(ctx context.Context, diet string) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{})
	if label := dietaryLabel(diet); label != "" {
		query = query.Where(labelLikeClause, labelPattern(label))
	}
	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	return recipes, nil
}

// Current returns the user's current plan or ErrNoMealPlan.
func (s *MealPlanService) Current(ctx context.Context, userID uuid.UUID) (*nutrition.MealPlan, error) {
	if plan, ok := s.cache.Get(ctx, userID); ok {
		return plan, nil
	}

	plan, err := repository.New[models.MealPlan](s.db).FindOne(ctx, "user_id = ? AND is_current = ?", userID, true)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoMealPlan
		}
		return nil, err
	}
	if err := s.db.WithContext(ctx).Where("meal_plan_id = ?", plan.ID).Find(&plan.Meals).Error; err != nil {
		return nil, fmt.Errorf("failed to load plan meals: %w", err)
	}

	out := mapper.MealPlan(plan)
	s.cache.Set(ctx, userID, &out)
	return &out, nil
}
