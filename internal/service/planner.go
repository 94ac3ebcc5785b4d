package service

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pageza/nutriapp/backend/internal/models"
	"github.com/pageza/nutriapp/backend/pkg/nutrition"
)

// mealShares is the fraction of the daily goal given to each meal type.
var mealShares = map[string]float64{
	nutrition.MealTypeBreakfast: 0.25,
	nutrition.MealTypeLunch:     0.35,
	nutrition.MealTypeDinner:    0.30,
	nutrition.MealTypeSnacks:    0.10,
}

// rotationWindow is how many of the closest recipes compete on usage count.
const rotationWindow = 3

// Planner assigns recipes to the meal slots of a plan. It is deterministic:
// the same recipes, goal and duration always give the same meals.
type Planner struct {
	title cases.Caser
}

func NewPlanner() *Planner {
	return &Planner{title: cases.Title(language.English)}
}

// DayLabel names day index i (0-based). Plans start on a Monday; days past
// the first week carry a week suffix.
func DayLabel(i int) string {
	name := time.Weekday((i + 1) % 7).String()
	if week := i/7 + 1; week > 1 {
		return fmt.Sprintf("%s (week %d)", name, week)
	}
	return name
}

// mealType maps a recipe category onto a meal type, or "" when it is none.
func (p *Planner) mealType(category string) string {
	c := p.title.String(strings.TrimSpace(category))
	switch c {
	case nutrition.MealTypeBreakfast, nutrition.MealTypeLunch, nutrition.MealTypeDinner, nutrition.MealTypeSnacks:
		return c
	case "Snack", "Dessert":
		return nutrition.MealTypeSnacks
	case "Main", "Main Course", "Entree":
		return nutrition.MealTypeDinner
	}
	return ""
}

// Plan builds the meals for days days at goal calories per day.
func (p *Planner) Plan(recipes []models.Recipe, goal, days int) []models.MealPlanMeal {
	if len(recipes) == 0 || days <= 0 {
		return nil
	}

	pool := make([]models.Recipe, len(recipes))
	copy(pool, recipes)
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].Name != pool[j].Name {
			return pool[i].Name < pool[j].Name
		}
		return pool[i].ID.String() < pool[j].ID.String()
	})

	byType := make(map[string][]models.Recipe, len(nutrition.MealTypes))
	for _, r := range pool {
		if t := p.mealType(r.Category); t != "" {
			byType[t] = append(byType[t], r)
		}
	}

	used := make(map[string]map[string]int, len(nutrition.MealTypes))
	meals := make([]models.MealPlanMeal, 0, days*len(nutrition.MealTypes))
	for day := 0; day < days; day++ {
		label := DayLabel(day)
		for pos, mt := range nutrition.MealTypes {
			candidates := byType[mt]
			if len(candidates) == 0 {
				candidates = pool
			}
			if used[mt] == nil {
				used[mt] = map[string]int{}
			}
			target := float64(goal) * mealShares[mt]
			r := pick(candidates, target, used[mt])
			used[mt][r.ID.String()]++

			meals = append(meals, models.MealPlanMeal{
				DayIndex:      day,
				Day:           label,
				Position:      pos,
				MealType:      mt,
				RecipeID:      r.ID,
				RecipeName:    r.Name,
				Calories:      r.Calories,
				Protein:       r.Protein,
				Carbohydrates: r.Carbohydrates,
				Fats:          r.Fats,
			})
		}
	}
	return meals
}

// pick takes the least used of the recipes closest to target.
func pick(candidates []models.Recipe, target float64, used map[string]int) models.Recipe {
	ranked := make([]models.Recipe, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].Calories-target) < math.Abs(ranked[j].Calories-target)
	})
	if len(ranked) > rotationWindow {
		ranked = ranked[:rotationWindow]
	}
	best := ranked[0]
	for _, r := range ranked[1:] {
		if used[r.ID.String()] < used[best.ID.String()] {
			best = r
		}
	}
	return best
}

// Totals sums the nutrition of meals.
func Totals(meals []models.MealPlanMeal) (calories, protein, carbs, fats float64) {
	for _, m := range meals {
		calories += m.Calories
		protein += m.Protein
		carbs += m.Carbohydrates
		fats += m.Fats
	}
	return
}
