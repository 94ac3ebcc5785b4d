package nutrition

import (
	"fmt"
	"math"
	"time"
)

// Meal types in the order a day is served.
const (
	MealTypeBreakfast = "Breakfast"
	MealTypeLunch     = "Lunch"
	MealTypeDinner    = "Dinner"
	MealTypeSnacks    = "Snacks"
)

// MealTypes lists every meal type a generated day may contain.
var MealTypes = []string{MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnacks}

// GenerateRequest is the body of a meal-plan generation call.
type GenerateRequest struct {
	UserID                    string  `json:"userId"`
	DurationInDays            int     `json:"durationInDays"`
	ConsiderUserPreferences   bool    `json:"considerUserPreferences"`
	SpecificDietaryPreference *string `json:"specificDietaryPreference"`
	SpecificCaloricGoal       int     `json:"specificCaloricGoal"`
}

// MealPlan is a generated plan as exchanged over the wire.
type MealPlan struct {
	ID                 string      `json:"id"`
	UserID             string      `json:"userId"`
	DurationInDays     int         `json:"durationInDays"`
	CaloricGoal        int         `json:"caloricGoal"`
	DietaryPreference  string      `json:"dietaryPreference,omitempty"`
	DailyPlans         []DailyPlan `json:"dailyPlans"`
	TotalCalories      float64     `json:"totalCalories"`
	TotalProtein       float64     `json:"totalProtein"`
	TotalCarbohydrates float64     `json:"totalCarbohydrates"`
	TotalFats          float64     `json:"totalFats"`
	CreatedAt          time.Time   `json:"createdAt"`
}

// DailyPlan groups the meals of one labelled day.
type DailyPlan struct {
	Day   string `json:"day"`
	Meals []Meal `json:"meals"`
}

// Meal is one planned recipe with its nutrition numbers.
type Meal struct {
	MealType      string  `json:"mealType"`
	RecipeID      string  `json:"recipeId"`
	RecipeName    string  `json:"recipeName"`
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fats          float64 `json:"fats"`
}

// MealSummary is the display form of a Meal.
type MealSummary struct {
	Name          string  `json:"name"`
	Calories      float64 `json:"calories"`
	RecipeID      string  `json:"recipeId"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fats          float64 `json:"fats"`
}

// WeekPlan maps day label to meal type to summary.
type WeekPlan map[string]map[string]MealSummary

// Transform builds the day -> meal type mapping for display. Day and meal-type
// keys are copied verbatim; a later meal of the same type on the same day wins.
func Transform(plan *MealPlan) WeekPlan {
	out := make(WeekPlan)
	if plan == nil {
		return out
	}
	for _, day := range plan.DailyPlans {
		meals := make(map[string]MealSummary, len(day.Meals))
		for _, m := range day.Meals {
			meals[m.MealType] = MealSummary{
				Name:          m.RecipeName,
				Calories:      m.Calories,
				RecipeID:      m.RecipeID,
				Protein:       m.Protein,
				Carbohydrates: m.Carbohydrates,
				Fats:          m.Fats,
			}
		}
		out[day.Day] = meals
	}
	return out
}

// DailyAverages are per-day means over the whole plan.
type DailyAverages struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fats          float64 `json:"fats"`
}

// CalorieWarning flags a plan whose daily average strays from the goal.
type CalorieWarning struct {
	DailyAverage float64
	Variance     float64
	Goal         int
}

func (w CalorieWarning) String() string {
	return fmt.Sprintf("Warning: Generated plan averages %d calories per day, which is %d calories off from your goal of %d",
		int(math.Round(w.DailyAverage)), int(math.Round(w.Variance)), w.Goal)
}

// Evaluation is the post-generation check of a plan against its goal.
type Evaluation struct {
	Averages DailyAverages
	Variance float64
	Warning  *CalorieWarning
}

// Evaluate computes the daily averages of plan and attaches a warning when
// the calorie average deviates from goal by more than the threshold. A plan
// with no days evaluates to zero averages.
func (l Limits) Evaluate(plan *MealPlan, goal int) Evaluation {
	var ev Evaluation
	if plan == nil || len(plan.DailyPlans) == 0 {
		return ev
	}
	days := float64(len(plan.DailyPlans))
	ev.Averages = DailyAverages{
		Calories:      plan.TotalCalories / days,
		Protein:       plan.TotalProtein / days,
		Carbohydrates: plan.TotalCarbohydrates / days,
		Fats:          plan.TotalFats / days,
	}
	ev.Variance = math.Abs(ev.Averages.Calories - float64(goal))
	if ev.Variance > l.VarianceThreshold {
		ev.Warning = &CalorieWarning{
			DailyAverage: ev.Averages.Calories,
			Variance:     ev.Variance,
			Goal:         goal,
		}
	}
	return ev
}
