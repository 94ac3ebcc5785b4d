package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealPlan is a generated plan. Only one plan per user is current.
type MealPlan struct {
	ID                 uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID             uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
	DurationInDays     int            `gorm:"not null" json:"duration_in_days"`
	CaloricGoal        int            `gorm:"not null" json:"caloric_goal"`
	DietaryPreference  string         `gorm:"size:50" json:"dietary_preference"`
	TotalCalories      float64        `gorm:"type:float" json:"total_calories"`
	TotalProtein       float64        `gorm:"type:float" json:"total_protein"`
	TotalCarbohydrates float64        `gorm:"type:float" json:"total_carbohydrates"`
	TotalFats          float64        `gorm:"type:float" json:"total_fats"`
	IsCurrent          bool           `gorm:"not null;default:false;index" json:"is_current"`
	Meals              []MealPlanMeal `gorm:"foreignKey:MealPlanID;constraint:OnDelete:CASCADE" json:"meals"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

func (p *MealPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// MealPlanMeal is one meal slot of a plan, flattened with its day.
type MealPlanMeal struct {
	ID            uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	MealPlanID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"meal_plan_id"`
	DayIndex      int       `gorm:"not null" json:"day_index"`
	Day           string    `gorm:"size:32;not null" json:"day"`
	Position      int       `gorm:"not null" json:"position"`
	MealType      string    `gorm:"size:20;not null" json:"meal_type"`
	RecipeID      uuid.UUID `gorm:"type:varchar(36)" json:"recipe_id"`
	RecipeName    string    `gorm:"size:255" json:"recipe_name"`
	Calories      float64   `gorm:"type:float" json:"calories"`
	Protein       float64   `gorm:"type:float" json:"protein"`
	Carbohydrates float64   `gorm:"type:float" json:"carbohydrates"`
	Fats          float64   `gorm:"type:float" json:"fats"`
}

func (m *MealPlanMeal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type ShoppingList struct {
	ID        uuid.UUID          `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID          `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Items     []ShoppingListItem `gorm:"foreignKey:ShoppingListID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (l *ShoppingList) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

type ShoppingListItem struct {
	ID             uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	ShoppingListID uuid.UUID `gorm:"type:varchar(36);not null;index" json:"shopping_list_id"`
	Position       int       `gorm:"not null" json:"position"`
	IngredientName string    `gorm:"size:255;not null" json:"ingredient_name"`
	Quantity       float64   `gorm:"type:float" json:"quantity"`
	Unit           string    `gorm:"size:32" json:"unit"`
	IsChecked      bool      `gorm:"not null;default:false" json:"is_checked"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (i *ShoppingListItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// All lists every model managed by auto-migration.
func All() []interface{} {
	return []interface{}{
		&User{},
		&UserPreferences{},
		&Recipe{},
		&Review{},
		&MealPlan{},
		&MealPlanMeal{},
		&ShoppingList{},
		&ShoppingListItem{},
	}
}
