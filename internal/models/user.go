package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"not null" json:"name"`
	Username     string         `gorm:"size:50;index" json:"username"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `json:"-"`
	GoogleID     string         `gorm:"size:64;index" json:"-"`
	LastLogin    *time.Time     `json:"last_login,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// DisplayName is the name shown next to user content. Username wins over the
// full name when both are set.
func (u *User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.Name
}

// UserPreferences stores the favorite set as a JSON array string.
type UserPreferences struct {
	ID                uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID            uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	FavoriteRecipes   string    `gorm:"type:text;not null;default:'[]'" json:"favorite_recipes"`
	DietaryPreference string    `gorm:"size:50" json:"dietary_preference"`
	CaloricGoal       int       `gorm:"not null;default:2000" json:"caloric_goal"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (UserPreferences) TableName() string {
	return "user_preferences"
}

func (p *UserPreferences) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.FavoriteRecipes == "" {
		p.FavoriteRecipes = "[]"
	}
	if p.CaloricGoal == 0 {
		p.CaloricGoal = 2000
	}
	return nil
}
