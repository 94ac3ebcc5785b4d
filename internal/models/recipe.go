package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringArray is a string slice stored as a JSON array in a text column
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface. Text that is not a JSON string
// array scans as an empty array so one corrupt row cannot fail a query.
func (a *StringArray) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*a = StringArray{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StringArray", value)
	}
	if len(raw) == 0 {
		*a = StringArray{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil || out == nil {
		*a = StringArray{}
		return nil
	}
	*a = out
	return nil
}

// JSON returns the serialized form sent to clients.
func (a StringArray) JSON() string {
	v, _ := a.Value()
	s, _ := v.(string)
	return s
}

type Recipe struct {
	ID            uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	Ingredients   StringArray    `gorm:"type:text;not null;default:'[]'" json:"ingredients"`
	Instructions  string         `gorm:"type:text" json:"instructions"`
	Calories      float64        `gorm:"type:float" json:"calories"`
	Protein       float64        `gorm:"type:float" json:"protein"`
	Carbohydrates float64        `gorm:"type:float" json:"carbohydrates"`
	Fats          float64        `gorm:"type:float" json:"fats"`
	DietaryLabels StringArray    `gorm:"type:text;not null;default:'[]'" json:"dietary_labels"`
	Category      string         `gorm:"size:50;index" json:"category"`
	Difficulty    string         `gorm:"size:10;not null;default:'medium'" json:"difficulty"`
	PrepTime      int            `json:"prep_time"`
	CookingTime   int            `json:"cooking_time"`
	TotalTime     int            `json:"total_time"`
	ImageURL      string         `gorm:"size:512" json:"image_url"`
	CreatedBy     uuid.UUID      `gorm:"type:varchar(36);index" json:"created_by"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

type Review struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID  uuid.UUID `gorm:"type:varchar(36);not null;index" json:"recipe_id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `gorm:"size:500" json:"comment"`
	UserName  string    `gorm:"size:100" json:"user_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
