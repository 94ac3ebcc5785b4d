// Package nutrition holds the pure logic shared by the API server and the
// client SDK: plan validation and evaluation, favorite sets, quantity scaling
// and shopping-list progress.
package nutrition

import "fmt"

// Limits bounds the meal-plan generation request and the soft calorie check.
type Limits struct {
	MinCaloricGoal    int
	MaxCaloricGoal    int
	MinDuration       int
	MaxDuration       int
	VarianceThreshold float64
}

// DefaultLimits returns the limits used when no configuration overrides them.
func DefaultLimits() Limits {
	return Limits{
		MinCaloricGoal:    1200,
		MaxCaloricGoal:    4000,
		MinDuration:       1,
		MaxDuration:       14,
		VarianceThreshold: 200,
	}
}

// ValidationError is a user-facing rejection raised before any request is sent.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateGeneration checks the duration and caloric goal of a generation request.
func (l Limits) ValidateGeneration(durationInDays, caloricGoal int) error {
	if durationInDays < l.MinDuration || durationInDays > l.MaxDuration {
		return &ValidationError{
			Field:   "durationInDays",
			Message: fmt.Sprintf("Duration must be between %d and %d days", l.MinDuration, l.MaxDuration),
		}
	}
	if caloricGoal < l.MinCaloricGoal || caloricGoal > l.MaxCaloricGoal {
		return &ValidationError{
			Field:   "specificCaloricGoal",
			Message: fmt.Sprintf("Caloric goal must be between %d and %d calories", l.MinCaloricGoal, l.MaxCaloricGoal),
		}
	}
	return nil
}
