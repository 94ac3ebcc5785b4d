package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks if the configuration meets the requirements for its environment
func ValidateConfig(cfg *Config) error {
	var errs []string
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg}.Error())
	}

	if cfg.JWTSecret == "" {
		add("JWT_SECRET", "is required")
	}

	switch cfg.DBDriver {
	case DriverSQLite:
		if cfg.Environment == Production {
			add("DB_DRIVER", "sqlite is not allowed in production")
		}
	case DriverPostgres:
		if cfg.DBHost == "" || cfg.DBName == "" {
			add("DB_HOST", "host and database name are required for postgres")
		}
		if cfg.Environment == Production || cfg.Environment == CI {
			if cfg.DBPassword == "" {
				add("DB_PASSWORD", "is required")
			}
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	if cfg.Environment == Production && cfg.GoogleClientID == "" {
		add("GOOGLE_CLIENT_ID", "is required in production")
	}

	l := cfg.MealPlanLimits
	if l.MinCaloricGoal <= 0 || l.MinCaloricGoal > l.MaxCaloricGoal {
		add("MEAL_PLAN_MIN_CALORIES", "must be positive and not exceed the maximum")
	}
	if l.MinDuration <= 0 || l.MinDuration > l.MaxDuration {
		add("MEAL_PLAN_MIN_DAYS", "must be positive and not exceed the maximum")
	}
	if l.VarianceThreshold < 0 {
		add("MEAL_PLAN_VARIANCE_THRESHOLD", "must not be negative")
	}
	if cfg.MealPlanRateLimit <= 0 {
		add("MEAL_PLAN_RATE_LIMIT", "must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}
