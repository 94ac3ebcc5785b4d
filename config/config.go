package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/pageza/nutriapp/backend/pkg/nutrition"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort      string
	ServerHost      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Auth
	JWTSecret      string
	TokenTTL       time.Duration
	GoogleClientID string

	// Recipe images
	S3BucketName string
	AWSRegion    string
	S3Endpoint   string

	// Meal plans
	MealPlanLimits     nutrition.Limits
	MealPlanRateLimit  int
	MealPlanRateWindow time.Duration
	MealPlanCacheTTL   time.Duration

	LogLevel string
}

// Database drivers understood by the database package.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{Environment: env}

	switch env {
	case CI:
		loadFromEnv(cfg)
		cfg.DBPassword = getEnv("TEST_DB_PASSWORD", cfg.DBPassword)
		cfg.JWTSecret = getEnv("TEST_JWT_SECRET", cfg.JWTSecret)
	case Development, Test:
		// .env is optional outside production
		_ = godotenv.Load()
		loadFromEnv(cfg)
		applySecrets(cfg)
	case Production:
		loadFromEnv(cfg)
		applySecrets(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromEnv fills every field from environment variables, falling back to defaults
func loadFromEnv(cfg *Config) {
	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "0.0.0.0")
	cfg.ReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	cfg.WriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	cfg.ShutdownTimeout = getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second)
	cfg.AllowedOrigins = getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"})

	cfg.DBDriver = getEnv("DB_DRIVER", DriverPostgres)
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = getEnv("DB_USER", "postgres")
	cfg.DBPassword = getEnv("DB_PASSWORD", "")
	cfg.DBName = getEnv("DB_NAME", "nutriapp")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.SQLitePath = getEnv("SQLITE_PATH", "nutriapp.db")

	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.RedisDB = getEnvInt("REDIS_DB", 0)
	cfg.RedisURL = getEnv("REDIS_URL", "")

	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.TokenTTL = getEnvDuration("JWT_TTL", 24*time.Hour)
	cfg.GoogleClientID = getEnv("GOOGLE_CLIENT_ID", "")

	cfg.S3BucketName = getEnv("S3_BUCKET_NAME", "nutriapp-recipe-images")
	cfg.AWSRegion = getEnv("AWS_REGION", "us-east-1")
	cfg.S3Endpoint = getEnv("S3_ENDPOINT", "")

	defaults := nutrition.DefaultLimits()
	cfg.MealPlanLimits = nutrition.Limits{
		MinCaloricGoal:    getEnvInt("MEAL_PLAN_MIN_CALORIES", defaults.MinCaloricGoal),
		MaxCaloricGoal:    getEnvInt("MEAL_PLAN_MAX_CALORIES", defaults.MaxCaloricGoal),
		MinDuration:       getEnvInt("MEAL_PLAN_MIN_DAYS", defaults.MinDuration),
		MaxDuration:       getEnvInt("MEAL_PLAN_MAX_DAYS", defaults.MaxDuration),
		VarianceThreshold: getEnvFloat("MEAL_PLAN_VARIANCE_THRESHOLD", defaults.VarianceThreshold),
	}
	cfg.MealPlanRateLimit = getEnvInt("MEAL_PLAN_RATE_LIMIT", 10)
	cfg.MealPlanRateWindow = getEnvDuration("MEAL_PLAN_RATE_WINDOW", time.Hour)
	cfg.MealPlanCacheTTL = getEnvDuration("MEAL_PLAN_CACHE_TTL", 24*time.Hour)

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
}

// applySecrets overrides sensitive values with Docker secrets when present
func applySecrets(cfg *Config) {
	overrides := map[string]*string{
		"db_user":          &cfg.DBUser,
		"db_password":      &cfg.DBPassword,
		"jwt_secret":       &cfg.JWTSecret,
		"redis_password":   &cfg.RedisPassword,
		"redis_url":        &cfg.RedisURL,
		"google_client_id": &cfg.GoogleClientID,
	}
	for name, field := range overrides {
		if v := readSecret(name); v != "" {
			*field = v
		}
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.ServerHost, c.ServerPort)
}

// PostgresDSN builds the connection string for the postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}
