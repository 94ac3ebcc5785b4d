package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/nutriapp/backend/config"
	"github.com/pageza/nutriapp/backend/internal/api"
	"github.com/pageza/nutriapp/backend/internal/database"
	"github.com/pageza/nutriapp/backend/internal/middleware"
	"github.com/pageza/nutriapp/backend/internal/router"
	"github.com/pageza/nutriapp/backend/internal/service"
)

// Options carries the optional collaborators. A nil Redis disables rate
// limiting and plan caching; a nil Storage disables image uploads.
type Options struct {
	Redis   *redis.Client
	Google  service.GoogleVerifier
	Storage *config.S3Config
}

// Server represents the HTTP server
type Server struct {
	cfg    *config.Config
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
	log    *zap.Logger
}

// New wires the services and handlers into a server.
func New(cfg *config.Config, db *gorm.DB, log *zap.Logger, opts Options) *Server {
	if log == nil {
		log = zap.NewNop()
	}

	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, opts.Google, log.Named("auth"))
	recipes := service.NewRecipeService(db, log.Named("recipes"))
	prefs := service.NewPreferencesService(db, cfg.MealPlanLimits)
	cache := service.NewPlanCache(opts.Redis, cfg.MealPlanCacheTTL, log.Named("plan-cache"))

	services := api.Services{
		Auth:        auth,
		Profiles:    service.NewProfileService(db),
		Recipes:     recipes,
		Preferences: prefs,
		MealPlans:   service.NewMealPlanService(db, prefs, cfg.MealPlanLimits, cache, log.Named("mealplans")),
		Shopping:    service.NewShoppingListService(db, prefs, log.Named("shopping")),
	}
	if opts.Storage != nil {
		services.Images = service.NewImageService(opts.Storage.Client, opts.Storage.BucketName, recipes, log.Named("images")).
			WithBaseURL(opts.Storage.PublicBaseURL)
	}
	if opts.Redis != nil {
		services.Limiter = middleware.NewRateLimiter(opts.Redis, middleware.RateLimitConfig{
			Window:    cfg.MealPlanRateWindow,
			Limit:     cfg.MealPlanRateLimit,
			KeyPrefix: "mealplan",
		}, log.Named("ratelimit"))
	}

	s := &Server{
		cfg:   cfg,
		db:    db,
		redis: opts.Redis,
		log:   log,
	}
	s.router = router.SetupRouter(cfg.AllowedOrigins, services, s.health, log)
	s.http = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"status": "ok", "database": "ok"}
	code := http.StatusOK

	if err := database.HealthCheck(ctx, s.db); err != nil {
		s.log.Warn("database health check failed", zap.Error(err))
		status["status"] = "unavailable"
		status["database"] = "down"
		code = http.StatusServiceUnavailable
	}

	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			s.log.Warn("redis health check failed", zap.Error(err))
			status["redis"] = "down"
		} else {
			status["redis"] = "ok"
		}
	}

	c.JSON(code, status)
}

// Start blocks serving HTTP until Shutdown is called. After Shutdown it
// returns nil without listening.
func (s *Server) Start() error {
	s.log.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
