package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pageza/nutriapp/backend/pkg/nutrition"
)

// PlanCache keeps the current plan of a user close at hand.
type PlanCache interface {
	Get(ctx context.Context, userID uuid.UUID) (*nutrition.MealPlan, bool)
	Set(ctx context.Context, userID uuid.UUID, plan *nutrition.MealPlan)
	Delete(ctx context.Context, userID uuid.UUID)
}

type redisPlanCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewPlanCache returns a Redis backed cache, or a cache that stores nothing
// when client is nil. Cache errors are logged and treated as misses.
func NewPlanCache(client *redis.Client, ttl time.Duration, log *zap.Logger) PlanCache {
	if client == nil {
		return noopPlanCache{}
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &redisPlanCache{client: client, ttl: ttl, log: log}
}

func planKey(userID uuid.UUID) string {
	return "mealplan:current:" + userID.String()
}

func (c *redisPlanCache) Get(ctx context.Context, userID uuid.UUID) (*nutrition.MealPlan, bool) {
	raw, err := c.client.Get(ctx, planKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("plan cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var plan nutrition.MealPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		c.log.Warn("plan cache entry is corrupt", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, false
	}
	return &plan, true
}

func (c *redisPlanCache) Set(ctx context.Context, userID uuid.UUID, plan *nutrition.MealPlan) {
	raw, err := json.Marshal(plan)
	if err != nil {
		c.log.Warn("plan cache encode failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, planKey(userID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("plan cache write failed", zap.Error(err))
	}
}

func (c *redisPlanCache) Delete(ctx context.Context, userID uuid.UUID) {
	if err := c.client.Del(ctx, planKey(userID)).Err(); err != nil {
		c.log.Warn("plan cache delete failed", zap.Error(err))
	}
}

type noopPlanCache struct{}

func (noopPlanCache) Get(context.Context, uuid.UUID) (*nutrition.MealPlan, bool) { return nil, false }
func (noopPlanCache) Set(context.Context, uuid.UUID, *nutrition.MealPlan)        {}
func (noopPlanCache) Delete(context.Context, uuid.UUID)                          {}
