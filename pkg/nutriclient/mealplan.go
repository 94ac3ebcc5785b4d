package nutriclient

import (
	"context"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/pageza/nutriapp/backend/pkg/nutrition"
)

// GenerationResult is an accepted plan with its evaluation against the
// requested goal. A non-nil Evaluation.Warning is advisory only.
type GenerationResult struct {
	Plan       *nutrition.MealPlan
	Week       nutrition.WeekPlan
	Evaluation nutrition.Evaluation
}

// MealPlanner holds the session user's current plan. The held plan changes
// only when a generation or fetch succeeds.
type MealPlanner struct {
	client *Client
	limits nutrition.Limits

	mu   sync.RWMutex
	plan *nutrition.MealPlan
}

// NewMealPlanner validates requests against limits before sending them.
func NewMealPlanner(client *Client, limits nutrition.Limits) *MealPlanner {
	return &MealPlanner{client: client, limits: limits}
}

// Plan returns the held plan, nil before the first success.
func (m *MealPlanner) Plan() *nutrition.MealPlan {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.plan
}

// Week is the display mapping of the held plan.
func (m *MealPlanner) Week() nutrition.WeekPlan {
	return nutrition.Transform(m.Plan())
}

// Generate validates req, submits it and evaluates the returned plan. A
// validation failure is a *nutrition.ValidationError and nothing is sent.
func (m *MealPlanner) Generate(ctx context.Context, req nutrition.GenerateRequest) (*GenerationResult, error) {
	session, err := m.client.requireSession()
	if err != nil {
		return nil, err
	}
	if err := m.limits.ValidateGeneration(req.DurationInDays, req.SpecificCaloricGoal); err != nil {
		return nil, err
	}
	req.UserID = session.UserID.String()

	var plan nutrition.MealPlan
	if err := m.client.do(ctx, http.MethodPost, "/MealPlans/generate", req, &plan); err != nil {
		return nil, err
	}

	ev := m.limits.Evaluate(&plan, req.SpecificCaloricGoal)
	if ev.Warning != nil {
		m.client.log.Info("generated plan is off target", zap.String("warning", ev.Warning.String()))
	}

	m.mu.Lock()
	m.plan = &plan
	m.mu.Unlock()

	return &GenerationResult{Plan: &plan, Week: nutrition.Transform(&plan), Evaluation: ev}, nil
}

// Current fetches the user's current plan. ErrNoMealPlan means none exists.
func (m *MealPlanner) Current(ctx context.Context) (*nutrition.MealPlan, error) {
	session, err := m.client.requireSession()
	if err != nil {
		return nil, err
	}

	var plan nutrition.MealPlan
	err = m.client.do(ctx, http.MethodGet, "/MealPlans/"+session.UserID.String()+"/current", nil, &plan)
	if IsStatus(err, http.StatusNotFound) {
		return nil, ErrNoMealPlan
	}
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.plan = &plan
	m.mu.Unlock()
	return &plan, nil
}
