package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/nutriapp/backend/internal/models"
	"github.com/pageza/nutriapp/backend/pkg/nutrition"
)

// MockMealPlanService is a mock implementation of service.IMealPlanService
type MockMealPlanService struct {
	mock.Mock
}

func (m *MockMealPlanService) Generate(ctx context.Context, userID uuid.UUID, req *nutrition.GenerateRequest) (*nutrition.MealPlan, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*nutrition.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) Current(ctx context.Context, userID uuid.UUID) (*nutrition.MealPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*nutrition.MealPlan), args.Error(1)
}

// MockShoppingListService is a mock implementation of service.IShoppingListService
type MockShoppingListService struct {
	mock.Mock
}

func (m *MockShoppingListService) GenerateFromFavorites(ctx context.Context, userID uuid.UUID) (*models.ShoppingList, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShoppingList), args.Error(1)
}

func (m *MockShoppingListService) Latest(ctx context.Context, userID uuid.UUID) (*models.ShoppingList, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShoppingList), args.Error(1)
}

func (m *MockShoppingListService) SetItemChecked(ctx context.Context, userID, itemID uuid.UUID, checked bool) (*models.ShoppingListItem, error) {
	args := m.Called(ctx, userID, itemID, checked)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ShoppingListItem), args.Error(1)
}
