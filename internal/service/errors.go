package service

import (
	"errors"

	"github.com/pageza/nutriapp/backend/internal/repository"
)

var (
	// ErrNotFound aliases the repository sentinel so handlers only import service.
	ErrNotFound           = repository.ErrNotFound
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrGoogleIdentity     = errors.New("google identity could not be verified")
	ErrNoMealPlan         = errors.New("no current meal plan")
	ErrNoRecipes          = errors.New("no recipes match the requested plan")
	ErrInvalidInput       = errors.New("invalid input")
)
