// Package repository wraps gorm with a generic repository and a unit of work
// so services can group writes into one transaction.
package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no row matches.
var ErrNotFound = errors.New("record not found")

// Repository provides CRUD for one model type.
type Repository[T any] struct {
	db *gorm.DB
}

// New creates a repository bound to db (or a transaction).
func New[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// DB exposes the underlying handle for queries the generic methods do not cover.
func (r *Repository[T]) DB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *Repository[T]) Create(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("failed to create %T: %w", entity, err)
	}
	return nil
}

func (r *Repository[T]) Save(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		return fmt.Errorf("failed to save %T: %w", entity, err)
	}
	return nil
}

// GetByID loads the entity with the given primary key, applying preloads.
func (r *Repository[T]) GetByID(ctx context.Context, id interface{}, preloads ...string) (*T, error) {
	q := r.db.WithContext(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	var entity T
	if err := q.First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %T: %w", entity, err)
	}
	return &entity, nil
}

// FindOne returns the first entity matching query.
func (r *Repository[T]) FindOne(ctx context.Context, query string, args ...interface{}) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).Where(query, args...).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find %T: %w", entity, err)
	}
	return &entity, nil
}

// Find returns every entity matching query. An empty query matches all rows.
func (r *Repository[T]) Find(ctx context.Context, query string, args ...interface{}) ([]T, error) {
	var out []T
	q := r.db.WithContext(ctx)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list %T: %w", out, err)
	}
	return out, nil
}

// Update applies column updates to the rows matching query.
func (r *Repository[T]) Update(ctx context.Context, updates map[string]interface{}, query string, args ...interface{}) (int64, error) {
	var model T
	res := r.db.WithContext(ctx).Model(&model).Where(query, args...).Updates(updates)
	if res.Error != nil {
		return 0, fmt.Errorf("failed to update %T: %w", model, res.Error)
	}
	return res.RowsAffected, nil
}

func (r *Repository[T]) Delete(ctx context.Context, query string, args ...interface{}) error {
	var model T
	if err := r.db.WithContext(ctx).Where(query, args...).Delete(&model).Error; err != nil {
		return fmt.Errorf("failed to delete %T: %w", model, err)
	}
	return nil
}

// UnitOfWork runs a function inside a single database transaction.
type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Do commits when fn returns nil and rolls back otherwise.
func (u *UnitOfWork) Do(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return u.db.WithContext(ctx).Transaction(fn)
}
