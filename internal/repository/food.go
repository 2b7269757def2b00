package repository

import (
	"context"

	"nutrition-tracker/internal/domain"
)

// FoodRepository exposes persistence operations for the shared food catalog.
type FoodRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, food *domain.Food) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Food, error)
	List(ctx context.Context, skip, limit int) ([]domain.Food, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Food, error)
	Update(ctx context.Context, food *domain.Food) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
