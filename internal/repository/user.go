package repository

import (
	"context"

	"nutrition-tracker/internal/domain"
)

// UserCounts aggregates account counters for admin statistics.
type UserCounts struct {
	Total  int64
	Active int64
	Admins int64
}

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, skip, limit int) ([]domain.User, error)
	Counts(ctx context.Context) (UserCounts, error)
}
