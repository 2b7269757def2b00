package repository

import (
	"context"
	"time"

	"nutrition-tracker/internal/domain"
)

// UserActivity summarizes one user's logging volume within a time window.
type UserActivity struct {
	UserID   int64
	Username string
	Email    string
	Logs     int64
	Entries  int64
}

// DailyLogRepository manages per-user daily logs. All reads and mutations are
// scoped to the owning user; a log belonging to someone else behaves as if it
// did not exist.
type DailyLogRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, log *domain.DailyLog) (int64, error)
	GetForUser(ctx context.Context, userID, id int64) (*domain.DailyLog, error)
	GetByDate(ctx context.Context, userID int64, date time.Time) (*domain.DailyLog, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.DailyLog, error)
	Update(ctx context.Context, log *domain.DailyLog) error
	Delete(ctx context.Context, userID, id int64) error
	Count(ctx context.Context) (int64, error)
	ActivitySince(ctx context.Context, since time.Time, limit int) ([]UserActivity, error)
}

// FoodEntryRepository manages the food entries within a daily log. Callers
// resolve log ownership before touching entries.
type FoodEntryRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, entry *domain.FoodEntry) (int64, error)
	Get(ctx context.Context, logID, id int64) (*domain.FoodEntry, error)
	ListByLog(ctx context.Context, logID int64) ([]domain.FoodEntry, error)
	Update(ctx context.Context, entry *domain.FoodEntry) error
	Delete(ctx context.Context, logID, id int64) error
	Count(ctx context.Context) (int64, error)
}
