package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"nutrition-tracker/internal/domain"
	"nutrition-tracker/internal/repository"
	"nutrition-tracker/internal/storage"
)

// SystemStats are the aggregate counters shown to administrators.
type SystemStats struct {
	TotalUsers       int64     `json:"total_users"`
	ActiveUsers      int64     `json:"active_users"`
	AdminUsers       int64     `json:"admin_users"`
	TotalFoods       int64     `json:"total_foods"`
	TotalDailyLogs   int64     `json:"total_daily_logs"`
	TotalFoodEntries int64     `json:"total_food_entries"`
	Timestamp        time.Time `json:"timestamp"`
}

// ExportResult describes a snapshot uploaded to object storage.
type ExportResult struct {
	Key      string
	Location string
}

// StatsService produces admin statistics and catalog exports.
type StatsService interface {
	SystemStats(ctx context.Context) (*SystemStats, error)
	UsersActivity(ctx context.Context, days, limit int) ([]repository.UserActivity, error)
	Export(ctx context.Context) (*ExportResult, error)
	ListExports(ctx context.Context) ([]storage.ObjectInfo, error)
	ExportURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

type statsService struct {
	users   repository.UserRepository
	foods   repository.FoodRepository
	logs    repository.DailyLogRepository
	entries repository.FoodEntryRepository

	store     storage.ObjectStore
	bucket    string
	keyPrefix string
}

func NewStatsService(
	users repository.UserRepository,
	foods repository.FoodRepository,
	logs repository.DailyLogRepository,
	entries repository.FoodEntryRepository,
	store storage.ObjectStore,
	bucket, keyPrefix string,
) StatsService {
	return &statsService{
		users:     users,
		foods:     foods,
		logs:      logs,
		entries:   entries,
		store:     store,
		bucket:    bucket,
		keyPrefix: keyPrefix,
	}
}

func (s *statsService) SystemStats(ctx context.Context) (*SystemStats, error) {
	userCounts, err := s.users.Counts(ctx)
	if err != nil {
		return nil, err
	}
	foodCount, err := s.foods.Count(ctx)
	if err != nil {
		return nil, err
	}
	logCount, err := s.logs.Count(ctx)
	if err != nil {
		return nil, err
	}
	entryCount, err := s.entries.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &SystemStats{
		TotalUsers:       userCounts.Total,
		ActiveUsers:      userCounts.Active,
		AdminUsers:       userCounts.Admins,
		TotalFoods:       foodCount,
		TotalDailyLogs:   logCount,
		TotalFoodEntries: entryCount,
		Timestamp:        time.Now().UTC(),
	}, nil
}

func (s *statsService) UsersActivity(ctx context.Context, days, limit int) ([]repository.UserActivity, error) {
	if days <= 0 {
		days = 7
	}
	if limit <= 0 {
		limit = 100
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	return s.logs.ActivitySince(ctx, since, limit)
}

// exportSnapshot is the JSON document written to object storage.
type exportSnapshot struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Stats       *SystemStats  `json:"stats"`
	Foods       []domain.Food `json:"foods"`
}

// Export snapshots the food catalog and system counters to the configured
// bucket and returns where it landed.
func (s *statsService) Export(ctx context.Context) (*ExportResult, error) {
	if s.store == nil || s.bucket == "" {
		return nil, fmt.Errorf("export storage is not configured")
	}

	stats, err := s.SystemStats(ctx)
	if err != nil {
		return nil, err
	}
	foods, err := s.foods.List(ctx, 0, int(stats.TotalFoods)+1)
	if err != nil {
		return nil, err
	}

	snapshot := exportSnapshot{
		GeneratedAt: time.Now().UTC(),
		Stats:       stats,
		Foods:       foods,
	}
	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	key := fmt.Sprintf("%s/%s-%s.json",
		s.keyPrefix,
		snapshot.GeneratedAt.Format("20060102T150405Z"),
		uuid.NewString()[:8],
	)
	location, err := s.store.Put(ctx, s.bucket, key, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	return &ExportResult{Key: key, Location: location}, nil
}

func (s *statsService) ListExports(ctx context.Context) ([]storage.ObjectInfo, error) {
	if s.store == nil || s.bucket == "" {
		return nil, fmt.Errorf("export storage is not configured")
	}
	return s.store.ListObjects(ctx, s.bucket, s.keyPrefix)
}

func (s *statsService) ExportURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	if s.store == nil || s.bucket == "" {
		return "", fmt.Errorf("export storage is not configured")
	}
	return s.store.GetObjectURL(ctx, s.bucket, key, expires)
}
