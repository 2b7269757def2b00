package service

import (
	"context"
	"time"

	"nutrition-tracker/internal/domain"
	"nutrition-tracker/internal/repository"
)

// EntryUpdate carries optional changes to a food entry.
type EntryUpdate struct {
	FoodID   *int64
	Quantity *float64
}

// LogService manages a user's daily logs and their food entries. Every
// operation is scoped to the acting user; foreign logs are indistinguishable
// from missing ones.
type LogService interface {
	CreateLog(ctx context.Context, userID int64, date *time.Time) (*domain.DailyLog, error)
	GetLog(ctx context.Context, userID, logID int64) (*domain.DailyLog, []domain.FoodEntry, error)
	ListLogs(ctx context.Context, userID int64) ([]domain.DailyLog, error)
	UpdateLogDate(ctx context.Context, userID, logID int64, date time.Time) (*domain.DailyLog, error)
	DeleteLog(ctx context.Context, userID, logID int64) error

	AddEntry(ctx context.Context, userID, logID, foodID int64, quantity float64) (*domain.FoodEntry, error)
	GetEntry(ctx context.Context, userID, logID, entryID int64) (*domain.FoodEntry, error)
	ListEntries(ctx context.Context, userID, logID int64) ([]domain.FoodEntry, error)
	UpdateEntry(ctx context.Context, userID, logID, entryID int64, update EntryUpdate) (*domain.FoodEntry, error)
	DeleteEntry(ctx context.Context, userID, logID, entryID int64) error

	Summary(ctx context.Context, userID int64, date time.Time) (*domain.DaySummary, error)
}

type logService struct {
	logs    repository.DailyLogRepository
	entries repository.FoodEntryRepository
	foods   repository.FoodRepository
}

func NewLogService(logs repository.DailyLogRepository, entries repository.FoodEntryRepository, foods repository.FoodRepository) LogService {
	return &logService{logs: logs, entries: entries, foods: foods}
}

func (s *logService) CreateLog(ctx context.Context, userID int64, date *time.Time) (*domain.DailyLog, error) {
	day := time.Now().UTC()
	if date != nil {
		day = *date
	}

	log := &domain.DailyLog{
		UserID: userID,
		Date:   truncateToDate(day),
	}
	if _, err := s.logs.Create(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *logService) GetLog(ctx context.Context, userID, logID int64) (*domain.DailyLog, []domain.FoodEntry, error) {
	log, err := s.logs.GetForUser(ctx, userID, logID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.entries.ListByLog(ctx, log.ID)
	if err != nil {
		return nil, nil, err
	}
	return log, entries, nil
}

func (s *logService) ListLogs(ctx context.Context, userID int64) ([]domain.DailyLog, error) {
	return s.logs.ListForUser(ctx, userID)
}

func (s *logService) UpdateLogDate(ctx context.Context, userID, logID int64, date time.Time) (*domain.DailyLog, error) {
	log, err := s.logs.GetForUser(ctx, userID, logID)
	if err != nil {
		return nil, err
	}
	log.Date = truncateToDate(date)
	if err := s.logs.Update(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *logService) DeleteLog(ctx context.Context, userID, logID int64) error {
	return s.logs.Delete(ctx, userID, logID)
}

func (s *logService) AddEntry(ctx context.Context, userID, logID, foodID int64, quantity float64) (*domain.FoodEntry, error) {
	if quantity == 0 {
		quantity = 1.0
	}
	if quantity < 0 {
		return nil, validationError("quantity must be positive")
	}

	log, err := s.logs.GetForUser(ctx, userID, logID)
	if err != nil {
		return nil, err
	}
	food, err := s.foods.Get(ctx, foodID)
	if err != nil {
		return nil, err
	}

	entry := &domain.FoodEntry{
		DailyLogID: log.ID,
		FoodID:     food.ID,
		Quantity:   quantity,
		Food:       food,
	}
	if _, err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *logService) GetEntry(ctx context.Context, userID, logID, entryID int64) (*domain.FoodEntry, error) {
	log, err := s.logs.GetForUser(ctx, userID, logID)
	if err != nil {
		return nil, err
	}
	return s.entries.Get(ctx, log.ID, entryID)
}

func (s *logService) ListEntries(ctx context.Context, userID, logID int64) ([]domain.FoodEntry, error) {
	log, err := s.logs.GetForUser(ctx, userID, logID)
	if err != nil {
		return nil, err
	}
	return s.entries.ListByLog(ctx, log.ID)
}

func (s *logService) UpdateEntry(ctx context.Context, userID, logID, entryID int64, update EntryUpdate) (*domain.FoodEntry, error) {
	log, err := s.logs.GetForUser(ctx, userID, logID)
	if err != nil {
		return nil, err
	}
	entry, err := s.entries.Get(ctx, log.ID, entryID)
	if err != nil {
		return nil, err
	}

	if update.FoodID != nil {
		food, err := s.foods.Get(ctx, *update.FoodID)
		if err != nil {
			return nil, err
		}
		entry.FoodID = food.ID
		entry.Food = food
	}
	if update.Quantity != nil {
		if *update.Quantity <= 0 {
			return nil, validationError("quantity must be positive")
		}
		entry.Quantity = *update.Quantity
	}

	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *logService) DeleteEntry(ctx context.Context, userID, logID, entryID int64) error {
	log, err := s.logs.GetForUser(ctx, userID, logID)
	if err != nil {
		return err
	}
	return s.entries.Delete(ctx, log.ID, entryID)
}

// Summary totals the day's consumption: each entry contributes its quantity
// (in servings) times the food's per-serving values.
func (s *logService) Summary(ctx context.Context, userID int64, date time.Time) (*domain.DaySummary, error) {
	log, err := s.logs.GetByDate(ctx, userID, truncateToDate(date))
	if err != nil {
		return nil, err
	}
	entries, err := s.entries.ListByLog(ctx, log.ID)
	if err != nil {
		return nil, err
	}

	summary := &domain.DaySummary{Date: log.Date, Entries: len(entries)}
	for _, entry := range entries {
		summary.Calories += entry.Quantity * entry.Food.Calories
		summary.Protein += entry.Quantity * entry.Food.Protein
		summary.Carbs += entry.Quantity * entry.Food.Carbs
		summary.Fat += entry.Quantity * entry.Food.Fat
	}
	return summary, nil
}

func truncateToDate(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
