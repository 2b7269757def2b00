package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nutrition-tracker/internal/domain"
	"nutrition-tracker/internal/repository"
)

const createFoodEntriesTable = `
CREATE TABLE IF NOT EXISTS food_entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	daily_log_id INTEGER NOT NULL REFERENCES daily_logs(id) ON DELETE CASCADE,
	food_id INTEGER NOT NULL REFERENCES foods(id),
	quantity REAL NOT NULL DEFAULT 1.0
);
`

type FoodEntryRepository struct {
	db *sql.DB
}

func NewFoodEntryRepository(db *sql.DB) repository.FoodEntryRepository {
	return &FoodEntryRepository{db: db}
}

func (r *FoodEntryRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createFoodEntriesTable); err != nil {
		return fmt.Errorf("create food_entries table: %w", err)
	}
	return nil
}

func (r *FoodEntryRepository) Create(ctx context.Context, entry *domain.FoodEntry) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO food_entries (daily_log_id, food_id, quantity) VALUES (?, ?, ?)`,
		entry.DailyLogID,
		entry.FoodID,
		entry.Quantity,
	)
	if err != nil {
		return 0, fmt.Errorf("insert food entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("food entry last insert id: %w", err)
	}
	entry.ID = id
	return id, nil
}

func (r *FoodEntryRepository) Get(ctx context.Context, logID, id int64) (*domain.FoodEntry, error) {
	return scanEntry(r.db.QueryRowContext(ctx, selectEntry+`WHERE e.daily_log_id = ? AND e.id = ?`, logID, id))
}

func (r *FoodEntryRepository) ListByLog(ctx context.Context, logID int64) ([]domain.FoodEntry, error) {
	rows, err := r.db.QueryContext(ctx, selectEntry+`WHERE e.daily_log_id = ? ORDER BY e.id`, logID)
	if err != nil {
		return nil, fmt.Errorf("list food entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.FoodEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

func (r *FoodEntryRepository) Update(ctx context.Context, entry *domain.FoodEntry) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE food_entries SET food_id = ?, quantity = ? WHERE daily_log_id = ? AND id = ?`,
		entry.FoodID,
		entry.Quantity,
		entry.DailyLogID,
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("update food entry: %w", err)
	}
	return requireRowAffected(res, "food entry")
}

func (r *FoodEntryRepository) Delete(ctx context.Context, logID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM food_entries WHERE daily_log_id = ? AND id = ?`, logID, id)
	if err != nil {
		return fmt.Errorf("delete food entry: %w", err)
	}
	return requireRowAffected(res, "food entry")
}

func (r *FoodEntryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM food_entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count food entries: %w", err)
	}
	return n, nil
}

// entries are always read together with their catalog food, so responses and
// summaries never need a second round trip.
const selectEntry = `
SELECT e.id, e.daily_log_id, e.food_id, e.quantity,
       f.id, f.name, f.manufacturer, f.serving_size, f.unit, f.calories, f.protein, f.carbs, f.fat
FROM food_entries e
JOIN foods f ON f.id = e.food_id
`

func scanEntry(row interface {
	Scan(dest ...any) error
}) (*domain.FoodEntry, error) {
	var (
		entry domain.FoodEntry
		food  domain.Food
	)
	if err := row.Scan(
		&entry.ID,
		&entry.DailyLogID,
		&entry.FoodID,
		&entry.Quantity,
		&food.ID,
		&food.Name,
		&food.Manufacturer,
		&food.ServingSize,
		&food.Unit,
		&food.Calories,
		&food.Protein,
		&food.Carbs,
		&food.Fat,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan food entry: %w", err)
	}
	entry.Food = &food
	return &entry, nil
}
