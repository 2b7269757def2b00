package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"nutrition-tracker/internal/domain"
	"nutrition-tracker/internal/repository"
)

const createFoodsTable = `
CREATE TABLE IF NOT EXISTS foods (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	manufacturer TEXT NOT NULL,
	serving_size REAL NOT NULL DEFAULT 1.0,
	unit TEXT NOT NULL,
	calories REAL NOT NULL DEFAULT 0,
	protein REAL NOT NULL DEFAULT 0,
	carbs REAL NOT NULL DEFAULT 0,
	fat REAL NOT NULL DEFAULT 0
);
`

type FoodRepository struct {
	db *sql.DB
}

func NewFoodRepository(db *sql.DB) repository.FoodRepository {
	return &FoodRepository{db: db}
}

func (r *FoodRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createFoodsTable); err != nil {
		return fmt.Errorf("create foods table: %w", err)
	}
	return nil
}

func (r *FoodRepository) Create(ctx context.Context, food *domain.Food) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO foods (name, manufacturer, serving_size, unit, calories, protein, carbs, fat)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		food.Name,
		food.Manufacturer,
		food.ServingSize,
		food.Unit,
		food.Calories,
		food.Protein,
		food.Carbs,
		food.Fat,
	)
	if err != nil {
		return 0, fmt.Errorf("insert food: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("food last insert id: %w", err)
	}
	food.ID = id
	return id, nil
}

func (r *FoodRepository) Get(ctx context.Context, id int64) (*domain.Food, error) {
	return scanFood(r.db.QueryRowContext(ctx, selectFood+`WHERE id = ?`, id))
}

func (r *FoodRepository) List(ctx context.Context, skip, limit int) ([]domain.Food, error) {
	rows, err := r.db.QueryContext(ctx, selectFood+`ORDER BY id LIMIT ? OFFSET ?`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	return collectFoods(rows)
}

func (r *FoodRepository) Search(ctx context.Context, query string, limit int) ([]domain.Food, error) {
	pattern := "%" + query + "%"
	rows, err := r.db.QueryContext(ctx, selectFood+`WHERE name LIKE ? ORDER BY name LIMIT ?`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search foods: %w", err)
	}
	return collectFoods(rows)
}

func (r *FoodRepository) Update(ctx context.Context, food *domain.Food) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE foods
SET name = ?, manufacturer = ?, serving_size = ?, unit = ?, calories = ?, protein = ?, carbs = ?, fat = ?
WHERE id = ?`,
		food.Name,
		food.Manufacturer,
		food.ServingSize,
		food.Unit,
		food.Calories,
		food.Protein,
		food.Carbs,
		food.Fat,
		food.ID,
	)
	if err != nil {
		return fmt.Errorf("update food: %w", err)
	}
	return requireRowAffected(res, "food")
}

func (r *FoodRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM foods WHERE id = ?`, id)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return repository.ErrFoodInUse
		}
		return fmt.Errorf("delete food: %w", err)
	}
	return requireRowAffected(res, "food")
}

func (r *FoodRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM foods`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count foods: %w", err)
	}
	return n, nil
}

const selectFood = `
SELECT id, name, manufacturer, serving_size, unit, calories, protein, carbs, fat
FROM foods
`

func collectFoods(rows *sql.Rows) ([]domain.Food, error) {
	defer rows.Close()
	var foods []domain.Food
	for rows.Next() {
		food, err := scanFood(rows)
		if err != nil {
			return nil, err
		}
		foods = append(foods, *food)
	}
	return foods, rows.Err()
}

func scanFood(row interface {
	Scan(dest ...any) error
}) (*domain.Food, error) {
	var food domain.Food
	if err := row.Scan(
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
		return nil, fmt.Errorf("scan food: %w", err)
	}
	return &food, nil
}
