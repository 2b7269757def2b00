package service

import (
	"context"
	"strings"

	"nutrition-tracker/internal/domain"
	"nutrition-tracker/internal/repository"
)

// FoodInput is the payload for creating a catalog food.
type FoodInput struct {
	Name         string
	Manufacturer string
	ServingSize  float64
	Unit         string
	Calories     float64
	Protein      float64
	Carbs        float64
	Fat          float64
}

// FoodUpdate carries optional field changes; nil means "leave unchanged".
type FoodUpdate struct {
	Name         *string
	Manufacturer *string
	ServingSize  *float64
	Unit         *string
	Calories     *float64
	Protein      *float64
	Carbs        *float64
	Fat          *float64
}

// FoodService manages the shared, admin-curated food catalog.
type FoodService interface {
	Create(ctx context.Context, input FoodInput) (*domain.Food, error)
	Get(ctx context.Context, id int64) (*domain.Food, error)
	List(ctx context.Context, skip, limit int) ([]domain.Food, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Food, error)
	Update(ctx context.Context, id int64, update FoodUpdate) (*domain.Food, error)
	Delete(ctx context.Context, id int64) error
}

type foodService struct {
	foods repository.FoodRepository
}

func NewFoodService(foods repository.FoodRepository) FoodService {
	return &foodService{foods: foods}
}

func (s *foodService) Create(ctx context.Context, input FoodInput) (*domain.Food, error) {
	food := &domain.Food{
		Name:         strings.TrimSpace(input.Name),
		Manufacturer: strings.TrimSpace(input.Manufacturer),
		ServingSize:  input.ServingSize,
		Unit:         strings.TrimSpace(input.Unit),
		Calories:     input.Calories,
		Protein:      input.Protein,
		Carbs:        input.Carbs,
		Fat:          input.Fat,
	}
	if food.ServingSize == 0 {
		food.ServingSize = 1.0
	}
	if err := validateFood(food); err != nil {
		return nil, err
	}

	if _, err := s.foods.Create(ctx, food); err != nil {
		return nil, err
	}
	return food, nil
}

func (s *foodService) Get(ctx context.Context, id int64) (*domain.Food, error) {
	return s.foods.Get(ctx, id)
}

func (s *foodService) List(ctx context.Context, skip, limit int) ([]domain.Food, error) {
	return s.foods.List(ctx, skip, limit)
}

func (s *foodService) Search(ctx context.Context, query string, limit int) ([]domain.Food, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, validationError("search query is required")
	}
	return s.foods.Search(ctx, query, limit)
}

func (s *foodService) Update(ctx context.Context, id int64, update FoodUpdate) (*domain.Food, error) {
	food, err := s.foods.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		food.Name = strings.TrimSpace(*update.Name)
	}
	if update.Manufacturer != nil {
		food.Manufacturer = strings.TrimSpace(*update.Manufacturer)
	}
	if update.ServingSize != nil {
		food.ServingSize = *update.ServingSize
	}
	if update.Unit != nil {
		food.Unit = strings.TrimSpace(*update.Unit)
	}
	if update.Calories != nil {
		food.Calories = *update.Calories
	}
	if update.Protein != nil {
		food.Protein = *update.Protein
	}
	if update.Carbs != nil {
		food.Carbs = *update.Carbs
	}
	if update.Fat != nil {
		food.Fat = *update.Fat
	}

	if err := validateFood(food); err != nil {
		return nil, err
	}
	if err := s.foods.Update(ctx, food); err != nil {
		return nil, err
	}
	return food, nil
}

func (s *foodService) Delete(ctx context.Context, id int64) error {
	return s.foods.Delete(ctx, id)
}

func validateFood(food *domain.Food) error {
	switch {
	case food.Name == "":
		return validationError("food name is required")
	case food.Manufacturer == "":
		return validationError("manufacturer is required")
	case food.Unit == "":
		return validationError("unit is required")
	case food.ServingSize <= 0:
		return validationError("serving size must be positive")
	case food.Calories < 0 || food.Protein < 0 || food.Carbs < 0 || food.Fat < 0:
		return validationError("nutritional values cannot be negative")
	}
	return nil
}
