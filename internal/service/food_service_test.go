package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrition-tracker/internal/repository"
	"nutrition-tracker/internal/service"
)

func TestFoodService_CreateDefaultsAndValidation(t *testing.T) {
	t.Parallel()

	repos := newTestRepos(t)
	foods := service.NewFoodService(repos.foods)
	ctx := context.Background()

	food, err := foods.Create(ctx, service.FoodInput{
		Name: "Oats", Manufacturer: "Acme", Unit: "g", Calories: 380,
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, food.ServingSize, 1e-9, "serving size defaults to 1")

	_, err = foods.Create(ctx, service.FoodInput{Manufacturer: "Acme", Unit: "g"})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = foods.Create(ctx, service.FoodInput{
		Name: "Bad", Manufacturer: "Acme", Unit: "g", Calories: -1,
	})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = foods.Create(ctx, service.FoodInput{
		Name: "Bad", Manufacturer: "Acme", Unit: "g", ServingSize: -2,
	})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestFoodService_Search(t *testing.T) {
	t.Parallel()

	repos := newTestRepos(t)
	foods := service.NewFoodService(repos.foods)
	ctx := context.Background()

	for _, name := range []string{"Rolled Oats", "Oat Milk", "Rice"} {
		_, err := foods.Create(ctx, service.FoodInput{
			Name: name, Manufacturer: "Acme", Unit: "g",
		})
		require.NoError(t, err)
	}

	found, err := foods.Search(ctx, "oat", 10)
	require.NoError(t, err)
	assert.Len(t, found, 2, "substring match is case-insensitive")

	found, err = foods.Search(ctx, "oat", 1)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = foods.Search(ctx, "  ", 10)
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestFoodService_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	repos := newTestRepos(t)
	foods := service.NewFoodService(repos.foods)
	ctx := context.Background()

	food, err := foods.Create(ctx, service.FoodInput{
		Name: "Oats", Manufacturer: "Acme", Unit: "g", Calories: 380,
	})
	require.NoError(t, err)

	calories := 390.0
	name := "Steel-Cut Oats"
	updated, err := foods.Update(ctx, food.ID, service.FoodUpdate{
		Name:     &name,
		Calories: &calories,
	})
	require.NoError(t, err)
	assert.Equal(t, "Steel-Cut Oats", updated.Name)
	assert.InDelta(t, 390, updated.Calories, 1e-9)

	empty := ""
	_, err = foods.Update(ctx, food.ID, service.FoodUpdate{Name: &empty})
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = foods.Update(ctx, 9999, service.FoodUpdate{})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, foods.Delete(ctx, food.ID))
	_, err = foods.Get(ctx, food.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
