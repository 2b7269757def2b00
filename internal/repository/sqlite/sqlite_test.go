package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"nutrition-tracker/internal/domain"
	"nutrition-tracker/internal/repository"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, NewUserRepository(db).Init(ctx))
	require.NoError(t, NewFoodRepository(db).Init(ctx))
	require.NoError(t, NewDailyLogRepository(db).Init(ctx))
	require.NoError(t, NewFoodEntryRepository(db).Init(ctx))
	return db
}

func seedUser(t *testing.T, repo repository.UserRepository, username, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$10$fakefakefakefakefakefakefakefakefakefakefakefakefakef",
		IsActive:     true,
		Role:         domain.RoleUser,
	}
	_, err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	return user
}

func seedFood(t *testing.T, repo repository.FoodRepository, name string, calories float64) *domain.Food {
	t.Helper()
	food := &domain.Food{
		Name:         name,
		Manufacturer: "Acme",
		ServingSize:  1.0,
		Unit:         "g",
		Calories:     calories,
		Protein:      calories / 10,
		Carbs:        calories / 5,
		Fat:          calories / 20,
	}
	_, err := repo.Create(context.Background(), food)
	require.NoError(t, err)
	return food
}
