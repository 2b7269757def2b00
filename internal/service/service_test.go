package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"nutrition-tracker/internal/repository"
	"nutrition-tracker/internal/repository/sqlite"
)

type testRepos struct {
	db      *sql.DB
	users   repository.UserRepository
	foods   repository.FoodRepository
	logs    repository.DailyLogRepository
	entries repository.FoodEntryRepository
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repos := testRepos{
		db:      db,
		users:   sqlite.NewUserRepository(db),
		foods:   sqlite.NewFoodRepository(db),
		logs:    sqlite.NewDailyLogRepository(db),
		entries: sqlite.NewFoodEntryRepository(db),
	}

	ctx := context.Background()
	require.NoError(t, repos.users.Init(ctx))
	require.NoError(t, repos.foods.Init(ctx))
	require.NoError(t, repos.logs.Init(ctx))
	require.NoError(t, repos.entries.Init(ctx))
	return repos
}
