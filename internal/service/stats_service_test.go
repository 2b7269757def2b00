package service_test

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrition-tracker/internal/service"
	"nutrition-tracker/internal/storage"
)

// memStore collects uploaded objects in memory.
type memStore struct {
	objects map[string][]byte
}

func newMemStore() *memStore {
	return &memStore{objects: make(map[string][]byte)}
}

func (m *memStore) Put(_ context.Context, bucket, key, _ string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.objects[key] = data
	return "s3://" + bucket + "/" + key, nil
}

func (m *memStore) ListObjects(_ context.Context, _, prefix string) ([]storage.ObjectInfo, error) {
	var infos []storage.ObjectInfo
	for key, data := range m.objects {
		if strings.HasPrefix(key, prefix) {
			infos = append(infos, storage.ObjectInfo{Key: key, Size: int64(len(data))})
		}
	}
	return infos, nil
}

func (m *memStore) Delete(_ context.Context, _, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memStore) GetObjectURL(_ context.Context, bucket, key string, _ time.Duration) (string, error) {
	return "https://" + bucket + ".example.com/" + key, nil
}

func TestStatsService_SystemStats(t *testing.T) {
	t.Parallel()

	repos := newTestRepos(t)
	alice, _, _, _ := seedLogFixtures(t, repos)
	logs := service.NewLogService(repos.logs, repos.entries, repos.foods)
	stats := service.NewStatsService(repos.users, repos.foods, repos.logs, repos.entries, nil, "", "")
	ctx := context.Background()

	_, err := logs.CreateLog(ctx, alice.ID, nil)
	require.NoError(t, err)

	got, err := stats.SystemStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.TotalUsers)
	assert.EqualValues(t, 2, got.ActiveUsers)
	assert.EqualValues(t, 0, got.AdminUsers)
	assert.EqualValues(t, 2, got.TotalFoods)
	assert.EqualValues(t, 1, got.TotalDailyLogs)
	assert.EqualValues(t, 0, got.TotalFoodEntries)
	assert.False(t, got.Timestamp.IsZero())
}

func TestStatsService_Export(t *testing.T) {
	t.Parallel()

	repos := newTestRepos(t)
	seedLogFixtures(t, repos)
	store := newMemStore()
	stats := service.NewStatsService(repos.users, repos.foods, repos.logs, repos.entries, store, "exports-bucket", "nutrition-exports")
	ctx := context.Background()

	result, err := stats.Export(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.Key, "nutrition-exports/"))
	assert.True(t, strings.HasPrefix(result.Location, "s3://exports-bucket/"))

	payload, ok := store.objects[result.Key]
	require.True(t, ok)

	var snapshot struct {
		Stats struct {
			TotalFoods int64 `json:"total_foods"`
		} `json:"stats"`
		Foods []struct {
			Name string `json:"name"`
		} `json:"foods"`
	}
	require.NoError(t, json.Unmarshal(payload, &snapshot))
	assert.EqualValues(t, 2, snapshot.Stats.TotalFoods)
	assert.Len(t, snapshot.Foods, 2)

	listed, err := stats.ListExports(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, result.Key, listed[0].Key)

	url, err := stats.ExportURL(ctx, result.Key, time.Minute)
	require.NoError(t, err)
	assert.Contains(t, url, result.Key)
}

func TestStatsService_ExportUnconfigured(t *testing.T) {
	t.Parallel()

	repos := newTestRepos(t)
	stats := service.NewStatsService(repos.users, repos.foods, repos.logs, repos.entries, nil, "", "")

	_, err := stats.Export(context.Background())
	assert.Error(t, err)
	_, err = stats.ListExports(context.Background())
	assert.Error(t, err)
}

func TestStatsService_UsersActivityDefaults(t *testing.T) {
	t.Parallel()

	repos := newTestRepos(t)
	alice, _, oats, _ := seedLogFixtures(t, repos)
	logs := service.NewLogService(repos.logs, repos.entries, repos.foods)
	stats := service.NewStatsService(repos.users, repos.foods, repos.logs, repos.entries, nil, "", "")
	ctx := context.Background()

	log, err := logs.CreateLog(ctx, alice.ID, nil)
	require.NoError(t, err)
	_, err = logs.AddEntry(ctx, alice.ID, log.ID, oats.ID, 1)
	require.NoError(t, err)

	// zero values fall back to 7 days / 100 users
	activity, err := stats.UsersActivity(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, activity, 1)
	assert.Equal(t, "alice", activity[0].Username)
	assert.EqualValues(t, 1, activity[0].Logs)
	assert.EqualValues(t, 1, activity[0].Entries)
}
