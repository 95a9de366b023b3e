package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogActivity(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	id := seedUser(t, s, "alice")

	require.NoError(t, s.LogActivity(ctx, id, "lesson_viewed", map[string]any{"lesson": "intro"}))
	require.NoError(t, s.LogActivity(ctx, id, "quiz_submitted", nil))

	activities, err := s.Activities(ctx, id, 30)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, "quiz_submitted", activities[0].Kind, "newest first")
	assert.Nil(t, activities[0].Data)
	assert.JSONEq(t, `{"lesson":"intro"}`, string(activities[1].Data))
}

func TestLogActivity_RequiresKind(t *testing.T) {
	s := setupTestStore(t)

	err := s.LogActivity(context.Background(), 1, "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "activity kind is required")
}

func TestActivities_Window(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	id := seedUser(t, s, "alice")
	base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return base.AddDate(0, 0, -40) }
	require.NoError(t, s.LogActivity(ctx, id, "old", nil))

	s.now = func() time.Time { return base.AddDate(0, 0, -5) }
	require.NoError(t, s.LogActivity(ctx, id, "recent", nil))

	s.now = func() time.Time { return base }
	activities, err := s.Activities(ctx, id, 30)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	assert.Equal(t, "recent", activities[0].Kind)
}

func TestDailyActivity(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	id := seedUser(t, s, "alice")
	base := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return base.AddDate(0, 0, -1) }
	require.NoError(t, s.LogActivity(ctx, id, "lesson_viewed", nil))
	require.NoError(t, s.LogActivity(ctx, id, "quiz_submitted", nil))

	s.now = func() time.Time { return base }
	require.NoError(t, s.LogActivity(ctx, id, "lesson_viewed", nil))

	days, err := s.DailyActivity(ctx, id, 30)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2025-06-02", days[0].Date)
	assert.Equal(t, 1, days[0].Count)
	assert.Equal(t, "2025-06-01", days[1].Date)
	assert.Equal(t, 2, days[1].Count)
}
