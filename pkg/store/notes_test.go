package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveNote(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	id := seedUser(t, s, "alice")

	noteID, err := s.SaveNote(ctx, id, "fund-basics", "nav", "NAV is priced once per day")
	require.NoError(t, err)
	assert.Greater(t, noteID, int64(0))

	notes, err := s.Notes(ctx, id, "")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "NAV is priced once per day", notes[0].Content)
	assert.False(t, notes[0].CreatedAt.IsZero())
}

func TestNotes_FilterByModule(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	id := seedUser(t, s, "alice")
	_, err := s.SaveNote(ctx, id, "fund-basics", "", "basics note")
	require.NoError(t, err)
	_, err = s.SaveNote(ctx, id, "risk", "", "risk note")
	require.NoError(t, err)

	notes, err := s.Notes(ctx, id, "risk")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "risk note", notes[0].Content)

	all, err := s.Notes(ctx, id, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSaveNote_Validation(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.SaveNote(context.Background(), 1, "", "", "content")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "module and content are required")

	_, err = s.SaveNote(context.Background(), 1, "fund-basics", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "module and content are required")
}
