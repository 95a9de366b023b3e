package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func TestSubmitExercise(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	id := seedUser(t, s, "alice")

	require.NoError(t, s.SubmitExercise(ctx, id, Submission{
		CaseID:     "case-2008-crisis",
		QuestionID: "q1",
		Answer:     "B",
		Correct:    boolPtr(true),
		Score:      floatPtr(10),
	}))

	subs, err := s.Submissions(ctx, id, "")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "case-2008-crisis", subs[0].CaseID)
	assert.Equal(t, "B", subs[0].Answer)
	require.NotNil(t, subs[0].Correct)
	assert.True(t, *subs[0].Correct)
	require.NotNil(t, subs[0].Score)
	assert.Equal(t, 10.0, *subs[0].Score)
}

func TestSubmitExercise_AppendOnly(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	id := seedUser(t, s, "alice")

	// Repeat attempts on the same question accumulate rows.
	require.NoError(t, s.SubmitExercise(ctx, id, Submission{
		CaseID: "case-1", QuestionID: "q1", Answer: "A", Correct: boolPtr(false),
	}))
	require.NoError(t, s.SubmitExercise(ctx, id, Submission{
		CaseID: "case-1", QuestionID: "q1", Answer: "B", Correct: boolPtr(true),
	}))

	subs, err := s.Submissions(ctx, id, "case-1")
	require.NoError(t, err)
	assert.Len(t, subs, 2)
	assert.Equal(t, "B", subs[0].Answer, "newest attempt first")
}

func TestSubmissions_FilterByCase(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	id := seedUser(t, s, "alice")
	require.NoError(t, s.SubmitExercise(ctx, id, Submission{CaseID: "case-1", QuestionID: "q1", Answer: "A"}))
	require.NoError(t, s.SubmitExercise(ctx, id, Submission{CaseID: "case-2", QuestionID: "q1", Answer: "C"}))

	subs, err := s.Submissions(ctx, id, "case-2")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "case-2", subs[0].CaseID)

	all, err := s.Submissions(ctx, id, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSubmitExercise_Validation(t *testing.T) {
	s := setupTestStore(t)

	err := s.SubmitExercise(context.Background(), 1, Submission{CaseID: "", QuestionID: "q1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "case and question are required")
}
