package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionnaire(t *testing.T) {
	qs := Questionnaire()
	require.Len(t, qs, 5)

	seen := make(map[string]bool)
	for _, q := range qs {
		assert.False(t, seen[q.ID], "duplicate question id %s", q.ID)
		seen[q.ID] = true
		assert.NotEmpty(t, q.Prompt)
		assert.Len(t, q.Options, 5, "question %s", q.ID)
	}
}

func TestProfileForScore(t *testing.T) {
	testCases := []struct {
		score    int
		expected Profile
	}{
		{5, ProfileConservative},
		{8, ProfileConservative},
		{9, ProfileCautious},
		{12, ProfileCautious},
		{13, ProfileBalanced},
		{16, ProfileBalanced},
		{17, ProfileGrowth},
		{20, ProfileGrowth},
		{21, ProfileAggressive},
		{25, ProfileAggressive},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, ProfileForScore(tc.score), "score %d", tc.score)
	}
}

func TestScoreAnswers(t *testing.T) {
	lowest := map[string]int{
		"horizon": 0, "drawdown": 0, "savings_share": 0, "goal": 0, "income": 0,
	}
	score, profile, err := ScoreAnswers(lowest)
	require.NoError(t, err)
	assert.Equal(t, 5, score)
	assert.Equal(t, ProfileConservative, profile)

	highest := map[string]int{
		"horizon": 4, "drawdown": 4, "savings_share": 4, "goal": 4, "income": 4,
	}
	score, profile, err = ScoreAnswers(highest)
	require.NoError(t, err)
	assert.Equal(t, 25, score)
	assert.Equal(t, ProfileAggressive, profile)

	mixed := map[string]int{
		"horizon": 2, "drawdown": 3, "savings_share": 1, "goal": 2, "income": 2,
	}
	score, profile, err = ScoreAnswers(mixed)
	require.NoError(t, err)
	assert.Equal(t, 15, score)
	assert.Equal(t, ProfileBalanced, profile)
}

func TestScoreAnswers_Unanswered(t *testing.T) {
	_, _, err := ScoreAnswers(map[string]int{"horizon": 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unanswered")
}

func TestScoreAnswers_OptionOutOfRange(t *testing.T) {
	answers := map[string]int{
		"horizon": 5, "drawdown": 0, "savings_share": 0, "goal": 0, "income": 0,
	}
	_, _, err := ScoreAnswers(answers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no option")

	answers["horizon"] = -1
	_, _, err = ScoreAnswers(answers)
	assert.Error(t, err)
}
