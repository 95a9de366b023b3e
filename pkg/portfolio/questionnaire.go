package portfolio

import "fmt"

// Question is one risk questionnaire item. Options are ordered from the
// most conservative answer to the most aggressive; an answer scores its
// option index plus one.
type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

var questions = []Question{
	{
		ID:     "horizon",
		Prompt: "How long will this money stay invested?",
		Options: []string{
			"Less than a year",
			"1 to 3 years",
			"3 to 5 years",
			"5 to 10 years",
			"More than 10 years",
		},
	},
	{
		ID:     "drawdown",
		Prompt: "Your portfolio drops 20% in a quarter. What do you do?",
		Options: []string{
			"Sell everything",
			"Sell part of it",
			"Hold and wait",
			"Buy a little more",
			"Buy aggressively",
		},
	},
	{
		ID:     "savings_share",
		Prompt: "What share of your savings does this investment represent?",
		Options: []string{
			"More than 80%",
			"60% to 80%",
			"40% to 60%",
			"20% to 40%",
			"Less than 20%",
		},
	},
	{
		ID:     "goal",
		Prompt: "Which outcome matters most to you?",
		Options: []string{
			"Never losing principal",
			"Steady income with small swings",
			"Balanced income and growth",
			"Growth, accepting losses along the way",
			"Maximum growth whatever the swings",
		},
	},
	{
		ID:     "income",
		Prompt: "How stable is the income you invest from?",
		Options: []string{
			"Irregular, may need this money soon",
			"Seasonal or variable",
			"Stable salary, modest savings rate",
			"Stable salary, high savings rate",
			"Multiple stable sources",
		},
	},
}

// Questionnaire returns the risk assessment questions.
func Questionnaire() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}

// Score bands mapping a questionnaire total to a profile. Five questions
// with five options each bound the total to [5, 25].
const (
	scoreCapConservative = 8
	scoreCapCautious     = 12
	scoreCapBalanced     = 16
	scoreCapGrowth       = 20
)

// ProfileForScore maps a questionnaire score to its profile band.
func ProfileForScore(score int) Profile {
	switch {
	case score <= scoreCapConservative:
		return ProfileConservative
	case score <= scoreCapCautious:
		return ProfileCautious
	case score <= scoreCapBalanced:
		return ProfileBalanced
	case score <= scoreCapGrowth:
		return ProfileGrowth
	default:
		return ProfileAggressive
	}
}

// ScoreAnswers totals the chosen options (question id to option index)
// and maps the result to a profile. Every question must be answered.
func ScoreAnswers(answers map[string]int) (int, Profile, error) {
	score := 0
	for _, q := range questions {
		choice, ok := answers[q.ID]
		if !ok {
			return 0, "", fmt.Errorf("question %q is unanswered", q.ID)
		}
		if choice < 0 || choice >= len(q.Options) {
			return 0, "", fmt.Errorf("question %q has no option %d", q.ID, choice)
		}
		score += choice + 1
	}
	return score, ProfileForScore(score), nil
}
