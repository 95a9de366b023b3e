package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Submission is one exercise answer. The log is append-only; repeat
// attempts add rows.
type Submission struct {
	CaseID      string    `json:"case_id"`
	QuestionID  string    `json:"question_id"`
	Answer      string    `json:"answer"`
	Correct     *bool     `json:"correct"`
	Score       *float64  `json:"score"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// SubmitExercise appends one exercise answer.
func (s *Store) SubmitExercise(ctx context.Context, userID int64, sub Submission) error {
	defer observe("submit_exercise", time.Now())

	if sub.CaseID == "" || sub.QuestionID == "" {
		return fmt.Errorf("case and question are required")
	}

	var correct, score any
	if sub.Correct != nil {
		correct = *sub.Correct
	}
	if sub.Score != nil {
		score = *sub.Score
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exercise_submissions (user_id, case_id, question_id, answer, is_correct, score, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, sub.CaseID, sub.QuestionID, sub.Answer, correct, score, fmtTime(s.now()))
	if err != nil {
		QueryErrors.WithLabelValues("submit_exercise").Inc()
		return fmt.Errorf("failed to record submission: %w", err)
	}
	return nil
}

// Submissions lists a user's exercise answers, newest first. An empty
// caseID lists across all cases.
func (s *Store) Submissions(ctx context.Context, userID int64, caseID string) ([]Submission, error) {
	defer observe("submissions", time.Now())

	query := `
		SELECT case_id, question_id, answer, is_correct, score, submitted_at
		FROM exercise_submissions
		WHERE user_id = ?`
	args := []any{userID}
	if caseID != "" {
		query += ` AND case_id = ?`
		args = append(args, caseID)
	}
	query += ` ORDER BY submitted_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		QueryErrors.WithLabelValues("submissions").Inc()
		return nil, fmt.Errorf("failed to load submissions: %w", err)
	}
	defer rows.Close()

	out := []Submission{}
	for rows.Next() {
		var sub Submission
		var correct sql.NullBool
		var score sql.NullFloat64
		var submittedAt string
		if err := rows.Scan(&sub.CaseID, &sub.QuestionID, &sub.Answer, &correct, &score, &submittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		if correct.Valid {
			sub.Correct = &correct.Bool
		}
		if score.Valid {
			sub.Score = &score.Float64
		}
		sub.SubmittedAt = parseTime(submittedAt)
		out = append(out, sub)
	}
	return out, rows.Err()
}
