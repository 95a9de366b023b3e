package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Lesson status values.
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Progress is one user's state on one lesson.
type Progress struct {
	Module      string    `json:"module"`
	Lesson      string    `json:"lesson"`
	Status      string    `json:"status"`
	Score       *float64  `json:"score"`
	CompletedAt time.Time `json:"completed_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProgressUpdate carries a partial progress change. An empty Status
// keeps the stored status; a nil Score keeps the stored score.
type ProgressUpdate struct {
	Module string
	Lesson string
	Status string
	Score  *float64
}

// ModuleStats summarizes one module's lessons for a user.
type ModuleStats struct {
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	AvgScore  float64 `json:"avg_score"`
}

// UpdateProgress upserts one lesson's progress. Fields absent from the
// update keep their stored values; moving to completed stamps
// completed_at once and later updates keep the first stamp.
func (s *Store) UpdateProgress(ctx context.Context, userID int64, upd ProgressUpdate) error {
	defer observe("update_progress", time.Now())

	if upd.Module == "" || upd.Lesson == "" {
		return fmt.Errorf("module and lesson are required")
	}

	now := fmtTime(s.now())
	var completedAt any
	if upd.Status == StatusCompleted {
		completedAt = now
	}
	var score any
	if upd.Score != nil {
		score = *upd.Score
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO learning_progress (user_id, module, lesson, status, score, completed_at, updated_at)
		VALUES (?, ?, ?, COALESCE(NULLIF(?, ''), 'not_started'), ?, ?, ?)
		ON CONFLICT(user_id, module, lesson) DO UPDATE SET
			status = COALESCE(NULLIF(?, ''), status),
			score = COALESCE(?, score),
			completed_at = COALESCE(completed_at, ?),
			updated_at = ?`,
		userID, upd.Module, upd.Lesson, upd.Status, score, completedAt, now,
		upd.Status, score, completedAt, now)
	if err != nil {
		QueryErrors.WithLabelValues("update_progress").Inc()
		return fmt.Errorf("failed to update progress: %w", err)
	}
	return nil
}

// ProgressFor lists a user's lesson progress ordered by module then
// lesson.
func (s *Store) ProgressFor(ctx context.Context, userID int64) ([]Progress, error) {
	defer observe("progress_for", time.Now())

	rows, err := s.db.QueryContext(ctx, `
		SELECT module, lesson, status, score, COALESCE(completed_at, ''), updated_at
		FROM learning_progress
		WHERE user_id = ?
		ORDER BY module, lesson`, userID)
	if err != nil {
		QueryErrors.WithLabelValues("progress_for").Inc()
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	defer rows.Close()

	out := []Progress{}
	for rows.Next() {
		var p Progress
		var score sql.NullFloat64
		var completedAt, updatedAt string
		if err := rows.Scan(&p.Module, &p.Lesson, &p.Status, &score, &completedAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		if score.Valid {
			p.Score = &score.Float64
		}
		p.CompletedAt = parseTime(completedAt)
		p.UpdatedAt = parseTime(updatedAt)
		out = append(out, p)
	}
	return out, rows.Err()
}

// ModuleStatsFor summarizes lesson counts and average score for one
// module.
func (s *Store) ModuleStatsFor(ctx context.Context, userID int64, module string) (ModuleStats, error) {
	defer observe("module_stats", time.Now())

	var stats ModuleStats
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
			AVG(score)
		FROM learning_progress
		WHERE user_id = ? AND module = ?`, userID, module).Scan(&stats.Total, &stats.Completed, &avg)
	if err != nil {
		QueryErrors.WithLabelValues("module_stats").Inc()
		return ModuleStats{}, fmt.Errorf("failed to load module stats: %w", err)
	}
	if avg.Valid {
		stats.AvgScore = avg.Float64
	}
	return stats, nil
}
