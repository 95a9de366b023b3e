package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Activity is one logged learning action.
type Activity struct {
	Kind      string          `json:"kind"`
	Data      json.RawMessage `json:"data,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// DailyCount is one day's activity total.
type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// LogActivity appends one learning action. Logging failures are
// reported but callers typically only warn on them.
func (s *Store) LogActivity(ctx context.Context, userID int64, kind string, data map[string]any) error {
	defer observe("log_activity", time.Now())

	if kind == "" {
		return fmt.Errorf("activity kind is required")
	}

	var payload any
	if len(data) > 0 {
		encoded, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to encode activity data: %w", err)
		}
		payload = string(encoded)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO activity_logs (user_id, kind, data, created_at)
		VALUES (?, ?, ?, ?)`,
		userID, kind, payload, fmtTime(s.now()))
	if err != nil {
		QueryErrors.WithLabelValues("log_activity").Inc()
		return fmt.Errorf("failed to log activity: %w", err)
	}
	return nil
}

// Activities lists a user's actions within the trailing window, newest
// first.
func (s *Store) Activities(ctx context.Context, userID int64, days int) ([]Activity, error) {
	defer observe("activities", time.Now())

	if days <= 0 {
		days = 30
	}
	cutoff := fmtTime(s.now().AddDate(0, 0, -days))

	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, data, created_at
		FROM activity_logs
		WHERE user_id = ? AND created_at > ?
		ORDER BY created_at DESC, id DESC`, userID, cutoff)
	if err != nil {
		QueryErrors.WithLabelValues("activities").Inc()
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}
	defer rows.Close()

	out := []Activity{}
	for rows.Next() {
		var a Activity
		var data sql.NullString
		var createdAt string
		if err := rows.Scan(&a.Kind, &data, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		if data.Valid {
			a.Data = json.RawMessage(data.String)
		}
		a.CreatedAt = parseTime(createdAt)
		out = append(out, a)
	}
	return out, rows.Err()
}

// DailyActivity aggregates per-day action counts within the trailing
// window, newest day first.
func (s *Store) DailyActivity(ctx context.Context, userID int64, days int) ([]DailyCount, error) {
	defer observe("daily_activity", time.Now())

	if days <= 0 {
		days = 30
	}
	cutoff := fmtTime(s.now().AddDate(0, 0, -days))

	rows, err := s.db.QueryContext(ctx, `
		SELECT DATE(created_at), COUNT(*)
		FROM activity_logs
		WHERE user_id = ? AND created_at > ?
		GROUP BY DATE(created_at)
		ORDER BY DATE(created_at) DESC`, userID, cutoff)
	if err != nil {
		QueryErrors.WithLabelValues("daily_activity").Inc()
		return nil, fmt.Errorf("failed to load daily activity: %w", err)
	}
	defer rows.Close()

	out := []DailyCount{}
	for rows.Next() {
		var d DailyCount
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, fmt.Errorf("failed to scan daily activity: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
