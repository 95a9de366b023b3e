package store

import (
	"context"
	"fmt"
	"time"
)

// Note is one study note.
type Note struct {
	ID        int64     `json:"id"`
	Module    string    `json:"module"`
	Lesson    string    `json:"lesson"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveNote appends a study note and returns its id.
func (s *Store) SaveNote(ctx context.Context, userID int64, module, lesson, content string) (int64, error) {
	defer observe("save_note", time.Now())

	if module == "" || content == "" {
		return 0, fmt.Errorf("module and content are required")
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO study_notes (user_id, module, lesson, content, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		userID, module, lesson, content, fmtTime(s.now()))
	if err != nil {
		QueryErrors.WithLabelValues("save_note").Inc()
		return 0, fmt.Errorf("failed to save note: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read note id: %w", err)
	}
	return id, nil
}

// Notes lists a user's study notes, newest first. An empty module
// lists across all modules.
func (s *Store) Notes(ctx context.Context, userID int64, module string) ([]Note, error) {
	defer observe("notes", time.Now())

	query := `
		SELECT id, module, lesson, content, created_at
		FROM study_notes
		WHERE user_id = ?`
	args := []any{userID}
	if module != "" {
		query += ` AND module = ?`
		args = append(args, module)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		QueryErrors.WithLabelValues("notes").Inc()
		return nil, fmt.Errorf("failed to load notes: %w", err)
	}
	defer rows.Close()

	out := []Note{}
	for rows.Next() {
		var n Note
		var createdAt string
		if err := rows.Scan(&n.ID, &n.Module, &n.Lesson, &n.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		n.CreatedAt = parseTime(createdAt)
		out = append(out, n)
	}
	return out, rows.Err()
}
