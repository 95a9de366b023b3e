package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// Sentinel errors for callers that need to distinguish outcomes.
var (
	ErrNotFound  = fmt.Errorf("store: not found")
	ErrDuplicate = fmt.Errorf("store: duplicate")
	ErrNoFields  = fmt.Errorf("store: no fields to update")
)

// Store wraps the SQLite database holding all education state: user
// accounts, sessions, learning progress, exercise submissions,
// portfolios, study notes, and activity logs.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
	now    func() time.Time
}

// migrations are applied in order on every Open. Each statement is
// idempotent.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		full_name TEXT NOT NULL DEFAULT '',
		school TEXT NOT NULL DEFAULT '',
		grade TEXT NOT NULL DEFAULT '',
		major TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL DEFAULT 'student',
		created_at TEXT NOT NULL,
		last_login TEXT,
		is_active INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		token TEXT UNIQUE NOT NULL,
		created_at TEXT NOT NULL,
		expires_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS learning_progress (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		module TEXT NOT NULL,
		lesson TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'not_started',
		score REAL,
		completed_at TEXT,
		updated_at TEXT NOT NULL,
		UNIQUE(user_id, module, lesson),
		FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS exercise_submissions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		case_id TEXT NOT NULL,
		question_id TEXT NOT NULL,
		answer TEXT NOT NULL DEFAULT '',
		is_correct INTEGER,
		score REAL,
		submitted_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS portfolios (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS holdings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		portfolio_id INTEGER NOT NULL,
		fund_code TEXT NOT NULL,
		fund_name TEXT NOT NULL DEFAULT '',
		weight REAL NOT NULL,
		amount REAL NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (portfolio_id) REFERENCES portfolios(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS study_notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		module TEXT NOT NULL,
		lesson TEXT NOT NULL DEFAULT '',
		content TEXT NOT NULL,
		created_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
	`CREATE TABLE IF NOT EXISTS activity_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		kind TEXT NOT NULL,
		data TEXT,
		created_at TEXT NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users(id)
	)`,
}

// Open opens (creating if necessary) the SQLite database at path and
// applies the schema. The parent directory is created on demand.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite handles one writer at a time; a single connection avoids
	// SQLITE_BUSY churn under concurrent handlers.
	db.SetMaxOpenConns(1)

	s := &Store{
		db:     db,
		logger: log.With().Str("component", "store").Logger(),
		now:    time.Now,
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) migrate() error {
	for _, stmt := range migrations {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	s.logger.Debug().Int("statements", len(migrations)).Msg("Schema applied")
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable (readiness probe).
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// fmtTime renders a timestamp in the canonical column format (RFC3339
// UTC, lexically sortable).
func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// parseTime reads a canonical column timestamp; zero time on empty.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// isUniqueViolation matches SQLite unique-constraint failures, which
// the driver surfaces as plain errors.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
