package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// User is one account row. PasswordHash is never serialized.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	School       string    `json:"school"`
	Grade        string    `json:"grade"`
	Major        string    `json:"major"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	LastLogin    time.Time `json:"last_login,omitzero"`
	Active       bool      `json:"active"`
}

// NewUser carries the fields of an account to create.
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
	FullName     string
	School       string
	Grade        string
	Major        string
	Role         string
}

// profileFields is the allow-list for UpdateUserFields.
var profileFields = map[string]bool{
	"full_name": true,
	"school":    true,
	"grade":     true,
	"major":     true,
	"email":     true,
}

// CreateUser inserts an account and returns its id. A username or
// email already in use returns ErrDuplicate.
func (s *Store) CreateUser(ctx context.Context, u NewUser) (int64, error) {
	defer observe("create_user", time.Now())

	role := u.Role
	if role == "" {
		role = "student"
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash, full_name, school, grade, major, role, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.Username, u.Email, u.PasswordHash, u.FullName, u.School, u.Grade, u.Major, role, fmtTime(s.now()))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		QueryErrors.WithLabelValues("create_user").Inc()
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read user id: %w", err)
	}

	s.logger.Info().Int64("user_id", id).Str("username", u.Username).Msg("User created")
	return id, nil
}

const userColumns = `id, username, email, password_hash, full_name, school, grade, major, role, created_at, COALESCE(last_login, ''), is_active`

func scanUser(row *sql.Row) (User, error) {
	var u User
	var createdAt, lastLogin string
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName,
		&u.School, &u.Grade, &u.Major, &u.Role, &createdAt, &lastLogin, &u.Active)
	if err != nil {
		return User{}, err
	}
	u.CreatedAt = parseTime(createdAt)
	u.LastLogin = parseTime(lastLogin)
	return u, nil
}

// UserByID fetches one account.
func (s *Store) UserByID(ctx context.Context, id int64) (User, error) {
	defer observe("user_by_id", time.Now())

	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		QueryErrors.WithLabelValues("user_by_id").Inc()
		return User{}, fmt.Errorf("failed to load user: %w", err)
	}
	return u, nil
}

// UserByLogin fetches an active account by username or email.
func (s *Store) UserByLogin(ctx context.Context, usernameOrEmail string) (User, error) {
	defer observe("user_by_login", time.Now())

	row := s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE (username = ? OR email = ?) AND is_active = 1`,
		usernameOrEmail, usernameOrEmail)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		QueryErrors.WithLabelValues("user_by_login").Inc()
		return User{}, fmt.Errorf("failed to load user: %w", err)
	}
	return u, nil
}

// TouchLastLogin stamps the account's last successful login.
func (s *Store) TouchLastLogin(ctx context.Context, id int64) error {
	defer observe("touch_last_login", time.Now())

	_, err := s.db.ExecContext(ctx, `UPDATE users SET last_login = ? WHERE id = ?`, fmtTime(s.now()), id)
	if err != nil {
		QueryErrors.WithLabelValues("touch_last_login").Inc()
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// UpdateUserFields updates allow-listed profile fields. Unknown fields
// are ignored; an update with nothing left returns ErrNoFields. A new
// email colliding with another account returns ErrDuplicate.
func (s *Store) UpdateUserFields(ctx context.Context, id int64, fields map[string]string) error {
	defer observe("update_user", time.Now())

	assignments := make([]string, 0, len(fields))
	values := make([]any, 0, len(fields)+1)
	for _, name := range []string{"full_name", "school", "grade", "major", "email"} {
		if v, ok := fields[name]; ok && profileFields[name] {
			assignments = append(assignments, name+" = ?")
			values = append(values, v)
		}
	}
	if len(assignments) == 0 {
		return ErrNoFields
	}
	values = append(values, id)

	_, err := s.db.ExecContext(ctx,
		`UPDATE users SET `+strings.Join(assignments, ", ")+` WHERE id = ?`, values...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		QueryErrors.WithLabelValues("update_user").Inc()
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// UpdatePassword replaces the stored password hash.
func (s *Store) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	defer observe("update_password", time.Now())

	_, err := s.db.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		QueryErrors.WithLabelValues("update_password").Inc()
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// CreateSession records an issued token.
func (s *Store) CreateSession(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	defer observe("create_session", time.Now())

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (user_id, token, created_at, expires_at)
		VALUES (?, ?, ?, ?)`,
		userID, token, fmtTime(s.now()), fmtTime(expiresAt))
	if err != nil {
		QueryErrors.WithLabelValues("create_session").Inc()
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// DeleteSession revokes a token. Deleting an unknown token is not an
// error.
func (s *Store) DeleteSession(ctx context.Context, token string) error {
	defer observe("delete_session", time.Now())

	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	if err != nil {
		QueryErrors.WithLabelValues("delete_session").Inc()
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// SessionUser resolves an unexpired session token to its active user.
// Expired, revoked, or unknown tokens return ErrNotFound.
func (s *Store) SessionUser(ctx context.Context, token string) (User, error) {
	defer observe("session_user", time.Now())

	row := s.db.QueryRowContext(ctx, `
		SELECT u.id, u.username, u.email, u.password_hash, u.full_name, u.school, u.grade, u.major, u.role, u.created_at, COALESCE(u.last_login, ''), u.is_active
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = ? AND s.expires_at > ? AND u.is_active = 1`,
		token, fmtTime(s.now()))
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		QueryErrors.WithLabelValues("session_user").Inc()
		return User{}, fmt.Errorf("failed to resolve session: %w", err)
	}
	return u, nil
}

// DeleteExpiredSessions removes sessions past their expiry and returns
// how many were dropped.
func (s *Store) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	defer observe("delete_expired_sessions", time.Now())

	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, fmtTime(s.now()))
	if err != nil {
		QueryErrors.WithLabelValues("delete_expired_sessions").Inc()
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
