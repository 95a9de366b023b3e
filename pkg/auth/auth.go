package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/quantedu/fundboard/pkg/store"
)

// SessionTTL is how long an issued token stays valid.
const SessionTTL = 7 * 24 * time.Hour

// Sentinel errors. Credential failures never reveal whether the
// account or the password was wrong.
var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrInvalidToken       = errors.New("auth: invalid token")
	ErrDuplicateAccount   = errors.New("auth: username or email already in use")
	ErrInvalidEmail       = errors.New("auth: invalid email address")
)

var validate = validator.New()

// Manager handles accounts and sessions on top of the local store.
type Manager struct {
	store  *store.Store
	secret []byte
	ttl    time.Duration
	logger zerolog.Logger
	now    func() time.Time
}

// New creates an auth manager. The JWT secret is required.
func New(st *store.Store, secret string) (*Manager, error) {
	if st == nil {
		return nil, fmt.Errorf("store is required")
	}
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}

	return &Manager{
		store:  st,
		secret: []byte(secret),
		ttl:    SessionTTL,
		logger: log.With().Str("component", "auth").Logger(),
		now:    time.Now,
	}, nil
}

// RegisterRequest carries a new account. Profile fields are optional.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"full_name"`
	School   string `json:"school"`
	Grade    string `json:"grade"`
	Major    string `json:"major"`
}

// Validate checks field shape and password strength.
func (r RegisterRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	return checkPasswordStrength(r.Password)
}

// Session is an issued login.
type Session struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
	User      store.User `json:"user"`
}

// Register creates an account. Taken usernames or emails return
// ErrDuplicateAccount.
func (m *Manager) Register(ctx context.Context, req RegisterRequest) (store.User, error) {
	if err := req.Validate(); err != nil {
		return store.User{}, err
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return store.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	id, err := m.store.CreateUser(ctx, store.NewUser{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		School:       req.School,
		Grade:        req.Grade,
		Major:        req.Major,
	})
	if errors.Is(err, store.ErrDuplicate) {
		return store.User{}, ErrDuplicateAccount
	}
	if err != nil {
		return store.User{}, err
	}

	Registrations.Inc()
	m.logger.Info().Str("username", req.Username).Msg("Account registered")
	return m.store.UserByID(ctx, id)
}

// Login verifies credentials for a username or email, issues a token,
// and records the session.
func (m *Manager) Login(ctx context.Context, usernameOrEmail, password string) (Session, error) {
	user, err := m.store.UserByLogin(ctx, usernameOrEmail)
	if errors.Is(err, store.ErrNotFound) {
		LoginAttempts.WithLabelValues("failure").Inc()
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, err
	}

	if !checkPassword(user.PasswordHash, password) {
		LoginAttempts.WithLabelValues("failure").Inc()
		m.logger.Warn().Str("username", user.Username).Msg("Login rejected")
		return Session{}, ErrInvalidCredentials
	}

	if err := m.store.TouchLastLogin(ctx, user.ID); err != nil {
		m.logger.Warn().Err(err).Msg("Failed to stamp last login")
	}

	expiresAt := m.now().Add(m.ttl)
	token, err := m.signToken(user.ID, expiresAt)
	if err != nil {
		return Session{}, fmt.Errorf("failed to sign token: %w", err)
	}

	if err := m.store.CreateSession(ctx, user.ID, token, expiresAt); err != nil {
		return Session{}, err
	}

	LoginAttempts.WithLabelValues("success").Inc()
	m.logger.Info().Str("username", user.Username).Msg("Login")

	user.PasswordHash = ""
	return Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// Logout revokes a session token. Unknown tokens are not an error.
func (m *Manager) Logout(ctx context.Context, token string) error {
	return m.store.DeleteSession(ctx, token)
}

// Verify resolves a token to its user. The token must carry a valid
// signature and an unexpired, unrevoked session for an active account.
func (m *Manager) Verify(ctx context.Context, token string) (store.User, error) {
	if _, err := m.parseToken(token); err != nil {
		return store.User{}, ErrInvalidToken
	}

	user, err := m.store.SessionUser(ctx, token)
	if errors.Is(err, store.ErrNotFound) {
		return store.User{}, ErrInvalidToken
	}
	if err != nil {
		return store.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}

// UpdateProfile updates allow-listed profile fields. A changed email
// is format-checked; collisions return ErrDuplicateAccount.
func (m *Manager) UpdateProfile(ctx context.Context, userID int64, fields map[string]string) error {
	if email, ok := fields["email"]; ok {
		if err := validate.Var(email, "required,email"); err != nil {
			return ErrInvalidEmail
		}
	}

	err := m.store.UpdateUserFields(ctx, userID, fields)
	if errors.Is(err, store.ErrDuplicate) {
		return ErrDuplicateAccount
	}
	return err
}

// ChangePassword replaces the password after checking the old one.
func (m *Manager) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	if err := checkPasswordStrength(newPassword); err != nil {
		return err
	}

	user, err := m.store.UserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !checkPassword(user.PasswordHash, oldPassword) {
		return ErrInvalidCredentials
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := m.store.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	m.logger.Info().Int64("user_id", userID).Msg("Password changed")
	return nil
}

// Demo account credentials, seeded on first run so the dashboard works
// without registration.
const (
	DemoUsername = "demo_student"
	DemoPassword = "demo123"
)

// EnsureDemoAccount creates the demo account if it does not exist.
func (m *Manager) EnsureDemoAccount(ctx context.Context) error {
	_, err := m.Register(ctx, RegisterRequest{
		Username: DemoUsername,
		Email:    "demo@example.com",
		Password: DemoPassword,
		FullName: "Demo Student",
		School:   "Demo University",
		Grade:    "Junior",
		Major:    "Finance",
	})
	if errors.Is(err, ErrDuplicateAccount) {
		return nil
	}
	return err
}
