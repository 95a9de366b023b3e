package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Portfolio is one user-built fund portfolio.
type Portfolio struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Holding is one position inside a portfolio.
type Holding struct {
	FundCode  string    `json:"fund_code"`
	FundName  string    `json:"fund_name"`
	Weight    float64   `json:"weight"`
	Amount    float64   `json:"amount"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// CreatePortfolio inserts an empty portfolio and returns its id.
func (s *Store) CreatePortfolio(ctx context.Context, userID int64, name, description string) (int64, error) {
	defer observe("create_portfolio", time.Now())

	if name == "" {
		return 0, fmt.Errorf("portfolio name is required")
	}

	now := fmtTime(s.now())
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO portfolios (user_id, name, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		userID, name, description, now, now)
	if err != nil {
		QueryErrors.WithLabelValues("create_portfolio").Inc()
		return 0, fmt.Errorf("failed to create portfolio: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read portfolio id: %w", err)
	}
	return id, nil
}

// Portfolio fetches one portfolio; callers check UserID for ownership.
func (s *Store) Portfolio(ctx context.Context, id int64) (Portfolio, error) {
	defer observe("portfolio", time.Now())

	var p Portfolio
	var createdAt, updatedAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, description, created_at, updated_at
		FROM portfolios WHERE id = ?`, id).
		Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Portfolio{}, ErrNotFound
	}
	if err != nil {
		QueryErrors.WithLabelValues("portfolio").Inc()
		return Portfolio{}, fmt.Errorf("failed to load portfolio: %w", err)
	}
	p.CreatedAt = parseTime(createdAt)
	p.UpdatedAt = parseTime(updatedAt)
	return p, nil
}

// Portfolios lists a user's portfolios, most recently updated first.
func (s *Store) Portfolios(ctx context.Context, userID int64) ([]Portfolio, error) {
	defer observe("portfolios", time.Now())

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, description, created_at, updated_at
		FROM portfolios
		WHERE user_id = ?
		ORDER BY updated_at DESC`, userID)
	if err != nil {
		QueryErrors.WithLabelValues("portfolios").Inc()
		return nil, fmt.Errorf("failed to load portfolios: %w", err)
	}
	defer rows.Close()

	out := []Portfolio{}
	for rows.Next() {
		var p Portfolio
		var createdAt, updatedAt string
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Description, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio: %w", err)
		}
		p.CreatedAt = parseTime(createdAt)
		p.UpdatedAt = parseTime(updatedAt)
		out = append(out, p)
	}
	return out, rows.Err()
}

// ReplaceHoldings swaps a portfolio's positions for the given set in
// one transaction and touches the portfolio's updated_at.
func (s *Store) ReplaceHoldings(ctx context.Context, portfolioID int64, holdings []Holding) error {
	defer observe("replace_holdings", time.Now())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		QueryErrors.WithLabelValues("replace_holdings").Inc()
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM holdings WHERE portfolio_id = ?`, portfolioID); err != nil {
		QueryErrors.WithLabelValues("replace_holdings").Inc()
		return fmt.Errorf("failed to clear holdings: %w", err)
	}

	now := fmtTime(s.now())
	for _, h := range holdings {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO holdings (portfolio_id, fund_code, fund_name, weight, amount, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			portfolioID, h.FundCode, h.FundName, h.Weight, h.Amount, now); err != nil {
			QueryErrors.WithLabelValues("replace_holdings").Inc()
			return fmt.Errorf("failed to insert holding: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE portfolios SET updated_at = ? WHERE id = ?`, now, portfolioID); err != nil {
		QueryErrors.WithLabelValues("replace_holdings").Inc()
		return fmt.Errorf("failed to touch portfolio: %w", err)
	}

	return tx.Commit()
}

// Holdings lists a portfolio's positions.
func (s *Store) Holdings(ctx context.Context, portfolioID int64) ([]Holding, error) {
	defer observe("holdings", time.Now())

	rows, err := s.db.QueryContext(ctx, `
		SELECT fund_code, fund_name, weight, amount, updated_at
		FROM holdings
		WHERE portfolio_id = ?`, portfolioID)
	if err != nil {
		QueryErrors.WithLabelValues("holdings").Inc()
		return nil, fmt.Errorf("failed to load holdings: %w", err)
	}
	defer rows.Close()

	out := []Holding{}
	for rows.Next() {
		var h Holding
		var updatedAt string
		if err := rows.Scan(&h.FundCode, &h.FundName, &h.Weight, &h.Amount, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		h.UpdatedAt = parseTime(updatedAt)
		out = append(out, h)
	}
	return out, rows.Err()
}

// DeletePortfolio removes a portfolio; holdings cascade.
func (s *Store) DeletePortfolio(ctx context.Context, id int64) error {
	defer observe("delete_portfolio", time.Now())

	res, err := s.db.ExecContext(ctx, `DELETE FROM portfolios WHERE id = ?`, id)
	if err != nil {
		QueryErrors.WithLabelValues("delete_portfolio").Inc()
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
