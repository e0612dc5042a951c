package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"vitaran/pkg/platform/sentinel"
	txcontext "vitaran/pkg/platform/tx"
)

// PostgresStore persists the ledger counters as a single row keyed by a fixed
// id. The Debit path is a conditional UPDATE so the non-negative invariant
// holds even without the adjudicator's lock.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed budget ledger.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbRunner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) runner(ctx context.Context) dbRunner {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Seed inserts the ledger row if it does not exist yet. Boot-time only.
func (s *PostgresStore) Seed(ctx context.Context, initialBudget int64) error {
	_, err := s.runner(ctx).ExecContext(ctx, `
		INSERT INTO budget_ledger (id, remaining_budget, total_disbursed)
		VALUES (1, $1, 0)
		ON CONFLICT (id) DO NOTHING
	`, initialBudget)
	if err != nil {
		return fmt.Errorf("seed ledger: %w", err)
	}
	return nil
}

func (s *PostgresStore) Budget(ctx context.Context) (int64, error) {
	var remaining int64
	err := s.runner(ctx).QueryRowContext(ctx,
		`SELECT remaining_budget FROM budget_ledger WHERE id = 1`,
	).Scan(&remaining)
	if err != nil {
		return 0, fmt.Errorf("get budget: %w", err)
	}
	return remaining, nil
}

func (s *PostgresStore) TotalDisbursed(ctx context.Context) (int64, error) {
	var disbursed int64
	err := s.runner(ctx).QueryRowContext(ctx,
		`SELECT total_disbursed FROM budget_ledger WHERE id = 1`,
	).Scan(&disbursed)
	if err != nil {
		return 0, fmt.Errorf("get total disbursed: %w", err)
	}
	return disbursed, nil
}

func (s *PostgresStore) Reset(ctx context.Context, amount int64) error {
	_, err := s.runner(ctx).ExecContext(ctx,
		`UPDATE budget_ledger SET remaining_budget = $1 WHERE id = 1`, amount,
	)
	if err != nil {
		return fmt.Errorf("reset budget: %w", err)
	}
	return nil
}

// Debit decrements remaining and increments disbursed in one conditional
// statement. Zero rows affected means the budget could not cover the amount.
func (s *PostgresStore) Debit(ctx context.Context, amount int64) error {
	result, err := s.runner(ctx).ExecContext(ctx, `
		UPDATE budget_ledger
		SET remaining_budget = remaining_budget - $1,
		    total_disbursed = total_disbursed + $1
		WHERE id = 1 AND remaining_budget >= $1
	`, amount)
	if err != nil {
		return fmt.Errorf("debit ledger: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("debit ledger: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrInsufficientBudget
	}
	return nil
}
