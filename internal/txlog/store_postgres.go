package txlog

import (
	"context"
	"database/sql"
	"fmt"

	"vitaran/pkg/domain"
	txcontext "vitaran/pkg/platform/tx"
)

// PostgresStore persists transactions in PostgreSQL. Append-only by
// construction: the store exposes no mutation beyond INSERT.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed transaction log.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbRunner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) runner(ctx context.Context) dbRunner {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

func (s *PostgresStore) Append(ctx context.Context, t *Transaction) error {
	_, err := s.runner(ctx).ExecContext(ctx, `
		INSERT INTO transactions (id, citizen_id, scheme, amount, occurred_at, status, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, t.ID.String(), t.CitizenID.String(), t.Scheme, t.Amount, t.Timestamp, t.Status, t.Reason)
	if err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*Transaction, error) {
	rows, err := s.runner(ctx).QueryContext(ctx, `
		SELECT id, citizen_id, scheme, amount, occurred_at, status, reason
		FROM transactions
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []*Transaction
	for rows.Next() {
		var (
			t     Transaction
			rawID string
			rawCitizenID string
		)
		if err := rows.Scan(&rawID, &rawCitizenID, &t.Scheme, &t.Amount, &t.Timestamp, &t.Status, &t.Reason); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		id, err := domain.ParseTransactionID(rawID)
		if err != nil {
			return nil, fmt.Errorf("scan transaction id: %w", err)
		}
		t.ID = id
		t.CitizenID = domain.CitizenID(rawCitizenID)
		out = append(out, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.runner(ctx).QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}
