package citizen

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"vitaran/pkg/domain"
	"vitaran/pkg/platform/sentinel"
	txcontext "vitaran/pkg/platform/tx"
)

// PostgresStore persists citizen records in PostgreSQL.
// This store is pure I/O; eligibility rules belong in the adjudicator.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed citizen registry.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type dbRunner interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// runner returns the ambient transaction when the adjudicator opened one,
// otherwise the pool.
func (s *PostgresStore) runner(ctx context.Context) dbRunner {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

const citizenColumns = `id, name, dob, gender, marital_status, account_status, aadhaar_status, scheme, amount, claims, last_claim`

func (s *PostgresStore) Insert(ctx context.Context, c *Citizen) error {
	query := `
		INSERT INTO citizens (` + citizenColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.runner(ctx).ExecContext(ctx, query,
		c.ID.String(), c.Name, c.DOB, c.Gender, c.MaritalStatus,
		c.AccountStatus, c.AadhaarStatus, c.Scheme, c.Amount, c.Claims, c.LastClaim,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert citizen: %w", err)
	}
	return nil
}

func (s *PostgresStore) InsertBatch(ctx context.Context, cs []*Citizen) error {
	// All-or-nothing: run inside a single transaction unless the caller
	// already opened one.
	if _, ok := txcontext.From(ctx); ok {
		return s.insertAll(ctx, cs)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch insert: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()
	if err := s.insertAll(txcontext.WithTx(ctx, tx), cs); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch insert: %w", err)
	}
	return nil
}

func (s *PostgresStore) insertAll(ctx context.Context, cs []*Citizen) error {
	for _, c := range cs {
		if err := s.Insert(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id domain.CitizenID) (*Citizen, error) {
	query := `SELECT ` + citizenColumns + ` FROM citizens WHERE id = $1`
	record, err := scanCitizen(s.runner(ctx).QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get citizen: %w", err)
	}
	return record, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*Citizen, error) {
	query := `SELECT ` + citizenColumns + ` FROM citizens ORDER BY seq`
	rows, err := s.runner(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list citizens: %w", err)
	}
	defer rows.Close()

	var out []*Citizen
	for rows.Next() {
		record, err := scanCitizen(rows)
		if err != nil {
			return nil, fmt.Errorf("scan citizen: %w", err)
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list citizens: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.runner(ctx).QueryRowContext(ctx, `SELECT COUNT(*) FROM citizens`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count citizens: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) UpdateAadhaarStatus(ctx context.Context, id domain.CitizenID, status AadhaarStatus) error {
	result, err := s.runner(ctx).ExecContext(ctx,
		`UPDATE citizens SET aadhaar_status = $2 WHERE id = $1`,
		id.String(), status,
	)
	if err != nil {
		return fmt.Errorf("update aadhaar status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update aadhaar status: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// RecordClaim uses a conditional UPDATE so the claim cap can never be
// exceeded even if two transactions race past the adjudicator's lock.
func (s *PostgresStore) RecordClaim(ctx context.Context, id domain.CitizenID, claimedAt time.Time, maxClaims int) error {
	result, err := s.runner(ctx).ExecContext(ctx, `
		UPDATE citizens
		SET claims = claims + 1, last_claim = $2
		WHERE id = $1 AND claims < $3
	`, id.String(), claimedAt, maxClaims)
	if err != nil {
		return fmt.Errorf("record claim: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("record claim: %w", err)
	}
	if affected == 0 {
		// Either the citizen vanished or the cap is reached; disambiguate.
		if _, getErr := s.Get(ctx, id); errors.Is(getErr, sentinel.ErrNotFound) {
			return sentinel.ErrNotFound
		}
		return sentinel.ErrInvalidState
	}
	return nil
}

func (s *PostgresStore) DeleteInactive(ctx context.Context) (int, error) {
	result, err := s.runner(ctx).ExecContext(ctx,
		`DELETE FROM citizens WHERE account_status = $1`, AccountInactive,
	)
	if err != nil {
		return 0, fmt.Errorf("delete inactive citizens: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete inactive citizens: %w", err)
	}
	return int(affected), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCitizen(row rowScanner) (*Citizen, error) {
	var (
		c         Citizen
		rawID     string
		lastClaim sql.NullTime
	)
	err := row.Scan(&rawID, &c.Name, &c.DOB, &c.Gender, &c.MaritalStatus,
		&c.AccountStatus, &c.AadhaarStatus, &c.Scheme, &c.Amount, &c.Claims, &lastClaim)
	if err != nil {
		return nil, err
	}
	c.ID = domain.CitizenID(rawID)
	if lastClaim.Valid {
		t := lastClaim.Time
		c.LastClaim = &t
	}
	return &c, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
