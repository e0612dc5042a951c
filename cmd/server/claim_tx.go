package main

import (
	"context"
	"database/sql"
	"time"

	claimsvc "vitaran/internal/claims/service"
	dErrors "vitaran/pkg/domain-errors"
	platformtx "vitaran/pkg/platform/tx"
)

const defaultClaimTxTimeout = 5 * time.Second

// newClaimTxRunner wraps the claim commit in a database transaction. The
// stores pick the transaction up from the context, so debit, claim stamp,
// and log append land or roll back together.
func newClaimTxRunner(db *sql.DB) claimsvc.TxRunner {
	return func(ctx context.Context, fn func(ctx context.Context) error) error {
		if err := ctx.Err(); err != nil {
			return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
		}

		if _, hasDeadline := ctx.Deadline(); !hasDeadline {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, defaultClaimTxTimeout)
			defer cancel()
		}

		sqlTx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() {
			_ = sqlTx.Rollback()
		}()

		if err := fn(platformtx.WithTx(ctx, sqlTx)); err != nil {
			return err
		}

		return sqlTx.Commit()
	}
}
