// Package ledger tracks the shared disbursement budget: one counter for what
// remains and one for what has been paid out. TotalDisbursed is monotonically
// non-decreasing and reconciles against the approved rows in the transaction
// log.
package ledger

import "context"

// Store defines the persistence interface for the budget ledger.
//
// Error Contract:
// - Debit returns sentinel.ErrInsufficientBudget when amount exceeds the remaining budget
// - Other failures are wrapped infrastructure errors
type Store interface {
	Budget(ctx context.Context) (int64, error)
	TotalDisbursed(ctx context.Context) (int64, error)
	// Reset overwrites the remaining budget. It never touches TotalDisbursed
	// and is the only way to restore budget after exhaustion.
	Reset(ctx context.Context, amount int64) error
	// Debit atomically moves amount from remaining to disbursed. Only the
	// adjudicator calls this, inside an adjudicated commit.
	Debit(ctx context.Context, amount int64) error
}
