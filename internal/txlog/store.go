package txlog

import "context"

// Store defines the persistence interface for the transaction log.
// The interface is deliberately append-only: no update or delete exists.
//
// Error Contract:
// - Append returns nil on success or a wrapped infrastructure error
// - List returns transactions in insertion order; callers needing recency
//   reverse it themselves
type Store interface {
	Append(ctx context.Context, t *Transaction) error
	List(ctx context.Context) ([]*Transaction, error)
	Count(ctx context.Context) (int, error)
}
